// Package sentiment wraps the external text-sentiment service.
package sentiment

import (
	"context"
	"fmt"
	"log"

	language "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
)

// GoogleAnalyzer is a stateless wrapper around one process-wide Natural
// Language client; safe to share across requests.
type GoogleAnalyzer struct {
	client *language.Client
}

func NewGoogleAnalyzer(ctx context.Context) (*GoogleAnalyzer, error) {
	client, err := language.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create language client: %w", err)
	}
	return &GoogleAnalyzer{client: client}, nil
}

func (a *GoogleAnalyzer) Close() {
	if err := a.client.Close(); err != nil {
		log.Printf("Error closing language client: %v", err)
	}
}

// AnalyzeSentiment scores plain text in a single attempt; callers decide
// how to degrade on failure.
func (a *GoogleAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (float64, float64, error) {
	resp, err := a.client.AnalyzeSentiment(ctx, &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{Content: text},
			Type:   languagepb.Document_PLAIN_TEXT,
		},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("sentiment analysis request failed: %w", err)
	}
	if resp.DocumentSentiment == nil {
		return 0, 0, fmt.Errorf("sentiment analysis returned no document sentiment")
	}
	return float64(resp.DocumentSentiment.Score), float64(resp.DocumentSentiment.Magnitude), nil
}
