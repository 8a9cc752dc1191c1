package core

import (
	"context"

	"solace.app/backend/internal/audio"
)

// The external services the pipelines depend on. Each is a stateless
// wrapper around one process-wide client, injected at construction and
// called exactly once per request with no retries.

// Transcriber converts a recording to text. An empty transcript with a
// nil error means the service produced no results.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, params audio.Params) (string, error)
}

// Synthesizer renders text as compressed neutral-voice audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioPublisher stores synthesized audio under a key and returns its
// public URL. Delete exists so a failed metadata write can take the
// published object back down.
type AudioPublisher interface {
	Publish(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// SentimentAnalyzer scores text; score is roughly [-1, 1], magnitude >= 0.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (score, magnitude float64, err error)
}

// SupportivePicker chooses the best candidate post for someone feeling
// down and returns its zero-based index into the supplied slice.
type SupportivePicker interface {
	PickSupportivePost(ctx context.Context, sadContent string, candidates []string) (int, error)
}
