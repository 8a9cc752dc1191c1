// Package speech wraps the Google Cloud speech services behind the small
// interfaces the echo pipeline consumes.
package speech

import (
	"context"
	"fmt"
	"log"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"solace.app/backend/internal/audio"
)

// GoogleTranscriber is a stateless wrapper around one process-wide
// Speech-to-Text client; safe to share across requests.
type GoogleTranscriber struct {
	client   *speech.Client
	language string
}

func NewGoogleTranscriber(ctx context.Context, language string) (*GoogleTranscriber, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &GoogleTranscriber{client: client, language: language}, nil
}

func (t *GoogleTranscriber) Close() {
	if err := t.client.Close(); err != nil {
		log.Printf("Error closing speech client: %v", err)
	}
}

// Transcribe sends one synchronous recognition request using the probed
// audio parameters. No results means an empty transcript, not an error.
func (t *GoogleTranscriber) Transcribe(ctx context.Context, data []byte, params audio.Params) (string, error) {
	encoding := speechpb.RecognitionConfig_LINEAR16
	if params.Format == audio.FormatMP3 {
		encoding = speechpb.RecognitionConfig_MP3
	}

	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          encoding,
			SampleRateHertz:   int32(params.SampleRateHertz),
			AudioChannelCount: int32(params.Channels),
			LanguageCode:      t.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition request failed: %w", err)
	}

	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return "", nil
	}
	return resp.Results[0].Alternatives[0].Transcript, nil
}
