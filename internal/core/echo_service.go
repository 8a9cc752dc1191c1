package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"solace.app/backend/internal/audio"
	"solace.app/backend/internal/store"
)

const (
	echoPageSize    = 100
	echoContentType = "audio/mpeg"
)

// EchoStore is the slice of the document store the echo pipeline needs.
type EchoStore interface {
	GetUserByUID(ctx context.Context, uid string) (*store.UserProfile, error)
	CreateEcho(ctx context.Context, echo *store.Echo) error
	ListEchoes(ctx context.Context, limit int) ([]store.Echo, error)
	AddGlimmer(ctx context.Context, echoID string) error
}

// EchoService runs the ingestion pipeline: stage the upload, transcribe
// it, synthesize an anonymized re-reading, publish that to object storage
// and persist the metadata record. Every stage is one synchronous call;
// the first failure short-circuits the rest. The original recording never
// outlives the request.
type EchoService struct {
	store       EchoStore
	transcriber Transcriber
	synthesizer Synthesizer
	publisher   AudioPublisher

	// ScratchDir overrides the system temp dir for staged uploads.
	ScratchDir string
}

func NewEchoService(s EchoStore, t Transcriber, sy Synthesizer, p AudioPublisher) *EchoService {
	return &EchoService{store: s, transcriber: t, synthesizer: sy, publisher: p}
}

// CreateEcho ingests one uploaded recording for uid. filename is only
// trusted for the scratch-file suffix; the actual audio parameters are
// probed from the bytes. Returns the persisted echo on success.
func (s *EchoService) CreateEcho(ctx context.Context, uid, filename string, upload io.Reader) (*store.Echo, error) {
	if uid == "" {
		return nil, validationf("uid is required")
	}
	if upload == nil {
		return nil, validationf("no audio file provided")
	}

	profile, err := s.store.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}
	if profile == nil {
		return nil, validationf("no profile exists for this uid")
	}

	// Stage the original recording to a scratch file. Whatever happens
	// from here on, the file is gone by the time we return.
	scratchPath, err := s.stage(filename, upload)
	if err != nil {
		return nil, fmt.Errorf("failed to stage audio: %w", err)
	}
	defer func() {
		if err := os.Remove(scratchPath); err != nil {
			log.Printf("Failed to remove scratch file %s: %v", scratchPath, err)
		}
	}()

	original, err := os.ReadFile(scratchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged audio: %w", err)
	}

	params, err := audio.Probe(original)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnintelligibleAudio, err)
	}

	transcript, err := s.transcriber.Transcribe(ctx, original, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	if transcript == "" {
		return nil, ErrUnintelligibleAudio
	}

	synthesized, err := s.synthesizer.Synthesize(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}

	key := fmt.Sprintf("echoes/%s.mp3", uuid.NewString())
	audioURL, err := s.publisher.Publish(ctx, key, synthesized, echoContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to publish audio: %w", err)
	}

	echo := &store.Echo{
		AuthorUID:  uid,
		AudioURL:   audioURL,
		Transcript: transcript,
	}
	if err := s.store.CreateEcho(ctx, echo); err != nil {
		// Take the published object back down so it doesn't dangle
		// without a record pointing at it.
		if delErr := s.publisher.Delete(ctx, key); delErr != nil {
			log.Printf("Failed to delete orphaned object %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to store echo: %w", err)
	}
	return echo, nil
}

// stage writes the upload to a scratch file and returns its path. The
// suffix follows the declared filename so the file is recognizable while
// it exists; nothing else is inferred from the name.
func (s *EchoService) stage(filename string, upload io.Reader) (string, error) {
	suffix := ".wav"
	if strings.HasSuffix(strings.ToLower(filename), ".mp3") {
		suffix = ".mp3"
	}

	f, err := os.CreateTemp(s.ScratchDir, "echo-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}

	if _, err := io.Copy(f, upload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close scratch file: %w", err)
	}
	return f.Name(), nil
}

// ListEchoes returns the newest echoes, most recent first.
func (s *EchoService) ListEchoes(ctx context.Context) ([]store.Echo, error) {
	return s.store.ListEchoes(ctx, echoPageSize)
}

// AddGlimmer records one positive reaction on an echo.
func (s *EchoService) AddGlimmer(ctx context.Context, echoID string) error {
	if echoID == "" {
		return validationf("echo id is required")
	}
	if err := s.store.AddGlimmer(ctx, echoID); err != nil {
		if errors.Is(err, store.ErrEchoNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to add glimmer: %w", err)
	}
	return nil
}
