package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing record (unknown echo id, unknown uid).
	ErrNotFound = errors.New("not found")

	// ErrUnintelligibleAudio is returned when transcription produces no
	// result. Callers surface it distinctly so the user can re-record.
	ErrUnintelligibleAudio = errors.New("could not understand audio; it may be silent or in an unsupported format")

	// ErrBadRecommendation is returned when the language model's reply
	// does not name a post within the candidate range.
	ErrBadRecommendation = errors.New("model reply did not name a valid post")
)

// ValidationError covers missing or malformed request input. No partial
// work has been performed when one is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a request-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
