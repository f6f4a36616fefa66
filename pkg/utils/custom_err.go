package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPreference  = errors.New("invalid preference request")
	ErrMissingDestination = errors.New("destination is required")
	ErrEmptyMessage       = errors.New("message is required")
	ErrUpstreamTimeout    = errors.New("text generation timed out")
	ErrUpstreamFailure    = errors.New("text generation failed")
	ErrNoTextualOutput    = errors.New("no textual output")
	ErrExtractionFailed   = errors.New("JSON parse failure")
	ErrSchemaEcho         = errors.New("schema echoed instead of data")
)

// GenerationError carries the raw model output alongside the failure kind so
// callers can diagnose upstream misbehaviour.
type GenerationError struct {
	Kind    error
	RawText string
	Err     error
}

func NewGenerationError(kind error, raw string, cause error) *GenerationError {
	return &GenerationError{Kind: kind, RawText: raw, Err: cause}
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Kind
}

// ErrorKind returns the stable, client-facing name for an error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPreference), errors.Is(err, ErrMissingDestination), errors.Is(err, ErrEmptyMessage):
		return "invalid_request"
	case errors.Is(err, ErrUpstreamTimeout):
		return "upstream_timeout"
	case errors.Is(err, ErrNoTextualOutput):
		return "no_text_output"
	case errors.Is(err, ErrExtractionFailed):
		return "parse_failure"
	case errors.Is(err, ErrSchemaEcho):
		return "schema_echo"
	case errors.Is(err, ErrUpstreamFailure):
		return "upstream_failure"
	default:
		return "internal"
	}
}
