package models

import "fmt"

// AIErrorKind is the closed set of inference failures the pipeline understands
type AIErrorKind int

const (
	// ModelUnavailable means the backend is unreachable or does not have the model
	ModelUnavailable AIErrorKind = iota
	// GenerationFailed means the backend answered the request with an error, or timed out
	GenerationFailed
	// InvalidResponse means the reply could not be parsed into the expected text
	InvalidResponse
)

func (k AIErrorKind) String() string {
	switch k {
	case ModelUnavailable:
		return "ModelUnavailable"
	case GenerationFailed:
		return "GenerationFailed"
	case InvalidResponse:
		return "InvalidResponse"
	default:
		return "Unknown"
	}
}

// AIError is the only error a model backend may return across its boundary
type AIError struct {
	Kind   AIErrorKind
	Reason string
}

func (e *AIError) Error() string {
	switch e.Kind {
	case ModelUnavailable:
		if e.Reason == "" {
			return "model unavailable"
		}
		return fmt.Sprintf("model unavailable: %s", e.Reason)
	case GenerationFailed:
		return fmt.Sprintf("generation failed: %s", e.Reason)
	case InvalidResponse:
		return fmt.Sprintf("invalid response: %s", e.Reason)
	default:
		return e.Reason
	}
}

// Retryable reports whether another attempt could succeed.
// An absent backend or model will not appear between attempts.
func (e *AIError) Retryable() bool {
	return e.Kind != ModelUnavailable
}
