package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredential indicates no API key is configured. No request is sent.
	ErrNoCredential = errors.New("generative text credential not configured")

	// ErrUnavailable indicates the generative service is unreachable.
	ErrUnavailable = errors.New("generative service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrEmptyResponse indicates the service answered without any text.
	ErrEmptyResponse = errors.New("llm returned no text")
)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("generative service returned status %d: %s", e.StatusCode, body)
}

// ErrorCode maps an error to the stable code reported in call events.
func ErrorCode(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoCredential):
		return "NO_CREDENTIAL"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.As(err, &statusErr):
		return "HTTP_STATUS"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}
