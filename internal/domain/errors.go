package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores and services when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInterviewClosed is returned when a chat turn targets a completed interview.
var ErrInterviewClosed = errors.New("interview is not active")

// TransportError reports a failed call to the assessment service.
type TransportError struct {
	Op         Operation
	Kind       TransportErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportErrorStatus:
		if e.Body != "" {
			return fmt.Sprintf("%s: assessment service returned status %d: %s", e.Op, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("%s: assessment service returned status %d", e.Op, e.StatusCode)
	case TransportErrorDecode:
		return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err wraps a *TransportError and returns it.
func IsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
