package interview

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnavailable indicates the service could not be reached or answered
// with a non-2xx status. StatusCode is zero for transport failures.
type ErrUnavailable struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ErrUnavailable) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("interview service returned HTTP %d: %s", e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("interview service unavailable: %v", e.Err)
	default:
		return "interview service unavailable"
	}
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the service replied with a body that does not
// match the documented contract (bad JSON, missing required fields, values
// out of range).
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid interview service response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// IsServiceError reports whether err came from the service boundary, either
// as a transport failure or as a malformed reply.
func IsServiceError(err error) bool {
	var unavail *ErrUnavailable
	if errors.As(err, &unavail) {
		return true
	}
	var inv *ErrInvalidResponse
	return errors.As(err, &inv)
}
