package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/skillcheck/internal/interview"
)

// Validation errors. Both are raised before any request is issued.
var (
	ErrEmptyName   = errors.New("please enter your name")
	ErrEmptyAnswer = errors.New("please provide an answer")
)

// ErrBusy is returned when an operation is attempted while a service
// request for the same session is still in flight.
var ErrBusy = errors.New("a request is already in progress")

// ErrInvalidQuestion is returned when a question violates the rule that
// choices are present exactly for multiple-choice questions.
var ErrInvalidQuestion = errors.New("question choices do not match its kind")

// ErrNoChoice is returned by SelectChoice for an out-of-range index or a
// question without choices.
var ErrNoChoice = errors.New("no such choice")

// TransitionError reports an operation that is not legal in the current
// stage. The state is left unchanged.
type TransitionError struct {
	From  Stage
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot apply %s in stage %s", e.Event, e.From)
}

// ServiceError wraps a failed Interview Service call. The state is left
// unchanged so the same operation can be retried.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Notice returns the short message shown to the candidate.
func (e *ServiceError) Notice() string {
	var unavail *interview.ErrUnavailable
	reachable := errors.As(e.Err, &unavail) && unavail.StatusCode != 0
	switch e.Op {
	case OpStart:
		if reachable {
			return "Failed to start interview. The interview service rejected the request."
		}
		return "Failed to start interview. Make sure the interview service is running."
	case OpSubmit:
		return "Failed to submit answer. Please try again."
	default:
		return "The interview service did not respond as expected."
	}
}

// Operation names used in ServiceError and logs.
const (
	OpStart  = "start"
	OpSubmit = "submit_answer"
)
