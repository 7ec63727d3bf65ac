package interview

import (
	sess "github.com/abhisek/skillcheck/internal/session"
)

// submittedMsg carries the result of Controller.Submit back to the screen.
type submittedMsg struct {
	State sess.State
	Err   error
}
