package session

import "fmt"

// Reduce applies ev to s and returns the resulting state. It is pure: s is
// never modified and the result shares no memory with s or ev.
//
// An event that is not legal in s.Stage yields a *TransitionError and s
// unchanged. A queued question whose index is below the active one is
// clamped so the displayed question number never decreases.
func Reduce(s State, ev Event) (State, error) {
	if !legal(s.Stage, ev) {
		return s, &TransitionError{From: s.Stage, Event: ev.eventName()}
	}

	switch e := ev.(type) {
	case Started:
		if e.SessionID == "" {
			return s, fmt.Errorf("started: empty session id")
		}
		if !e.Question.valid() {
			return s, ErrInvalidQuestion
		}
		return State{
			Stage:         StageAwaitingAnswer,
			SessionID:     e.SessionID,
			CandidateName: e.CandidateName,
			Question:      e.Question.clone(),
			QuestionCount: e.QuestionCount,
		}, nil

	case AnswerEdited:
		next := s.Clone()
		next.PendingAnswer = e.Text
		return next, nil

	case Evaluated:
		if !e.Next.valid() {
			return s, ErrInvalidQuestion
		}
		next := s.Clone()
		next.Stage = StageShowingFeedback
		next.LastFeedback = e.Feedback.clone()
		queued := e.Next.clone()
		if queued.Index < next.Question.Index {
			queued.Index = next.Question.Index
		}
		next.QueuedNext = &queued
		return next, nil

	case Completed:
		next := s.Clone()
		next.Stage = StageFinished
		next.PendingAnswer = ""
		next.LastFeedback = nil
		next.QueuedNext = nil
		next.FinalReport = e.Report.clone()
		return next, nil

	case Advanced:
		if s.QueuedNext == nil {
			return s, &TransitionError{From: s.Stage, Event: ev.eventName()}
		}
		next := s.Clone()
		next.Stage = StageAwaitingAnswer
		next.Question = *next.QueuedNext
		next.QueuedNext = nil
		next.LastFeedback = nil
		next.PendingAnswer = ""
		return next, nil

	case Reset:
		return State{}, nil
	}

	return s, &TransitionError{From: s.Stage, Event: ev.eventName()}
}
