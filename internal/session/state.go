package session

import "slices"

// Stage is the coarse position of an interview session.
type Stage int

const (
	StageNotStarted     Stage = iota // No session yet; the zero value
	StageAwaitingAnswer              // A question is displayed
	StageShowingFeedback             // Feedback for the last answer is displayed
	StageFinished                    // The final report is available
)

// String returns the stage name used in logs and error messages.
func (s Stage) String() string {
	switch s {
	case StageNotStarted:
		return "not_started"
	case StageAwaitingAnswer:
		return "awaiting_answer"
	case StageShowingFeedback:
		return "showing_feedback"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// QuestionKind distinguishes multiple-choice from free-form questions.
type QuestionKind int

const (
	KindOpenEnded QuestionKind = iota
	KindMultipleChoice
)

func (k QuestionKind) String() string {
	if k == KindMultipleChoice {
		return "mcq"
	}
	return "general"
}

// Question is a single interview question. Choices is non-empty exactly
// when Kind is KindMultipleChoice.
type Question struct {
	Text    string
	Index   int // 1-based
	Kind    QuestionKind
	Choices []string
}

func (q Question) valid() bool {
	if q.Kind == KindMultipleChoice {
		return len(q.Choices) > 0
	}
	return len(q.Choices) == 0
}

func (q Question) clone() Question {
	q.Choices = slices.Clone(q.Choices)
	return q
}

// Feedback is the service's evaluation of the most recent answer.
type Feedback struct {
	Text          string
	Score         Score
	CorrectAnswer string   // empty when absent
	Suggestions   []string // may be empty
}

func (f *Feedback) clone() *Feedback {
	if f == nil {
		return nil
	}
	out := *f
	out.Suggestions = slices.Clone(f.Suggestions)
	return &out
}

// State is the full observable state of one interview session. The zero
// value is the fresh, not-started state.
//
// Exactly one of LastFeedback/QueuedNext (ShowingFeedback) or FinalReport
// (Finished) is populated, matching Stage.
type State struct {
	Stage         Stage
	SessionID     string
	CandidateName string

	// Question is the active question while AwaitingAnswer, and the one
	// just answered while ShowingFeedback.
	Question      Question
	QuestionCount int

	// PendingAnswer is the answer being composed or last submitted.
	PendingAnswer string

	LastFeedback *Feedback
	QueuedNext   *Question
	FinalReport  *Report
}

// Clone returns a deep copy of s that shares no memory with it.
func (s State) Clone() State {
	out := s
	out.Question = s.Question.clone()
	out.LastFeedback = s.LastFeedback.clone()
	if s.QueuedNext != nil {
		q := s.QueuedNext.clone()
		out.QueuedNext = &q
	}
	out.FinalReport = s.FinalReport.clone()
	return out
}

// Active reports whether a session exists, i.e. the stage is neither
// NotStarted nor Finished.
func (s State) Active() bool {
	return s.Stage == StageAwaitingAnswer || s.Stage == StageShowingFeedback
}
