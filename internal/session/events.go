package session

// Event is an input to Reduce. The set is closed: only the types in this
// file implement it.
type Event interface {
	eventName() string
}

// Started records a successful start reply.
type Started struct {
	SessionID     string
	CandidateName string
	Question      Question
	QuestionCount int
}

// AnswerEdited replaces the pending answer.
type AnswerEdited struct {
	Text string
}

// Evaluated records a non-terminal submit reply: feedback for the answered
// question plus the question to show next.
type Evaluated struct {
	Feedback Feedback
	Next     Question
}

// Completed records a terminal submit reply.
type Completed struct {
	Report Report
}

// Advanced moves from feedback to the queued question.
type Advanced struct{}

// Reset discards the session.
type Reset struct{}

func (Started) eventName() string      { return "started" }
func (AnswerEdited) eventName() string { return "answer_edited" }
func (Evaluated) eventName() string    { return "evaluated" }
func (Completed) eventName() string    { return "completed" }
func (Advanced) eventName() string     { return "advanced" }
func (Reset) eventName() string        { return "reset" }

// legal reports whether ev may be applied in stage.
func legal(stage Stage, ev Event) bool {
	switch ev.(type) {
	case Started:
		return stage == StageNotStarted
	case AnswerEdited, Evaluated, Completed:
		return stage == StageAwaitingAnswer
	case Advanced:
		return stage == StageShowingFeedback
	case Reset:
		return true
	default:
		return false
	}
}
