package session

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mcqQuestion(index int) Question {
	return Question{
		Text:    "What is VLOOKUP?",
		Index:   index,
		Kind:    KindMultipleChoice,
		Choices: []string{"A) A lookup function", "B) A chart type"},
	}
}

func openQuestion(index int) Question {
	return Question{Text: "Explain pivot tables.", Index: index, Kind: KindOpenEnded}
}

func started() Started {
	return Started{SessionID: "s1", CandidateName: "Ada", Question: mcqQuestion(1), QuestionCount: 10}
}

func mustReduce(t *testing.T, s State, evs ...Event) State {
	t.Helper()
	for _, ev := range evs {
		var err error
		s, err = Reduce(s, ev)
		if err != nil {
			t.Fatalf("Reduce(%s, %s): %v", s.Stage, ev.eventName(), err)
		}
	}
	return s
}

// checkExclusive asserts feedback and report presence match the stage.
func checkExclusive(t *testing.T, s State) {
	t.Helper()
	switch s.Stage {
	case StageShowingFeedback:
		if s.LastFeedback == nil || s.FinalReport != nil {
			t.Errorf("%s: feedback=%v report=%v", s.Stage, s.LastFeedback, s.FinalReport)
		}
	case StageFinished:
		if s.LastFeedback != nil || s.FinalReport == nil {
			t.Errorf("%s: feedback=%v report=%v", s.Stage, s.LastFeedback, s.FinalReport)
		}
	default:
		if s.LastFeedback != nil || s.FinalReport != nil {
			t.Errorf("%s: feedback=%v report=%v", s.Stage, s.LastFeedback, s.FinalReport)
		}
	}
	if s.Question.Kind == KindMultipleChoice && len(s.Question.Choices) == 0 {
		t.Errorf("multiple-choice question without choices")
	}
	if s.Question.Kind == KindOpenEnded && len(s.Question.Choices) != 0 {
		t.Errorf("open-ended question with choices")
	}
}

func TestReduce_StartFromFresh(t *testing.T) {
	s := mustReduce(t, State{}, started())

	if s.Stage != StageAwaitingAnswer {
		t.Fatalf("Stage = %s, want awaiting_answer", s.Stage)
	}
	if s.Question.Index != 1 || len(s.Question.Choices) != 2 {
		t.Errorf("Question = %+v", s.Question)
	}
	if s.QuestionCount != 10 || s.SessionID != "s1" || s.CandidateName != "Ada" {
		t.Errorf("state = %+v", s)
	}
	checkExclusive(t, s)
}

func TestReduce_StartRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		ev   Started
	}{
		{"empty session id", Started{Question: openQuestion(1)}},
		{"mcq without choices", Started{SessionID: "s", Question: Question{Text: "q", Index: 1, Kind: KindMultipleChoice}}},
		{"open with choices", Started{SessionID: "s", Question: Question{Text: "q", Index: 1, Choices: []string{"x"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(State{}, tt.ev)
			if err == nil {
				t.Fatal("expected error")
			}
			if diff := cmp.Diff(State{}, got); diff != "" {
				t.Errorf("state changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_IllegalTransitions(t *testing.T) {
	awaiting := mustReduce(t, State{}, started())
	feedback := mustReduce(t, awaiting, Evaluated{Feedback: Feedback{Score: 9}, Next: openQuestion(2)})
	finished := mustReduce(t, awaiting, Completed{Report: Report{CandidateName: "Ada"}})

	tests := []struct {
		name string
		s    State
		ev   Event
	}{
		{"advance before start", State{}, Advanced{}},
		{"edit before start", State{}, AnswerEdited{Text: "x"}},
		{"evaluate before start", State{}, Evaluated{Next: openQuestion(2)}},
		{"start twice", awaiting, started()},
		{"advance while awaiting", awaiting, Advanced{}},
		{"edit during feedback", feedback, AnswerEdited{Text: "x"}},
		{"evaluate during feedback", feedback, Evaluated{Next: openQuestion(3)}},
		{"complete during feedback", feedback, Completed{}},
		{"start when finished", finished, started()},
		{"advance when finished", finished, Advanced{}},
		{"edit when finished", finished, AnswerEdited{Text: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(tt.s, tt.ev)
			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("expected TransitionError, got %v", err)
			}
			if te.From != tt.s.Stage {
				t.Errorf("From = %s, want %s", te.From, tt.s.Stage)
			}
			if diff := cmp.Diff(tt.s, got); diff != "" {
				t.Errorf("state changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_FeedbackThenAdvance(t *testing.T) {
	s := mustReduce(t, State{}, started(), AnswerEdited{Text: "A"})
	s = mustReduce(t, s, Evaluated{
		Feedback: Feedback{Text: "Correct", Score: 9},
		Next:     openQuestion(2),
	})

	if s.Stage != StageShowingFeedback {
		t.Fatalf("Stage = %s, want showing_feedback", s.Stage)
	}
	if s.LastFeedback.Score != 9 {
		t.Errorf("Score = %v, want 9", s.LastFeedback.Score)
	}
	if s.PendingAnswer != "A" {
		t.Errorf("PendingAnswer = %q, want the submitted answer kept for display", s.PendingAnswer)
	}
	checkExclusive(t, s)

	queued := *s.QueuedNext
	s = mustReduce(t, s, Advanced{})

	if s.Stage != StageAwaitingAnswer {
		t.Fatalf("Stage = %s, want awaiting_answer", s.Stage)
	}
	if diff := cmp.Diff(queued, s.Question); diff != "" {
		t.Errorf("Question != queued (-want +got):\n%s", diff)
	}
	if s.PendingAnswer != "" || s.QueuedNext != nil {
		t.Errorf("PendingAnswer=%q QueuedNext=%v, want cleared", s.PendingAnswer, s.QueuedNext)
	}
	checkExclusive(t, s)
}

func TestReduce_CompletionAtAnyIndex(t *testing.T) {
	for _, idx := range []int{1, 3, 10, 12} {
		s := mustReduce(t, State{}, Started{SessionID: "s", Question: openQuestion(idx), QuestionCount: 10})
		s = mustReduce(t, s, AnswerEdited{Text: "a"}, Completed{Report: Report{OverallScore: 7}})

		if s.Stage != StageFinished {
			t.Errorf("index %d: Stage = %s, want finished", idx, s.Stage)
		}
		if s.FinalReport == nil || s.FinalReport.OverallScore != 7 {
			t.Errorf("index %d: FinalReport = %+v", idx, s.FinalReport)
		}
		checkExclusive(t, s)
	}
}

func TestReduce_MonotonicQuestionIndex(t *testing.T) {
	s := mustReduce(t, State{}, started())
	// The service may repeat or regress the index; the displayed one holds.
	nexts := []int{2, 3, 3, 1, 5}
	last := s.Question.Index

	for _, n := range nexts {
		s = mustReduce(t, s,
			AnswerEdited{Text: "a"},
			Evaluated{Feedback: Feedback{Score: 5}, Next: openQuestion(n)},
			Advanced{},
		)
		if s.Question.Index < last {
			t.Fatalf("index decreased from %d to %d", last, s.Question.Index)
		}
		last = s.Question.Index
	}
	if last != 5 {
		t.Errorf("final index = %d, want 5", last)
	}
}

func TestReduce_ResetFromAnyStage(t *testing.T) {
	awaiting := mustReduce(t, State{}, started(), AnswerEdited{Text: "B"})
	feedback := mustReduce(t, awaiting, Evaluated{Feedback: Feedback{Suggestions: []string{"x"}}, Next: mcqQuestion(2)})
	finished := mustReduce(t, awaiting, Completed{Report: Report{Strengths: []string{"y"}}})

	for _, s := range []State{{}, awaiting, feedback, finished} {
		got := mustReduce(t, s, Reset{})
		if diff := cmp.Diff(State{}, got); diff != "" {
			t.Errorf("reset from %s (-want +got):\n%s", s.Stage, diff)
		}
	}
}

func TestReduce_DoesNotAlias(t *testing.T) {
	ev := started()
	s := mustReduce(t, State{}, ev)

	ev.Question.Choices[0] = "mutated"
	if s.Question.Choices[0] == "mutated" {
		t.Fatal("state shares choices with event")
	}

	before := s.Clone()
	next := mustReduce(t, s, AnswerEdited{Text: "A"})
	next.Question.Choices[1] = "mutated"
	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("input state modified (-want +got):\n%s", diff)
	}
}

func TestReduce_AdvanceWithoutQueued(t *testing.T) {
	s := State{Stage: StageShowingFeedback, SessionID: "s", LastFeedback: &Feedback{}}
	_, err := Reduce(s, Advanced{})
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestScoreGrade(t *testing.T) {
	tests := []struct {
		score Score
		want  Grade
	}{
		{10, GradeGood},
		{7, GradeGood},
		{6.9, GradeNeutral},
		{5, GradeNeutral},
		{4.9, GradePoor},
		{0, GradePoor},
	}
	for _, tt := range tests {
		if got := tt.score.Grade(); got != tt.want {
			t.Errorf("Score(%v).Grade() = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	awaiting := mustReduce(t, State{}, Started{SessionID: "s", Question: openQuestion(3), QuestionCount: 10})
	feedback := mustReduce(t, awaiting, AnswerEdited{Text: "a"}, Evaluated{Next: openQuestion(4)})
	finished := mustReduce(t, awaiting, AnswerEdited{Text: "a"}, Completed{})

	tests := []struct {
		name        string
		s           State
		done, total int
	}{
		{"fresh", State{}, 0, 0},
		{"awaiting", awaiting, 2, 10},
		{"feedback", feedback, 3, 10},
		{"finished", finished, 10, 10},
	}
	for _, tt := range tests {
		done, total := Progress(tt.s)
		if done != tt.done || total != tt.total {
			t.Errorf("%s: Progress = %d/%d, want %d/%d", tt.name, done, total, tt.done, tt.total)
		}
	}
	if f := Fraction(feedback); f != 0.3 {
		t.Errorf("Fraction = %v, want 0.3", f)
	}
}
