package session

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/skillcheck/internal/interview"
)

func kindFromWire(t string) (QuestionKind, error) {
	switch t {
	case interview.QuestionTypeMCQ:
		return KindMultipleChoice, nil
	case interview.QuestionTypeGeneral:
		return KindOpenEnded, nil
	default:
		return 0, fmt.Errorf("unknown question type %q", t)
	}
}

// questionFromWire builds a Question, dropping choices sent for an
// open-ended question and rejecting a multiple-choice one without any.
func questionFromWire(text string, index int, qtype string, options []string) (Question, error) {
	kind, err := kindFromWire(qtype)
	if err != nil {
		return Question{}, err
	}
	q := Question{Text: text, Index: index, Kind: kind}
	if kind == KindMultipleChoice {
		for _, o := range options {
			if strings.TrimSpace(o) != "" {
				q.Choices = append(q.Choices, o)
			}
		}
		if len(q.Choices) == 0 {
			return Question{}, errors.New("multiple-choice question without options")
		}
	}
	return q, nil
}

func startedFromWire(name string, r *interview.StartResponse) (Started, error) {
	if r.SessionID == "" {
		return Started{}, invalid(errors.New("missing session id"))
	}
	q, err := questionFromWire(r.CurrentQuestion, r.QuestionNumber, r.QuestionType, r.Options)
	if err != nil {
		return Started{}, invalid(err)
	}
	return Started{
		SessionID:     r.SessionID,
		CandidateName: name,
		Question:      q,
		QuestionCount: r.TotalQuestions,
	}, nil
}

// eventFromSubmit maps a submit reply to Completed or Evaluated.
func eventFromSubmit(r *interview.SubmitResponse) (Event, error) {
	if r.Completed() {
		if r.Report == nil {
			return nil, invalid(errors.New("completed without report"))
		}
		return Completed{Report: reportFromWire(r.Report)}, nil
	}

	next, err := questionFromWire(r.NextQuestion, r.QuestionNumber, r.QuestionType, r.Options)
	if err != nil {
		return nil, invalid(err)
	}
	score := DefaultScore
	if r.Score != nil {
		score = Score(*r.Score)
	}
	return Evaluated{
		Feedback: Feedback{
			Text:          r.Feedback,
			Score:         score,
			CorrectAnswer: r.CorrectAnswer,
			Suggestions:   r.Suggestions,
		},
		Next: next,
	}, nil
}

func reportFromWire(r *interview.Report) Report {
	out := Report{
		CandidateName:    r.CandidateName,
		InterviewDate:    r.InterviewDate,
		OverallScore:     Score(r.OverallScore),
		MCQScore:         Score(r.MCQScore),
		GeneralScore:     Score(r.GeneralScore),
		PerformanceLevel: r.PerformanceLevel,
		DurationMinutes:  r.DurationMinutes,
		Recommendations:  r.Recommendations,
	}
	if r.Summary != nil {
		out.Strengths = r.Summary.Strengths
		out.AreasForImprovement = r.Summary.AreasForImprovement
	}
	for _, fb := range r.DetailedFeedback {
		kind, err := kindFromWire(fb.QuestionType)
		if err != nil {
			kind = KindOpenEnded
		}
		out.Items = append(out.Items, ReportItem{
			Question: fb.Question,
			Answer:   fb.Answer,
			Kind:     kind,
			Evaluation: Evaluation{
				Score:           Score(fb.Evaluation.Score),
				Feedback:        fb.Evaluation.Feedback,
				Strengths:       fb.Evaluation.Strengths,
				MissingConcepts: fb.Evaluation.MissingConcepts,
			},
		})
	}
	return out
}

func invalid(err error) error {
	return &interview.ErrInvalidResponse{Err: err}
}

var choiceLabel = regexp.MustCompile(`^\s*([A-Za-z0-9])\s*[).:\]]`)

// ChoiceAnswer returns the answer submitted for a multiple-choice option:
// its leading label for options written like "B) const", otherwise the
// whole option text.
func ChoiceAnswer(option string) string {
	if m := choiceLabel.FindStringSubmatch(option); m != nil {
		return m[1]
	}
	return strings.TrimSpace(option)
}

// SelectedChoice returns the index of the choice whose answer equals the
// pending answer, or -1.
func SelectedChoice(s State) int {
	if s.Question.Kind != KindMultipleChoice || s.PendingAnswer == "" {
		return -1
	}
	for i, c := range s.Question.Choices {
		if ChoiceAnswer(c) == s.PendingAnswer {
			return i
		}
	}
	return -1
}
