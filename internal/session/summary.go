package session

import (
	"fmt"
	"slices"
)

// Score is an evaluation score on the 0..10 scale.
type Score float64

// DefaultScore is used when the service omits a score.
const DefaultScore Score = 5

// String renders the score as "7.5/10".
func (s Score) String() string {
	return fmt.Sprintf("%g/10", float64(s))
}

// Grade buckets a score for presentation.
type Grade int

const (
	GradeNeutral Grade = iota
	GradeGood
	GradePoor
)

// Grade returns GradeGood for scores of 7 and above, GradePoor below 5 and
// GradeNeutral otherwise.
func (s Score) Grade() Grade {
	switch {
	case s >= 7:
		return GradeGood
	case s < 5:
		return GradePoor
	default:
		return GradeNeutral
	}
}

// Report is the final assessment shown when the interview is finished.
type Report struct {
	CandidateName       string
	InterviewDate       string
	OverallScore        Score
	MCQScore            Score
	GeneralScore        Score
	PerformanceLevel    string
	DurationMinutes     float64
	Strengths           []string
	AreasForImprovement []string
	Recommendations     []string
	Items               []ReportItem
}

// ReportItem is the per-question breakdown of a report.
type ReportItem struct {
	Question   string
	Answer     string
	Kind       QuestionKind
	Evaluation Evaluation
}

// Evaluation is the grading of a single answer within a report.
type Evaluation struct {
	Score           Score
	Feedback        string
	Strengths       []string
	MissingConcepts []string
}

func (r *Report) clone() *Report {
	if r == nil {
		return nil
	}
	out := *r
	out.Strengths = slices.Clone(r.Strengths)
	out.AreasForImprovement = slices.Clone(r.AreasForImprovement)
	out.Recommendations = slices.Clone(r.Recommendations)
	if r.Items != nil {
		out.Items = make([]ReportItem, len(r.Items))
		for i, it := range r.Items {
			it.Evaluation.Strengths = slices.Clone(it.Evaluation.Strengths)
			it.Evaluation.MissingConcepts = slices.Clone(it.Evaluation.MissingConcepts)
			out.Items[i] = it
		}
	}
	return &out
}

// QuestionsAnswered returns the number of per-question entries.
func (r *Report) QuestionsAnswered() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}
