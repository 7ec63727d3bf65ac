package interview

import "context"

// Service is the request/response contract of the remote Interview Service.
// It generates questions, evaluates answers and produces the final report;
// callers only see opaque, validated replies.
type Service interface {
	// Start creates a session for the named candidate and returns the
	// first question.
	Start(ctx context.Context, req StartRequest) (*StartResponse, error)

	// SubmitAnswer evaluates an answer for the session's current question.
	// The reply is either feedback plus the next question, or the final
	// report when the service considers the interview complete.
	SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
}

// Question types as they appear on the wire.
const (
	QuestionTypeMCQ     = "mcq"
	QuestionTypeGeneral = "general"
)

// StatusCompleted marks a terminal submit-answer reply.
const StatusCompleted = "completed"

// StartRequest is the body of POST /interview/start.
type StartRequest struct {
	UserName string `json:"user_name"`
}

// StartResponse is the reply to POST /interview/start.
type StartResponse struct {
	SessionID       string   `json:"session_id"`
	Message         string   `json:"message,omitempty"`
	CurrentQuestion string   `json:"current_question"`
	QuestionNumber  int      `json:"question_number"`
	TotalQuestions  int      `json:"total_questions"`
	QuestionType    string   `json:"question_type"`
	Options         []string `json:"options,omitempty"`
}

// SubmitRequest is the body of POST /interview/submit-answer.
type SubmitRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// SubmitResponse is the reply to POST /interview/submit-answer. Exactly one
// of the two shapes is populated: the terminal one (Status == "completed",
// Report set) or the feedback one (Feedback and the next question set).
type SubmitResponse struct {
	Status string `json:"status"`

	// Non-terminal fields.
	Feedback       string   `json:"feedback,omitempty"`
	Score          *float64 `json:"score,omitempty"`
	CorrectAnswer  string   `json:"correct_answer,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
	NextQuestion   string   `json:"next_question,omitempty"`
	QuestionNumber int      `json:"question_number,omitempty"`
	TotalQuestions int      `json:"total_questions,omitempty"`
	QuestionType   string   `json:"question_type,omitempty"`
	Options        []string `json:"options,omitempty"`

	// Terminal fields.
	Report *Report `json:"report,omitempty"`
}

// Completed reports whether the service ended the interview with this reply.
func (r *SubmitResponse) Completed() bool {
	return r.Status == StatusCompleted
}

// Report is the final assessment returned with a completed reply.
type Report struct {
	CandidateName    string         `json:"candidate_name"`
	InterviewDate    string         `json:"interview_date,omitempty"`
	OverallScore     float64        `json:"overall_score"`
	MCQScore         float64        `json:"mcq_score"`
	GeneralScore     float64        `json:"general_score"`
	PerformanceLevel string         `json:"performance_level"`
	DurationMinutes  float64        `json:"duration_minutes"`
	Summary          *ReportSummary `json:"summary,omitempty"`
	Recommendations  []string       `json:"recommendations"`
	DetailedFeedback []FeedbackItem `json:"detailed_feedback"`
}

// ReportSummary holds the narrative sections of a report.
type ReportSummary struct {
	Strengths           []string `json:"strengths,omitempty"`
	AreasForImprovement []string `json:"areas_for_improvement,omitempty"`
}

// FeedbackItem is the per-question breakdown entry of a report.
type FeedbackItem struct {
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	QuestionType string     `json:"question_type"`
	Evaluation   Evaluation `json:"evaluation"`
}

// Evaluation is the service's grading of a single answer.
type Evaluation struct {
	Score           float64  `json:"score"`
	Feedback        string   `json:"feedback"`
	Strengths       []string `json:"strengths,omitempty"`
	MissingConcepts []string `json:"missing_concepts,omitempty"`
}

// PingResponse is the reply to the service's health route.
type PingResponse struct {
	Message string `json:"message"`
}
