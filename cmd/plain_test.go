package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillcheck/internal/interview"
	"github.com/abhisek/skillcheck/internal/session"
)

func ptr(f float64) *float64 { return &f }

func twoQuestionService() *interview.MockService {
	return interview.NewMockService(
		interview.MockResponse{Start: &interview.StartResponse{
			SessionID:       "s1",
			CurrentQuestion: "Which keyword declares a constant?",
			QuestionNumber:  1,
			TotalQuestions:  2,
			QuestionType:    interview.QuestionTypeMCQ,
			Options:         []string{"A) var", "B) const"},
		}},
		interview.MockResponse{Submit: &interview.SubmitResponse{
			Status:         "in_progress",
			Feedback:       "Right.",
			Score:          ptr(10),
			CorrectAnswer:  "B",
			NextQuestion:   "Explain goroutines.",
			QuestionNumber: 2,
			QuestionType:   interview.QuestionTypeGeneral,
		}},
		interview.MockResponse{Submit: &interview.SubmitResponse{
			Status: interview.StatusCompleted,
			Report: &interview.Report{CandidateName: "Ada", OverallScore: 9},
		}},
	)
}

func TestRunPlainCompletesInterview(t *testing.T) {
	mock := twoQuestionService()
	ctrl := session.NewController(mock, nil)
	in := strings.NewReader("  Ada \n2\n\nLightweight threads\n")
	var out bytes.Buffer

	require.NoError(t, runPlain(context.Background(), ctrl, in, &out))

	assert.Equal(t, session.StageFinished, ctrl.State().Stage)
	require.Len(t, mock.StartCalls, 1)
	assert.Equal(t, "Ada", mock.StartCalls[0].UserName)
	require.Len(t, mock.SubmitCalls, 2)
	assert.Equal(t, "B", mock.SubmitCalls[0].Answer)
	assert.Equal(t, "Lightweight threads", mock.SubmitCalls[1].Answer)

	text := out.String()
	assert.Contains(t, text, "Question 1 of 2")
	assert.Contains(t, text, "  2. B) const")
	assert.Contains(t, text, "Score: 10/10")
	assert.Contains(t, text, "Correct answer: B")
	assert.Contains(t, text, "Question 2 of 2 (1/2 done)")
}

func TestRunPlainRetriesAfterErrors(t *testing.T) {
	mock := interview.NewMockService(
		interview.MockResponse{Err: &interview.ErrUnavailable{Err: errors.New("connection refused")}},
		interview.MockResponse{Start: &interview.StartResponse{
			SessionID:       "s1",
			CurrentQuestion: "Explain goroutines.",
			QuestionNumber:  1,
			TotalQuestions:  1,
			QuestionType:    interview.QuestionTypeGeneral,
		}},
	)
	ctrl := session.NewController(mock, nil)
	in := strings.NewReader("\nAda\nAda\n\n")
	var out bytes.Buffer

	require.NoError(t, runPlain(context.Background(), ctrl, in, &out))

	text := out.String()
	assert.Contains(t, text, session.ErrEmptyName.Error())
	assert.Contains(t, text, "Make sure the interview service is running")
	assert.Contains(t, text, session.ErrEmptyAnswer.Error())
	assert.Contains(t, text, "(input closed)")
	assert.Len(t, mock.StartCalls, 2)
	assert.Empty(t, mock.SubmitCalls)
	assert.Equal(t, session.StageAwaitingAnswer, ctrl.State().Stage)
}

func TestRunPlainResendsAnswerAfterFailedSubmit(t *testing.T) {
	mock := interview.NewMockService(
		interview.MockResponse{Start: &interview.StartResponse{
			SessionID:       "s1",
			CurrentQuestion: "Explain goroutines.",
			QuestionNumber:  1,
			TotalQuestions:  1,
			QuestionType:    interview.QuestionTypeGeneral,
		}},
		interview.MockResponse{Err: &interview.ErrUnavailable{Err: errors.New("connection reset")}},
		interview.MockResponse{Submit: &interview.SubmitResponse{
			Status: interview.StatusCompleted,
			Report: &interview.Report{CandidateName: "Ada", OverallScore: 7},
		}},
	)
	ctrl := session.NewController(mock, nil)
	in := strings.NewReader("Ada\nLightweight threads\n\n")
	var out bytes.Buffer

	require.NoError(t, runPlain(context.Background(), ctrl, in, &out))

	assert.Equal(t, session.StageFinished, ctrl.State().Stage)
	require.Len(t, mock.SubmitCalls, 2)
	assert.Equal(t, "Lightweight threads", mock.SubmitCalls[0].Answer)
	assert.Equal(t, "Lightweight threads", mock.SubmitCalls[1].Answer)
	assert.Contains(t, out.String(), `Enter to resend "Lightweight threads"`)
}

func TestRunPlainRejectsOutOfRangeChoice(t *testing.T) {
	mock := twoQuestionService()
	ctrl := session.NewController(mock, nil)
	in := strings.NewReader("Ada\n7\n")
	var out bytes.Buffer

	require.NoError(t, runPlain(context.Background(), ctrl, in, &out))
	assert.Contains(t, out.String(), session.ErrNoChoice.Error())
	assert.Empty(t, mock.SubmitCalls)
}

func TestRunPlainStopsOnCancel(t *testing.T) {
	mock := interview.NewMockService()
	mock.Gate = make(chan struct{})
	ctrl := session.NewController(mock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runPlain(ctx, ctrl, strings.NewReader("Ada\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}
