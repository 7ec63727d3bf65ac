package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/skillcheck/internal/interview"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func float(f float64) *float64 { return &f }

func startReply() interview.MockResponse {
	return interview.MockResponse{Start: &interview.StartResponse{
		SessionID:       "s1",
		CurrentQuestion: "What is VLOOKUP?",
		QuestionNumber:  1,
		TotalQuestions:  10,
		QuestionType:    interview.QuestionTypeMCQ,
		Options:         []string{"A) A lookup function", "B) A chart type"},
	}}
}

func feedbackReply(next int, qtype string, options ...string) interview.MockResponse {
	return interview.MockResponse{Submit: &interview.SubmitResponse{
		Status:         "in_progress",
		Feedback:       "Correct",
		Score:          float(9),
		NextQuestion:   "Explain pivot tables.",
		QuestionNumber: next,
		QuestionType:   qtype,
		Options:        options,
	}}
}

func completedReply() interview.MockResponse {
	return interview.MockResponse{Submit: &interview.SubmitResponse{
		Status: interview.StatusCompleted,
		Report: &interview.Report{
			CandidateName:    "Ada",
			InterviewDate:    "2026-10-15 09:30",
			OverallScore:     8,
			MCQScore:         9,
			GeneralScore:     7,
			PerformanceLevel: "Good",
			DurationMinutes:  14,
			Summary: &interview.ReportSummary{
				Strengths:           []string{"Formulas"},
				AreasForImprovement: []string{"Macros"},
			},
			Recommendations: []string{"Practice VBA"},
			DetailedFeedback: []interview.FeedbackItem{{
				Question:     "What is VLOOKUP?",
				Answer:       "A",
				QuestionType: interview.QuestionTypeMCQ,
				Evaluation:   interview.Evaluation{Score: 10, Feedback: "Correct"},
			}},
		},
	}}
}

func newController(t *testing.T, responses ...interview.MockResponse) (*Controller, *interview.MockService) {
	t.Helper()
	mock := interview.NewMockService(responses...)
	return NewController(mock, zaptest.NewLogger(t)), mock
}

func TestController_StartValidation(t *testing.T) {
	c, mock := newController(t, startReply())

	for _, name := range []string{"", "   ", "\t\n"} {
		st, err := c.Start(context.Background(), name)
		require.ErrorIs(t, err, ErrEmptyName)
		assert.Equal(t, StageNotStarted, st.Stage)
	}
	assert.Zero(t, mock.CallCount(), "blank names must not reach the service")
}

func TestController_StartHappyPath(t *testing.T) {
	c, mock := newController(t, startReply())

	st, err := c.Start(context.Background(), "  Ada ")
	require.NoError(t, err)

	assert.Equal(t, StageAwaitingAnswer, st.Stage)
	assert.Equal(t, 1, st.Question.Index)
	assert.Len(t, st.Question.Choices, 2)
	assert.Equal(t, KindMultipleChoice, st.Question.Kind)
	assert.Equal(t, "Ada", st.CandidateName)
	require.Len(t, mock.StartCalls, 1)
	assert.Equal(t, "Ada", mock.StartCalls[0].UserName)
}

func TestController_StartTwiceRejected(t *testing.T) {
	c, mock := newController(t, startReply(), startReply())
	_, err := c.Start(context.Background(), "Ada")
	require.NoError(t, err)

	_, err = c.Start(context.Background(), "Ada")
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, mock.CallCount())
}

func TestController_StartServiceFailure(t *testing.T) {
	c, _ := newController(t, interview.MockResponse{Err: &interview.ErrUnavailable{Err: errors.New("connection refused")}})

	st, err := c.Start(context.Background(), "Ada")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, OpStart, se.Op)
	assert.Contains(t, se.Notice(), "Make sure the interview service is running")
	assert.Equal(t, StageNotStarted, st.Stage)
	assert.Equal(t, State{}, c.State())
}

func TestController_StartMCQWithoutOptions(t *testing.T) {
	reply := startReply()
	reply.Start.Options = nil
	c, _ := newController(t, reply)

	_, err := c.Start(context.Background(), "Ada")
	var inv *interview.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, StageNotStarted, c.State().Stage)
}

func TestController_SelectChoiceAndSubmit(t *testing.T) {
	c, mock := newController(t, startReply(), feedbackReply(2, interview.QuestionTypeGeneral))
	ctx := context.Background()

	_, err := c.Start(ctx, "Ada")
	require.NoError(t, err)

	st, err := c.SelectChoice(0)
	require.NoError(t, err)
	assert.Equal(t, "A", st.PendingAnswer)
	assert.Equal(t, 0, SelectedChoice(st))

	_, err = c.SelectChoice(5)
	require.ErrorIs(t, err, ErrNoChoice)

	st, err = c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, StageShowingFeedback, st.Stage)
	require.NotNil(t, st.LastFeedback)
	assert.Equal(t, Score(9), st.LastFeedback.Score)
	require.Len(t, mock.SubmitCalls, 1)
	assert.Equal(t, interview.SubmitRequest{SessionID: "s1", Answer: "A"}, mock.SubmitCalls[0])

	queued := *st.QueuedNext
	st, err = c.Advance()
	require.NoError(t, err)
	assert.Equal(t, StageAwaitingAnswer, st.Stage)
	assert.Equal(t, queued, st.Question)
	assert.Empty(t, st.PendingAnswer)
	assert.Equal(t, KindOpenEnded, st.Question.Kind)
	assert.Empty(t, st.Question.Choices)
}

func TestController_SubmitValidation(t *testing.T) {
	c, mock := newController(t, startReply())
	ctx := context.Background()
	_, err := c.Start(ctx, "Ada")
	require.NoError(t, err)

	for _, answer := range []string{"", "  "} {
		_, err := c.SetAnswer(answer)
		require.NoError(t, err)
		st, err := c.Submit(ctx)
		require.ErrorIs(t, err, ErrEmptyAnswer)
		assert.Equal(t, StageAwaitingAnswer, st.Stage)
	}
	assert.Equal(t, 1, mock.CallCount())
}

func TestController_SubmitServiceFailureKeepsAnswer(t *testing.T) {
	c, _ := newController(t,
		startReply(),
		interview.MockResponse{Err: &interview.ErrUnavailable{StatusCode: 500, Body: "boom"}},
		feedbackReply(2, interview.QuestionTypeGeneral),
	)
	ctx := context.Background()
	_, err := c.Start(ctx, "Ada")
	require.NoError(t, err)
	_, err = c.SetAnswer("B")
	require.NoError(t, err)

	st, err := c.Submit(ctx)
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, OpSubmit, se.Op)
	assert.Equal(t, StageAwaitingAnswer, st.Stage)
	assert.Equal(t, "B", st.PendingAnswer)

	// Retrying the same operation succeeds.
	st, err = c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, StageShowingFeedback, st.Stage)
}

func TestController_MissingScoreDefaults(t *testing.T) {
	reply := feedbackReply(2, interview.QuestionTypeGeneral)
	reply.Submit.Score = nil
	zero := feedbackReply(3, interview.QuestionTypeGeneral)
	zero.Submit.Score = float(0)

	c, _ := newController(t, startReply(), reply, zero)
	ctx := context.Background()
	_, err := c.Start(ctx, "Ada")
	require.NoError(t, err)

	_, err = c.SetAnswer("A")
	require.NoError(t, err)
	st, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultScore, st.LastFeedback.Score)

	_, err = c.Advance()
	require.NoError(t, err)
	_, err = c.SetAnswer("answer")
	require.NoError(t, err)
	st, err = c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, Score(0), st.LastFeedback.Score)
}

func TestController_Completion(t *testing.T) {
	c, _ := newController(t, startReply(), completedReply())
	ctx := context.Background()
	_, err := c.Start(ctx, "Ada")
	require.NoError(t, err)
	_, err = c.SelectChoice(1)
	require.NoError(t, err)

	st, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, StageFinished, st.Stage)
	require.NotNil(t, st.FinalReport)
	assert.Equal(t, Score(8), st.FinalReport.OverallScore)
	assert.Equal(t, []string{"Formulas"}, st.FinalReport.Strengths)
	require.Len(t, st.FinalReport.Items, 1)
	assert.Equal(t, KindMultipleChoice, st.FinalReport.Items[0].Kind)
	assert.Nil(t, st.LastFeedback)

	done, total := Progress(st)
	assert.Equal(t, 10, done)
	assert.Equal(t, 10, total)

	st, err = c.Reset()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
}

func TestController_BusyGuard(t *testing.T) {
	c, mock := newController(t, startReply(), feedbackReply(2, interview.QuestionTypeGeneral))
	ctx := context.Background()
	_, err := c.Start(ctx, "Ada")
	require.NoError(t, err)
	_, err = c.SetAnswer("A")
	require.NoError(t, err)

	mock.Gate = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var submitErr error
	go func() {
		defer wg.Done()
		_, submitErr = c.Submit(ctx)
	}()

	require.Eventually(t, c.Busy, time.Second, time.Millisecond)

	_, err = c.Submit(ctx)
	require.ErrorIs(t, err, ErrBusy)
	_, err = c.SetAnswer("B")
	require.ErrorIs(t, err, ErrBusy)
	_, err = c.Reset()
	require.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, "A", c.State().PendingAnswer)

	close(mock.Gate)
	wg.Wait()

	require.NoError(t, submitErr)
	assert.False(t, c.Busy())
	assert.Len(t, mock.SubmitCalls, 1)
	assert.Equal(t, StageShowingFeedback, c.State().Stage)
}

func TestController_CanceledSubmit(t *testing.T) {
	c, mock := newController(t, startReply())
	_, err := c.Start(context.Background(), "Ada")
	require.NoError(t, err)
	_, err = c.SetAnswer("A")
	require.NoError(t, err)

	mock.Gate = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := c.Submit(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StageAwaitingAnswer, st.Stage)
	assert.Equal(t, "A", st.PendingAnswer)
}

func TestController_StateIsSnapshot(t *testing.T) {
	c, _ := newController(t, startReply())
	st, err := c.Start(context.Background(), "Ada")
	require.NoError(t, err)

	st.Question.Choices[0] = "mutated"
	assert.NotEqual(t, "mutated", c.State().Question.Choices[0])
}

func TestChoiceAnswer(t *testing.T) {
	tests := map[string]string{
		"A) A lookup function": "A",
		"b. lowercase":         "b",
		" C: spaced":           "C",
		"4) numbered":          "4",
		"Paris":                "Paris",
		"  Rome ":              "Rome",
	}
	for in, want := range tests {
		if got := ChoiceAnswer(in); got != want {
			t.Errorf("ChoiceAnswer(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServiceErrorNotice(t *testing.T) {
	rejected := &ServiceError{Op: OpStart, Err: &interview.ErrUnavailable{StatusCode: 500}}
	assert.Contains(t, rejected.Notice(), "rejected")

	submit := &ServiceError{Op: OpSubmit, Err: errors.New("x")}
	assert.Equal(t, "Failed to submit answer. Please try again.", submit.Notice())
}
