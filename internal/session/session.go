package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/skillcheck/internal/interview"
)

// Controller drives one interview session against an interview.Service.
// It validates input, issues at most one service request at a time and
// applies the replies through Reduce.
//
// All methods are safe for concurrent use. Operations attempted while a
// request is in flight fail with ErrBusy and leave the state untouched.
type Controller struct {
	svc    interview.Service
	logger *zap.Logger

	// inflight is the single operation slot. A Weighted cannot report
	// whether it is held, so busy mirrors it for Busy.
	inflight *semaphore.Weighted
	busy     atomic.Bool

	mu    sync.RWMutex
	state State
}

// NewController returns a Controller in the not-started state.
func NewController(svc interview.Service, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		svc:      svc,
		logger:   logger,
		inflight: semaphore.NewWeighted(1),
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// Busy reports whether an operation is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

func (c *Controller) acquire() bool {
	if !c.inflight.TryAcquire(1) {
		return false
	}
	c.busy.Store(true)
	return true
}

func (c *Controller) release() {
	c.busy.Store(false)
	c.inflight.Release(1)
}

// Start begins an interview for name. Surrounding whitespace is trimmed and
// an empty name fails with ErrEmptyName without contacting the service.
func (c *Controller) Start(ctx context.Context, name string) (State, error) {
	if !c.acquire() {
		return c.State(), ErrBusy
	}
	defer c.release()

	cur := c.State()
	if cur.Stage != StageNotStarted {
		return cur, &TransitionError{From: cur.Stage, Event: Started{}.eventName()}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return cur, ErrEmptyName
	}

	resp, err := c.svc.Start(ctx, interview.StartRequest{UserName: name})
	if err != nil {
		return c.fail(OpStart, cur, err)
	}
	ev, err := startedFromWire(name, resp)
	if err != nil {
		return c.fail(OpStart, cur, err)
	}
	return c.apply(ev)
}

// SetAnswer replaces the pending answer for the active question.
func (c *Controller) SetAnswer(text string) (State, error) {
	if !c.acquire() {
		return c.State(), ErrBusy
	}
	defer c.release()

	return c.apply(AnswerEdited{Text: text})
}

// SelectChoice sets the pending answer to the i-th choice (0-based) of the
// active multiple-choice question.
func (c *Controller) SelectChoice(i int) (State, error) {
	if !c.acquire() {
		return c.State(), ErrBusy
	}
	defer c.release()

	cur := c.State()
	if cur.Stage != StageAwaitingAnswer {
		return cur, &TransitionError{From: cur.Stage, Event: AnswerEdited{}.eventName()}
	}
	if i < 0 || i >= len(cur.Question.Choices) {
		return cur, ErrNoChoice
	}
	return c.apply(AnswerEdited{Text: ChoiceAnswer(cur.Question.Choices[i])})
}

// Submit sends the pending answer for evaluation. A blank answer fails
// with ErrEmptyAnswer without contacting the service. On a service failure
// the state, including the pending answer, is unchanged.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	if !c.acquire() {
		return c.State(), ErrBusy
	}
	defer c.release()

	cur := c.State()
	if cur.Stage != StageAwaitingAnswer {
		return cur, &TransitionError{From: cur.Stage, Event: "submit"}
	}
	answer := strings.TrimSpace(cur.PendingAnswer)
	if answer == "" {
		return cur, ErrEmptyAnswer
	}

	resp, err := c.svc.SubmitAnswer(ctx, interview.SubmitRequest{
		SessionID: cur.SessionID,
		Answer:    answer,
	})
	if err != nil {
		return c.fail(OpSubmit, cur, err)
	}
	ev, err := eventFromSubmit(resp)
	if err != nil {
		return c.fail(OpSubmit, cur, err)
	}
	return c.apply(ev)
}

// Advance shows the question queued by the last evaluation.
func (c *Controller) Advance() (State, error) {
	if !c.acquire() {
		return c.State(), ErrBusy
	}
	defer c.release()

	return c.apply(Advanced{})
}

// Reset discards the session and returns to the not-started state.
func (c *Controller) Reset() (State, error) {
	if !c.acquire() {
		return c.State(), ErrBusy
	}
	defer c.release()

	return c.apply(Reset{})
}

func (c *Controller) apply(ev Event) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.state.Stage
	next, err := Reduce(c.state, ev)
	if err != nil {
		c.logger.Debug("transition rejected",
			zap.Stringer("stage", from),
			zap.String("event", ev.eventName()),
			zap.Error(err),
		)
		return c.state.Clone(), err
	}
	c.state = next

	if from != next.Stage {
		c.logger.Info("session transition",
			zap.String("session_id", next.SessionID),
			zap.Stringer("from", from),
			zap.Stringer("to", next.Stage),
			zap.String("event", ev.eventName()),
		)
	}
	return next.Clone(), nil
}

func (c *Controller) fail(op string, cur State, err error) (State, error) {
	c.logger.Warn("interview service call failed",
		zap.String("op", op),
		zap.String("session_id", cur.SessionID),
		zap.Bool("canceled", errors.Is(err, context.Canceled)),
		zap.Error(err),
	)
	return cur, &ServiceError{Op: op, Err: err}
}
