package interview

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillcheck/internal/router"
	"github.com/abhisek/skillcheck/internal/screen"
	sess "github.com/abhisek/skillcheck/internal/session"
	"github.com/abhisek/skillcheck/internal/ui/components"
	"github.com/abhisek/skillcheck/internal/ui/layout"
)

const answerLimit = 2000

// InterviewScreen shows the active question and, after each submission,
// the evaluation of the answer.
type InterviewScreen struct {
	ctx        context.Context
	ctrl       *sess.Controller
	reportFunc func(sess.State) screen.Screen

	state   sess.State
	input   components.TextInput
	choices components.ChoiceList

	busy      bool
	notice    string
	choiceErr string
}

var _ screen.Screen = (*InterviewScreen)(nil)

// New creates an InterviewScreen for the controller's current session.
// reportFunc builds the screen that replaces this one when the interview
// finishes.
func New(ctx context.Context, ctrl *sess.Controller, reportFunc func(sess.State) screen.Screen) *InterviewScreen {
	s := &InterviewScreen{
		ctx:        ctx,
		ctrl:       ctrl,
		reportFunc: reportFunc,
	}
	s.setState(ctrl.State())
	return s
}

func (s *InterviewScreen) Title() string {
	if s.state.Stage == sess.StageShowingFeedback {
		return "Feedback"
	}
	return "Interview"
}

func (s *InterviewScreen) Init() tea.Cmd {
	if s.state.Question.Kind == sess.KindOpenEnded {
		return s.input.Init()
	}
	return nil
}

// setState adopts a new snapshot and rebuilds the answer widgets when the
// question changed.
func (s *InterviewScreen) setState(st sess.State) {
	questionChanged := st.Question.Index != s.state.Question.Index ||
		st.Question.Text != s.state.Question.Text ||
		s.state.Stage == sess.StageNotStarted ||
		(s.state.Stage == sess.StageShowingFeedback && st.Stage == sess.StageAwaitingAnswer)
	s.state = st

	if !questionChanged {
		return
	}
	s.input = components.NewTextInput("Type your answer here...", answerLimit, 0)
	s.input.SetValue(st.PendingAnswer)
	s.choices = components.NewChoiceList(st.Question.Choices, sess.SelectedChoice(st))
	s.choiceErr = ""
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		s.busy = false
		s.choices.Disabled = false
		if msg.Err != nil {
			s.handleError(msg.Err)
			return s, nil
		}
		s.setState(msg.State)
		if msg.State.Stage == sess.StageFinished {
			next := s.reportFunc(msg.State)
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: next}
			}
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch s.state.Stage {
		case sess.StageAwaitingAnswer:
			return s.updateAnswer(msg)
		case sess.StageShowingFeedback:
			return s.updateFeedback(msg)
		}
		return s, nil
	}

	if s.state.Stage == sess.StageAwaitingAnswer && s.state.Question.Kind == sess.KindOpenEnded {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) updateAnswer(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		return s, s.submit()
	}

	s.notice = ""
	if s.state.Question.Kind == sess.KindMultipleChoice {
		before := s.choices.Selected
		s.choices, _ = s.choices.Update(msg)
		if s.choices.Selected != before || s.state.PendingAnswer == "" {
			s.selectCurrent()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != s.state.PendingAnswer {
		if st, err := s.ctrl.SetAnswer(s.input.Value()); err == nil {
			s.state = st
		}
	}
	return s, cmd
}

func (s *InterviewScreen) selectCurrent() {
	st, err := s.ctrl.SelectChoice(s.choices.Selected)
	if err != nil {
		return
	}
	s.state = st
	s.choiceErr = ""
}

func (s *InterviewScreen) submit() tea.Cmd {
	if s.state.Question.Kind == sess.KindMultipleChoice {
		s.selectCurrent()
	} else if st, err := s.ctrl.SetAnswer(s.input.Value()); err == nil {
		s.state = st
	}

	s.busy = true
	s.notice = ""
	s.choices.Disabled = true
	ctx, ctrl := s.ctx, s.ctrl
	return func() tea.Msg {
		st, err := ctrl.Submit(ctx)
		return submittedMsg{State: st, Err: err}
	}
}

func (s *InterviewScreen) updateFeedback(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "n", "right", "space":
		st, err := s.ctrl.Advance()
		if err != nil {
			s.handleError(err)
			return s, nil
		}
		s.setState(st)
		if st.Question.Kind == sess.KindOpenEnded {
			return s, s.input.Init()
		}
	}
	return s, nil
}

func (s *InterviewScreen) handleError(err error) {
	var svcErr *sess.ServiceError
	switch {
	case errors.Is(err, sess.ErrEmptyAnswer):
		if s.state.Question.Kind == sess.KindMultipleChoice {
			s.choiceErr = err.Error()
		} else {
			s.input.SetError(err.Error())
		}
	case errors.As(err, &svcErr):
		s.notice = svcErr.Notice()
	case errors.Is(err, sess.ErrBusy):
	default:
		s.notice = err.Error()
	}
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.state.Stage == sess.StageShowingFeedback {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	if s.state.Question.Kind == sess.KindMultipleChoice {
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Choose"},
			{Key: "Enter", Description: "Submit answer"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit answer"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
