package welcome

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillcheck/internal/router"
	"github.com/abhisek/skillcheck/internal/screen"
	"github.com/abhisek/skillcheck/internal/session"
	"github.com/abhisek/skillcheck/internal/ui/components"
	"github.com/abhisek/skillcheck/internal/ui/layout"
	"github.com/abhisek/skillcheck/internal/ui/theme"
)

const nameLimit = 64

// startedMsg carries the result of Controller.Start back to the screen.
type startedMsg struct {
	state session.State
	err   error
}

// WelcomeScreen collects the candidate's name and starts the interview.
type WelcomeScreen struct {
	ctx           context.Context
	ctrl          *session.Controller
	interviewFunc func() screen.Screen

	input  components.TextInput
	busy   bool
	notice string
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen produced
// by interviewFunc once the session has started.
func New(ctx context.Context, ctrl *session.Controller, interviewFunc func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		ctx:           ctx,
		ctrl:          ctrl,
		interviewFunc: interviewFunc,
		input:         components.NewTextInput("Enter your name", nameLimit, 40),
	}
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		w.busy = false
		if msg.err != nil {
			w.handleError(msg.err)
			return w, nil
		}
		next := w.interviewFunc()
		return w, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyPressMsg:
		if w.busy {
			return w, nil
		}
		if msg.String() == "enter" {
			return w, w.start()
		}
		w.notice = ""
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) start() tea.Cmd {
	w.busy = true
	w.notice = ""
	ctx, ctrl, name := w.ctx, w.ctrl, w.input.Value()
	return func() tea.Msg {
		st, err := ctrl.Start(ctx, name)
		return startedMsg{state: st, err: err}
	}
}

func (w *WelcomeScreen) handleError(err error) {
	var svcErr *session.ServiceError
	switch {
	case errors.Is(err, session.ErrEmptyName):
		w.input.SetError(err.Error())
	case errors.As(err, &svcErr):
		w.notice = svcErr.Notice()
	case errors.Is(err, session.ErrBusy):
		// The earlier request will report back on its own.
	default:
		w.notice = err.Error()
	}
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start interview"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width), "")
	sections = append(sections, theme.Title.Render("Welcome to the Skills Assessment"), "")

	intro := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(min(layout.ContentWidth(width), 60)).
		Render("This interview tests your knowledge with a mix of multiple-choice and open-ended questions. " +
			"Each answer is evaluated as you go, and you receive a full report at the end.")
	sections = append(sections, intro, "")

	sections = append(sections, w.input.View(), "")

	switch {
	case w.busy:
		sections = append(sections, theme.Busy.Render("Starting..."))
	case w.notice != "":
		sections = append(sections, theme.Notice.Render(w.notice))
	default:
		sections = append(sections, theme.Hint.Render("press Enter to start"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
