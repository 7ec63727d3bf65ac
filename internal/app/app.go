package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillcheck/internal/router"
	"github.com/abhisek/skillcheck/internal/screen"
	"github.com/abhisek/skillcheck/internal/screens/interview"
	"github.com/abhisek/skillcheck/internal/screens/report"
	"github.com/abhisek/skillcheck/internal/screens/welcome"
	"github.com/abhisek/skillcheck/internal/session"
	"github.com/abhisek/skillcheck/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl   *session.Controller
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen. The
// screens for each stage are built through factories so that a finished
// interview can loop back to the welcome screen.
func newAppModel(ctx context.Context, ctrl *session.Controller) AppModel {
	var newWelcome func() screen.Screen

	newReport := func(st session.State) screen.Screen {
		return report.New(ctrl, st, newWelcome)
	}
	newInterview := func() screen.Screen {
		return interview.New(ctx, ctrl, newReport)
	}
	newWelcome = func() screen.Screen {
		return welcome.New(ctx, ctrl, newInterview)
	}

	return AppModel{
		ctrl:   ctrl,
		router: router.New(newWelcome()),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render lays out the header, active screen and footer for the current
// window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.ctrl.State().CandidateName, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, ctrl *session.Controller) error {
	p := tea.NewProgram(newAppModel(ctx, ctrl), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
