package report

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/abhisek/skillcheck/internal/router"
	"github.com/abhisek/skillcheck/internal/screen"
	"github.com/abhisek/skillcheck/internal/session"
	"github.com/abhisek/skillcheck/internal/ui/components"
	"github.com/abhisek/skillcheck/internal/ui/layout"
	"github.com/abhisek/skillcheck/internal/ui/theme"
)

// ReportScreen shows the final assessment of a finished interview.
type ReportScreen struct {
	ctrl        *session.Controller
	report      *session.Report
	restartFunc func() screen.Screen

	offset int

	// rendered markdown, cached per wrap width
	rendered      []string
	renderedWidth int
}

var _ screen.Screen = (*ReportScreen)(nil)

// New creates a ReportScreen for the report held by st. restartFunc builds
// the screen shown after the session has been reset.
func New(ctrl *session.Controller, st session.State, restartFunc func() screen.Screen) *ReportScreen {
	return &ReportScreen{
		ctrl:        ctrl,
		report:      st.FinalReport,
		restartFunc: restartFunc,
	}
}

func (r *ReportScreen) Title() string {
	return "Report"
}

func (r *ReportScreen) Init() tea.Cmd {
	return nil
}

func (r *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "up", "k":
		r.scroll(-1)
	case "down", "j":
		r.scroll(1)
	case "pgup":
		r.scroll(-10)
	case "pgdown", "space":
		r.scroll(10)
	case "home", "g":
		r.offset = 0
	case "enter", "r":
		if _, err := r.ctrl.Reset(); err != nil {
			return r, nil
		}
		next := r.restartFunc()
		return r, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}
	return r, nil
}

func (r *ReportScreen) scroll(delta int) {
	r.offset += delta
	if maxOffset := len(r.rendered) - 1; r.offset > maxOffset {
		r.offset = maxOffset
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

func (r *ReportScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(r.renderSummary(cw))
	b.WriteString("\n")

	lines := r.render(cw)
	avail := height - lipgloss.Height(b.String()) - 2
	if avail < 3 {
		avail = 3
	}
	if r.offset > len(lines)-1 {
		r.offset = max(len(lines)-1, 0)
	}
	end := min(r.offset+avail, len(lines))
	b.WriteString(strings.Join(lines[r.offset:end], "\n"))
	b.WriteString("\n")

	if len(lines) > avail {
		b.WriteString(theme.Hint.Render("↑↓ to scroll · Enter to start a new interview"))
	} else {
		b.WriteString(theme.Hint.Render("Enter to start a new interview"))
	}

	block := lipgloss.NewStyle().Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, block)
}

// renderSummary renders the headline scores that stay visible while the
// detail below scrolls.
func (r *ReportScreen) renderSummary(width int) string {
	if r.report == nil {
		return theme.Title.Render("Interview Complete")
	}
	rep := r.report

	title := theme.Title.Render("Interview Complete")
	if rep.CandidateName != "" {
		title += theme.Subtitle.Render("  " + rep.CandidateName)
	}

	scores := lipgloss.JoinHorizontal(lipgloss.Top,
		scoreCell("Overall", rep.OverallScore),
		scoreCell("Multiple choice", rep.MCQScore),
		scoreCell("Open answer", rep.GeneralScore),
	)

	done := rep.QuestionsAnswered()
	bar := components.NewProgressBar("Answered", done, done, width).View()

	parts := []string{title, "", scores}
	if rep.PerformanceLevel != "" {
		parts = append(parts, theme.Label.Render("Level: ")+theme.Body.Render(rep.PerformanceLevel))
	}
	parts = append(parts, bar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func scoreCell(label string, s session.Score) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.GradeStyle(s.Grade()).GetForeground()).
		Padding(0, 2).
		MarginRight(1).
		Render(theme.Label.Render(label) + "\n" + components.ScoreBadge(s))
}

func (r *ReportScreen) render(width int) []string {
	if r.rendered != nil && r.renderedWidth == width {
		return r.rendered
	}
	out := Render(Markdown(r.report), width)
	r.rendered = strings.Split(strings.TrimRight(out, "\n"), "\n")
	r.renderedWidth = width
	return r.rendered
}

// Render formats markdown for a terminal of the given width, falling back
// to the raw text when the renderer is unavailable.
func Render(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (r *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "New interview"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
