package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillcheck/internal/ui/layout"
)

// Screen is one page of the interview UI: the welcome form, the
// question/feedback loop or the final report. The app draws the header
// and footer around it.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message. A screen hands over to the next stage by
	// returning a command that emits router.ReplaceScreenMsg.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens whose footer hints depend on
// their state. The app asks on every frame.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
