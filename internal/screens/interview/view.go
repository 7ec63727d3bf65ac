package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/skillcheck/internal/session"
	"github.com/abhisek/skillcheck/internal/ui/components"
	"github.com/abhisek/skillcheck/internal/ui/layout"
	"github.com/abhisek/skillcheck/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var body string
	switch s.state.Stage {
	case sess.StageAwaitingAnswer:
		body = s.renderQuestionView(cw)
	case sess.StageShowingFeedback:
		body = s.renderFeedbackView(cw)
	default:
		body = theme.Hint.Render("No interview in progress.")
	}

	block := lipgloss.NewStyle().Width(cw).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+block)
}

func (s *InterviewScreen) renderProgress(width int) string {
	done, total := sess.Progress(s.state)
	return components.NewProgressBar("Progress", done, total, width).View()
}

// renderQuestionView renders the active question with its answer widget.
func (s *InterviewScreen) renderQuestionView(width int) string {
	st := s.state
	var b strings.Builder

	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")

	counter := fmt.Sprintf("Question %d", st.Question.Index)
	if st.QuestionCount > 0 {
		counter += fmt.Sprintf(" of %d", st.QuestionCount)
	}
	badge := "Open Answer"
	if st.Question.Kind == sess.KindMultipleChoice {
		badge = "Multiple Choice"
	}
	b.WriteString(theme.Label.Render(counter))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Secondary).
		Padding(0, 1).
		Render(badge))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width - 6).
		Render(st.Question.Text)
	b.WriteString(theme.Card.Render(question))
	b.WriteString("\n\n")

	if st.Question.Kind == sess.KindMultipleChoice {
		b.WriteString(s.choices.View(width))
		if s.choiceErr != "" {
			b.WriteString(theme.ErrorText.Render("✗ " + s.choiceErr))
			b.WriteString("\n")
		}
	} else {
		s.input.Model.SetWidth(width - 4)
		b.WriteString(s.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.renderStatus("Submitting...", "press Enter to submit"))
	return b.String()
}

// renderFeedbackView renders the evaluation of the last answer.
func (s *InterviewScreen) renderFeedbackView(width int) string {
	st := s.state
	fb := st.LastFeedback
	var b strings.Builder

	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")

	counter := fmt.Sprintf("Completed Question %d", st.Question.Index)
	if st.QuestionCount > 0 {
		counter += fmt.Sprintf(" of %d", st.QuestionCount)
	}
	b.WriteString(theme.Label.Render(counter))
	b.WriteString("\n\n")

	text := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 2)

	b.WriteString(theme.Label.Render("Your Answer:"))
	b.WriteString("\n")
	b.WriteString(text.Render(st.PendingAnswer))
	b.WriteString("\n\n")

	if fb != nil {
		gradeStyle := components.GradeStyle(fb.Score.Grade())
		b.WriteString(theme.Label.Render("Feedback:"))
		b.WriteString("  ")
		b.WriteString(gradeStyle.Render(fb.Score.String()))
		b.WriteString("\n")
		card := theme.FeedbackCard.BorderForeground(gradeStyle.GetForeground())
		b.WriteString(card.Render(lipgloss.NewStyle().Width(width - 6).Render(fb.Text)))
		b.WriteString("\n\n")

		if fb.CorrectAnswer != "" {
			b.WriteString(theme.Label.Render("Correct Answer:"))
			b.WriteString("\n")
			b.WriteString(text.Render(fb.CorrectAnswer))
			b.WriteString("\n\n")
		}

		if len(fb.Suggestions) > 0 {
			b.WriteString(theme.Label.Render("Suggestions for Improvement:"))
			b.WriteString("\n")
			for _, sug := range fb.Suggestions {
				b.WriteString(text.Render("• " + sug))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(s.renderStatus("", "press Enter for the next question"))
	return b.String()
}

func (s *InterviewScreen) renderStatus(busyText, hint string) string {
	switch {
	case s.busy && busyText != "":
		return theme.Busy.Render(busyText)
	case s.notice != "":
		return theme.Notice.Render(s.notice)
	default:
		return theme.Hint.Render(hint)
	}
}
