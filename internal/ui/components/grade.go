package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillcheck/internal/session"
	"github.com/abhisek/skillcheck/internal/ui/theme"
)

// GradeStyle returns the colour style for a score grade.
func GradeStyle(g session.Grade) lipgloss.Style {
	switch g {
	case session.GradeGood:
		return theme.GradeGood
	case session.GradePoor:
		return theme.GradePoor
	default:
		return theme.GradeNeutral
	}
}

// ScoreBadge renders a score in its grade colour.
func ScoreBadge(s session.Score) string {
	return GradeStyle(s.Grade()).Render(s.String())
}
