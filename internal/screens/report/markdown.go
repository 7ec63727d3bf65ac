package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/skillcheck/internal/session"
)

// Markdown renders the final report as a markdown document. The same text
// backs the TUI report screen and the plain line-mode output.
func Markdown(r *session.Report) string {
	if r == nil {
		return "# Interview Report\n\nNo report is available.\n"
	}

	var b strings.Builder
	b.WriteString("# Interview Report\n\n")

	if r.CandidateName != "" {
		fmt.Fprintf(&b, "**Candidate:** %s  \n", r.CandidateName)
	}
	if r.InterviewDate != "" {
		fmt.Fprintf(&b, "**Date:** %s  \n", r.InterviewDate)
	}
	if r.DurationMinutes > 0 {
		fmt.Fprintf(&b, "**Duration:** %.1f minutes  \n", r.DurationMinutes)
	}
	b.WriteString("\n## Scores\n\n")
	b.WriteString("| Overall | Multiple choice | Open answer |\n")
	b.WriteString("|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n", r.OverallScore, r.MCQScore, r.GeneralScore)
	if r.PerformanceLevel != "" {
		fmt.Fprintf(&b, "**Performance level:** %s\n\n", r.PerformanceLevel)
	}

	writeList(&b, "## Strengths", r.Strengths)
	writeList(&b, "## Areas for Improvement", r.AreasForImprovement)
	writeList(&b, "## Recommendations", r.Recommendations)

	if len(r.Items) > 0 {
		b.WriteString("## Detailed Feedback\n\n")
		for i, it := range r.Items {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, oneLine(it.Question))
			kind := "Open answer"
			if it.Kind == session.KindMultipleChoice {
				kind = "Multiple choice"
			}
			fmt.Fprintf(&b, "*%s* · score **%s**\n\n", kind, it.Evaluation.Score)
			if it.Answer != "" {
				fmt.Fprintf(&b, "> %s\n\n", oneLine(it.Answer))
			}
			if it.Evaluation.Feedback != "" {
				b.WriteString(it.Evaluation.Feedback)
				b.WriteString("\n\n")
			}
			writeList(&b, "**Strengths**", it.Evaluation.Strengths)
			writeList(&b, "**Missing concepts**", it.Evaluation.MissingConcepts)
		}
	}

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading)
	b.WriteString("\n\n")
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", oneLine(it))
	}
	b.WriteString("\n")
}

// oneLine folds embedded newlines so a value cannot break out of its
// markdown block.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
