package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillcheck/internal/screens/report"
	"github.com/abhisek/skillcheck/internal/session"
)

const plainWidth = 80

var plainCmd = &cobra.Command{
	Use:   "plain",
	Short: "Run the interview line by line on stdin/stdout",
	Long: `Run the interview without the full-screen UI.

Questions are printed one at a time and answers are read from standard
input, one line each. For multiple choice questions enter the option
number or its label. Useful on dumb terminals and for scripting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlain(cmd.Context(), newController(cfg, logger), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// lineReader prompts for and reads trimmed lines.
type lineReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *lineReader) prompt(label string) (string, bool) {
	fmt.Fprint(r.out, label)
	if !r.scanner.Scan() {
		fmt.Fprintln(r.out, "\n(input closed)")
		return "", false
	}
	return strings.TrimSpace(r.scanner.Text()), true
}

// runPlain drives ctrl through one interview. It returns nil when the
// interview finishes or the input ends.
func runPlain(ctx context.Context, ctrl *session.Controller, in io.Reader, out io.Writer) error {
	r := &lineReader{scanner: bufio.NewScanner(in), out: out}

	fmt.Fprintln(out, "Skills Assessment Interview")
	fmt.Fprintln(out)

	for ctrl.State().Stage == session.StageNotStarted {
		name, ok := r.prompt("Your name: ")
		if !ok {
			return nil
		}
		fmt.Fprintln(out, "Starting...")
		if _, err := ctrl.Start(ctx, name); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(out, explain(err))
		}
	}

	// resend is set after a failed submit; the controller still holds the
	// answer, so an empty line sends it again.
	resend := false
	for {
		st := ctrl.State()
		switch st.Stage {
		case session.StageAwaitingAnswer:
			printQuestion(out, st)
			label := "\nYour answer: "
			if resend {
				label = fmt.Sprintf("\nYour answer (Enter to resend %q): ", st.PendingAnswer)
			}
			answer, ok := r.prompt(label)
			if !ok {
				return nil
			}
			if !resend || answer != "" {
				if err := setAnswer(ctrl, st, answer); err != nil {
					fmt.Fprintln(out, explain(err))
					continue
				}
			}
			fmt.Fprintln(out, "Submitting...")
			_, err := ctrl.Submit(ctx)
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			var svcErr *session.ServiceError
			resend = errors.As(err, &svcErr)
			if err != nil {
				fmt.Fprintln(out, explain(err))
			}

		case session.StageShowingFeedback:
			printFeedback(out, st)
			if _, ok := r.prompt("Press Enter for the next question "); !ok {
				return nil
			}
			if _, err := ctrl.Advance(); err != nil {
				return err
			}

		case session.StageFinished:
			fmt.Fprintln(out, report.Render(report.Markdown(st.FinalReport), plainWidth))
			return nil

		default:
			return nil
		}
	}
}

// setAnswer records the typed answer. For multiple choice questions a
// number picks the option at that position.
func setAnswer(ctrl *session.Controller, st session.State, answer string) error {
	if st.Question.Kind == session.KindMultipleChoice {
		if n, err := strconv.Atoi(answer); err == nil {
			_, err := ctrl.SelectChoice(n - 1)
			return err
		}
	}
	_, err := ctrl.SetAnswer(answer)
	return err
}

func printQuestion(out io.Writer, st session.State) {
	q := st.Question
	header := fmt.Sprintf("Question %d", q.Index)
	if st.QuestionCount > 0 {
		header += fmt.Sprintf(" of %d", st.QuestionCount)
	}
	done, total := session.Progress(st)
	if total > 0 {
		header += fmt.Sprintf(" (%d/%d done)", done, total)
	}
	fmt.Fprintf(out, "\n── %s ──\n", header)
	fmt.Fprintln(out, q.Text)
	for i, c := range q.Choices {
		fmt.Fprintf(out, "  %d. %s\n", i+1, c)
	}
}

func printFeedback(out io.Writer, st session.State) {
	fb := st.LastFeedback
	if fb == nil {
		return
	}
	fmt.Fprintf(out, "\nScore: %s\n", fb.Score)
	fmt.Fprintf(out, "Feedback: %s\n", fb.Text)
	if fb.CorrectAnswer != "" {
		fmt.Fprintf(out, "Correct answer: %s\n", fb.CorrectAnswer)
	}
	for _, s := range fb.Suggestions {
		fmt.Fprintf(out, "  - %s\n", s)
	}
	fmt.Fprintln(out)
}

// explain turns a controller error into the line shown to the user.
func explain(err error) string {
	var svcErr *session.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Notice()
	}
	return err.Error()
}
