package session

// Progress returns how many questions are complete out of the total, for
// the progress indicator. While feedback is shown the answered question
// counts as complete.
func Progress(s State) (done, total int) {
	switch s.Stage {
	case StageAwaitingAnswer:
		return clamp(s.Question.Index-1, s.QuestionCount), s.QuestionCount
	case StageShowingFeedback:
		if s.QueuedNext != nil {
			return clamp(s.QueuedNext.Index-1, s.QuestionCount), s.QuestionCount
		}
		return clamp(s.Question.Index, s.QuestionCount), s.QuestionCount
	case StageFinished:
		if s.QuestionCount == 0 {
			n := s.FinalReport.QuestionsAnswered()
			return n, n
		}
		return s.QuestionCount, s.QuestionCount
	default:
		return 0, 0
	}
}

// Fraction returns Progress as a value in [0, 1].
func Fraction(s State) float64 {
	done, total := Progress(s)
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total)
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
