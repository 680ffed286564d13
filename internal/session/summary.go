package session

import "time"

// Summary holds the results shown when a session ends. In exam mode
// unanswered questions count as incorrect, so CorrectCount plus
// IncorrectCount always equals TotalCount there; in the gated modes
// every question is answered before the summary exists.
type Summary struct {
	CorrectCount   int
	IncorrectCount int
	AnsweredCount  int
	TotalCount     int
	Percent        int
	Elapsed        time.Duration
}

// Summarize computes the score for the session's records.
func Summarize(e *Engine) Summary {
	s := Summary{
		TotalCount: e.Len(),
		Elapsed:    e.Elapsed(),
	}
	for i := range e.records {
		rec := &e.records[i]
		if !rec.Answered() {
			continue
		}
		s.AnsweredCount++
		if rec.Answer.Correct {
			s.CorrectCount++
		}
	}

	if e.mode == ModeExam {
		s.IncorrectCount = s.TotalCount - s.CorrectCount
	} else {
		s.IncorrectCount = s.AnsweredCount - s.CorrectCount
	}

	if s.TotalCount > 0 {
		s.Percent = (200*s.CorrectCount + s.TotalCount) / (2 * s.TotalCount)
	}
	return s
}
