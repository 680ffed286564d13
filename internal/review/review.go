// Package review builds the question set for review mode: everything
// the learner currently has wrong, plus reinforcing follow-ups.
package review

import (
	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
)

// Resolve returns the review set. The first segment is every bank
// question whose latest answer is wrong, in bank order. The second is
// the union of those questions' related follow-ups, excluding any id
// already in the incorrect set, also in bank order. An empty incorrect
// set yields an empty result; the caller shows a "nothing to review"
// state rather than starting a session.
func Resolve(b *bank.Bank, ledger *history.Ledger) []bank.Question {
	incorrect := ledger.IncorrectQuestionIDs()
	if len(incorrect) == 0 {
		return nil
	}

	direct := b.ByIDs(incorrect)

	linked := make(map[string]bool)
	for _, q := range direct {
		for _, rid := range q.RelatedQuestionIDs {
			if !incorrect[rid] {
				linked[rid] = true
			}
		}
	}

	return append(direct, b.ByIDs(linked)...)
}

// LowConfidence returns the questions whose latest answer was rated
// low or medium confidence, in bank order. These never force a review
// session; progress views surface them as worth a second look.
func LowConfidence(b *bank.Bank, ledger *history.Ledger) []bank.Question {
	return b.ByIDs(ledger.LowConfidenceQuestionIDs())
}
