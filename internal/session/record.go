package session

import (
	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
)

// Answer is a finalized selection. A Record carries nil until the
// first selection lands; once present it never changes.
type Answer struct {
	SelectedOptionID string
	Correct          bool
}

// Record is the per-index session state for one served question. The
// same bank question may appear at two indices when the requested count
// exceeds the pool; each index keeps its own record.
type Record struct {
	Question bank.Question

	// Answer is the final primary selection, nil while unanswered.
	Answer *Answer

	// RationaleAnswer is the final sub-question selection, nil while
	// unanswered or when the question has no rationale follow-up.
	RationaleAnswer *Answer

	// Confidence is the learner's self-rating, settable at any time.
	Confidence history.Confidence

	// Flagged is the session-local flag-for-review marker.
	Flagged bool

	// ReviewLater mirrors the persistent review-later registry for
	// this question.
	ReviewLater bool

	// HintsRevealed counts revealed hint-ladder steps, monotonic.
	HintsRevealed int
}

// Answered reports whether the primary answer is final.
func (r *Record) Answered() bool { return r.Answer != nil }

// Complete reports whether the record blocks gated advancement: the
// primary answer is final and, where a rationale follow-up applies,
// the sub-answer is too.
func (r *Record) Complete(cfg Config) bool {
	if !r.Answered() {
		return false
	}
	if cfg.RationaleFollowUps && r.Question.Rationale != nil {
		return r.RationaleAnswer != nil
	}
	return true
}
