package session

// Mode determines navigation rules, scaffolding, and persistence
// granularity for a session.
type Mode string

const (
	ModeGuided   Mode = "guided"
	ModePractice Mode = "practice"
	ModeExam     Mode = "exam"
	ModeReview   Mode = "review"
)

// AllModes lists the valid modes in menu order.
var AllModes = []Mode{ModeGuided, ModePractice, ModeExam, ModeReview}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, v := range AllModes {
		if m == v {
			return true
		}
	}
	return false
}

// ExamPresets are the question counts offered on the exam setup screen.
var ExamPresets = []int{20, 32, 64}

// Config is the per-mode rule set the engine executes against. One
// engine, four configurations, instead of four near-copies of the same
// next/previous/summary flow.
type Config struct {
	// AllowPrevious permits stepping back to earlier questions.
	AllowPrevious bool

	// FreeNavigation permits next/previous/jump without an answer on
	// the current question.
	FreeNavigation bool

	// RequireAnswerToAdvance gates next() behind a final answer (and a
	// final rationale sub-answer where one exists).
	RequireAnswerToAdvance bool

	// SessionSize is the default question count. Zero means the whole
	// pool in resolver order, without sampling.
	SessionSize int

	// Configurable means the learner picks the question count before
	// the session starts.
	Configurable bool

	// PersistPerAnswer writes each answer to the ledger as it is
	// finalized; otherwise the whole batch is written on submit.
	PersistPerAnswer bool

	// Timed runs the elapsed-time counter while the session is active.
	Timed bool

	// Hints enables the hint ladder.
	Hints bool

	// RationaleFollowUps enables the rationale sub-question on
	// questions that carry one.
	RationaleFollowUps bool

	// Confidence enables the confidence rating prompt.
	Confidence bool

	// Flagging enables the session-local flag-for-review marker.
	Flagging bool
}

// ModeConfig returns the rule set for the mode.
func ModeConfig(m Mode) Config {
	switch m {
	case ModeGuided:
		return Config{
			AllowPrevious:          true,
			RequireAnswerToAdvance: true,
			SessionSize:            5,
			PersistPerAnswer:       true,
			Hints:                  true,
			Confidence:             true,
		}
	case ModePractice:
		return Config{
			AllowPrevious:          true,
			RequireAnswerToAdvance: true,
			SessionSize:            10,
			PersistPerAnswer:       true,
			RationaleFollowUps:     true,
			Confidence:             true,
		}
	case ModeExam:
		return Config{
			AllowPrevious:  true,
			FreeNavigation: true,
			SessionSize:    ExamPresets[0],
			Configurable:   true,
			Timed:          true,
			Flagging:       true,
		}
	case ModeReview:
		return Config{
			RequireAnswerToAdvance: true,
			PersistPerAnswer:       true,
			Confidence:             true,
		}
	}
	return Config{}
}
