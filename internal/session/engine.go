package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
	"github.com/mpatel/biotutor/internal/marks"
	"github.com/mpatel/biotutor/internal/review"
	"github.com/mpatel/biotutor/internal/sampler"
)

// Phase is the current phase of the session state machine.
type Phase int

const (
	// PhaseEmpty is the terminal state entered when the question pool
	// resolves to nothing. No session runs; the caller renders a
	// "nothing available" view with a way back.
	PhaseEmpty Phase = iota

	// PhaseConfiguring is the exam setup step where the learner picks
	// a question count.
	PhaseConfiguring

	// PhaseActive is the answering phase.
	PhaseActive

	// PhaseConfirming is the exam submit confirmation dialog.
	PhaseConfirming

	// PhaseSummary shows the results.
	PhaseSummary

	// PhaseReviewing re-inspects one answered question from the
	// summary, read-only.
	PhaseReviewing
)

// Engine runs one session: a sampled question list walked under the
// mode's rule set. All transitions are synchronous; the engine is
// driven from the single TUI event loop and needs no locking.
type Engine struct {
	mode Mode
	cfg  Config
	req  Request

	pool        []bank.Question
	records     []Record
	index       int
	phase       Phase
	reviewIndex int

	sessionID string
	startedAt time.Time
	elapsed   time.Duration

	smp         *sampler.Sampler
	ledger      *history.Ledger
	reviewLater *marks.Set
	log         zerolog.Logger
}

// New validates the request, resolves the question pool, and returns
// an engine in its starting phase: PhaseEmpty for an empty pool,
// PhaseConfiguring for a configurable exam without an explicit count,
// PhaseActive otherwise.
func New(b *bank.Bank, ledger *history.Ledger, reviewLater *marks.Set, smp *sampler.Sampler, req Request, log zerolog.Logger) (*Engine, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		mode:        req.Mode,
		cfg:         ModeConfig(req.Mode),
		req:         req,
		pool:        resolvePool(b, ledger, req),
		smp:         smp,
		ledger:      ledger,
		reviewLater: reviewLater,
		log:         log,
	}

	if len(e.pool) == 0 {
		e.phase = PhaseEmpty
		return e, nil
	}

	if e.cfg.Configurable && req.Count == 0 {
		e.phase = PhaseConfiguring
		return e, nil
	}

	count := req.Count
	if count == 0 {
		count = e.cfg.SessionSize
	}
	e.Start(count)
	return e, nil
}

// resolvePool returns the questions the session draws from.
func resolvePool(b *bank.Bank, ledger *history.Ledger, req Request) []bank.Question {
	if req.Mode == ModeReview {
		return review.Resolve(b, ledger)
	}
	if req.Topic != "" {
		return b.ByTopic(req.ModuleID, req.Topic)
	}
	if req.ModuleID != 0 {
		return b.ByModule(req.ModuleID)
	}
	return b.Questions()
}

// Start begins a fresh run: a new sample, index zero, a new session
// id, cleared answers and elapsed time. Review mode ignores count and
// walks the whole resolved pool in order.
func (e *Engine) Start(count int) {
	var questions []bank.Question
	if e.cfg.SessionSize == 0 {
		questions = e.pool
	} else {
		questions = e.smp.Sample(e.pool, count)
	}

	later := map[string]bool{}
	if e.reviewLater != nil {
		later = e.reviewLater.IDSet()
	}

	e.records = make([]Record, len(questions))
	for i, q := range questions {
		e.records[i] = Record{Question: q, ReviewLater: later[q.ID]}
	}

	e.index = 0
	e.reviewIndex = 0
	e.sessionID = uuid.New().String()
	e.startedAt = time.Now()
	e.elapsed = 0
	e.phase = PhaseActive

	e.log.Info().
		Str("session", e.sessionID).
		Str("mode", string(e.mode)).
		Int("questions", len(e.records)).
		Msg("session started")
}

func (e *Engine) Mode() Mode             { return e.mode }
func (e *Engine) Config() Config         { return e.cfg }
func (e *Engine) Phase() Phase           { return e.phase }
func (e *Engine) Index() int             { return e.index }
func (e *Engine) Len() int               { return len(e.records) }
func (e *Engine) SessionID() string      { return e.sessionID }
func (e *Engine) PoolSize() int          { return len(e.pool) }
func (e *Engine) Elapsed() time.Duration { return e.elapsed }

// Current returns the record at the active index, or nil outside a
// running session.
func (e *Engine) Current() *Record {
	if len(e.records) == 0 {
		return nil
	}
	return &e.records[e.index]
}

// Record returns the record at index i, or nil when out of range.
func (e *Engine) Record(i int) *Record {
	if i < 0 || i >= len(e.records) {
		return nil
	}
	return &e.records[i]
}

// Records returns the per-index session records for rendering.
func (e *Engine) Records() []Record { return e.records }

// ReviewIndex returns the record index being re-inspected while in
// PhaseReviewing.
func (e *Engine) ReviewIndex() int { return e.reviewIndex }

// AnsweredCount returns how many indices hold a final answer.
func (e *Engine) AnsweredCount() int {
	n := 0
	for i := range e.records {
		if e.records[i].Answered() {
			n++
		}
	}
	return n
}

// AllAnswered reports whether every index holds a final answer.
func (e *Engine) AllAnswered() bool {
	return e.AnsweredCount() == len(e.records)
}

// SelectOption finalizes the primary answer at the current index.
// The first selection wins: repeat calls, with any option id, change
// nothing. Unknown option ids are ignored.
func (e *Engine) SelectOption(optionID string) {
	if e.phase != PhaseActive {
		return
	}
	rec := e.Current()
	if rec == nil || rec.Answered() {
		return
	}
	if rec.Question.Option(optionID) == nil {
		return
	}

	rec.Answer = &Answer{
		SelectedOptionID: optionID,
		Correct:          optionID == rec.Question.CorrectOptionID,
	}

	if e.cfg.PersistPerAnswer {
		e.ledger.Append(e.storedAnswer(rec))
	}
}

// SelectRationaleOption finalizes the rationale sub-answer. Requires a
// finalized primary answer; first selection wins.
func (e *Engine) SelectRationaleOption(optionID string) {
	if e.phase != PhaseActive || !e.cfg.RationaleFollowUps {
		return
	}
	rec := e.Current()
	if rec == nil || !rec.Answered() || rec.Question.Rationale == nil || rec.RationaleAnswer != nil {
		return
	}
	found := false
	for _, o := range rec.Question.Rationale.Options {
		if o.ID == optionID {
			found = true
			break
		}
	}
	if !found {
		return
	}
	rec.RationaleAnswer = &Answer{
		SelectedOptionID: optionID,
		Correct:          optionID == rec.Question.Rationale.CorrectOptionID,
	}
}

// SetConfidence records the learner's self-rating for the current
// question. Allowed at any point while active, answered or not.
func (e *Engine) SetConfidence(c history.Confidence) {
	if e.phase != PhaseActive {
		return
	}
	if rec := e.Current(); rec != nil {
		rec.Confidence = c
	}
}

// ToggleFlag flips the session-local flag on the current question and
// returns the new state.
func (e *Engine) ToggleFlag() bool {
	if e.phase != PhaseActive {
		return false
	}
	rec := e.Current()
	if rec == nil {
		return false
	}
	rec.Flagged = !rec.Flagged
	return rec.Flagged
}

// ToggleReviewLater flips the persistent review-later mark on the
// current question and returns the new state.
func (e *Engine) ToggleReviewLater() bool {
	if e.phase != PhaseActive {
		return false
	}
	rec := e.Current()
	if rec == nil {
		return false
	}
	if e.reviewLater != nil {
		rec.ReviewLater = e.reviewLater.Toggle(rec.Question.ID)
	} else {
		rec.ReviewLater = !rec.ReviewLater
	}
	return rec.ReviewLater
}

// RevealHint uncovers the next hint-ladder step for the current
// question and returns how many steps are now visible. Reveals are
// monotonic and capped at the ladder length.
func (e *Engine) RevealHint() int {
	if e.phase != PhaseActive || !e.cfg.Hints {
		return 0
	}
	rec := e.Current()
	if rec == nil || rec.Question.Hints == nil {
		return 0
	}
	if rec.HintsRevealed < rec.Question.Hints.Len() {
		rec.HintsRevealed++
	}
	return rec.HintsRevealed
}

// CanAdvance reports whether next() may leave the current index.
func (e *Engine) CanAdvance() bool {
	if e.cfg.FreeNavigation {
		return true
	}
	rec := e.Current()
	return rec != nil && rec.Complete(e.cfg)
}

// Next advances to the following question. On the last index it ends
// the session instead: exam sessions move to the submit confirmation,
// other modes straight to the summary, in both cases only once every
// index holds a final answer.
func (e *Engine) Next() {
	if e.phase != PhaseActive || !e.CanAdvance() {
		return
	}
	if e.index < len(e.records)-1 {
		e.index++
		return
	}
	if !e.AllAnswered() {
		return
	}
	if e.mode == ModeExam {
		e.phase = PhaseConfirming
		return
	}
	e.finish()
}

// Previous steps back one question, floored at index zero. Review-mode
// navigation is forward-only.
func (e *Engine) Previous() {
	if e.phase != PhaseActive || !e.cfg.AllowPrevious {
		return
	}
	if e.index > 0 {
		e.index--
	}
}

// JumpTo moves directly to index i, clamped to the valid range. Only
// free-navigation (exam) sessions may jump.
func (e *Engine) JumpTo(i int) {
	if e.phase != PhaseActive || !e.cfg.FreeNavigation {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(e.records)-1 {
		i = len(e.records) - 1
	}
	e.index = i
}

// RequestSubmit opens the exam submit confirmation. Unanswered
// questions are allowed; they count against the score.
func (e *Engine) RequestSubmit() {
	if e.phase != PhaseActive || e.mode != ModeExam {
		return
	}
	e.phase = PhaseConfirming
}

// CancelSubmit returns from the confirmation to the exam.
func (e *Engine) CancelSubmit() {
	if e.phase != PhaseConfirming {
		return
	}
	e.phase = PhaseActive
}

// ConfirmSubmit ends the exam: the answered records are written to the
// ledger as one batch and the session moves to the summary. Unanswered
// indices are never persisted.
func (e *Engine) ConfirmSubmit() {
	if e.phase != PhaseConfirming {
		return
	}
	var batch []history.StoredAnswer
	for i := range e.records {
		if e.records[i].Answered() {
			batch = append(batch, e.storedAnswer(&e.records[i]))
		}
	}
	e.ledger.AppendBatch(batch)
	e.finish()
}

// InspectAnswer re-opens the question at index i from the summary,
// read-only. Out-of-range indices are clamped.
func (e *Engine) InspectAnswer(i int) {
	if e.phase != PhaseSummary || len(e.records) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(e.records)-1 {
		i = len(e.records) - 1
	}
	e.reviewIndex = i
	e.phase = PhaseReviewing
}

// BackToSummary returns from inspecting a question to the summary.
func (e *Engine) BackToSummary() {
	if e.phase != PhaseReviewing {
		return
	}
	e.phase = PhaseSummary
}

// Retry discards all per-session state and starts over: configurable
// exams return to the count picker, every other mode reshuffles a
// fresh sample immediately.
func (e *Engine) Retry() {
	if e.phase != PhaseSummary {
		return
	}
	if e.cfg.Configurable {
		e.records = nil
		e.index = 0
		e.elapsed = 0
		e.phase = PhaseConfiguring
		return
	}
	count := e.req.Count
	if count == 0 {
		count = e.cfg.SessionSize
	}
	e.Start(count)
}

// Tick advances the elapsed-time counter by d and reports whether the
// timer should keep running. Ticks outside the active phase of a timed
// session are ignored and stop the timer.
func (e *Engine) Tick(d time.Duration) bool {
	if e.phase != PhaseActive || !e.cfg.Timed {
		return false
	}
	e.elapsed += d
	return true
}

func (e *Engine) finish() {
	if !e.cfg.Timed {
		e.elapsed = time.Since(e.startedAt)
	}
	e.phase = PhaseSummary
	e.log.Info().
		Str("session", e.sessionID).
		Str("mode", string(e.mode)).
		Int("answered", e.AnsweredCount()).
		Msg("session finished")
}

func (e *Engine) storedAnswer(rec *Record) history.StoredAnswer {
	return history.StoredAnswer{
		QuestionID:       rec.Question.ID,
		SelectedOptionID: rec.Answer.SelectedOptionID,
		Correct:          rec.Answer.Correct,
		Confidence:       rec.Confidence,
		Mode:             string(e.mode),
		SessionID:        e.sessionID,
		Timestamp:        time.Now(),
	}
}
