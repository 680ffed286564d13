package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
	"github.com/mpatel/biotutor/internal/marks"
	"github.com/mpatel/biotutor/internal/sampler"
	"github.com/mpatel/biotutor/internal/storage"
)

type fixture struct {
	bank        *bank.Bank
	ledger      *history.Ledger
	reviewLater *marks.Set
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b, err := bank.Load()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	mem := storage.NewMemory()
	return &fixture{
		bank:        b,
		ledger:      history.NewLedger(mem, zerolog.Nop()),
		reviewLater: marks.NewReviewLater(mem, zerolog.Nop()),
	}
}

func (f *fixture) engine(t *testing.T, req Request) *Engine {
	t.Helper()
	r := rand.New(rand.NewPCG(42, 0))
	e, err := New(f.bank, f.ledger, f.reviewLater, sampler.New(r.Float64), req, zerolog.Nop())
	if err != nil {
		t.Fatalf("New(%+v): %v", req, err)
	}
	return e
}

// answerCurrent finalizes the current question (and its rationale
// follow-up where the mode runs one) with the correct choices.
func answerCurrent(e *Engine) {
	rec := e.Current()
	e.SelectOption(rec.Question.CorrectOptionID)
	if e.Config().RationaleFollowUps && rec.Question.Rationale != nil {
		e.SelectRationaleOption(rec.Question.Rationale.CorrectOptionID)
	}
}

func TestNewRejectsInvalidRequest(t *testing.T) {
	f := newFixture(t)
	r := rand.New(rand.NewPCG(1, 0))
	_, err := New(f.bank, f.ledger, f.reviewLater, sampler.New(r.Float64),
		Request{Mode: ModeGuided, ModuleID: 1, Topic: "NotARealTopic"}, zerolog.Nop())
	if err == nil {
		t.Fatal("invalid topic should be rejected")
	}
}

func TestGuidedStartsActive(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeGuided, ModuleID: 1})
	if e.Phase() != PhaseActive {
		t.Fatalf("phase = %v, want PhaseActive", e.Phase())
	}
	if e.Len() != 5 {
		t.Errorf("Len() = %d, want 5 for guided", e.Len())
	}
	if e.SessionID() == "" {
		t.Error("session id should be set")
	}
}

func TestReviewWithCleanRecordIsEmpty(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeReview})
	if e.Phase() != PhaseEmpty {
		t.Fatalf("phase = %v, want PhaseEmpty", e.Phase())
	}
	if e.Current() != nil {
		t.Error("Current() in empty phase should be nil")
	}
}

func TestReviewRunsFullResolvedSet(t *testing.T) {
	f := newFixture(t)
	f.ledger.Append(history.StoredAnswer{
		QuestionID: "evolution-001", SelectedOptionID: "A",
		Correct: false, Mode: "practice", SessionID: "s", Timestamp: time.Now(),
	})

	e := f.engine(t, Request{Mode: ModeReview})
	if e.Phase() != PhaseActive {
		t.Fatalf("phase = %v, want PhaseActive", e.Phase())
	}
	// evolution-001 plus its two follow-ups, in resolver order.
	if e.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", e.Len())
	}
	if e.Records()[0].Question.ID != "evolution-001" {
		t.Errorf("first question = %q, want evolution-001", e.Records()[0].Question.ID)
	}
}

func TestExamWithoutCountConfigures(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeExam})
	if e.Phase() != PhaseConfiguring {
		t.Fatalf("phase = %v, want PhaseConfiguring", e.Phase())
	}
	e.Start(ExamPresets[0])
	if e.Phase() != PhaseActive {
		t.Fatalf("phase after Start = %v, want PhaseActive", e.Phase())
	}
	if e.Len() != ExamPresets[0] {
		t.Errorf("Len() = %d, want %d", e.Len(), ExamPresets[0])
	}
}

func TestAnswerFinality(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeGuided, ModuleID: 1})
	rec := e.Current()

	e.SelectOption(rec.Question.CorrectOptionID)
	if !rec.Answered() || !rec.Answer.Correct {
		t.Fatalf("answer = %+v, want correct final answer", rec.Answer)
	}

	// A second selection with a different option changes nothing.
	for _, o := range rec.Question.Options {
		if o.ID != rec.Question.CorrectOptionID {
			e.SelectOption(o.ID)
			break
		}
	}
	if rec.Answer.SelectedOptionID != rec.Question.CorrectOptionID || !rec.Answer.Correct {
		t.Errorf("answer changed after finalization: %+v", rec.Answer)
	}
}

func TestSelectUnknownOptionIgnored(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeGuided, ModuleID: 1})
	e.SelectOption("ZZ")
	if e.Current().Answered() {
		t.Error("unknown option id should not finalize an answer")
	}
}

func TestGatedAdvance(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModePractice, ModuleID: 2, Topic: "Ecology"})

	if e.CanAdvance() {
		t.Error("practice should not advance without an answer")
	}
	e.Next()
	if e.Index() != 0 {
		t.Fatalf("index = %d, want 0 (gated)", e.Index())
	}

	answerCurrent(e)
	if !e.CanAdvance() {
		t.Error("answered question should allow advancing")
	}
	e.Next()
	if e.Index() != 1 {
		t.Errorf("index = %d, want 1", e.Index())
	}

	e.Previous()
	if e.Index() != 0 {
		t.Errorf("index after Previous = %d, want 0", e.Index())
	}
	e.Previous()
	if e.Index() != 0 {
		t.Errorf("index floored at 0, got %d", e.Index())
	}
}

func TestRationaleGatesAdvance(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModePractice, ModuleID: 2, Topic: "Genetics"})

	for e.Phase() == PhaseActive {
		rec := e.Current()
		e.SelectOption(rec.Question.CorrectOptionID)

		if rec.Question.Rationale != nil {
			if e.CanAdvance() {
				t.Fatalf("question %q: advance allowed before rationale answered", rec.Question.ID)
			}
			was := e.Index()
			e.Next()
			if e.Index() != was {
				t.Fatalf("question %q: Next moved despite open rationale", rec.Question.ID)
			}

			e.SelectRationaleOption(rec.Question.Rationale.CorrectOptionID)
			if rec.RationaleAnswer == nil || !rec.RationaleAnswer.Correct {
				t.Fatalf("rationale answer = %+v", rec.RationaleAnswer)
			}
			// Finality applies to the sub-answer too.
			e.SelectRationaleOption("nope")
			if rec.RationaleAnswer.SelectedOptionID != rec.Question.Rationale.CorrectOptionID {
				t.Fatal("rationale answer changed after finalization")
			}
		}
		e.Next()
	}
	if e.Phase() != PhaseSummary {
		t.Fatalf("phase = %v, want PhaseSummary", e.Phase())
	}
}

func TestRationaleRequiresPrimaryAnswer(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModePractice, ModuleID: 2, Topic: "Genetics"})

	for e.Current().Question.Rationale == nil {
		answerCurrent(e)
		e.Next()
	}
	rec := e.Current()
	e.SelectRationaleOption(rec.Question.Rationale.CorrectOptionID)
	if rec.RationaleAnswer != nil {
		t.Error("rationale must not be answerable before the primary answer")
	}
}

func TestExamFreeNavigation(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeExam, Count: 5})

	e.Next()
	if e.Index() != 1 {
		t.Fatalf("index = %d, want 1 (no answer required)", e.Index())
	}
	e.JumpTo(4)
	if e.Index() != 4 {
		t.Fatalf("index = %d, want 4", e.Index())
	}
	e.JumpTo(99)
	if e.Index() != 4 {
		t.Errorf("jump past end should clamp, got %d", e.Index())
	}
	e.JumpTo(-5)
	if e.Index() != 0 {
		t.Errorf("jump before start should clamp, got %d", e.Index())
	}
}

func TestExamSubmitWithUnanswered(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeExam, Count: 5})

	// Answer three of five correctly.
	for i := 0; i < 3; i++ {
		e.JumpTo(i)
		e.SelectOption(e.Current().Question.CorrectOptionID)
	}

	e.RequestSubmit()
	if e.Phase() != PhaseConfirming {
		t.Fatalf("phase = %v, want PhaseConfirming", e.Phase())
	}
	e.CancelSubmit()
	if e.Phase() != PhaseActive {
		t.Fatalf("phase after cancel = %v, want PhaseActive", e.Phase())
	}

	// Nothing persisted before the batch commit.
	if got := len(f.ledger.All()); got != 0 {
		t.Fatalf("ledger has %d entries before submit, want 0", got)
	}

	e.RequestSubmit()
	e.ConfirmSubmit()
	if e.Phase() != PhaseSummary {
		t.Fatalf("phase = %v, want PhaseSummary", e.Phase())
	}

	s := Summarize(e)
	if s.CorrectCount+s.IncorrectCount != 5 {
		t.Errorf("correct+incorrect = %d, want 5 (unanswered count against)", s.CorrectCount+s.IncorrectCount)
	}
	if s.CorrectCount != 3 || s.IncorrectCount != 2 {
		t.Errorf("score = %d/%d, want 3 correct, 2 incorrect", s.CorrectCount, s.IncorrectCount)
	}
	if s.Percent != 60 {
		t.Errorf("percent = %d, want 60", s.Percent)
	}

	// Only the answered entries reach the ledger.
	if got := len(f.ledger.All()); got != 3 {
		t.Errorf("ledger has %d entries after submit, want 3", got)
	}
}

func TestPerAnswerPersistence(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeGuided, ModuleID: 1})

	answerCurrent(e)
	if got := len(f.ledger.All()); got != 1 {
		t.Fatalf("ledger has %d entries after first answer, want 1", got)
	}
	e.Next()
	answerCurrent(e)
	if got := len(f.ledger.All()); got != 2 {
		t.Fatalf("ledger has %d entries after second answer, want 2", got)
	}
	entry := f.ledger.All()[0]
	if entry.Mode != "guided" || entry.SessionID != e.SessionID() {
		t.Errorf("entry = %+v, want guided mode and matching session id", entry)
	}
}

func TestHintLadderMonotonicCapped(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeGuided, ModuleID: 1})
	rec := e.Current()
	if rec.Question.Hints == nil {
		t.Skip("sampled question has no hints")
	}

	max := rec.Question.Hints.Len()
	for i := 1; i <= max; i++ {
		if got := e.RevealHint(); got != i {
			t.Fatalf("reveal %d = %d, want %d", i, got, i)
		}
	}
	if got := e.RevealHint(); got != max {
		t.Errorf("reveal past ladder = %d, want capped at %d", got, max)
	}
}

func TestHintsOnlyInGuidedMode(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeExam, Count: 5})
	if got := e.RevealHint(); got != 0 {
		t.Errorf("exam RevealHint = %d, want 0", got)
	}
}

func TestToggleFlagAlternates(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeExam, Count: 5})

	if !e.ToggleFlag() {
		t.Error("first toggle should flag")
	}
	if e.ToggleFlag() {
		t.Error("second toggle should unflag")
	}
	if e.Current().Flagged {
		t.Error("record should be unflagged")
	}
}

func TestToggleReviewLaterPersists(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModePractice, ModuleID: 1})

	qid := e.Current().Question.ID
	if !e.ToggleReviewLater() {
		t.Fatal("first toggle should mark")
	}
	if !f.reviewLater.Contains(qid) {
		t.Error("mark should reach the registry")
	}
	if e.ToggleReviewLater() {
		t.Fatal("second toggle should unmark")
	}
	if f.reviewLater.Contains(qid) {
		t.Error("unmark should reach the registry")
	}
}

func TestConfidenceOfferedOutsideExam(t *testing.T) {
	for _, m := range AllModes {
		want := m != ModeExam
		if got := ModeConfig(m).Confidence; got != want {
			t.Errorf("ModeConfig(%s).Confidence = %v, want %v", m, got, want)
		}
	}
}

func TestSetConfidenceAnyTime(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModePractice, ModuleID: 1})

	e.SetConfidence(history.ConfidenceLow)
	if e.Current().Confidence != history.ConfidenceLow {
		t.Error("confidence settable before answering")
	}
	e.SelectOption(e.Current().Question.CorrectOptionID)
	e.SetConfidence(history.ConfidenceHigh)
	if e.Current().Confidence != history.ConfidenceHigh {
		t.Error("confidence settable after answering")
	}
	// The rating present at answer time is what the ledger saw.
	if got := f.ledger.All()[0].Confidence; got != history.ConfidenceLow {
		t.Errorf("persisted confidence = %q, want low", got)
	}
}

func TestTickOnlyWhileExamActive(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeExam, Count: 5})

	if !e.Tick(time.Second) || !e.Tick(time.Second) {
		t.Fatal("ticks during an active exam should continue")
	}
	if e.Elapsed() != 2*time.Second {
		t.Errorf("elapsed = %v, want 2s", e.Elapsed())
	}

	e.RequestSubmit()
	if e.Tick(time.Second) {
		t.Error("tick during confirmation should stop the timer")
	}
	e.ConfirmSubmit()
	if e.Tick(time.Second) {
		t.Error("tick after summary should stop the timer")
	}
	if e.Elapsed() != 2*time.Second {
		t.Errorf("elapsed advanced outside active phase: %v", e.Elapsed())
	}
}

func TestTickIgnoredInUntimedModes(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeGuided, ModuleID: 1})
	if e.Tick(time.Second) {
		t.Error("guided sessions are untimed")
	}
}

func TestInspectAnswerRoundTrip(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeGuided, ModuleID: 1})
	for e.Phase() == PhaseActive {
		answerCurrent(e)
		e.Next()
	}

	e.InspectAnswer(2)
	if e.Phase() != PhaseReviewing || e.ReviewIndex() != 2 {
		t.Fatalf("phase=%v index=%d, want reviewing index 2", e.Phase(), e.ReviewIndex())
	}
	e.BackToSummary()
	if e.Phase() != PhaseSummary {
		t.Fatalf("phase = %v, want PhaseSummary", e.Phase())
	}

	e.InspectAnswer(99)
	if e.ReviewIndex() != e.Len()-1 {
		t.Errorf("out-of-range inspect should clamp, got %d", e.ReviewIndex())
	}
}

func TestRetryPractice(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModePractice, ModuleID: 1})
	first := e.SessionID()
	for e.Phase() == PhaseActive {
		answerCurrent(e)
		e.Next()
	}

	e.Retry()
	if e.Phase() != PhaseActive {
		t.Fatalf("phase after retry = %v, want PhaseActive", e.Phase())
	}
	if e.Index() != 0 || e.AnsweredCount() != 0 {
		t.Errorf("retry should clear per-session state: index=%d answered=%d", e.Index(), e.AnsweredCount())
	}
	if e.SessionID() == first {
		t.Error("retry should mint a new session id")
	}
}

func TestRetryExamReturnsToSetup(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeExam, Count: 5})
	e.RequestSubmit()
	e.ConfirmSubmit()

	e.Retry()
	if e.Phase() != PhaseConfiguring {
		t.Fatalf("phase after exam retry = %v, want PhaseConfiguring", e.Phase())
	}
}

func TestSummaryZeroTotal(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeReview})
	s := Summarize(e)
	if s.Percent != 0 || s.TotalCount != 0 {
		t.Errorf("summary of empty session = %+v, want zeroes", s)
	}
}

func TestSummaryBounds(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t, Request{Mode: ModeGuided, ModuleID: 2})
	for e.Phase() == PhaseActive {
		answerCurrent(e)
		e.Next()
	}
	s := Summarize(e)
	if s.Percent < 0 || s.Percent > 100 {
		t.Errorf("percent out of bounds: %d", s.Percent)
	}
	if s.CorrectCount+s.IncorrectCount != s.AnsweredCount {
		t.Errorf("correct+incorrect = %d, want answered %d",
			s.CorrectCount+s.IncorrectCount, s.AnsweredCount)
	}
	if s.Percent != 100 {
		t.Errorf("all-correct run percent = %d, want 100", s.Percent)
	}
}
