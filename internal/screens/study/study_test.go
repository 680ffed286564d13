package study

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
	"github.com/mpatel/biotutor/internal/marks"
	"github.com/mpatel/biotutor/internal/sampler"
	"github.com/mpatel/biotutor/internal/session"
	"github.com/mpatel/biotutor/internal/storage"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testEnv(t *testing.T) Env {
	t.Helper()
	b, err := bank.Load()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	mem := storage.NewMemory()
	r := rand.New(rand.NewPCG(7, 0))
	return Env{
		Bank:        b,
		Ledger:      history.NewLedger(mem, zerolog.Nop()),
		Bookmarks:   marks.NewBookmarks(mem, zerolog.Nop()),
		ReviewLater: marks.NewReviewLater(mem, zerolog.Nop()),
		Sampler:     sampler.New(r.Float64),
		Log:         zerolog.Nop(),
	}
}

func TestInvalidRequestShowsMessage(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeGuided, ModuleID: 1, Topic: "NotARealTopic"})

	if s.errMsg == "" {
		t.Fatal("invalid request should set an error message")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "NotARealTopic") {
		t.Error("error view should name the invalid topic")
	}
}

func TestReviewWithNothingWrongShowsEmptyState(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeReview})

	if s.engine.Phase() != session.PhaseEmpty {
		t.Fatalf("phase = %v, want PhaseEmpty", s.engine.Phase())
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Nothing to review") {
		t.Errorf("empty review view missing message:\n%s", view)
	}
}

func TestEnterFinalizesAnswer(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeGuided, ModuleID: 1})

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !s.engine.Current().Answered() {
		t.Fatal("enter should finalize the highlighted option")
	}
	if got := len(env.Ledger.All()); got != 1 {
		t.Errorf("ledger entries = %d, want 1 (guided persists per answer)", got)
	}
}

func TestHintKeyRevealsLadderStep(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeGuided, ModuleID: 1})

	s.Update(keyPress('h'))
	if got := s.engine.Current().HintsRevealed; got != 1 {
		t.Errorf("hints revealed = %d, want 1", got)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Goal") {
		t.Error("view should show the revealed goal hint")
	}
}

func TestBookmarkKeyTogglesRegistry(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModePractice, ModuleID: 2})

	qid := s.engine.Current().Question.ID
	s.Update(keyPress('b'))
	if !env.Bookmarks.Contains(qid) {
		t.Error("b should bookmark the current question")
	}
	s.Update(keyPress('b'))
	if env.Bookmarks.Contains(qid) {
		t.Error("b again should remove the bookmark")
	}
}

func TestExamSetupThenSubmitFlow(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeExam})

	if s.engine.Phase() != session.PhaseConfiguring {
		t.Fatalf("phase = %v, want PhaseConfiguring", s.engine.Phase())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.engine.Phase() != session.PhaseActive {
		t.Fatalf("phase after preset pick = %v, want PhaseActive", s.engine.Phase())
	}
	if s.engine.Len() != session.ExamPresets[0] {
		t.Fatalf("Len() = %d, want first preset %d", s.engine.Len(), session.ExamPresets[0])
	}

	// Submit immediately; everything unanswered counts as incorrect.
	s.Update(keyPress('s'))
	if s.engine.Phase() != session.PhaseConfirming {
		t.Fatalf("phase = %v, want PhaseConfirming", s.engine.Phase())
	}
	s.Update(keyPress('n'))
	if s.engine.Phase() != session.PhaseActive {
		t.Fatalf("phase after n = %v, want PhaseActive", s.engine.Phase())
	}
	s.Update(keyPress('s'))
	s.Update(keyPress('y'))
	if s.engine.Phase() != session.PhaseSummary {
		t.Fatalf("phase after y = %v, want PhaseSummary", s.engine.Phase())
	}

	sum := session.Summarize(s.engine)
	if sum.IncorrectCount != sum.TotalCount {
		t.Errorf("all-skipped exam: incorrect = %d, want %d", sum.IncorrectCount, sum.TotalCount)
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"plain ascii text", 40, "plain ascii text"},
		{"abcdef", 4, "abc…"},
		{"überträgt Moleküle über die Membran", 12, "überträgt M…"},
		{"x", 1, "x"},
		{"xy", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestTimerResumesAfterCancelledSubmit(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeExam})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // first preset

	// The tick loop runs while active and stops once the confirmation
	// opens.
	if _, cmd := s.Update(timerTickMsg(time.Now())); cmd == nil {
		t.Fatal("tick while active should re-schedule")
	}
	s.Update(keyPress('s'))
	if _, cmd := s.Update(timerTickMsg(time.Now())); cmd != nil {
		t.Fatal("tick while confirming should not re-schedule")
	}

	// Backing out of the confirmation must restart it.
	_, cmd := s.Update(keyPress('n'))
	if s.engine.Phase() != session.PhaseActive {
		t.Fatalf("phase after n = %v, want PhaseActive", s.engine.Phase())
	}
	if cmd == nil {
		t.Error("cancelled submit should re-schedule the timer tick")
	}
}

func TestExamCustomCount(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeExam})

	s.Update(keyPress('c'))
	if !s.customCount {
		t.Fatal("c should switch exam setup to custom count entry")
	}
	s.Update(keyPress('x')) // non-digit, dropped
	s.Update(keyPress('7'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if s.engine.Phase() != session.PhaseActive {
		t.Fatalf("phase = %v, want PhaseActive", s.engine.Phase())
	}
	if s.engine.Len() != 7 {
		t.Errorf("Len() = %d, want 7", s.engine.Len())
	}
}

func TestSummaryInspectRoundTrip(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeExam, Count: 5})

	s.Update(keyPress('s'))
	s.Update(keyPress('y'))

	s.Update(keyPress('j'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.engine.Phase() != session.PhaseReviewing || s.engine.ReviewIndex() != 1 {
		t.Fatalf("phase=%v index=%d, want reviewing index 1", s.engine.Phase(), s.engine.ReviewIndex())
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "unanswered") {
		t.Error("inspecting a skipped question should say so")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.engine.Phase() != session.PhaseSummary {
		t.Fatalf("phase = %v, want PhaseSummary", s.engine.Phase())
	}
}

func TestRetryFromSummary(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModeExam, Count: 5})
	s.Update(keyPress('s'))
	s.Update(keyPress('y'))

	s.Update(keyPress('t'))
	if s.engine.Phase() != session.PhaseConfiguring {
		t.Fatalf("phase after retry = %v, want PhaseConfiguring", s.engine.Phase())
	}
}

func TestStatusShowsPosition(t *testing.T) {
	env := testEnv(t)
	s := New(env, session.Request{Mode: session.ModePractice, ModuleID: 1})
	if got := s.Status(); !strings.Contains(got, "Q 1/") {
		t.Errorf("Status() = %q, want question position", got)
	}
}
