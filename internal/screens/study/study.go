package study

import (
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mpatel/biotutor/internal/history"
	"github.com/mpatel/biotutor/internal/screen"
	"github.com/mpatel/biotutor/internal/session"
	"github.com/mpatel/biotutor/internal/ui/components"
	"github.com/mpatel/biotutor/internal/ui/layout"
)

// StudyScreen drives one session.Engine: it translates key presses
// into engine intents and renders the engine's state after every one.
type StudyScreen struct {
	env    Env
	engine *session.Engine
	errMsg string

	options   components.OptionList
	rationale components.OptionList

	presets       components.Menu
	countInput    components.CountInput
	customCount   bool
	summaryCursor int
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)

// New builds the screen for the requested session. A validation
// failure is not fatal: the screen renders the message with a way
// back instead of starting.
func New(env Env, req session.Request) *StudyScreen {
	s := &StudyScreen{env: env}

	eng, err := session.New(env.Bank, env.Ledger, env.ReviewLater, env.Sampler, req, env.Log)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.engine = eng

	if eng.Phase() == session.PhaseConfiguring {
		s.presets = s.presetMenu()
	}
	s.syncQuestion()
	return s
}

func (s *StudyScreen) presetMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(session.ExamPresets))
	for _, n := range session.ExamPresets {
		count := n
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d questions", count),
			Action: func() tea.Cmd { return s.startExam(count) },
		})
	}
	return components.NewMenu(items)
}

func (s *StudyScreen) startExam(count int) tea.Cmd {
	s.engine.Start(count)
	s.syncQuestion()
	return s.tickCmd()
}

func (s *StudyScreen) Init() tea.Cmd {
	if s.engine != nil && s.engine.Phase() == session.PhaseActive && s.engine.Config().Timed {
		return s.tickCmd()
	}
	return nil
}

func (s *StudyScreen) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// syncQuestion rebuilds the option lists for the current index.
func (s *StudyScreen) syncQuestion() {
	if s.engine == nil {
		return
	}
	rec := s.engine.Current()
	if rec == nil {
		return
	}
	cfg := s.engine.Config()

	s.options = components.NewOptionList(rec.Question.Options, rec.Question.CorrectOptionID, func(id string) tea.Cmd {
		s.engine.SelectOption(id)
		return nil
	})
	s.options.HideResult = cfg.FreeNavigation
	if rec.Answered() {
		s.options = s.options.Resolve(rec.Answer.SelectedOptionID)
	}

	if cfg.RationaleFollowUps && rec.Question.Rationale != nil {
		r := rec.Question.Rationale
		s.rationale = components.NewOptionList(r.Options, r.CorrectOptionID, func(id string) tea.Cmd {
			s.engine.SelectRationaleOption(id)
			return nil
		})
		if rec.RationaleAnswer != nil {
			s.rationale = s.rationale.Resolve(rec.RationaleAnswer.SelectedOptionID)
		}
	} else {
		s.rationale = components.OptionList{}
	}
}

func (s *StudyScreen) Title() string {
	if s.engine == nil {
		return "Study"
	}
	switch s.engine.Mode() {
	case session.ModeGuided:
		return "Guided Study"
	case session.ModePractice:
		return "Practice"
	case session.ModeExam:
		return "Exam"
	case session.ModeReview:
		return "Review"
	}
	return "Study"
}

// Status puts the question position (and the exam timer) in the header.
func (s *StudyScreen) Status() string {
	if s.engine == nil {
		return ""
	}
	switch s.engine.Phase() {
	case session.PhaseActive, session.PhaseConfirming:
		pos := fmt.Sprintf("Q %d/%d", s.engine.Index()+1, s.engine.Len())
		if s.engine.Config().Timed {
			el := s.engine.Elapsed().Round(time.Second)
			pos += fmt.Sprintf("  %02d:%02d", int(el.Minutes()), int(el.Seconds())%60)
		}
		return pos
	}
	return ""
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if tick, ok := msg.(timerTickMsg); ok {
		_ = tick
		if s.engine != nil && s.engine.Tick(time.Second) {
			return s, s.tickCmd()
		}
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.engine == nil {
		return s, nil
	}

	switch s.engine.Phase() {
	case session.PhaseConfiguring:
		return s.updateConfiguring(kmsg)
	case session.PhaseActive:
		return s.updateActive(kmsg)
	case session.PhaseConfirming:
		return s.updateConfirming(kmsg)
	case session.PhaseSummary:
		return s.updateSummary(kmsg)
	case session.PhaseReviewing:
		if k := kmsg.String(); k == "enter" || k == "b" || k == "backspace" {
			s.engine.BackToSummary()
		}
		return s, nil
	}
	return s, nil
}

func (s *StudyScreen) updateConfiguring(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.customCount {
		switch kmsg.String() {
		case "enter":
			n, ok := s.countInput.Value()
			s.countInput.Submit(ok)
			if ok {
				s.customCount = false
				return s, s.startExam(n)
			}
			return s, nil
		case "backspace":
			if _, ok := s.countInput.Value(); !ok {
				s.customCount = false
				return s, nil
			}
		}
		var cmd tea.Cmd
		s.countInput, cmd = s.countInput.Update(kmsg)
		return s, cmd
	}

	if kmsg.String() == "c" {
		s.customCount = true
		s.countInput = components.NewCountInput("20", s.engine.PoolSize())
		return s, s.countInput.Init()
	}

	var cmd tea.Cmd
	s.presets, cmd = s.presets.Update(kmsg)
	return s, cmd
}

func (s *StudyScreen) updateActive(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	rec := s.engine.Current()
	cfg := s.engine.Config()

	switch kmsg.String() {
	case "right", "n":
		s.engine.Next()
		if s.engine.Phase() == session.PhaseActive {
			s.syncQuestion()
		}
		return s, nil
	case "left", "p":
		s.engine.Previous()
		s.syncQuestion()
		return s, nil
	case "u":
		// Exam shortcut: jump to the first unanswered question.
		if cfg.FreeNavigation {
			for i, r := range s.engine.Records() {
				if !r.Answered() {
					s.engine.JumpTo(i)
					s.syncQuestion()
					break
				}
			}
		}
		return s, nil
	case "h":
		s.engine.RevealHint()
		return s, nil
	case "f":
		if cfg.Flagging {
			s.engine.ToggleFlag()
		}
		return s, nil
	case "r":
		s.engine.ToggleReviewLater()
		return s, nil
	case "b":
		if s.env.Bookmarks != nil && rec != nil {
			s.env.Bookmarks.Toggle(rec.Question.ID)
		}
		return s, nil
	case "1", "2", "3":
		if cfg.Confidence {
			levels := map[string]history.Confidence{
				"1": history.ConfidenceLow,
				"2": history.ConfidenceMedium,
				"3": history.ConfidenceHigh,
			}
			s.engine.SetConfidence(levels[kmsg.String()])
		}
		return s, nil
	case "s":
		s.engine.RequestSubmit()
		return s, nil
	}

	// Remaining keys drive whichever option list is live: the primary
	// until it is answered, then the rationale follow-up if one gates
	// this question.
	var cmd tea.Cmd
	if rec != nil && rec.Answered() && cfg.RationaleFollowUps && rec.Question.Rationale != nil && rec.RationaleAnswer == nil {
		s.rationale, cmd = s.rationale.Update(kmsg)
	} else {
		s.options, cmd = s.options.Update(kmsg)
	}
	return s, cmd
}

func (s *StudyScreen) updateConfirming(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "y", "enter":
		s.engine.ConfirmSubmit()
		s.summaryCursor = 0
	case "n":
		s.engine.CancelSubmit()
		// The tick loop died when the confirmation opened; restart it.
		if s.engine.Config().Timed {
			return s, s.tickCmd()
		}
	}
	return s, nil
}

func (s *StudyScreen) updateSummary(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "up", "k":
		if s.summaryCursor > 0 {
			s.summaryCursor--
		}
	case "down", "j":
		if s.summaryCursor < s.engine.Len()-1 {
			s.summaryCursor++
		}
	case "enter":
		s.engine.InspectAnswer(s.summaryCursor)
	case "t":
		s.engine.Retry()
		if s.engine.Phase() == session.PhaseConfiguring {
			s.presets = s.presetMenu()
			return s, nil
		}
		s.syncQuestion()
		return s, s.Init()
	}
	return s, nil
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.engine == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	switch s.engine.Phase() {
	case session.PhaseEmpty:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case session.PhaseConfiguring:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Count"},
			{Key: "C", Description: "Custom count"},
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	case session.PhaseActive:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "←→", Description: "Move"},
		}
		cfg := s.engine.Config()
		if cfg.Hints {
			hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
		}
		if cfg.Confidence {
			hints = append(hints, layout.KeyHint{Key: "1-3", Description: "Confidence"})
		}
		if cfg.Flagging {
			hints = append(hints, layout.KeyHint{Key: "F", Description: "Flag"})
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
		}
		hints = append(hints, layout.KeyHint{Key: "B", Description: "Bookmark"})
		return hints
	case session.PhaseConfirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep going"},
		}
	case session.PhaseSummary:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Pick"},
			{Key: "Enter", Description: "Inspect"},
			{Key: "T", Description: "Try again"},
			{Key: "Esc", Description: "Done"},
		}
	case session.PhaseReviewing:
		return []layout.KeyHint{{Key: "Enter", Description: "Back to results"}}
	}
	return nil
}

// indexBadge renders a question's position for lists: "7." with flag
// and bookmark markers.
func (s *StudyScreen) indexBadge(i int) string {
	rec := s.engine.Record(i)
	b := strconv.Itoa(i+1) + "."
	if rec.Flagged {
		b += " ⚑"
	}
	if s.env.Bookmarks != nil && s.env.Bookmarks.Contains(rec.Question.ID) {
		b += " ◎"
	}
	return b
}
