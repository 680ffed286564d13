// Package home is the application's entry screen.
package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpatel/biotutor/internal/review"
	"github.com/mpatel/biotutor/internal/router"
	"github.com/mpatel/biotutor/internal/screen"
	"github.com/mpatel/biotutor/internal/screens/bookmarks"
	"github.com/mpatel/biotutor/internal/screens/glossary"
	"github.com/mpatel/biotutor/internal/screens/picker"
	"github.com/mpatel/biotutor/internal/screens/progress"
	"github.com/mpatel/biotutor/internal/screens/study"
	"github.com/mpatel/biotutor/internal/session"
	"github.com/mpatel/biotutor/internal/ui/components"
	"github.com/mpatel/biotutor/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	env  study.Env
	menu components.Menu

	attempts  int
	correct   int
	reviewDue int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen and computes its stats line from the
// ledger.
func New(env study.Env) *HomeScreen {
	h := &HomeScreen{env: env}

	for _, a := range env.Ledger.All() {
		h.attempts++
		if a.Correct {
			h.correct++
		}
	}
	h.reviewDue = len(review.Resolve(env.Bank, env.Ledger))

	reviewDetail := "nothing to review"
	if h.reviewDue > 0 {
		reviewDetail = fmt.Sprintf("%d questions", h.reviewDue)
	}

	items := []components.MenuItem{
		{Label: "Guided Study", Detail: "hints and explanations", Action: h.pick(session.ModeGuided)},
		{Label: "Practice", Detail: "follow-ups and confidence checks", Action: h.pick(session.ModePractice)},
		{Label: "Exam", Detail: "timed, scored at the end", Action: h.pick(session.ModeExam)},
		{Label: "Review Mistakes", Detail: reviewDetail, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: study.New(env, session.Request{Mode: session.ModeReview})}
			}
		}},
		{Label: "My Progress", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(env.Bank, env.Ledger)}
			}
		}},
		{Label: "Bookmarks", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: bookmarks.New(env.Bank, env.Bookmarks)}
			}
		}},
		{Label: "Glossary", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: glossary.New(env.Bank)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) pick(mode session.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: picker.New(h.env, mode)}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("BioTutor") + "\n" +
		theme.Subtitle.Render("Keystone Biology, one question at a time")

	stats := theme.Hint.Render("No answers recorded yet — pick a mode to begin.")
	if h.attempts > 0 {
		pct := h.correct * 100 / h.attempts
		stats = theme.Body.Render(fmt.Sprintf("%d answered · %d%% correct", h.attempts, pct))
		if h.reviewDue > 0 {
			stats += theme.Flagged.Render(fmt.Sprintf("   ↻ %d to review", h.reviewDue))
		}
	}

	content := title + "\n\n" + stats + "\n\n" + h.menu.View()
	card := theme.Card.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
