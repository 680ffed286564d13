// Package bookmarks lists the learner's bookmarked questions.
package bookmarks

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/marks"
	"github.com/mpatel/biotutor/internal/screen"
	"github.com/mpatel/biotutor/internal/ui/layout"
	"github.com/mpatel/biotutor/internal/ui/theme"
)

// BookmarksScreen shows the bookmarked questions with their answers,
// as a read-through study sheet. Bookmarks can be removed in place.
type BookmarksScreen struct {
	bank      *bank.Bank
	registry  *marks.Set
	questions []bank.Question
	cursor    int
	expanded  bool
}

var _ screen.Screen = (*BookmarksScreen)(nil)
var _ screen.KeyHintProvider = (*BookmarksScreen)(nil)

// New loads the current bookmark set.
func New(b *bank.Bank, registry *marks.Set) *BookmarksScreen {
	s := &BookmarksScreen{bank: b, registry: registry}
	s.reload()
	return s
}

func (s *BookmarksScreen) reload() {
	s.questions = s.bank.ByIDs(s.registry.IDSet())
	if s.cursor > len(s.questions)-1 {
		s.cursor = len(s.questions) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *BookmarksScreen) Init() tea.Cmd {
	return nil
}

func (s *BookmarksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.questions) == 0 {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.questions)-1 {
			s.cursor++
		}
	case "enter":
		s.expanded = !s.expanded
	case "d":
		s.registry.Remove(s.questions[s.cursor].ID)
		s.reload()
	}
	return s, nil
}

func (s *BookmarksScreen) KeyHints() []layout.KeyHint {
	if len(s.questions) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Show answer"},
		{Key: "D", Description: "Remove"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BookmarksScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		card := theme.Card.Render(
			theme.Title.Render("No bookmarks") + "\n\n" +
				theme.Body.Render("Press B on any question during a session to bookmark it."))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Bookmarks (%d)", len(s.questions))) + "\n\n")

	for i, q := range s.questions {
		prefix := "  "
		line := fmt.Sprintf("Module %d · %s — %s", q.Module, q.Topic, q.Text)
		if i == s.cursor {
			prefix = theme.Selected.Render("▸ ")
			b.WriteString(prefix + theme.Selected.Render(line) + "\n")
			if s.expanded {
				correct := q.Option(q.CorrectOptionID)
				b.WriteString(theme.Correct.Render("    "+q.CorrectOptionID+") "+correct.Text) + "\n")
				b.WriteString(theme.Hint.Render("    "+q.Explanation) + "\n")
			}
		} else {
			b.WriteString(prefix + theme.Body.Render(line) + "\n")
		}
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *BookmarksScreen) Title() string {
	return "Bookmarks"
}
