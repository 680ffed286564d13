// Package glossary is a read-only browser for the course's key terms.
package glossary

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/screen"
	"github.com/mpatel/biotutor/internal/ui/theme"
)

// GlossaryScreen lists every term with its definition; the selected
// term also shows its example when one exists.
type GlossaryScreen struct {
	terms  []bank.GlossaryTerm
	cursor int
}

var _ screen.Screen = (*GlossaryScreen)(nil)

// New creates the glossary browser.
func New(b *bank.Bank) *GlossaryScreen {
	return &GlossaryScreen{terms: b.Glossary()}
}

func (g *GlossaryScreen) Init() tea.Cmd {
	return nil
}

func (g *GlossaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if g.cursor > 0 {
			g.cursor--
		}
	case "down", "j":
		if g.cursor < len(g.terms)-1 {
			g.cursor++
		}
	}
	return g, nil
}

func (g *GlossaryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Glossary") + "\n\n")

	for i, t := range g.terms {
		if i == g.cursor {
			b.WriteString(theme.Selected.Render("▸ "+t.Term) + "\n")
			b.WriteString(theme.Body.Render("  "+t.Definition) + "\n")
			if t.Example != "" {
				b.WriteString(theme.Hint.Render("  e.g. "+t.Example) + "\n")
			}
		} else {
			b.WriteString(theme.Body.Render("  "+t.Term) + "\n")
		}
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (g *GlossaryScreen) Title() string {
	return "Glossary"
}
