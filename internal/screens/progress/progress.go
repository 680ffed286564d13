// Package progress shows per-topic accuracy computed from the ledger.
package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
	"github.com/mpatel/biotutor/internal/review"
	"github.com/mpatel/biotutor/internal/screen"
	"github.com/mpatel/biotutor/internal/ui/components"
	"github.com/mpatel/biotutor/internal/ui/theme"
)

// ProgressScreen renders a read-only accuracy table, one row per topic
// in course order, plus the questions answered without confidence.
type ProgressScreen struct {
	bank     *bank.Bank
	accuracy map[history.TopicKey]history.Accuracy
	shaky    []bank.Question
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New computes the accuracy table from the ledger.
func New(b *bank.Bank, ledger *history.Ledger) *ProgressScreen {
	return &ProgressScreen{
		bank:     b,
		accuracy: ledger.TopicAccuracy(b),
		shaky:    review.LowConfidence(b, ledger),
	}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Progress by Topic") + "\n\n")

	for _, mod := range bank.Modules {
		b.WriteString(theme.Selected.Render(fmt.Sprintf("Module %d", mod.ID)) + "\n")
		for _, topic := range mod.Topics {
			acc := p.accuracy[history.TopicKey{Module: mod.ID, Topic: topic}]
			if acc.Total == 0 {
				b.WriteString(fmt.Sprintf("  %-32s %s\n", topic, theme.Hint.Render("not started")))
				continue
			}
			bar := components.NewProgressBar("", float64(acc.Percent())/100, true, 30)
			b.WriteString(fmt.Sprintf("  %-32s %s  %s\n",
				topic, bar.View(),
				theme.Hint.Render(fmt.Sprintf("%d/%d", acc.Correct, acc.Total))))
		}
		b.WriteString("\n")
	}

	if len(p.shaky) > 0 {
		b.WriteString(theme.Flagged.Render(fmt.Sprintf("Felt unsure on %d:", len(p.shaky))) + "\n")
		for _, q := range p.shaky {
			b.WriteString(theme.Hint.Render("  • "+q.Topic) + " " + theme.Body.Render(q.ID) + "\n")
		}
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}
