package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/ui/theme"
)

// OptionList renders a question's answer choices. Movement stays live
// after an answer lands so the learner can read per-option feedback,
// but Enter no longer re-submits; the engine owns answer finality.
type OptionList struct {
	Options   []bank.Option
	CorrectID string
	Cursor    int

	// ChosenID is the finalized selection; empty while unanswered.
	ChosenID string

	// HideResult suppresses correctness coloring after an answer, for
	// exam sessions where feedback waits until the summary.
	HideResult bool

	// OnChoose is invoked once with the chosen option id.
	OnChoose func(optionID string) tea.Cmd
}

// NewOptionList creates an option list for the given choices.
func NewOptionList(options []bank.Option, correctID string, onChoose func(string) tea.Cmd) OptionList {
	return OptionList{
		Options:   options,
		CorrectID: correctID,
		OnChoose:  onChoose,
	}
}

// Answered reports whether a choice has been finalized.
func (o OptionList) Answered() bool { return o.ChosenID != "" }

// Resolve marks the list as already answered, for re-opening a
// question whose selection happened earlier.
func (o OptionList) Resolve(chosenID string) OptionList {
	o.ChosenID = chosenID
	return o
}

// Update handles cursor movement and selection.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter":
		if o.Answered() || o.Cursor >= len(o.Options) {
			return o, nil
		}
		o.ChosenID = o.Options[o.Cursor].ID
		if o.OnChoose != nil {
			return o, o.OnChoose(o.ChosenID)
		}
	}

	return o, nil
}

// View renders the choices. Once answered, the correct option shows
// green, the learner's wrong pick red, and the option under the cursor
// reveals its feedback line when it has one.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, opt.ID, opt.Text)

		if o.Answered() && o.HideResult {
			switch {
			case opt.ID == o.ChosenID:
				s += theme.Flagged.Render(line+"  ●") + "\n"
			case i == o.Cursor:
				s += lipgloss.NewStyle().Foreground(theme.Primary).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
			continue
		}

		if o.Answered() {
			switch {
			case opt.ID == o.CorrectID:
				s += theme.Correct.Render(line) + "\n"
			case opt.ID == o.ChosenID:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
			if i == o.Cursor && opt.Feedback != "" {
				s += theme.Hint.Render("      "+opt.Feedback) + "\n"
			}
		} else {
			if i == o.Cursor {
				s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
		}
	}
	return s
}
