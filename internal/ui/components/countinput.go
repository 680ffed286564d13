package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpatel/biotutor/internal/ui/theme"
)

// CountInput wraps bubbles/textinput for entering a question count.
// Only digits are accepted.
type CountInput struct {
	Model     textinput.Model
	Max       int
	submitted bool
	valid     bool
}

// NewCountInput creates a styled numeric input capped at max.
func NewCountInput(placeholder string, max int) CountInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 3
	ti.Focus()

	return CountInput{Model: ti, Max: max}
}

func (c CountInput) Init() tea.Cmd {
	return c.Model.Focus()
}

// Update handles messages, dropping any non-digit key.
func (c CountInput) Update(msg tea.Msg) (CountInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

func (c CountInput) View() string {
	view := c.Model.View()
	if c.submitted {
		if c.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the entered count, clamped to [1, Max]. ok is false
// when nothing parseable has been typed.
func (c CountInput) Value() (int, bool) {
	n, err := strconv.Atoi(c.Model.Value())
	if err != nil || n < 1 {
		return 0, false
	}
	if c.Max > 0 && n > c.Max {
		n = c.Max
	}
	return n, true
}

// Submit marks the input as submitted with a validation result.
func (c *CountInput) Submit(valid bool) {
	c.submitted = true
	c.valid = valid
}
