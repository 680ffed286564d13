// Package picker is the module/topic selection step between the home
// menu and a session.
package picker

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/router"
	"github.com/mpatel/biotutor/internal/screen"
	"github.com/mpatel/biotutor/internal/screens/study"
	"github.com/mpatel/biotutor/internal/session"
	"github.com/mpatel/biotutor/internal/ui/components"
	"github.com/mpatel/biotutor/internal/ui/theme"
)

// PickerScreen walks the learner from a mode to a concrete session
// request: first a module (or the whole bank), then a topic (or the
// whole module), then hands off to the study screen in place.
type PickerScreen struct {
	env  study.Env
	mode session.Mode

	menu     components.Menu
	moduleID int // 0 until a module step completes
	onTopics bool
}

var _ screen.Screen = (*PickerScreen)(nil)

// New creates the picker for the given mode.
func New(env study.Env, mode session.Mode) *PickerScreen {
	p := &PickerScreen{env: env, mode: mode}
	p.menu = p.moduleMenu()
	return p
}

func (p *PickerScreen) moduleMenu() components.Menu {
	items := []components.MenuItem{
		{
			Label:  "Everything",
			Detail: fmt.Sprintf("%d questions", len(p.env.Bank.Questions())),
			Action: func() tea.Cmd { return p.launch(session.Request{Mode: p.mode}) },
		},
	}
	for _, m := range bank.Modules {
		mod := m
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Module %d", mod.ID),
			Detail: fmt.Sprintf("%d topics", len(mod.Topics)),
			Action: func() tea.Cmd {
				p.moduleID = mod.ID
				p.onTopics = true
				p.menu = p.topicMenu(mod)
				return nil
			},
		})
	}
	return components.NewMenu(items)
}

func (p *PickerScreen) topicMenu(mod bank.Module) components.Menu {
	items := []components.MenuItem{
		{
			Label:  "Whole module",
			Detail: fmt.Sprintf("%d questions", len(p.env.Bank.ByModule(mod.ID))),
			Action: func() tea.Cmd {
				return p.launch(session.Request{Mode: p.mode, ModuleID: mod.ID})
			},
		},
	}
	for _, t := range mod.Topics {
		topic := t
		n := len(p.env.Bank.ByTopic(mod.ID, topic))
		items = append(items, components.MenuItem{
			Label:    topic,
			Detail:   fmt.Sprintf("%d questions", n),
			Disabled: n == 0,
			Action: func() tea.Cmd {
				return p.launch(session.Request{Mode: p.mode, ModuleID: mod.ID, Topic: topic})
			},
		})
	}
	return components.NewMenu(items)
}

func (p *PickerScreen) launch(req session.Request) tea.Cmd {
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: study.New(p.env, req)}
	}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		// Back out of the topic step without leaving the picker.
		if kmsg.String() == "backspace" && p.onTopics {
			p.onTopics = false
			p.moduleID = 0
			p.menu = p.moduleMenu()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	heading := "Where do you want to study?"
	if p.onTopics {
		heading = fmt.Sprintf("Module %d — pick a topic", p.moduleID)
	}
	content := theme.Title.Render(heading) + "\n\n" + p.menu.View()
	card := theme.Card.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (p *PickerScreen) Title() string {
	switch p.mode {
	case session.ModeGuided:
		return "Guided Study"
	case session.ModePractice:
		return "Practice"
	case session.ModeExam:
		return "Exam"
	}
	return "Choose"
}
