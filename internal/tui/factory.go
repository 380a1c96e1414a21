package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"empireos/internal/engine"
	"empireos/internal/ui"
)

type factoryState struct {
	col    int // index into engine.Stages()
	row    int
	adding bool
	input  textinput.Model

	followID int64 // item to select after the next reload
}

func newFactoryState() factoryState {
	return factoryState{input: newTextInput("New batch title", 40)}
}

func (f factoryState) column(items []engine.Item) []engine.Item {
	return engine.GroupByStage(items)[engine.Stages()[f.col]]
}

func (f factoryState) clamp(items []engine.Item) factoryState {
	if f.followID != 0 {
		for i, it := range f.column(items) {
			if it.ID == f.followID {
				f.row = i
			}
		}
		f.followID = 0
	}
	n := len(f.column(items))
	if f.row >= n {
		f.row = n - 1
	}
	if f.row < 0 {
		f.row = 0
	}
	return f
}

// follow moves the cursor to the column an item now sits in. The row is
// resolved by clamp once the board reloads.
func (f factoryState) follow(it engine.Item) factoryState {
	if i := it.Stage.Index(); i >= 0 {
		f.col = i
		f.followID = it.ID
	}
	return f
}

func (f factoryState) selected(items []engine.Item) (engine.Item, bool) {
	col := f.column(items)
	if f.row < 0 || f.row >= len(col) {
		return engine.Item{}, false
	}
	return col[f.row], true
}

func (m model) updateFactory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.factory
	if f.adding {
		switch msg.String() {
		case "esc":
			f.adding = false
			f.input.Blur()
			f.input.SetValue("")
			m.factory = f
			return m, nil
		case "enter":
			title := f.input.Value()
			f.adding = false
			f.input.Blur()
			f.input.SetValue("")
			m.factory = f
			return m, m.addCmd(title)
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		m.factory = f
		return m, cmd
	}

	stages := engine.Stages()
	switch msg.String() {
	case "left", "h":
		if f.col > 0 {
			f.col--
		}
		f = f.clamp(m.items)
	case "right", "l":
		if f.col < len(stages)-1 {
			f.col++
		}
		f = f.clamp(m.items)
	case "up", "k":
		if f.row > 0 {
			f.row--
		}
	case "down", "j":
		f.row++
		f = f.clamp(m.items)
	case "a", "n":
		f.adding = true
		cmd := f.input.Focus()
		m.factory = f
		return m, cmd
	case ">", ".":
		if it, ok := f.selected(m.items); ok {
			m.factory = f
			return m, m.moveCmd(it.ID, true)
		}
	case "<", ",":
		if it, ok := f.selected(m.items); ok {
			m.factory = f
			return m, m.moveCmd(it.ID, false)
		}
	}
	m.factory = f
	return m, nil
}

func (m model) viewFactory() string {
	groups := engine.GroupByStage(m.items)
	colWidth := 26
	if m.width > 0 {
		if w := (m.width - 8) / len(engine.Stages()); w > 16 {
			colWidth = w
		}
	}

	cols := make([]string, 0, len(engine.Stages()))
	for ci, st := range engine.Stages() {
		var b strings.Builder
		b.WriteString(ui.PanelTitle.Render(fmt.Sprintf("%s (%d)", ui.StageTitle(st), len(groups[st]))) + "\n")
		for ri, it := range groups[st] {
			card := fmt.Sprintf("#%d %s\n   %s", it.ID, it.Title, ui.PriorityBadge(it.Priority))
			if ci == m.factory.col && ri == m.factory.row {
				card = ui.Gold.Render(fmt.Sprintf("#%d %s", it.ID, it.Title)) + "\n   " + ui.PriorityBadge(it.Priority)
			}
			b.WriteString(card + "\n")
		}
		if len(groups[st]) == 0 {
			b.WriteString(ui.Muted.Render("(empty)") + "\n")
		}
		cols = append(cols, ui.Panel.Width(colWidth).Render(b.String()))
	}

	out := ui.H2.Render("Product Factory") + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if m.factory.adding {
		out += "\n\n" + m.factory.input.View()
	}
	return out
}
