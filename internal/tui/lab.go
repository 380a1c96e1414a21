package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"empireos/internal/prompt"
	"empireos/internal/ui"
)

type labState struct {
	tool    int // index into prompt.Tools()
	input   textinput.Model
	spinner spinner.Model

	loading bool
	output  string
	failed  bool
}

func newLabState() labState {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.Gold
	return labState{
		input:   newTextInput("Describe your niche, paste a listing, or name a topic…", 72),
		spinner: sp,
	}
}

func (l labState) currentTool() prompt.Tool {
	return prompt.Tools()[l.tool]
}

func (l labState) selectTool(t prompt.Tool) labState {
	for i, tt := range prompt.Tools() {
		if tt == t {
			l.tool = i
		}
	}
	return l
}

func (m model) updateLab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tools := prompt.Tools()
	switch msg.String() {
	case "up":
		m.lab.tool = (m.lab.tool + len(tools) - 1) % len(tools)
		return m, nil
	case "down":
		m.lab.tool = (m.lab.tool + 1) % len(tools)
		return m, nil
	case "ctrl+y":
		return m.copyOutput(), nil
	case "enter":
		return m.submitLab()
	}

	if !m.lab.input.Focused() {
		switch msg.String() {
		case "y":
			return m.copyOutput(), nil
		case "i", "/":
			cmd := m.lab.input.Focus()
			return m, cmd
		}
		return m, nil
	}

	if msg.String() == "esc" {
		m.lab.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.lab.input, cmd = m.lab.input.Update(msg)
	return m, cmd
}

// submitLab starts a generation. Only one request may be outstanding; blank
// input does nothing.
func (m model) submitLab() (tea.Model, tea.Cmd) {
	if m.lab.loading {
		m.lastLog = "Still generating…"
		return m, nil
	}
	input := m.lab.input.Value()
	if strings.TrimSpace(input) == "" {
		m.lastLog = "Type something first."
		return m, nil
	}
	tool := m.lab.currentTool()
	m.lab.loading = true
	m.lab.output = ""
	m.lab.failed = false
	m.lastLog = fmt.Sprintf("%s working…", tool.Label())
	return m, tea.Batch(m.lab.spinner.Tick, m.generateCmd(tool, input))
}

func (m model) viewLab() string {
	var b strings.Builder
	b.WriteString(ui.H2.Render("AI Lab") + "\n\n")
	for i, t := range prompt.Tools() {
		line := fmt.Sprintf("%s  %s", t.Label(), ui.Muted.Render(t.Description()))
		if i == m.lab.tool {
			line = ui.SelectedRow.Render(t.Label()) + "  " + ui.Muted.Render(t.Description())
		}
		b.WriteString(cursorLine(i == m.lab.tool, line))
	}
	b.WriteString("\n" + m.lab.input.View() + "\n\n")

	switch {
	case m.lab.loading:
		b.WriteString(m.lab.spinner.View() + " Generating…")
	case m.lab.failed:
		b.WriteString(ui.Bad.Render(m.lab.output))
	case m.lab.output != "":
		b.WriteString(m.renderMarkdown(m.lab.output))
	default:
		b.WriteString(ui.Muted.Render("Output appears here."))
	}
	return b.String()
}
