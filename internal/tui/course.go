package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"empireos/internal/content"
	"empireos/internal/engine"
	"empireos/internal/prompt"
	"empireos/internal/ui"
)

type courseLevel int

const (
	levelModules courseLevel = iota
	levelModule
	levelConcept
)

type courseState struct {
	level   courseLevel
	module  int // index into the catalog
	cursor  int
	concept int
}

func (m model) currentModule() *content.Module {
	mods := m.svc.Catalog().Modules()
	if m.course.module < 0 || m.course.module >= len(mods) {
		return nil
	}
	return &mods[m.course.module]
}

// courseRows is the number of selectable rows at the current level.
func (m model) courseRows() int {
	switch m.course.level {
	case levelModules:
		return len(m.svc.Catalog().Modules())
	case levelModule:
		mod := m.currentModule()
		if mod == nil {
			return 0
		}
		return len(mod.Concepts) + len(mod.ActionItems)
	default:
		return 0
	}
}

func (m model) updateCourse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.course
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < m.courseRows()-1 {
			c.cursor++
		}
	case "esc", "backspace":
		switch c.level {
		case levelConcept:
			c.level = levelModule
			c.cursor = c.concept
		case levelModule:
			c.level = levelModules
			c.cursor = c.module
		}
	case "enter", " ":
		switch c.level {
		case levelModules:
			c.module = c.cursor
			c.level = levelModule
			c.cursor = 0
		case levelModule:
			mod := m.currentModule()
			if mod == nil {
				break
			}
			if c.cursor < len(mod.Concepts) {
				c.concept = c.cursor
				c.level = levelConcept
				break
			}
			idx := c.cursor - len(mod.Concepts)
			if idx < len(mod.ActionItems) {
				m.course = c
				return m, m.toggleCmd(mod.ActionItems[idx].ID)
			}
		}
	case "g":
		mod := m.currentModule()
		if mod == nil {
			break
		}
		idx := -1
		switch {
		case c.level == levelConcept:
			idx = c.concept
		case c.level == levelModule && c.cursor < len(mod.Concepts):
			idx = c.cursor
		}
		if idx >= 0 {
			m.course = c
			return m.openWorksheet(mod.Concepts[idx].Title)
		}
	}
	m.course = c
	return m, nil
}

// openWorksheet switches to the lab with the tutor tool and the concept title
// filled in, ready to submit.
func (m model) openWorksheet(title string) (tea.Model, tea.Cmd) {
	tool, input, err := prompt.ForConcept(title)
	if err != nil {
		m.lastLog = "This concept has no title to build a worksheet from."
		return m, nil
	}
	m.lab = m.lab.selectTool(tool)
	m.lab.input.SetValue(input)
	m.lab.input.CursorEnd()
	m.lastLog = fmt.Sprintf("Worksheet for %q ready. Press enter to generate.", input)
	return m.switchView(viewLab)
}

func (m model) viewCourse() string {
	switch m.course.level {
	case levelModule:
		return m.viewModule()
	case levelConcept:
		return m.viewConcept()
	}

	var b strings.Builder
	b.WriteString(ui.H2.Render("Curriculum") + "\n\n")
	for i, mod := range m.svc.Catalog().Modules() {
		done := 0
		for _, it := range mod.ActionItems {
			if m.completed[it.ID] {
				done++
			}
		}
		line := fmt.Sprintf("%d. %s  %s  %d/%d", mod.ID, mod.Title, ui.Muted.Render(mod.Duration), done, len(mod.ActionItems))
		if engine.ModuleComplete(mod, m.completed) && len(mod.ActionItems) > 0 {
			line += " " + ui.IconDone
		}
		b.WriteString(cursorLine(i == m.course.cursor, line))
	}
	return b.String()
}

func (m model) viewModule() string {
	mod := m.currentModule()
	if mod == nil {
		return "(no module)"
	}
	var b strings.Builder
	b.WriteString(ui.H2.Render(fmt.Sprintf("Module %d: %s", mod.ID, mod.Title)) + "  " + ui.Muted.Render(mod.Duration) + "\n")
	b.WriteString(ui.Muted.Render(mod.Description) + "\n\n")
	b.WriteString(mod.Overview + "\n\n")

	b.WriteString(ui.PanelTitle.Render("Concepts") + "\n")
	for i, c := range mod.Concepts {
		b.WriteString(cursorLine(m.course.cursor == i, fmt.Sprintf("%s - %s", c.Title, ui.Muted.Render(c.Summary))))
	}
	b.WriteString("\n" + ui.PanelTitle.Render("Action items") + "\n")
	for i, it := range mod.ActionItems {
		row := len(mod.Concepts) + i
		b.WriteString(cursorLine(m.course.cursor == row, fmt.Sprintf("%s %s", ui.Check(m.completed[it.ID]), it.Text)))
	}
	return b.String()
}

func (m model) viewConcept() string {
	mod := m.currentModule()
	if mod == nil || m.course.concept >= len(mod.Concepts) {
		return "(no concept)"
	}
	c := mod.Concepts[m.course.concept]
	var b strings.Builder
	b.WriteString(ui.H2.Render(c.Title) + "\n")
	b.WriteString(ui.Muted.Render(c.Summary) + "\n\n")
	b.WriteString(m.renderMarkdown(c.Details) + "\n\n")
	b.WriteString(ui.Key.Render("g") + " Generate Worksheet with AI")
	return b.String()
}

func cursorLine(selected bool, s string) string {
	if selected {
		return "> " + s + "\n"
	}
	return "  " + s + "\n"
}
