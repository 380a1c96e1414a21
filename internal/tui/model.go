package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"empireos/internal/engine"
	"empireos/internal/prompt"
	"empireos/internal/ui"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

type view int

const (
	viewCourse view = iota
	viewLab
	viewFactory
	viewSimulator
	viewCalculator
)

var viewTabs = []struct {
	icon string
	name string
}{
	{ui.IconCourse, "Course"},
	{ui.IconLab, "AI Lab"},
	{ui.IconFactory, "Factory"},
	{ui.IconChart, "Simulator"},
	{ui.IconCalc, "Profit"},
}

type model struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	view      view
	completed map[string]bool
	items     []engine.Item

	course  courseState
	lab     labState
	factory factoryState
	sim     numberForm
	calc    numberForm
	offsite bool

	renderer *glamour.TermRenderer

	lastLog string
	err     error
}

type sessionLoadedMsg struct {
	completed map[string]bool
	items     []engine.Item
	err       error
}

type toggledMsg struct {
	id   string
	done bool
	err  error
}

type movedMsg struct {
	item engine.Item
	err  error
}

type addedMsg struct {
	item engine.Item
	err  error
}

type generatedMsg struct {
	tool prompt.Tool
	text string
	err  error
}

func newModel(ctx context.Context, svc *engine.Service) model {
	sim := engine.DefaultSimulation()
	calc := engine.DefaultProfitInput()

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	return model{
		ctx:       ctx,
		svc:       svc,
		completed: map[string]bool{},
		lab:       newLabState(),
		factory:   newFactoryState(),
		sim: newNumberForm(
			[]string{"Starting listings", "Uploads per week", "Average price ($)", "Conversion rate (%)", "Visits per listing"},
			[]float64{sim.StartingListings, sim.UploadRatePerWeek, sim.AvgPrice, sim.ConversionRate, sim.VisitsPerListing},
		),
		calc: newNumberForm(
			[]string{"Sale price ($)", "Production cost ($)", "Ad spend per sale ($)"},
			[]float64{calc.Price, calc.Cost, calc.AdSpend},
		),
		offsite:  calc.IsOffsiteAds,
		renderer: renderer,
		lastLog:  "Welcome to Empire OS.",
	}
}

func (m model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		completed, err := m.svc.CompletedMap(m.ctx)
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		items, err := m.svc.Board(m.ctx)
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		return sessionLoadedMsg{completed: completed, items: items}
	}
}

func (m model) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		done, err := m.svc.ToggleActionItem(m.ctx, id)
		return toggledMsg{id: id, done: done, err: err}
	}
}

func (m model) moveCmd(id int64, forward bool) tea.Cmd {
	return func() tea.Msg {
		var (
			it  engine.Item
			err error
		)
		if forward {
			it, err = m.svc.Advance(m.ctx, id)
		} else {
			it, err = m.svc.Retreat(m.ctx, id)
		}
		return movedMsg{item: it, err: err}
	}
}

func (m model) addCmd(title string) tea.Cmd {
	return func() tea.Msg {
		it, err := m.svc.AddItem(m.ctx, title)
		return addedMsg{item: it, err: err}
	}
}

func (m model) generateCmd(tool prompt.Tool, input string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Generate(m.ctx, tool, input)
		if err != nil {
			return generatedMsg{tool: tool, err: err}
		}
		return generatedMsg{tool: tool, text: res.Text}
	}
}

func (m model) stats() engine.Stats {
	live := 0
	for _, it := range m.items {
		if it.Stage == engine.StageLive {
			live++
		}
	}
	return engine.Progress(m.completed, m.svc.Catalog().ActionItemCount(), live)
}

// typing reports whether key presses belong to a text field.
func (m model) typing() bool {
	switch m.view {
	case viewLab:
		return m.lab.input.Focused()
	case viewFactory:
		return m.factory.adding
	case viewSimulator, viewCalculator:
		return true
	default:
		return false
	}
}

func (m model) switchView(v view) (model, tea.Cmd) {
	m.view = v
	if v == viewLab && !m.lab.loading {
		cmd := m.lab.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if wrap := msg.Width - 8; wrap > 20 {
			if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap)); err == nil {
				m.renderer = r
			}
		}
		return m, nil
	case sessionLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.completed = msg.completed
		m.items = msg.items
		m.factory = m.factory.clamp(m.items)
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		m.completed[msg.id] = msg.done
		if msg.done {
			m.lastLog = fmt.Sprintf("%s %s done: +%d XP", ui.IconDone, msg.id, engine.XPPerActionItem)
		} else {
			m.lastLog = fmt.Sprintf("%s unchecked", msg.id)
		}
		return m, nil
	case movedMsg:
		if msg.err != nil {
			m.lastLog = "Move failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("%s moved to %s", msg.item.Title, ui.StageTitle(msg.item.Stage))
		m.factory = m.factory.follow(msg.item)
		return m, m.loadCmd()
	case addedMsg:
		if msg.err != nil {
			m.lastLog = "Add failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("%s %s added to backlog", ui.IconPlus, msg.item.Title)
		m.factory = m.factory.follow(msg.item)
		return m, m.loadCmd()
	case generatedMsg:
		m.lab.loading = false
		if msg.err != nil {
			m.lab.output = engine.GenerateFailedMessage
			m.lab.failed = true
			m.lastLog = "Generation failed: " + msg.err.Error()
		} else {
			m.lab.output = msg.text
			m.lab.failed = false
			m.lastLog = fmt.Sprintf("%s %s finished", ui.IconSparkle, msg.tool.Label())
		}
		return m, nil
	case spinner.TickMsg:
		if !m.lab.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.lab.spinner, cmd = m.lab.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.switchView((m.view + 1) % view(len(viewTabs)))
	case "shift+tab":
		return m.switchView((m.view + view(len(viewTabs)) - 1) % view(len(viewTabs)))
	}

	if !m.typing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "1", "2", "3", "4", "5":
			return m.switchView(view(msg.String()[0] - '1'))
		}
	}

	switch m.view {
	case viewCourse:
		return m.updateCourse(msg)
	case viewLab:
		return m.updateLab(msg)
	case viewFactory:
		return m.updateFactory(msg)
	case viewSimulator:
		return m.updateSimulator(msg)
	case viewCalculator:
		return m.updateCalculator(msg)
	}
	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	var body string
	switch m.view {
	case viewCourse:
		body = m.viewCourse()
	case viewLab:
		body = m.viewLab()
	case viewFactory:
		body = m.viewFactory()
	case viewSimulator:
		body = m.viewSimulator()
	case viewCalculator:
		body = m.viewCalculator()
	}

	return m.renderHeader() + "\n" + m.renderTabs() + "\n\n" + body + "\n" + m.renderFooter()
}

func (m model) renderHeader() string {
	st := m.stats()
	next := ui.Muted.Render("top tier")
	if st.NextTier != "" {
		next = ui.Muted.Render(fmt.Sprintf("%d XP to %s", st.XPToNext, st.NextTier))
	}
	return fmt.Sprintf("%s | %s | %s %d XP (%s) | Course %s %d%%",
		ui.Heading(ui.IconTrophy, "Empire OS"),
		ui.TierText(st.Tier),
		ui.IconBolt, st.XP, next,
		ui.ProgressBar(st.Percent, 20), st.Percent,
	)
}

func (m model) renderTabs() string {
	parts := make([]string, 0, len(viewTabs))
	for i, t := range viewTabs {
		label := fmt.Sprintf("%d %s %s", i+1, t.icon, t.name)
		if view(i) == m.view {
			parts = append(parts, ui.ActiveTab.Render(label))
		} else {
			parts = append(parts, ui.InactiveTab.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m model) renderFooter() string {
	return ui.Muted.Render(m.lastLog) + "\n" + ui.Muted.Render(m.keyHelp())
}

func (m model) keyHelp() string {
	switch m.view {
	case viewCourse:
		return "↑/↓ move • enter open • space toggle • g worksheet • esc back • tab next view • q quit"
	case viewLab:
		return "↑/↓ tool • enter generate • esc leave input • y copy • tab next view"
	case viewFactory:
		return "←/→ column • ↑/↓ item • >/. advance • </, retreat • a add • tab next view • q quit"
	case viewSimulator:
		return "↑/↓ field • type to edit • tab next view • ctrl+c quit"
	case viewCalculator:
		return "↑/↓ field • type to edit • o offsite ads • tab next view • ctrl+c quit"
	}
	return ""
}

func (m model) renderMarkdown(s string) string {
	if m.renderer == nil {
		return s
	}
	out, err := m.renderer.Render(s)
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}

func (m model) copyOutput() model {
	if m.lab.output == "" || m.lab.loading {
		m.lastLog = "Nothing to copy yet."
		return m
	}
	if err := clipboardWriteAll(m.lab.output); err != nil {
		m.lastLog = "Copy failed: " + err.Error()
		return m
	}
	m.lastLog = ui.IconCopy + " Copied to clipboard."
	return m
}

func newTextInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "│ "
	ti.CharLimit = 512
	ti.Width = width
	return ti
}
