package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"empireos/internal/content"
	"empireos/internal/engine"
	"empireos/internal/prompt"
	"empireos/internal/storage"
)

type stubGenerator struct {
	calls int
	text  string
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, p string) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestModel(t *testing.T, gen engine.Generator) model {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cat, err := content.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	svc := engine.NewService(db, cat, gen, nil)
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := newModel(ctx, svc)
	return run(t, m, m.Init())
}

// run executes cmd and feeds the resulting messages back into the model.
// Spinner ticks are dropped so nothing waits on a timer.
func run(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = run(t, m, c)
		}
		return m
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return m
	}
	next, cmd := m.Update(msg)
	return run(t, next.(model), cmd)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// press sends a key and discards the command it returns.
func press(m model, s string) model {
	next, _ := m.Update(key(s))
	return next.(model)
}

// pressRun sends a key and runs the command it returns.
func pressRun(t *testing.T, m model, s string) model {
	t.Helper()
	next, cmd := m.Update(key(s))
	return run(t, next.(model), cmd)
}

func TestInitLoadsSession(t *testing.T) {
	m := newTestModel(t, nil)
	if len(m.items) != len(engine.SeedBoard) {
		t.Fatalf("items=%d, want %d", len(m.items), len(engine.SeedBoard))
	}
	if st := m.stats(); st.XP != engine.XPPerLiveItem || st.Tier != engine.TierNovice {
		t.Fatalf("stats=%+v", st)
	}
}

func TestCourseToggleActionItem(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "enter") // open module 1
	if m.course.level != levelModule {
		t.Fatalf("level=%d, want module", m.course.level)
	}

	mod := m.currentModule()
	for i := 0; i < len(mod.Concepts); i++ {
		m = press(m, "down")
	}
	m = pressRun(t, m, " ")

	first := mod.ActionItems[0].ID
	if !m.completed[first] {
		t.Fatalf("%s not completed", first)
	}
	if st := m.stats(); st.XP != engine.XPPerActionItem+engine.XPPerLiveItem {
		t.Fatalf("xp=%d", st.XP)
	}

	m = pressRun(t, m, "enter")
	if m.completed[first] {
		t.Fatalf("%s still completed after second toggle", first)
	}
}

func TestConceptOpensWorksheet(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "enter")
	m = press(m, "enter") // concept detail
	if m.course.level != levelConcept {
		t.Fatalf("level=%d, want concept", m.course.level)
	}
	title := m.currentModule().Concepts[0].Title

	m = press(m, "g")
	if m.view != viewLab {
		t.Fatalf("view=%d, want lab", m.view)
	}
	if m.lab.currentTool() != prompt.ToolTutor {
		t.Fatalf("tool=%s, want tutor", m.lab.currentTool())
	}
	if m.lab.input.Value() != title {
		t.Fatalf("input=%q, want %q", m.lab.input.Value(), title)
	}
}

func TestBlankConceptStaysOnCourse(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.openWorksheet("  ")
	m = next.(model)
	if cmd != nil {
		t.Fatalf("blank title should not switch views")
	}
	if m.view != viewCourse {
		t.Fatalf("view=%d, want course", m.view)
	}
	if m.lab.input.Value() != "" {
		t.Fatalf("input=%q, want empty", m.lab.input.Value())
	}
}

func TestLabGenerateBlocksDuplicateSubmit(t *testing.T) {
	gen := &stubGenerator{text: "**three clusters**"}
	m := newTestModel(t, gen)
	m, _ = m.switchView(viewLab)
	m.lab.input.SetValue("dopamine menus")

	next, cmd := m.Update(key("enter"))
	m = next.(model)
	if !m.lab.loading || cmd == nil {
		t.Fatalf("expected loading with a command")
	}

	again, cmd2 := m.Update(key("enter"))
	if cmd2 != nil {
		t.Fatalf("second submit returned a command while loading")
	}
	m = again.(model)

	m = run(t, m, cmd)
	if m.lab.loading {
		t.Fatalf("still loading after result")
	}
	if m.lab.output != "**three clusters**" || m.lab.failed {
		t.Fatalf("output=%q failed=%v", m.lab.output, m.lab.failed)
	}
	if gen.calls != 1 {
		t.Fatalf("calls=%d, want 1", gen.calls)
	}
	if !strings.Contains(m.View(), "clusters") {
		t.Fatalf("rendered view missing output")
	}
}

func TestLabGenerateFailureShowsFixedMessage(t *testing.T) {
	gen := &stubGenerator{err: errors.New("API error: 503")}
	m := newTestModel(t, gen)
	m, _ = m.switchView(viewLab)
	m.lab.input.SetValue("anything")

	m = pressRun(t, m, "enter")
	if m.lab.output != engine.GenerateFailedMessage || !m.lab.failed {
		t.Fatalf("output=%q failed=%v", m.lab.output, m.lab.failed)
	}
}

func TestLabBlankInputDoesNothing(t *testing.T) {
	gen := &stubGenerator{}
	m := newTestModel(t, gen)
	m, _ = m.switchView(viewLab)
	m.lab.input.SetValue("   ")

	next, cmd := m.Update(key("enter"))
	if cmd != nil || next.(model).lab.loading {
		t.Fatalf("blank input started a request")
	}
	if gen.calls != 0 {
		t.Fatalf("calls=%d, want 0", gen.calls)
	}
}

func TestLabCopyOutput(t *testing.T) {
	var copied string
	old := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	defer func() { clipboardWriteAll = old }()

	m := newTestModel(t, &stubGenerator{text: "Title: Mug"})
	m, _ = m.switchView(viewLab)
	m.lab.input.SetValue("mug")
	m = pressRun(t, m, "enter")

	m = press(m, "esc")
	m = press(m, "y")
	if copied != "Title: Mug" {
		t.Fatalf("copied=%q", copied)
	}
}

func TestFactoryAdvanceAndAdd(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "3")
	if m.view != viewFactory {
		t.Fatalf("view=%d, want factory", m.view)
	}

	m = pressRun(t, m, ">")
	if got := engine.GroupByStage(m.items)[engine.StageDesign]; len(got) != 2 {
		t.Fatalf("design column=%d items, want 2", len(got))
	}
	if m.factory.col != engine.StageDesign.Index() {
		t.Fatalf("cursor col=%d, want design", m.factory.col)
	}

	m = press(m, "a")
	if !m.factory.adding {
		t.Fatalf("not in add mode")
	}
	for _, r := range "Batch 5" {
		m = press(m, string(r))
	}
	m = pressRun(t, m, "enter")
	if len(m.items) != len(engine.SeedBoard)+1 {
		t.Fatalf("items=%d", len(m.items))
	}
	last := m.items[len(m.items)-1]
	if last.Title != "Batch 5" || last.Stage != engine.StageBacklog {
		t.Fatalf("added=%+v", last)
	}
}

func TestFactoryRetreatAtBacklogReportsError(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "3")
	m = pressRun(t, m, "<")
	if !strings.HasPrefix(m.lastLog, "Move failed") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestSimulatorRecomputesOnEdit(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = m.switchView(viewSimulator)

	m = press(m, "down") // uploads per week
	m = press(m, "backspace")
	m = press(m, "1")
	m = press(m, "0")
	m = press(m, "q") // ignored by number fields

	in := m.simulationInput()
	if in.UploadRatePerWeek != 10 {
		t.Fatalf("upload rate=%v, want 10", in.UploadRatePerWeek)
	}
	if got := engine.Project(in)[0].Listings; got != 40 {
		t.Fatalf("month 1 listings=%v, want 40", got)
	}

	m.sim.inputs[2].SetValue("abc")
	if v := m.simulationInput().AvgPrice; v != 0 {
		t.Fatalf("unparseable price=%v, want 0", v)
	}
}

func TestCalculatorOffsiteToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = m.switchView(viewCalculator)

	if got := engine.CalculateProfit(m.profitInput()); got.Profit != 12.13 {
		t.Fatalf("profit=%v, want 12.13", got.Profit)
	}
	m = press(m, "o")
	if !m.profitInput().IsOffsiteAds {
		t.Fatalf("offsite not toggled")
	}
	if got := engine.CalculateProfit(m.profitInput()); got.Profit != 9.88 {
		t.Fatalf("profit=%v, want 9.88", got.Profit)
	}
}

func TestViewsRender(t *testing.T) {
	m := newTestModel(t, nil)
	want := map[view][]string{
		viewSimulator:  {"Revenue Simulator", "> ", "Starting listings", "Year total"},
		viewCalculator: {"Profit Calculator", "> ", "Sale price ($)", "Net profit"},
	}
	for v := range viewTabs {
		m.view = view(v)
		out := m.View()
		if !strings.Contains(out, "Empire OS") {
			t.Fatalf("view %d missing header", v)
		}
		for _, s := range want[view(v)] {
			if !strings.Contains(out, s) {
				t.Fatalf("view %d missing %q", v, s)
			}
		}
	}
}

func TestNumberFormHighlightsFocusedLabel(t *testing.T) {
	f := newNumberForm([]string{"Price", "Cost"}, []float64{12, 3.5})
	f = f.move(1)
	out := f.view(func(strs ...string) string { return "[" + strings.Join(strs, "") + "]" })
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%d, want 2", len(lines))
	}
	if strings.Contains(lines[0], "[") || !strings.HasPrefix(lines[0], "  Price") {
		t.Fatalf("unfocused line=%q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "> [Cost") {
		t.Fatalf("focused line=%q", lines[1])
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}
