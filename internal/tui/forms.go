package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// numberForm is a column of numeric text inputs with one focused field.
type numberForm struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newNumberForm(labels []string, values []float64) numberForm {
	f := numberForm{labels: labels}
	for i := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 12
		ti.SetValue(formatNumber(values[i]))
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[0].Focus()
	return f
}

// parseNumber coerces field text to a number; anything unparseable is 0.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f numberForm) values() []float64 {
	out := make([]float64, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = parseNumber(in.Value())
	}
	return out
}

func (f numberForm) move(delta int) numberForm {
	n := len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + n) % n
	f.inputs[f.focus].Focus()
	return f
}

// numericKey reports whether a key press is text a number field should take.
func numericKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if !strings.ContainsRune("0123456789.-", r) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (f numberForm) update(msg tea.Msg) (numberForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f numberForm) view(selected func(...string) string) string {
	var b strings.Builder
	for i, in := range f.inputs {
		cursor := "  "
		label := fmt.Sprintf("%-24s", f.labels[i])
		if i == f.focus {
			cursor = "> "
			label = selected(label)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, label, in.View())
	}
	return b.String()
}
