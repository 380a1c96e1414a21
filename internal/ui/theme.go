package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"empireos/internal/engine"
)

// Empire theme (CLI + TUI): shared styles and a handful of icons.

const (
	IconCourse  = "📚"
	IconLab     = "🧪"
	IconFactory = "🏭"
	IconChart   = "📈"
	IconCalc    = "🧮"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCopy    = "📋"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
	ActiveTab   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Underline(true)
	InactiveTab = lipgloss.NewStyle().Foreground(cMuted)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StageText(s engine.Stage) string {
	switch s {
	case engine.StageLive:
		return Good.Render("live")
	case engine.StageUpload:
		return H2.Render("upload")
	case engine.StageDesign:
		return Warn.Render("design")
	default:
		return Muted.Render(string(s))
	}
}

func StageTitle(s engine.Stage) string {
	switch s {
	case engine.StageBacklog:
		return "Backlog"
	case engine.StageDesign:
		return "Designing"
	case engine.StageUpload:
		return "Uploading"
	case engine.StageLive:
		return "Live"
	default:
		return string(s)
	}
}

func PriorityBadge(p engine.Priority) string {
	switch p {
	case engine.PriorityHigh:
		return Bad.Render("HIGH")
	case engine.PriorityLow:
		return Muted.Render("low")
	default:
		return Warn.Render("med")
	}
}

func TierText(t engine.Tier) string {
	switch t {
	case engine.TierEmperor:
		return Gold.Render(IconBolt + " " + string(t))
	case engine.TierTycoon:
		return Title.Render(string(t))
	case engine.TierMerchant:
		return H2.Render(string(t))
	default:
		return Muted.Render(string(t))
	}
}

func Check(done bool) string {
	if done {
		return IconDone
	}
	return IconTodo
}

// ProgressBar renders percent (0..100) in width cells.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// Money formats a dollar amount with two decimals.
func Money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}
