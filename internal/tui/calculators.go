package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"empireos/internal/engine"
	"empireos/internal/ui"
)

func (m model) simulationInput() engine.SimulationInput {
	v := m.sim.values()
	return engine.SimulationInput{
		StartingListings:  v[0],
		UploadRatePerWeek: v[1],
		AvgPrice:          v[2],
		ConversionRate:    v[3],
		VisitsPerListing:  v[4],
	}
}

func (m model) profitInput() engine.ProfitInput {
	v := m.calc.values()
	return engine.ProfitInput{
		Price:        v[0],
		Cost:         v[1],
		AdSpend:      v[2],
		IsOffsiteAds: m.offsite,
	}
}

func (m model) updateSimulator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.sim = m.sim.move(-1)
		return m, nil
	case "down", "enter":
		m.sim = m.sim.move(1)
		return m, nil
	}
	if !numericKey(msg) {
		return m, nil
	}
	var cmd tea.Cmd
	m.sim, cmd = m.sim.update(msg)
	return m, cmd
}

func (m model) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.calc = m.calc.move(-1)
		return m, nil
	case "down", "enter":
		m.calc = m.calc.move(1)
		return m, nil
	case "o":
		m.offsite = !m.offsite
		return m, nil
	}
	if !numericKey(msg) {
		return m, nil
	}
	var cmd tea.Cmd
	m.calc, cmd = m.calc.update(msg)
	return m, cmd
}

func (m model) viewSimulator() string {
	months := engine.Project(m.simulationInput())
	peak := engine.PeakRevenue(months)

	var b strings.Builder
	b.WriteString(ui.H2.Render("Revenue Simulator") + "\n\n")
	b.WriteString(m.sim.view(ui.Gold.Render) + "\n")
	b.WriteString(fmt.Sprintf("%-6s %9s %9s %8s %9s\n", "Month", "Listings", "Visits", "Sales", "Revenue"))
	for _, mp := range months {
		bar := ""
		if peak > 0 && mp.Revenue > 0 {
			bar = ui.Good.Render(strings.Repeat("▇", int(mp.Revenue*20/peak)))
		}
		b.WriteString(fmt.Sprintf("%-6d %9.0f %9.0f %8.1f %9s %s\n",
			mp.Month, mp.Listings, mp.Visits, mp.Sales, fmt.Sprintf("$%d", mp.Revenue), bar))
	}
	b.WriteString("\n" + ui.LabelValue("Month 12 revenue", fmt.Sprintf("$%d", months[len(months)-1].Revenue)))
	b.WriteString("   " + ui.LabelValue("Year total", fmt.Sprintf("$%d", engine.TotalRevenue(months))))
	return b.String()
}

func (m model) viewCalculator() string {
	in := m.profitInput()
	res := engine.CalculateProfit(in)

	var b strings.Builder
	b.WriteString(ui.H2.Render("Profit Calculator") + "\n\n")
	b.WriteString(m.calc.view(ui.Gold.Render))
	box := "[ ]"
	if m.offsite {
		box = "[x]"
	}
	b.WriteString(fmt.Sprintf("  %-24s %s\n\n", "Offsite ads (o)", box))

	profit := ui.Good.Render(ui.Money(res.Profit))
	if res.Profit <= 0 {
		profit = ui.Bad.Render(ui.Money(res.Profit))
	}
	b.WriteString(ui.LabelValue("Net profit", profit) + "\n")
	b.WriteString(ui.LabelValue("Margin", fmt.Sprintf("%.1f%%", res.Margin)) + "\n")
	b.WriteString(ui.LabelValue("Etsy fees", ui.Money(res.Fees)) + "\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("  listing %s • transaction+payment %s • offsite %s",
		ui.Money(res.ListingFee), ui.Money(res.TransactionFee), ui.Money(res.OffsiteFee))))
	return b.String()
}
