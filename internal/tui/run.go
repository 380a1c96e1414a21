package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"empireos/internal/engine"
)

// RunDashboard starts the interactive dashboard on the alternate screen and
// blocks until the user quits.
func RunDashboard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
