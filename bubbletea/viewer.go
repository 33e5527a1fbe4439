package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmbti"
)

// Compile-time interface verification.
var _ chatmbti.Viewer = (*Viewer)(nil)

// Viewer implements chatmbti.Viewer using a Bubble Tea TUI.
type Viewer struct {
	analyzer chatmbti.Analyzer
	opts     []ModelOption
}

// NewViewer creates a new Viewer that submits through analyzer.
func NewViewer(analyzer chatmbti.Analyzer, opts ...ModelOption) *Viewer {
	return &Viewer{analyzer: analyzer, opts: opts}
}

// View runs the interactive session and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, form chatmbti.Form) error {
	opts := append([]ModelOption{WithForm(form), WithContext(ctx)}, v.opts...)
	m := NewModel(v.analyzer, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
