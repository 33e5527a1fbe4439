package lipgloss

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmbti"
)

// Compile-time interface verification.
var _ chatmbti.Measurer = (*Measurer)(nil)

// Measurer implements chatmbti.Measurer as the rendered height in rows.
type Measurer struct{}

// NewMeasurer returns a new Measurer.
func NewMeasurer() *Measurer {
	return &Measurer{}
}

// Measure returns the number of terminal rows content occupies. Empty
// content occupies none.
func (m *Measurer) Measure(content string) int {
	if content == "" {
		return 0
	}
	return lipgloss.Height(content)
}
