package mock

import "github.com/fwojciec/chatmbti"

// Compile-time interface verification.
var (
	_ chatmbti.Measurer         = (*Measurer)(nil)
	_ chatmbti.MarkdownRenderer = (*MarkdownRenderer)(nil)
	_ chatmbti.Clipboard        = (*Clipboard)(nil)
)

// Measurer is a mock implementation of chatmbti.Measurer.
type Measurer struct {
	MeasureFn func(content string) int
}

func (m *Measurer) Measure(content string) int {
	return m.MeasureFn(content)
}

// MarkdownRenderer is a mock implementation of chatmbti.MarkdownRenderer.
type MarkdownRenderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *MarkdownRenderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}

// Clipboard is a mock implementation of chatmbti.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
