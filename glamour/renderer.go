// Package glamour renders markdown panels using the Glamour library.
package glamour

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/chatmbti"
)

// Compile-time interface verification.
var _ chatmbti.MarkdownRenderer = (*Renderer)(nil)

// Standard style names.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty" // No colors, for plain output and tests
)

// minWrap keeps very narrow terminals readable.
const minWrap = 20

// Renderer implements chatmbti.MarkdownRenderer.
type Renderer struct {
	renderer *glamour.TermRenderer
}

// NewRenderer creates a Renderer that wraps at width columns using the named
// standard style.
func NewRenderer(width int, style string) (*Renderer, error) {
	if width < minWrap {
		width = minWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{renderer: r}, nil
}

// Render renders markdown with surrounding blank lines trimmed.
func (r *Renderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
