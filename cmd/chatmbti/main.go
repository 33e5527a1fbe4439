package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmbti"
	"github.com/fwojciec/chatmbti/bubbletea"
)

// ErrAnalysisFailed is returned when a plain run ends in the error phase.
var ErrAnalysisFailed = errors.New("analysis failed")

// App encapsulates the application logic for testing.
type App struct {
	Stdout   io.Writer
	Analyzer chatmbti.Analyzer
	Viewer   chatmbti.Viewer // Used unless Plain is set
	Locale   chatmbti.Locale
	Theme    chatmbti.Theme
	Renderer *lg.Renderer              // Optional; styles plain output
	Markdown chatmbti.MarkdownRenderer // Optional; renders the report
	Width    int
	Plain    bool
}

// Run starts an interactive session, or submits form once and prints every
// panel when Plain is set.
func (a *App) Run(ctx context.Context, form chatmbti.Form) error {
	if !a.Plain {
		return a.Viewer.View(ctx, form)
	}

	c := chatmbti.NewController(a.Analyzer,
		chatmbti.NewDisclosure(nil, chatmbti.Panels...),
		chatmbti.WithLocale(a.Locale),
	)
	state := c.Submit(ctx, form.Name, form.Files)

	styles := chatmbti.Styles{}
	if a.Theme != nil {
		styles = a.Theme.Styles()
	}
	fmt.Fprintln(a.Stdout, bubbletea.RenderStatus(state, styles, a.Renderer))

	if s := c.Sections(); s != nil {
		opts := []bubbletea.RenderOption{
			bubbletea.WithRenderRenderer(a.Renderer),
			bubbletea.WithRenderMarkdown(a.Markdown),
		}
		if a.Theme != nil {
			opts = append(opts, bubbletea.WithRenderTheme(a.Theme))
		}
		if a.Width > 0 {
			opts = append(opts, bubbletea.WithRenderWidth(a.Width))
		}
		fmt.Fprintln(a.Stdout)
		fmt.Fprintln(a.Stdout, bubbletea.RenderSections(*s, a.Locale, c.Disclosure(), opts...))
	}

	if state.Phase == chatmbti.PhaseError {
		return ErrAnalysisFailed
	}
	return nil
}

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
