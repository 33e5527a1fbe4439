package bubbletea

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmbti"
)

// Bar geometry.
const (
	axisBarWidth       = 20
	confidenceBarWidth = 30
	minConfidenceFill  = 5 // Percent; keeps a low score visible
)

// renderConfig holds the parameters for rendering panel bodies.
type renderConfig struct {
	styles   chatmbti.Styles
	renderer *lipgloss.Renderer
	locale   chatmbti.Locale
	markdown chatmbti.MarkdownRenderer // Optional; report falls back to plain text
	width    int
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp chatmbti.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

func (c renderConfig) style(cp chatmbti.ColorPair) lipgloss.Style {
	return styleFromColorPair(cp, c.renderer)
}

// wrap soft-wraps text to the body width.
func (c renderConfig) wrap(text string) string {
	if c.width <= 0 {
		return text
	}
	return styleFromColorPair(chatmbti.ColorPair{}, c.renderer).Width(c.width).Render(text)
}

// renderBody renders the body of panel p.
func renderBody(p chatmbti.Panel, s chatmbti.Sections, c renderConfig) string {
	switch p {
	case chatmbti.PanelOverview:
		return renderOverview(s, c)
	case chatmbti.PanelLabel:
		return renderLabel(s.Label, c)
	case chatmbti.PanelTraits:
		return renderTraits(s.Traits, c)
	case chatmbti.PanelEvidence:
		return renderEvidence(s.Evidence, c)
	case chatmbti.PanelConfidence:
		return renderConfidence(s.Confidence, c)
	case chatmbti.PanelMetadata:
		return renderMetadata(s.Metadata, c)
	case chatmbti.PanelReport:
		return renderReport(s.Report, c)
	case chatmbti.PanelPersona:
		return renderPersona(s.Persona, c)
	default:
		return ""
	}
}

// visiblePanels returns the panels that render for s. A label without text
// omits itself.
func visiblePanels(s chatmbti.Sections) []chatmbti.Panel {
	panels := make([]chatmbti.Panel, 0, len(chatmbti.Panels))
	for _, p := range chatmbti.Panels {
		if p == chatmbti.PanelLabel && !s.Label.Renderable {
			continue
		}
		panels = append(panels, p)
	}
	return panels
}

// renderOverview combines the headline type, axis bars, a compact confidence
// card and the persona summary.
func renderOverview(s chatmbti.Sections, c renderConfig) string {
	accent := c.style(c.styles.Accent).Bold(true)
	caption := c.style(c.styles.Caption)

	var b strings.Builder
	b.WriteString(accent.Render(s.Traits.Type))
	if s.Label.Renderable {
		b.WriteString("  ")
		b.WriteString(Sanitize(s.Label.Text))
	}
	b.WriteString("\n")
	for _, row := range s.Traits.Rows {
		b.WriteString(axisRow(row, c))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.Confidence.Available {
		b.WriteString(caption.Render(fmt.Sprintf(c.locale.Captions.Score, s.Confidence.ScoreText)))
		b.WriteString(" · ")
		b.WriteString(s.Confidence.Level)
		b.WriteString("\n")
		b.WriteString(confidenceBar(s.Confidence.BarPercent, c))
	} else {
		b.WriteString(c.style(c.styles.Muted).Render(s.Confidence.Notice))
	}

	if s.Persona.Active {
		b.WriteString("\n\n")
		b.WriteString(caption.Render(s.Persona.Caption))
		b.WriteString("\n")
		b.WriteString(c.wrap(Sanitize(s.Persona.Paragraphs[0])))
	}
	return b.String()
}

func renderLabel(v chatmbti.LabelView, c renderConfig) string {
	if !v.Renderable {
		return ""
	}
	var b strings.Builder
	b.WriteString(c.style(c.styles.Caption).Render(v.Caption))
	b.WriteString("\n")
	b.WriteString(c.style(c.styles.Accent).Bold(true).Render(c.wrap(Sanitize(v.Text))))
	if v.Keyword != "" {
		b.WriteString("\n")
		b.WriteString(chip(fmt.Sprintf(c.locale.Captions.Keyword, Sanitize(v.Keyword)), c))
	}
	return b.String()
}

func renderTraits(v chatmbti.TraitSummaryView, c renderConfig) string {
	muted := c.style(c.styles.Muted)

	var b strings.Builder
	b.WriteString(c.style(c.styles.Accent).Bold(true).Render(v.Type))
	for _, row := range v.Rows {
		b.WriteString("\n")
		b.WriteString(axisRow(row, c))
		b.WriteString("  ")
		b.WriteString(muted.Render(c.locale.AxisName(row.Left) + " / " + c.locale.AxisName(row.Right)))
	}
	return b.String()
}

// axisRow renders "E  70% ██████████████░░░░░░  30% I".
func axisRow(row chatmbti.TraitRow, c renderConfig) string {
	filled := int(math.Round(float64(axisBarWidth*row.LeftPct) / 100))
	bar := c.style(c.styles.BarLeft).Render(strings.Repeat("█", filled)) +
		c.style(c.styles.BarRight).Render(strings.Repeat("░", axisBarWidth-filled))
	return fmt.Sprintf("%s %3d%% %s %3d%% %s", row.Left, row.LeftPct, bar, row.RightPct, row.Right)
}

// confidenceBar renders the score bar with a minimum visible fill.
func confidenceBar(percent float64, c renderConfig) string {
	percent = math.Max(minConfidenceFill, math.Min(percent, 100))
	filled := int(math.Round(confidenceBarWidth * percent / 100))
	return c.style(c.styles.Confidence).Render(strings.Repeat("█", filled)) +
		c.style(c.styles.BarRight).Render(strings.Repeat("░", confidenceBarWidth-filled))
}

func renderEvidence(v chatmbti.EvidenceView, c renderConfig) string {
	caption := c.style(c.styles.Caption).Bold(true)

	var b strings.Builder
	b.WriteString(caption.Render(c.locale.Captions.AmbiguousAxes))
	b.WriteString("\n")
	b.WriteString(renderChips(v.AmbiguousAxes, c))

	b.WriteString("\n\n")
	b.WriteString(caption.Render(c.locale.Captions.AxisEvidence))
	for _, ax := range v.Axes {
		b.WriteString("\n")
		b.WriteString(c.style(c.styles.Accent).Render(string(ax.Axis)))
		b.WriteString(" (" + ax.Name + ")")
		b.WriteString("\n")
		b.WriteString(renderBullets(ax.Evidence, c))
	}

	b.WriteString("\n\n")
	b.WriteString(caption.Render(c.locale.Captions.ActivePeriod))
	b.WriteString("\n")
	b.WriteString(v.ActivePeriod)

	b.WriteString("\n\n")
	b.WriteString(caption.Render(c.locale.Captions.TopWords))
	b.WriteString("\n")
	b.WriteString(renderChips(v.TopWords, c))

	b.WriteString("\n\n")
	b.WriteString(caption.Render(c.locale.Captions.TopEmojis))
	b.WriteString("\n")
	b.WriteString(renderChips(v.TopEmojis, c))

	b.WriteString("\n\n")
	b.WriteString(caption.Render(c.locale.Captions.Samples))
	b.WriteString("\n")
	if v.Samples.Empty() {
		b.WriteString(c.style(c.styles.Muted).Render(v.Samples.Placeholder))
	} else {
		quotes := make([]string, 0, len(v.Samples.Items))
		for _, s := range v.Samples.Items {
			quotes = append(quotes, c.wrap("“"+Sanitize(s)+"”"))
		}
		b.WriteString(strings.Join(quotes, "\n"))
	}
	return b.String()
}

func renderBullets(l chatmbti.List, c renderConfig) string {
	if l.Empty() {
		return c.style(c.styles.Muted).Render("  " + l.Placeholder)
	}
	lines := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		lines = append(lines, "  • "+Sanitize(item))
	}
	return c.wrap(strings.Join(lines, "\n"))
}

func renderChips(l chatmbti.List, c renderConfig) string {
	if l.Empty() {
		return c.style(c.styles.Muted).Render(l.Placeholder)
	}
	chips := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		chips = append(chips, chip(Sanitize(item), c))
	}
	return c.wrap(strings.Join(chips, " "))
}

func chip(text string, c renderConfig) string {
	return c.style(c.styles.Chip).Padding(0, 1).Render(text)
}

func renderConfidence(v chatmbti.ConfidenceView, c renderConfig) string {
	if !v.Available {
		return c.style(c.styles.Muted).Render(v.Notice)
	}
	caption := c.style(c.styles.Caption)

	var b strings.Builder
	b.WriteString(caption.Render(fmt.Sprintf(c.locale.Captions.Score, v.ScoreText)))
	b.WriteString(" · ")
	b.WriteString(v.Level)
	b.WriteString("\n")
	b.WriteString(confidenceBar(v.BarPercent, c))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf(c.locale.Captions.WordCount, v.WordCountText))
	b.WriteString("\n")
	b.WriteString(caption.Render(c.locale.Captions.DataAmount) + ": " + v.DataAmount)
	b.WriteString("\n")
	b.WriteString(caption.Render(c.locale.Captions.SourceDiversity) + ": " + v.SourceDiversity)
	return b.String()
}

func renderMetadata(v chatmbti.MetadataView, c renderConfig) string {
	caption := c.style(c.styles.Caption)

	var b strings.Builder
	b.WriteString(caption.Render(c.locale.Captions.FileCount) + ": " + v.FileCount)
	b.WriteString("\n")
	b.WriteString(caption.Render(c.locale.Captions.NameInput) + ": " + Sanitize(v.UserNameInput))
	b.WriteString("\n")
	b.WriteString(caption.Render(c.locale.Captions.SenderResolved) + ": " + Sanitize(v.SenderResolved))
	b.WriteString("\n\n")
	b.WriteString(c.style(c.styles.Muted).Render(c.wrap(v.Advisory)))
	return b.String()
}

// renderReport renders the report as markdown when a renderer is available
// and as styled plain text otherwise.
func renderReport(v chatmbti.ReportView, c renderConfig) string {
	if len(v.Items) == 0 {
		return c.style(c.styles.Muted).Render(v.Placeholder)
	}
	if c.markdown != nil {
		if out, err := c.markdown.Render(reportMarkdown(v)); err == nil && out != "" {
			return out
		}
	}

	title := c.style(c.styles.Caption).Bold(true)
	lines := make([]string, 0, len(v.Items))
	for i, item := range v.Items {
		text := Sanitize(item.Text)
		switch item.Kind {
		case chatmbti.ReportTitle:
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, title.Render(text))
		case chatmbti.ReportBullet:
			lines = append(lines, c.wrap("• "+text))
		default:
			lines = append(lines, c.wrap(text))
		}
	}
	return strings.Join(lines, "\n")
}

// reportMarkdown converts report items to markdown. Consecutive bullets form
// one list.
func reportMarkdown(v chatmbti.ReportView) string {
	var b strings.Builder
	prev := chatmbti.ReportItemKind(-1)
	for i, item := range v.Items {
		if i > 0 {
			if item.Kind == chatmbti.ReportBullet && prev == chatmbti.ReportBullet {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		text := escapeMarkdown(Sanitize(item.Text))
		switch item.Kind {
		case chatmbti.ReportTitle:
			b.WriteString("### " + text)
		case chatmbti.ReportBullet:
			b.WriteString("- " + text)
		default:
			b.WriteString(text)
		}
		prev = item.Kind
	}
	return b.String()
}

// markdownPunct is the ASCII punctuation CommonMark accepts backslash
// escapes for.
const markdownPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// escapeMarkdown escapes every character markdown could read as syntax, so
// report text renders literally inside the structure reportMarkdown builds.
func escapeMarkdown(text string) string {
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(markdownPunct, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func renderPersona(v chatmbti.PersonaView, c renderConfig) string {
	if !v.Active {
		return c.style(c.styles.Muted).Render(v.Notice)
	}
	var b strings.Builder
	b.WriteString(c.style(c.styles.Caption).Bold(true).Render(v.Caption))
	if v.Persona != "" {
		b.WriteString(" ")
		b.WriteString(chip(Sanitize(v.Persona), c))
	}
	for _, p := range v.Paragraphs {
		b.WriteString("\n")
		b.WriteString(c.wrap(Sanitize(p)))
	}
	return b.String()
}

// panelHeader renders the header line of a panel.
func panelHeader(p chatmbti.Panel, index int, open, selected bool, c renderConfig) string {
	marker := "▸"
	if open {
		marker = "▾"
	}
	cp := c.styles.PanelTitle
	if selected {
		cp = c.styles.PanelSelected
	}
	text := fmt.Sprintf("%s %d %s", marker, index+1, c.locale.PanelTitle(p))
	return c.style(cp).Bold(true).Padding(0, 1).Render(text)
}

// renderPanels renders every visible panel header, followed by the body of
// open panels clipped to their measured extent. Each body is handed to d
// first so that open panels are re-measured. It also returns the line
// offset of each header.
func renderPanels(s chatmbti.Sections, d *chatmbti.Disclosure, cursor int, c renderConfig) (string, []int) {
	body := c
	body.width = max(c.width-2, 0)

	var parts []string
	var offsets []int
	line := 0
	for i, p := range visiblePanels(s) {
		content := renderBody(p, s, body)
		state := d.SetContent(p, content)
		offsets = append(offsets, line)
		parts = append(parts, panelHeader(p, panelIndex(p), state.Open, i == cursor, c))
		line++
		if state.Open && state.Extent > 0 {
			clipped := styleFromColorPair(chatmbti.ColorPair{}, c.renderer).
				MaxHeight(state.Extent).
				PaddingLeft(2).
				Render(content)
			parts = append(parts, clipped)
			line += lipgloss.Height(clipped)
		}
	}
	return strings.Join(parts, "\n"), offsets
}

// panelIndex returns the position of p in chatmbti.Panels.
func panelIndex(p chatmbti.Panel) int {
	for i, q := range chatmbti.Panels {
		if q == p {
			return i
		}
	}
	return -1
}

// RenderOption configures RenderSections.
type RenderOption func(*renderConfig)

// WithRenderTheme sets the theme.
func WithRenderTheme(t chatmbti.Theme) RenderOption {
	return func(c *renderConfig) {
		c.styles = t.Styles()
	}
}

// WithRenderRenderer sets the lipgloss renderer.
func WithRenderRenderer(r *lipgloss.Renderer) RenderOption {
	return func(c *renderConfig) {
		c.renderer = r
	}
}

// WithRenderMarkdown sets the markdown renderer for the report.
func WithRenderMarkdown(m chatmbti.MarkdownRenderer) RenderOption {
	return func(c *renderConfig) {
		c.markdown = m
	}
}

// WithRenderWidth sets the wrap width.
func WithRenderWidth(w int) RenderOption {
	return func(c *renderConfig) {
		c.width = w
	}
}

// RenderSections renders sections for non-interactive output. Panels open in
// d are expanded; a nil d expands every panel.
func RenderSections(s chatmbti.Sections, loc chatmbti.Locale, d *chatmbti.Disclosure, opts ...RenderOption) string {
	c := renderConfig{locale: loc, styles: defaultStyles(), width: 80}
	for _, opt := range opts {
		opt(&c)
	}
	if d == nil {
		d = chatmbti.NewDisclosure(nil, chatmbti.Panels...)
	}
	out, _ := renderPanels(s, d, -1, c)
	return out
}

// RenderStatus renders the submission status pill.
func RenderStatus(state chatmbti.SubmissionState, styles chatmbti.Styles, renderer *lipgloss.Renderer) string {
	var cp chatmbti.ColorPair
	switch state.Phase {
	case chatmbti.PhaseLoading, chatmbti.PhaseValidating:
		cp = styles.StatusLoading
	case chatmbti.PhaseSuccess:
		cp = styles.StatusSuccess
	case chatmbti.PhaseError:
		cp = styles.StatusError
	default:
		return ""
	}
	return styleFromColorPair(cp, renderer).Padding(0, 1).Render(state.Message)
}

// defaultStyles returns the dark palette used when no theme is configured.
func defaultStyles() chatmbti.Styles {
	return chatmbti.Styles{
		PanelTitle:    chatmbti.ColorPair{Foreground: "#cdd6f4", Background: "#313244"},
		PanelSelected: chatmbti.ColorPair{Foreground: "#1e1e2e", Background: "#cba6f7"},
		Caption:       chatmbti.ColorPair{Foreground: "#89b4fa"},
		Muted:         chatmbti.ColorPair{Foreground: "#6c7086"},
		Accent:        chatmbti.ColorPair{Foreground: "#f5c2e7"},
		Chip:          chatmbti.ColorPair{Foreground: "#cdd6f4", Background: "#45475a"},
		BarLeft:       chatmbti.ColorPair{Foreground: "#cba6f7"},
		BarRight:      chatmbti.ColorPair{Foreground: "#45475a"},
		Confidence:    chatmbti.ColorPair{Foreground: "#a6e3a1"},
		StatusLoading: chatmbti.ColorPair{Foreground: "#1e1e2e", Background: "#f9e2af"},
		StatusSuccess: chatmbti.ColorPair{Foreground: "#1e1e2e", Background: "#a6e3a1"},
		StatusError:   chatmbti.ColorPair{Foreground: "#1e1e2e", Background: "#f38ba8"},
		StatusBar:     chatmbti.ColorPair{Foreground: "#a6adc8", Background: "#313244"},
	}
}
