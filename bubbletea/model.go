// Package bubbletea provides the interactive terminal client using the Bubble
// Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmbti"
	"go.uber.org/zap"
)

// focus identifies which region receives key presses.
type focus int

const (
	focusName focus = iota
	focusFiles
	focusResults
)

// Rows reserved outside the results viewport: header, two inputs, file
// summary and help.
const chromeHeight = 5

// analysisDoneMsg carries the outcome of one attempt back into Update.
type analysisDoneMsg struct {
	attempt int
	result  *chatmbti.AnalysisResult
	err     error
}

// MarkdownFactory builds a markdown renderer that wraps at width columns.
type MarkdownFactory func(width int) (chatmbti.MarkdownRenderer, error)

// Model is the Bubble Tea model for submitting chat exports and browsing the
// resulting panels.
type Model struct {
	ctx        context.Context
	analyzer   chatmbti.Analyzer
	controller *chatmbti.Controller

	// Input
	focus     focus
	nameInput textinput.Model
	fileInput textinput.Model
	files     []chatmbti.File

	// Results
	viewport viewport.Model
	cursor   int   // Index into the visible panels
	offsets  []int // Header line of each visible panel

	// UI state
	spinner         spinner.Model
	help            help.Model
	keymap          KeyMap
	styles          chatmbti.Styles
	renderer        *lipgloss.Renderer
	markdownFactory MarkdownFactory
	markdown        chatmbti.MarkdownRenderer
	clipboard       chatmbti.Clipboard
	logger          *zap.Logger
	notice          string
	width, height   int
	ready           bool
	pendingKey      string
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	ctx             context.Context
	form            chatmbti.Form
	locale          chatmbti.Locale
	theme           chatmbti.Theme
	renderer        *lipgloss.Renderer
	markdownFactory MarkdownFactory
	clipboard       chatmbti.Clipboard
	logger          *zap.Logger
	measurer        chatmbti.Measurer
}

// WithContext sets the context passed to the Analyzer.
func WithContext(ctx context.Context) ModelOption {
	return func(cfg *modelConfig) {
		cfg.ctx = ctx
	}
}

// WithForm prefills the name and file selection.
func WithForm(f chatmbti.Form) ModelOption {
	return func(cfg *modelConfig) {
		cfg.form = f
	}
}

// WithLocale sets the display catalog.
func WithLocale(l chatmbti.Locale) ModelOption {
	return func(cfg *modelConfig) {
		cfg.locale = l
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t chatmbti.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithMarkdownFactory sets how report markdown renderers are built. It is
// called again whenever the terminal width changes.
func WithMarkdownFactory(f MarkdownFactory) ModelOption {
	return func(cfg *modelConfig) {
		cfg.markdownFactory = f
	}
}

// WithClipboard enables copying the report.
func WithClipboard(c chatmbti.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ModelOption {
	return func(cfg *modelConfig) {
		cfg.logger = l
	}
}

// WithMeasurer sets the measurer used for panel extents.
func WithMeasurer(ms chatmbti.Measurer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.measurer = ms
	}
}

// NewModel creates a Model that submits through analyzer.
func NewModel(analyzer chatmbti.Analyzer, opts ...ModelOption) Model {
	cfg := &modelConfig{
		ctx:    context.Background(),
		locale: chatmbti.English(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	styles := defaultStyles()
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}

	logger := cfg.logger
	controller := chatmbti.NewController(analyzer,
		chatmbti.DefaultDisclosure(cfg.measurer),
		chatmbti.WithLocale(cfg.locale),
		chatmbti.WithTransitionHook(func(from, to chatmbti.Phase) {
			logger.Debug("submission phase", zap.Stringer("from", from), zap.Stringer("to", to))
		}),
	)

	name := textinput.New()
	name.Prompt = cfg.locale.Form.NamePrompt + ": "
	name.SetValue(cfg.form.Name)

	file := textinput.New()
	file.Prompt = cfg.locale.Form.FilesPrompt + ": "
	file.Placeholder = cfg.locale.Form.FilesHint

	m := Model{
		ctx:             cfg.ctx,
		analyzer:        analyzer,
		controller:      controller,
		nameInput:       name,
		fileInput:       file,
		files:           slices.Clone(cfg.form.Files),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:            help.New(),
		keymap:          DefaultKeyMap(),
		styles:          styles,
		renderer:        cfg.renderer,
		markdownFactory: cfg.markdownFactory,
		clipboard:       cfg.clipboard,
		logger:          cfg.logger,
	}
	if cfg.form.Name != "" {
		m.focus = focusFiles
		m.fileInput.Focus()
	} else {
		m.nameInput.Focus()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			return m, tea.Quit
		}
		if m.focus == focusResults {
			return m.handleResultKeys(msg)
		}
		return m.handleFormKeys(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)

	case spinner.TickMsg:
		if m.controller.State().Phase != chatmbti.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.nameInput.View(),
		m.fileInput.View(),
		m.fileSummaryView(),
		m.viewport.View(),
		m.helpView(),
	)
}

// State returns the current submission state.
func (m Model) State() chatmbti.SubmissionState {
	return m.controller.State()
}

// Files returns the selected files.
func (m Model) Files() []chatmbti.File {
	return m.files
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	case key.Matches(msg, m.keymap.ShowResult):
		if m.controller.Sections() != nil {
			return m.setFocus(focusResults)
		}
		return m, nil
	case key.Matches(msg, m.keymap.NextField):
		return m.setFocus(m.nextFocus(1))
	case key.Matches(msg, m.keymap.PrevField):
		return m.setFocus(m.nextFocus(-1))
	}

	if m.focus == focusName && key.Matches(msg, m.keymap.AddFile) {
		return m.setFocus(focusFiles)
	}
	if m.focus == focusFiles {
		value := strings.TrimSpace(m.fileInput.Value())
		switch {
		case key.Matches(msg, m.keymap.AddFile) && value == "":
			return m.submit()
		case key.Matches(msg, m.keymap.AddFile):
			m.addFiles(value)
			m.fileInput.Reset()
			return m, nil
		case key.Matches(msg, m.keymap.RemoveFile) && m.fileInput.Value() == "" && len(m.files) > 0:
			m.files = m.files[:len(m.files)-1]
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle multi-key sequences (gg for go to top)
	if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
		m.viewport.GotoTop()
		m.pendingKey = ""
		return m, nil
	}
	if key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = "g"
		return m, nil
	}
	m.pendingKey = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Edit):
		return m.setFocus(focusName)
	case key.Matches(msg, m.keymap.Resubmit):
		return m.submit()
	case key.Matches(msg, m.keymap.Copy):
		m.copyReport()
		return m, nil
	case key.Matches(msg, m.keymap.NextPanel):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keymap.PrevPanel):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keymap.Toggle):
		if p, ok := m.cursorPanel(); ok {
			m.toggle(p)
		}
		return m, nil
	case key.Matches(msg, m.keymap.TogglePanel):
		if len(msg.Runes) == 1 {
			m.togglePanelAt(int(msg.Runes[0] - '1'))
		}
		return m, nil
	case key.Matches(msg, m.keymap.GotoBottom):
		m.viewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.viewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.viewport.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keymap.Up):
		m.viewport.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keymap.Down):
		m.viewport.ScrollDown(1)
		return m, nil
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	widthChanged := m.width != msg.Width
	m.width = msg.Width
	m.height = msg.Height
	height := max(msg.Height-chromeHeight, 1)

	if widthChanged && m.markdownFactory != nil {
		m.markdown = nil
		md, err := m.markdownFactory(max(msg.Width-4, 1))
		if err != nil {
			m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		} else {
			m.markdown = md
		}
	}

	m.nameInput.Width = max(msg.Width-lipgloss.Width(m.nameInput.Prompt)-1, 1)
	m.fileInput.Width = max(msg.Width-lipgloss.Width(m.fileInput.Prompt)-1, 1)
	m.help.Width = msg.Width

	if !m.ready {
		m.viewport = viewport.New(msg.Width, height)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = height
	}
	m.refreshContent()
	return m, nil
}

func (m Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	current := m.controller.Finish(msg.attempt, msg.result, msg.err)
	if !current {
		m.logger.Warn("applied response from superseded attempt",
			zap.Int("attempt", msg.attempt),
			zap.Int("latest", m.controller.Attempt()),
		)
	}
	if msg.err != nil {
		m.logger.Warn("analysis failed", zap.Int("attempt", msg.attempt), zap.Error(msg.err))
	}

	m.cursor = 0
	m.refreshContent()
	m.viewport.GotoTop()
	if m.controller.State().Phase == chatmbti.PhaseSuccess {
		return m.setFocus(focusResults)
	}
	return m, nil
}

// submit starts a new attempt. Validation failures move focus to the
// offending field.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.notice = ""
	s, attempt, ok := m.controller.Begin(m.nameInput.Value(), m.files)
	m.cursor = 0
	m.refreshContent()
	if !ok {
		if errors.Is(m.controller.State().Err, chatmbti.ErrNoName) {
			return m.setFocus(focusName)
		}
		return m.setFocus(focusFiles)
	}

	m.logger.Info("submitting analysis", zap.Int("attempt", attempt), zap.Int("files", len(s.Files)))
	return m, tea.Batch(m.spinner.Tick, analyze(m.ctx, m.analyzer, s, attempt))
}

// analyze runs the request off the Update loop.
func analyze(ctx context.Context, a chatmbti.Analyzer, s chatmbti.Submission, attempt int) tea.Cmd {
	return func() tea.Msg {
		result, err := a.Analyze(ctx, s)
		return analysisDoneMsg{attempt: attempt, result: result, err: err}
	}
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.nameInput.Blur()
	m.fileInput.Blur()
	var cmd tea.Cmd
	switch f {
	case focusName:
		cmd = m.nameInput.Focus()
	case focusFiles:
		cmd = m.fileInput.Focus()
	case focusResults:
	}
	return m, cmd
}

// nextFocus cycles name → files → results. Results are skipped while there
// are none.
func (m Model) nextFocus(step int) focus {
	order := []focus{focusName, focusFiles}
	if m.controller.Sections() != nil {
		order = append(order, focusResults)
	}
	i := slices.Index(order, m.focus)
	return order[(i+step+len(order))%len(order)]
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusFiles:
		m.fileInput, cmd = m.fileInput.Update(msg)
	case focusResults:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// addFiles adds pattern as a literal path when it names a file, otherwise
// every regular file matching it as a glob. Directories are skipped.
func (m *Model) addFiles(pattern string) {
	loc := m.controller.Locale()
	matches := []string{pattern}
	if _, err := os.Stat(pattern); err != nil {
		matches, _ = filepath.Glob(pattern)
	}
	var added int
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		added++
		f := chatmbti.File{Path: path}
		if !slices.Contains(m.files, f) {
			m.files = append(m.files, f)
		}
	}
	if added == 0 {
		m.notice = fmt.Sprintf(loc.Form.NotFound, pattern)
		return
	}
	m.notice = ""
}

func (m *Model) copyReport() {
	sections := m.controller.Sections()
	if sections == nil || m.clipboard == nil {
		return
	}
	loc := m.controller.Locale()
	if err := m.clipboard.Copy(sections.Report.PlainText()); err != nil {
		m.logger.Warn("copy report failed", zap.Error(err))
		m.notice = fmt.Sprintf(loc.Status.CopyFailed, err)
		return
	}
	m.notice = loc.Status.Copied
}

func (m Model) visiblePanels() []chatmbti.Panel {
	sections := m.controller.Sections()
	if sections == nil {
		return nil
	}
	return visiblePanels(*sections)
}

func (m Model) cursorPanel() (chatmbti.Panel, bool) {
	panels := m.visiblePanels()
	if m.cursor < 0 || m.cursor >= len(panels) {
		return "", false
	}
	return panels[m.cursor], true
}

func (m *Model) moveCursor(step int) {
	n := len(m.visiblePanels())
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + step + n) % n
	m.refreshContent()
	if m.cursor < len(m.offsets) {
		offset := m.offsets[m.cursor]
		if offset < m.viewport.YOffset || offset >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(offset)
		}
	}
}

// togglePanelAt toggles the panel with display number i+1.
func (m *Model) togglePanelAt(i int) {
	if i < 0 || i >= len(chatmbti.Panels) {
		return
	}
	p := chatmbti.Panels[i]
	if idx := slices.Index(m.visiblePanels(), p); idx >= 0 {
		m.cursor = idx
		m.toggle(p)
	}
}

func (m *Model) toggle(p chatmbti.Panel) {
	state := m.controller.Disclosure().Toggle(p)
	m.logger.Debug("panel toggled", zap.String("panel", string(p)), zap.Bool("open", state.Open), zap.Int("extent", state.Extent))
	m.refreshContent()
}

// refreshContent re-renders the panels into the viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	sections := m.controller.Sections()
	if sections == nil {
		m.offsets = nil
		hint := m.controller.Locale().Form.Hint
		if m.controller.State().Phase == chatmbti.PhaseLoading {
			hint = ""
		}
		m.viewport.SetContent(m.newStyle(m.styles.Muted).Render(hint))
		return
	}
	content, offsets := renderPanels(*sections, m.controller.Disclosure(), m.cursor, m.renderConfig())
	m.offsets = offsets
	m.viewport.SetContent(content)
}

func (m Model) renderConfig() renderConfig {
	return renderConfig{
		styles:   m.styles,
		renderer: m.renderer,
		locale:   m.controller.Locale(),
		markdown: m.markdown,
		width:    m.width,
	}
}

// newStyle creates a new lipgloss style using the model's renderer.
func (m Model) newStyle(cp chatmbti.ColorPair) lipgloss.Style {
	return styleFromColorPair(cp, m.renderer)
}

func (m Model) headerView() string {
	title := m.newStyle(m.styles.Accent).Bold(true).Render("chatmbti")
	parts := []string{title}

	state := m.controller.State()
	if status := RenderStatus(state, m.styles, m.renderer); status != "" {
		if state.Phase == chatmbti.PhaseLoading {
			parts = append(parts, m.spinner.View())
		}
		parts = append(parts, status)
	}
	if m.notice != "" {
		parts = append(parts, m.newStyle(m.styles.Muted).Render(m.notice))
	}
	return strings.Join(parts, " ")
}

func (m Model) fileSummaryView() string {
	return m.newStyle(m.styles.Muted).Render(m.controller.Locale().FileSummary(m.files))
}

func (m Model) helpView() string {
	var keys help.KeyMap = formKeys(m.keymap)
	if m.focus == focusResults {
		keys = resultKeys(m.keymap)
	}
	return m.newStyle(m.styles.StatusBar).Width(m.width).Render(m.help.View(keys))
}
