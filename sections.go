package chatmbti

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Sections holds one view model per panel. A Sections value is built
// wholesale from a complete AnalysisResult and never patched.
type Sections struct {
	Label      LabelView
	Traits     TraitSummaryView
	Evidence   EvidenceView
	Confidence ConfidenceView
	Metadata   MetadataView
	Report     ReportView
	Persona    PersonaView
}

// MapSections runs every mapper over r.
func MapSections(r *AnalysisResult, loc Locale) Sections {
	return Sections{
		Label:      MapLabel(r, loc),
		Traits:     MapTraitSummary(r, loc),
		Evidence:   MapEvidence(r, loc),
		Confidence: MapConfidence(r, loc),
		Metadata:   MapMetadata(r, loc),
		Report:     MapReport(r, loc),
		Persona:    MapPersona(r, loc),
	}
}

// List is a sequence of display strings with a placeholder for the empty case.
type List struct {
	Items       []string
	Placeholder string // Set only when Items is empty
}

// Empty reports whether the list has no items.
func (l List) Empty() bool {
	return len(l.Items) == 0
}

func newList(items []string, placeholder string) List {
	if len(items) == 0 {
		return List{Placeholder: placeholder}
	}
	return List{Items: append([]string(nil), items...)}
}

// LabelView is the one-line summary panel.
type LabelView struct {
	Renderable bool // False when no label text was found; the panel omits itself
	Caption    string
	Text       string
	Keyword    string // Empty when absent
}

// MapLabel maps the label field, accepting either of its shapes.
func MapLabel(r *AnalysisResult, loc Locale) LabelView {
	if r == nil {
		return LabelView{}
	}
	var text, keyword string
	switch l := r.Label.(type) {
	case PlainLabel:
		text = string(l)
	case KeywordLabel:
		text, keyword = l.Text, l.Keyword
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return LabelView{}
	}
	return LabelView{
		Renderable: true,
		Caption:    loc.Captions.Label,
		Text:       text,
		Keyword:    strings.TrimSpace(keyword),
	}
}

// TraitRow is one axis of the trait summary. LeftPct+RightPct is always 100.
type TraitRow struct {
	Left     Axis
	LeftPct  int
	Right    Axis
	RightPct int
}

// TraitSummaryView is the headline type plus four axis rows.
type TraitSummaryView struct {
	Type string
	Rows []TraitRow
}

// defaultScore is used for a pole whose score is absent.
const defaultScore = 50

// MapTraitSummary maps the type and axis scores.
func MapTraitSummary(r *AnalysisResult, loc Locale) TraitSummaryView {
	var m *MBTI
	if r != nil {
		m = r.MBTI
	}
	v := TraitSummaryView{
		Type: loc.Placeholders.Type,
		Rows: make([]TraitRow, 0, len(AxisPairs)),
	}
	if m != nil && m.Type != nil && strings.TrimSpace(*m.Type) != "" {
		v.Type = strings.TrimSpace(*m.Type)
	}
	for _, pair := range AxisPairs {
		a, b := float64(defaultScore), float64(defaultScore)
		if m != nil {
			if s, ok := m.Scores[pair.Left]; ok {
				a = s
			}
			if s, ok := m.Scores[pair.Right]; ok {
				b = s
			}
		}
		left, right := splitPercent(a, b)
		v.Rows = append(v.Rows, TraitRow{Left: pair.Left, LeftPct: left, Right: pair.Right, RightPct: right})
	}
	return v
}

// splitPercent normalizes two scores into complementary percentages.
// Negative and NaN scores count as 0, and 0/0 splits evenly.
func splitPercent(a, b float64) (left, right int) {
	a, b = nonNegative(a), nonNegative(b)
	total := a + b
	if total == 0 {
		return 50, 50
	}
	left = int(math.Round(100 * a / total))
	return left, 100 - left
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// AxisEvidence is the evidence card for one pole.
type AxisEvidence struct {
	Axis     Axis
	Name     string
	Evidence List
}

// EvidenceView is the behavioral evidence panel.
type EvidenceView struct {
	AmbiguousAxes List
	Axes          []AxisEvidence // Always eight, in Axes order
	ActivePeriod  string
	TopWords      List
	TopEmojis     List
	Samples       List
}

// preferredSampleKey is the sample list shown when present.
const preferredSampleKey = "sample_common_messages"

// MapEvidence maps explanations and behavioral features.
func MapEvidence(r *AnalysisResult, loc Locale) EvidenceView {
	var m *MBTI
	if r != nil {
		m = r.MBTI
	}
	var f *Features
	if m != nil {
		f = m.Features
	}

	v := EvidenceView{Axes: make([]AxisEvidence, 0, len(Axes))}
	for _, axis := range Axes {
		var items []string
		if m != nil {
			items = nonBlank(m.Explanation[axis])
		}
		name := loc.AxisName(axis)
		v.Axes = append(v.Axes, AxisEvidence{
			Axis:     axis,
			Name:     name,
			Evidence: newList(items, fmt.Sprintf(loc.Placeholders.AxisEvidence, name)),
		})
	}

	var ambiguous []string
	if m != nil {
		for _, a := range m.AmbiguousAxes {
			if s := strings.TrimSpace(string(a)); s != "" {
				ambiguous = append(ambiguous, s)
			}
		}
	}
	v.AmbiguousAxes = newList(ambiguous, loc.Placeholders.AmbiguousAxes)

	var period *string
	var words, emojis, samples []string
	if f != nil {
		period = f.MostActivePeriod
		words = nonBlank(f.TopWords)
		emojis = nonBlank(f.TopEmojis)
		samples = selectSamples(f.Samples)
	}
	v.ActivePeriod = loc.TimeBucket(period)
	v.TopWords = newList(words, loc.Placeholders.TopWords)
	v.TopEmojis = newList(emojis, loc.Placeholders.TopEmojis)
	v.Samples = newList(samples, loc.Placeholders.Samples)
	return v
}

// selectSamples picks example messages. The common-messages list is used
// when present, otherwise every sample list in document order. Lines with at
// least one letter or digit are preferred over emoji-only lines; if none
// qualify the unfiltered set is returned.
func selectSamples(sets []SampleSet) []string {
	var raw []string
	preferred := false
	for _, s := range sets {
		if s.Key == preferredSampleKey {
			raw = nonBlank(s.Messages)
			preferred = true
			break
		}
	}
	if !preferred {
		for _, s := range sets {
			raw = append(raw, nonBlank(s.Messages)...)
		}
	}
	var textual []string
	for _, line := range raw {
		if hasLetterOrDigit(line) {
			textual = append(textual, line)
		}
	}
	return StringsOr(textual, raw)
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func nonBlank(items []string) []string {
	var out []string
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// ConfidenceView is the confidence panel.
type ConfidenceView struct {
	Available       bool    // False when the result has no confidence object
	Notice          string  // Placeholder shown when not Available
	Score           float64 // Unclamped, as reported
	ScoreText       string
	BarPercent      float64 // Score clamped to [0,100] for bar widths
	Level           string
	WordCount       float64
	WordCountText   string
	DataAmount      string // Number or the not-a-number placeholder
	SourceDiversity string // Number or the not-a-number placeholder
}

// MapConfidence maps the confidence assessment.
func MapConfidence(r *AnalysisResult, loc Locale) ConfidenceView {
	var c *Confidence
	if r != nil {
		c = r.Confidence
	}
	if c == nil {
		c = &Confidence{}
	}
	score := NumberOr(c.Score, 0)
	words := NumberOr(c.WordCount, 0)

	level := loc.Placeholders.NoData
	switch {
	case c.LevelLabel != nil && strings.TrimSpace(*c.LevelLabel) != "":
		level = *c.LevelLabel
	case c.Level != nil && strings.TrimSpace(*c.Level) != "":
		level = loc.ConfidenceLevel(*c.Level)
	}

	v := ConfidenceView{
		Available:       r != nil && r.Confidence != nil,
		Score:           score,
		ScoreText:       loc.Number(score),
		BarPercent:      clamp(score, 0, 100),
		Level:           level,
		WordCount:       words,
		WordCountText:   loc.Number(words),
		DataAmount:      numberText(c.DataAmountScore, loc),
		SourceDiversity: numberText(c.SourceDiversityScore, loc),
	}
	if !v.Available {
		v.Notice = loc.Placeholders.Confidence
	}
	return v
}

func numberText(v *float64, loc Locale) string {
	if v == nil {
		return loc.Placeholders.NotANumber
	}
	return loc.Number(*v)
}

// MetadataView is the analysis metadata panel.
type MetadataView struct {
	FileCount      string
	UserNameInput  string
	SenderResolved string
	Advisory       string
}

// MapMetadata maps the submission metadata.
func MapMetadata(r *AnalysisResult, loc Locale) MetadataView {
	var m *Meta
	if r != nil {
		m = r.Meta
	}
	if m == nil {
		m = &Meta{}
	}
	return MetadataView{
		FileCount:      numberText(m.FileCount, loc),
		UserNameInput:  StringOr(m.UserNameInput, ""),
		SenderResolved: NonEmptyOr(m.UserSenderResolved, loc.Placeholders.SenderUnresolved),
		Advisory:       loc.Captions.NicknameAdvisory,
	}
}

// ReportItemKind classifies a report line.
type ReportItemKind int

// Report item kinds.
const (
	ReportParagraph ReportItemKind = iota
	ReportTitle
	ReportBullet
)

// ReportItem is one non-blank line of the report.
type ReportItem struct {
	Kind ReportItemKind
	Text string // Bullet markers are stripped
}

// ReportView is the free-text report panel.
type ReportView struct {
	Items       []ReportItem
	Placeholder string // Set only when Items is empty
}

// PlainText returns the report as display lines.
func (v ReportView) PlainText() string {
	if len(v.Items) == 0 {
		return v.Placeholder
	}
	lines := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		if item.Kind == ReportBullet {
			lines = append(lines, "• "+item.Text)
			continue
		}
		lines = append(lines, item.Text)
	}
	return strings.Join(lines, "\n")
}

var sectionTitleRe = regexp.MustCompile(`^\d+\.`)

// bulletMarkers are stripped from the start of bullet lines. The ASCII
// markers require a following space so that "-5" stays a paragraph.
var bulletMarkers = []string{"•", "·", "- ", "* "}

// MapReport splits the report into titles, bullets and paragraphs.
func MapReport(r *AnalysisResult, loc Locale) ReportView {
	var text string
	if r != nil {
		text = StringOr(r.Report, "")
	}
	var items []ReportItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, classifyReportLine(line))
	}
	if len(items) == 0 {
		return ReportView{Placeholder: loc.Placeholders.Report}
	}
	return ReportView{Items: items}
}

func classifyReportLine(line string) ReportItem {
	if sectionTitleRe.MatchString(line) {
		return ReportItem{Kind: ReportTitle, Text: line}
	}
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return ReportItem{Kind: ReportBullet, Text: strings.TrimSpace(strings.TrimPrefix(line, marker))}
		}
	}
	return ReportItem{Kind: ReportParagraph, Text: line}
}

// PersonaView is the persona overview card.
type PersonaView struct {
	Active     bool // Requires both a type and an overview text
	Caption    string
	Type       string
	Persona    string // Persona key, e.g. "developer"; may be empty
	Paragraphs []string
	Notice     string // Placeholder shown when not Active
}

// MapPersona maps the persona overview.
func MapPersona(r *AnalysisResult, loc Locale) PersonaView {
	inactive := PersonaView{Notice: loc.Placeholders.Persona}
	if r == nil || r.MBTI == nil || r.MBTI.Type == nil || r.MBTI.PersonaOverview == nil {
		return inactive
	}
	typ := strings.TrimSpace(*r.MBTI.Type)
	if typ == "" {
		return inactive
	}
	var paragraphs []string
	for _, p := range strings.Split(*r.MBTI.PersonaOverview, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return inactive
	}
	return PersonaView{
		Active:     true,
		Caption:    fmt.Sprintf(loc.Captions.Persona, typ),
		Type:       typ,
		Persona:    StringOr(r.MBTI.Persona, ""),
		Paragraphs: paragraphs,
	}
}
