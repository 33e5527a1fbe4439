// Package chatmbti provides domain types for presenting chat-export
// personality analyses.
package chatmbti

import (
	"context"
	"path/filepath"
)

// Axis is one of the eight single-letter trait poles.
type Axis string

// Trait poles.
const (
	AxisE Axis = "E"
	AxisI Axis = "I"
	AxisS Axis = "S"
	AxisN Axis = "N"
	AxisT Axis = "T"
	AxisF Axis = "F"
	AxisJ Axis = "J"
	AxisP Axis = "P"
)

// Axes lists every pole in display order.
var Axes = []Axis{AxisE, AxisI, AxisS, AxisN, AxisT, AxisF, AxisJ, AxisP}

// AxisPair groups two opposing poles.
type AxisPair struct {
	Left  Axis
	Right Axis
}

// AxisPairs lists the four opposing axes in display order.
var AxisPairs = []AxisPair{
	{Left: AxisE, Right: AxisI},
	{Left: AxisS, Right: AxisN},
	{Left: AxisT, Right: AxisF},
	{Left: AxisJ, Right: AxisP},
}

// AnalysisResult is the document returned by the analysis service.
// Any field may be nil; a field of the wrong JSON type is ingested as nil.
type AnalysisResult struct {
	Label      Label // PlainLabel, KeywordLabel, or nil
	MBTI       *MBTI
	Confidence *Confidence
	Meta       *Meta
	Report     *string
}

// Label is the one-line summary of a result. It is either a PlainLabel or a
// KeywordLabel.
type Label interface {
	isLabel()
}

// PlainLabel is a label delivered as a bare string.
type PlainLabel string

// KeywordLabel is a label delivered as an object with an optional keyword.
type KeywordLabel struct {
	Text    string
	Keyword string
}

func (PlainLabel) isLabel()   {}
func (KeywordLabel) isLabel() {}

// MBTI holds the trait scoring portion of a result.
type MBTI struct {
	Type            *string
	Scores          map[Axis]float64  // Absent key means the score is unknown
	Explanation     map[Axis][]string // Evidence sentences per pole
	Features        *Features
	AmbiguousAxes   []Axis
	Persona         *string
	PersonaOverview *string
}

// Features holds behavioral features extracted from the conversations.
type Features struct {
	MostActivePeriod *string // morning, afternoon, evening, night
	TopWords         []string
	TopEmojis        []string
	Samples          []SampleSet // Every sample_* list in document order
}

// SampleSet is one sample_* list of example messages.
type SampleSet struct {
	Key      string // e.g. "sample_common_messages"
	Messages []string
}

// Confidence describes how reliable a result is.
type Confidence struct {
	Score                *float64
	Level                *string // low, medium, high
	LevelLabel           *string // Server-provided display label, overrides Level
	WordCount            *float64
	DataAmountScore      *float64
	SourceDiversityScore *float64
}

// Meta describes the submission as the service understood it.
type Meta struct {
	FileCount          *float64
	UserNameInput      *string
	UserSenderResolved *string
}

// File is a chat export selected for upload.
type File struct {
	Path string
}

// Name returns the base name of the file.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Submission is a validated request for analysis.
type Submission struct {
	UserName string
	Files    []File
}

// Analyzer submits chat exports to the remote analysis service.
type Analyzer interface {
	// Analyze uploads the submission and returns the parsed result.
	// Errors are *TransportError or *MalformedResponseError where applicable.
	Analyze(ctx context.Context, s Submission) (*AnalysisResult, error)
}

// Decoder converts a raw response body into an AnalysisResult.
type Decoder interface {
	Decode(data []byte) (*AnalysisResult, error)
}

// Form is the initial state of the input surface.
type Form struct {
	Name  string
	Files []File
}

// Viewer runs an interactive session.
type Viewer interface {
	View(ctx context.Context, form Form) error
}

// MarkdownRenderer renders markdown for terminal display.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// LocaleLoader loads a locale override file on top of a base locale.
type LocaleLoader interface {
	Load(path string, base Locale) (Locale, error)
}
