// Package gjson decodes analysis results with tidwall/gjson, tolerating
// missing fields and fields of the wrong type.
package gjson

import (
	"errors"
	"strings"

	"github.com/fwojciec/chatmbti"
	"github.com/tidwall/gjson"
)

// Compile-time interface verification.
var _ chatmbti.Decoder = (*Decoder)(nil)

// Decode errors.
var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotObject   = errors.New("top-level value is not an object")
)

// Ordered key aliases. The first key holding a value of the right type wins.
var (
	dataAmountKeys      = []string{"data_amount_score", "volume_score", "data_volume_score", "amount_score"}
	sourceDiversityKeys = []string{"source_diversity_score", "source_score", "diversity_score"}
)

// samplePrefix marks feature keys holding example messages.
const samplePrefix = "sample_"

// Decoder implements chatmbti.Decoder. Every field is optional; a field of
// the wrong JSON type is dropped rather than rejected.
type Decoder struct{}

// NewDecoder returns a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses data into an AnalysisResult. It fails only when data is not
// a JSON object.
func (d *Decoder) Decode(data []byte) (*chatmbti.AnalysisResult, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}
	return &chatmbti.AnalysisResult{
		Label:      decodeLabel(root.Get("label")),
		MBTI:       decodeMBTI(root.Get("mbti")),
		Confidence: decodeConfidence(root.Get("confidence")),
		Meta:       decodeMeta(root.Get("meta")),
		Report:     str(root.Get("report")),
	}, nil
}

func decodeLabel(v gjson.Result) chatmbti.Label {
	switch {
	case v.Type == gjson.String:
		return chatmbti.PlainLabel(v.Str)
	case v.IsObject():
		return chatmbti.KeywordLabel{
			Text:    chatmbti.StringOr(str(v.Get("label")), ""),
			Keyword: chatmbti.StringOr(str(v.Get("keyword")), ""),
		}
	default:
		return nil
	}
}

func decodeMBTI(v gjson.Result) *chatmbti.MBTI {
	if !v.IsObject() {
		return nil
	}
	m := &chatmbti.MBTI{
		Type:            str(v.Get("type")),
		Features:        decodeFeatures(v.Get("features")),
		Persona:         str(v.Get("persona")),
		PersonaOverview: str(v.Get("persona_overview")),
	}

	if scores := v.Get("scores"); scores.IsObject() {
		m.Scores = make(map[chatmbti.Axis]float64)
		for _, axis := range chatmbti.Axes {
			if n := num(scores.Get(string(axis))); n != nil {
				m.Scores[axis] = *n
			}
		}
	}

	if explanation := v.Get("explanation"); explanation.IsObject() {
		m.Explanation = make(map[chatmbti.Axis][]string)
		for _, axis := range chatmbti.Axes {
			if items := strs(explanation.Get(string(axis))); items != nil {
				m.Explanation[axis] = items
			}
		}
	}

	for _, a := range strs(v.Get("ambiguous_axes")) {
		m.AmbiguousAxes = append(m.AmbiguousAxes, chatmbti.Axis(a))
	}
	return m
}

func decodeFeatures(v gjson.Result) *chatmbti.Features {
	if !v.IsObject() {
		return nil
	}
	f := &chatmbti.Features{
		MostActivePeriod: str(v.Get("user_most_active_period")),
		TopWords:         strs(v.Get("user_top_words")),
		TopEmojis:        strs(v.Get("user_top_emojis")),
	}
	v.ForEach(func(key, value gjson.Result) bool {
		if strings.HasPrefix(key.Str, samplePrefix) && value.IsArray() {
			f.Samples = append(f.Samples, chatmbti.SampleSet{Key: key.Str, Messages: strs(value)})
		}
		return true
	})
	return f
}

func decodeConfidence(v gjson.Result) *chatmbti.Confidence {
	if !v.IsObject() {
		return nil
	}
	return &chatmbti.Confidence{
		Score:                num(v.Get("score")),
		Level:                str(v.Get("level")),
		LevelLabel:           str(v.Get("level_label")),
		WordCount:            num(v.Get("word_count")),
		DataAmountScore:      firstNum(v, dataAmountKeys),
		SourceDiversityScore: firstNum(v, sourceDiversityKeys),
	}
}

func decodeMeta(v gjson.Result) *chatmbti.Meta {
	if !v.IsObject() {
		return nil
	}
	return &chatmbti.Meta{
		FileCount:          num(v.Get("file_count")),
		UserNameInput:      str(v.Get("user_name_input")),
		UserSenderResolved: str(v.Get("user_sender_resolved")),
	}
}

// str returns the value if it is a JSON string.
func str(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

// num returns the value if it is a JSON number.
func num(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	n := v.Num
	return &n
}

// firstNum returns the first numeric value among keys of v.
func firstNum(v gjson.Result, keys []string) *float64 {
	for _, k := range keys {
		if n := num(v.Get(k)); n != nil {
			return n
		}
	}
	return nil
}

// strs returns the string elements of an array, skipping other types.
// It returns nil when v is not an array.
func strs(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	out := []string{}
	for _, item := range v.Array() {
		if item.Type == gjson.String {
			out = append(out, item.Str)
		}
	}
	return out
}
