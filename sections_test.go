package chatmbti_test

import (
	"testing"

	"github.com/fwojciec/chatmbti"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestMapTraitSummary(t *testing.T) {
	t.Parallel()

	loc := chatmbti.English()

	t.Run("normalizes scores and defaults absent sides", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{
			MBTI: &chatmbti.MBTI{
				Type: ptr("ENFP"),
				Scores: map[chatmbti.Axis]float64{
					chatmbti.AxisE: 70, chatmbti.AxisI: 30,
					chatmbti.AxisS: 40, chatmbti.AxisN: 60,
					chatmbti.AxisJ: 20, chatmbti.AxisP: 80,
				},
			},
		}

		v := chatmbti.MapTraitSummary(r, loc)

		assert.Equal(t, "ENFP", v.Type)
		assert.Equal(t, []chatmbti.TraitRow{
			{Left: chatmbti.AxisE, LeftPct: 70, Right: chatmbti.AxisI, RightPct: 30},
			{Left: chatmbti.AxisS, LeftPct: 40, Right: chatmbti.AxisN, RightPct: 60},
			{Left: chatmbti.AxisT, LeftPct: 50, Right: chatmbti.AxisF, RightPct: 50},
			{Left: chatmbti.AxisJ, LeftPct: 20, Right: chatmbti.AxisP, RightPct: 80},
		}, v.Rows)
	})

	t.Run("splits evenly when both scores are absent", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapTraitSummary(&chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{}}, loc)

		require.Len(t, v.Rows, 4)
		for _, row := range v.Rows {
			assert.Equal(t, 50, row.LeftPct)
			assert.Equal(t, 50, row.RightPct)
		}
	})

	t.Run("splits evenly when both scores are zero", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{
			Scores: map[chatmbti.Axis]float64{chatmbti.AxisT: 0, chatmbti.AxisF: 0},
		}}

		v := chatmbti.MapTraitSummary(r, loc)

		assert.Equal(t, chatmbti.TraitRow{Left: chatmbti.AxisT, LeftPct: 50, Right: chatmbti.AxisF, RightPct: 50}, v.Rows[2])
	})

	t.Run("percentages always sum to 100", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{
			Scores: map[chatmbti.Axis]float64{
				chatmbti.AxisE: 1, chatmbti.AxisI: 2,
				chatmbti.AxisS: 33.3, chatmbti.AxisN: 66.6,
				chatmbti.AxisT: 150, chatmbti.AxisF: -10,
			},
		}}

		v := chatmbti.MapTraitSummary(r, loc)

		for _, row := range v.Rows {
			assert.Equal(t, 100, row.LeftPct+row.RightPct)
		}
		assert.Equal(t, 33, v.Rows[0].LeftPct)
		assert.Equal(t, 100, v.Rows[2].LeftPct)
	})

	t.Run("keeps the ratio of scores above 100", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{
			Scores: map[chatmbti.Axis]float64{chatmbti.AxisE: 150, chatmbti.AxisI: 50},
		}}

		v := chatmbti.MapTraitSummary(r, loc)

		assert.Equal(t, chatmbti.TraitRow{Left: chatmbti.AxisE, LeftPct: 75, Right: chatmbti.AxisI, RightPct: 25}, v.Rows[0])
	})

	t.Run("uses placeholder type when absent", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapTraitSummary(nil, loc)

		assert.Equal(t, "????", v.Type)
		assert.Len(t, v.Rows, 4)
	})
}

func TestMapLabel(t *testing.T) {
	t.Parallel()

	loc := chatmbti.English()

	t.Run("accepts a plain string", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapLabel(&chatmbti.AnalysisResult{Label: chatmbti.PlainLabel("Night owl storyteller")}, loc)

		assert.True(t, v.Renderable)
		assert.Equal(t, "Night owl storyteller", v.Text)
		assert.Empty(t, v.Keyword)
	})

	t.Run("accepts a keyword object", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapLabel(&chatmbti.AnalysisResult{
			Label: chatmbti.KeywordLabel{Text: "Mood maker", Keyword: "energy"},
		}, loc)

		assert.True(t, v.Renderable)
		assert.Equal(t, "Mood maker", v.Text)
		assert.Equal(t, "energy", v.Keyword)
	})

	t.Run("is not renderable without text", func(t *testing.T) {
		t.Parallel()

		for _, l := range []chatmbti.Label{nil, chatmbti.PlainLabel("  "), chatmbti.KeywordLabel{Keyword: "k"}} {
			v := chatmbti.MapLabel(&chatmbti.AnalysisResult{Label: l}, loc)
			assert.False(t, v.Renderable)
		}
	})
}

func TestMapEvidence(t *testing.T) {
	t.Parallel()

	loc := chatmbti.English()

	t.Run("fills every axis and list with placeholders when empty", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapEvidence(&chatmbti.AnalysisResult{}, loc)

		require.Len(t, v.Axes, 8)
		assert.Equal(t, "Not much evidence points to Extraversion.", v.Axes[0].Evidence.Placeholder)
		assert.Equal(t, "Not much evidence points to Perceiving.", v.Axes[7].Evidence.Placeholder)
		assert.Equal(t, loc.Placeholders.TopWords, v.TopWords.Placeholder)
		assert.Equal(t, loc.Placeholders.TopEmojis, v.TopEmojis.Placeholder)
		assert.Equal(t, loc.Placeholders.Samples, v.Samples.Placeholder)
		assert.Equal(t, loc.Placeholders.AmbiguousAxes, v.AmbiguousAxes.Placeholder)
		assert.Equal(t, "no dominant period detected", v.ActivePeriod)
	})

	t.Run("keeps evidence in order", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{
			Explanation: map[chatmbti.Axis][]string{
				chatmbti.AxisE: {"starts most threads", "", "replies fast"},
			},
			AmbiguousAxes: []chatmbti.Axis{chatmbti.AxisT, chatmbti.AxisF},
			Features: &chatmbti.Features{
				MostActivePeriod: ptr("night"),
				TopWords:         []string{"lol", "ok"},
				TopEmojis:        []string{"😂"},
			},
		}}

		v := chatmbti.MapEvidence(r, loc)

		assert.Equal(t, []string{"starts most threads", "replies fast"}, v.Axes[0].Evidence.Items)
		assert.Empty(t, v.Axes[0].Evidence.Placeholder)
		assert.Equal(t, []string{"T", "F"}, v.AmbiguousAxes.Items)
		assert.Equal(t, "00:00–06:00", v.ActivePeriod)
		assert.Equal(t, []string{"lol", "ok"}, v.TopWords.Items)
		assert.Equal(t, []string{"😂"}, v.TopEmojis.Items)
	})

	t.Run("prefers textual samples", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{Features: &chatmbti.Features{
			Samples: []chatmbti.SampleSet{
				{Key: "sample_long_messages", Messages: []string{"a long one"}},
				{Key: "sample_common_messages", Messages: []string{"😂😂", "see you at 7", "ㅋㅋㅋ"}},
			},
		}}}

		v := chatmbti.MapEvidence(r, loc)

		assert.Equal(t, []string{"see you at 7", "ㅋㅋㅋ"}, v.Samples.Items)
	})

	t.Run("falls back to unfiltered samples", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{Features: &chatmbti.Features{
			Samples: []chatmbti.SampleSet{
				{Key: "sample_common_messages", Messages: []string{"😂😂", "👍"}},
			},
		}}}

		v := chatmbti.MapEvidence(r, loc)

		assert.Equal(t, []string{"😂😂", "👍"}, v.Samples.Items)
	})

	t.Run("merges other sample lists without common messages", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{Features: &chatmbti.Features{
			Samples: []chatmbti.SampleSet{
				{Key: "sample_questions", Messages: []string{"why?"}},
				{Key: "sample_long_messages", Messages: []string{"well, it depends"}},
			},
		}}}

		v := chatmbti.MapEvidence(r, loc)

		assert.Equal(t, []string{"why?", "well, it depends"}, v.Samples.Items)
	})

	t.Run("an empty common messages list is not replaced by other lists", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{Features: &chatmbti.Features{
			Samples: []chatmbti.SampleSet{
				{Key: "sample_common_messages", Messages: []string{}},
				{Key: "sample_other", Messages: []string{"hello"}},
			},
		}}}

		v := chatmbti.MapEvidence(r, loc)

		assert.True(t, v.Samples.Empty())
		assert.Equal(t, loc.Placeholders.Samples, v.Samples.Placeholder)
	})
}

func TestMapConfidence(t *testing.T) {
	t.Parallel()

	loc := chatmbti.English()

	t.Run("resolves level and missing scores", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{Confidence: &chatmbti.Confidence{
			Score:                ptr(82.0),
			Level:                ptr("high"),
			WordCount:            ptr(12345.0),
			SourceDiversityScore: ptr(40.0),
		}}

		v := chatmbti.MapConfidence(r, loc)

		assert.True(t, v.Available)
		assert.Equal(t, "High", v.Level)
		assert.Equal(t, "-", v.DataAmount)
		assert.Equal(t, "40", v.SourceDiversity)
		assert.Equal(t, "82", v.ScoreText)
		assert.Equal(t, "12,345", v.WordCountText)
	})

	t.Run("clamps the bar but not the displayed score", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapConfidence(&chatmbti.AnalysisResult{Confidence: &chatmbti.Confidence{Score: ptr(130.0)}}, loc)

		assert.InDelta(t, 130.0, v.Score, 0)
		assert.Equal(t, "130", v.ScoreText)
		assert.InDelta(t, 100.0, v.BarPercent, 0)
	})

	t.Run("prefers the server level label", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapConfidence(&chatmbti.AnalysisResult{Confidence: &chatmbti.Confidence{
			Level:      ptr("high"),
			LevelLabel: ptr("Very reliable"),
		}}, loc)

		assert.Equal(t, "Very reliable", v.Level)
	})

	t.Run("passes unknown levels through", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapConfidence(&chatmbti.AnalysisResult{Confidence: &chatmbti.Confidence{Level: ptr("extreme")}}, loc)

		assert.Equal(t, "extreme", v.Level)
	})

	t.Run("defaults everything when absent", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapConfidence(&chatmbti.AnalysisResult{}, loc)

		assert.False(t, v.Available)
		assert.Equal(t, loc.Placeholders.Confidence, v.Notice)
		assert.Equal(t, "0", v.ScoreText)
		assert.Equal(t, "no data", v.Level)
		assert.Equal(t, "-", v.DataAmount)
		assert.Equal(t, "-", v.SourceDiversity)
	})
}

func TestMapMetadata(t *testing.T) {
	t.Parallel()

	loc := chatmbti.English()

	t.Run("surfaces values verbatim", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapMetadata(&chatmbti.AnalysisResult{Meta: &chatmbti.Meta{
			FileCount:          ptr(3.0),
			UserNameInput:      ptr("Alice"),
			UserSenderResolved: ptr("앨리스"),
		}}, loc)

		assert.Equal(t, "3", v.FileCount)
		assert.Equal(t, "Alice", v.UserNameInput)
		assert.Equal(t, "앨리스", v.SenderResolved)
		assert.Equal(t, loc.Captions.NicknameAdvisory, v.Advisory)
	})

	t.Run("reports unresolved sender", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapMetadata(&chatmbti.AnalysisResult{Meta: &chatmbti.Meta{UserSenderResolved: ptr("")}}, loc)

		assert.Equal(t, "(resolution failed)", v.SenderResolved)
		assert.Equal(t, "-", v.FileCount)
	})
}

func TestMapReport(t *testing.T) {
	t.Parallel()

	loc := chatmbti.English()

	t.Run("classifies titles bullets and paragraphs in order", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapReport(&chatmbti.AnalysisResult{Report: ptr("1. Overview\n• point one\nplain text")}, loc)

		assert.Equal(t, []chatmbti.ReportItem{
			{Kind: chatmbti.ReportTitle, Text: "1. Overview"},
			{Kind: chatmbti.ReportBullet, Text: "point one"},
			{Kind: chatmbti.ReportParagraph, Text: "plain text"},
		}, v.Items)
	})

	t.Run("drops blank lines and trims", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapReport(&chatmbti.AnalysisResult{Report: ptr("\n  2. Style  \n\n   \n- dash bullet\n-5 points\n")}, loc)

		assert.Equal(t, []chatmbti.ReportItem{
			{Kind: chatmbti.ReportTitle, Text: "2. Style"},
			{Kind: chatmbti.ReportBullet, Text: "dash bullet"},
			{Kind: chatmbti.ReportParagraph, Text: "-5 points"},
		}, v.Items)
	})

	t.Run("uses placeholder without report", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapReport(&chatmbti.AnalysisResult{Report: ptr(" \n ")}, loc)

		assert.Empty(t, v.Items)
		assert.Equal(t, loc.Placeholders.Report, v.Placeholder)
		assert.Equal(t, loc.Placeholders.Report, v.PlainText())
	})

	t.Run("renders plain text", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapReport(&chatmbti.AnalysisResult{Report: ptr("1. A\n· b\nc")}, loc)

		assert.Equal(t, "1. A\n• b\nc", v.PlainText())
	})
}

func TestMapPersona(t *testing.T) {
	t.Parallel()

	loc := chatmbti.English()

	t.Run("splits overview into paragraphs", func(t *testing.T) {
		t.Parallel()

		v := chatmbti.MapPersona(&chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{
			Type:            ptr("INTJ"),
			Persona:         ptr("strategist"),
			PersonaOverview: ptr("First.\n\n  Second.  \n"),
		}}, loc)

		assert.True(t, v.Active)
		assert.Equal(t, "INTJ summary", v.Caption)
		assert.Equal(t, "strategist", v.Persona)
		assert.Equal(t, []string{"First.", "Second."}, v.Paragraphs)
	})

	t.Run("is inactive without type or overview", func(t *testing.T) {
		t.Parallel()

		for _, m := range []*chatmbti.MBTI{
			nil,
			{Type: ptr("INTJ")},
			{PersonaOverview: ptr("text")},
			{Type: ptr("INTJ"), PersonaOverview: ptr("  ")},
		} {
			v := chatmbti.MapPersona(&chatmbti.AnalysisResult{MBTI: m}, loc)
			assert.False(t, v.Active)
			assert.Equal(t, loc.Placeholders.Persona, v.Notice)
		}
	})
}

func TestMapSections(t *testing.T) {
	t.Parallel()

	t.Run("fills placeholders for an empty result", func(t *testing.T) {
		t.Parallel()

		loc := chatmbti.English()
		for _, r := range []*chatmbti.AnalysisResult{nil, {}} {
			s := chatmbti.MapSections(r, loc)

			assert.False(t, s.Label.Renderable)
			assert.Equal(t, "????", s.Traits.Type)
			assert.Len(t, s.Traits.Rows, 4)
			assert.Len(t, s.Evidence.Axes, 8)
			assert.False(t, s.Confidence.Available)
			assert.Equal(t, "(resolution failed)", s.Metadata.SenderResolved)
			assert.Equal(t, loc.Placeholders.Report, s.Report.Placeholder)
			assert.False(t, s.Persona.Active)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		r := &chatmbti.AnalysisResult{
			Label: chatmbti.KeywordLabel{Text: "Mood maker", Keyword: "energy"},
			MBTI: &chatmbti.MBTI{
				Type:   ptr("ENFP"),
				Scores: map[chatmbti.Axis]float64{chatmbti.AxisE: 61},
				Explanation: map[chatmbti.Axis][]string{
					chatmbti.AxisN: {"jumps between topics"},
				},
				Features: &chatmbti.Features{TopWords: []string{"wow"}},
			},
			Confidence: &chatmbti.Confidence{Score: ptr(55.5), Level: ptr("medium")},
			Meta:       &chatmbti.Meta{FileCount: ptr(2.0)},
			Report:     ptr("1. Intro\n• one"),
		}

		first := chatmbti.MapSections(r, chatmbti.English())
		second := chatmbti.MapSections(r, chatmbti.English())

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("MapSections mismatch (-first +second):\n%s", diff)
		}
	})

	t.Run("localizes with the Korean catalog", func(t *testing.T) {
		t.Parallel()

		s := chatmbti.MapSections(&chatmbti.AnalysisResult{
			Confidence: &chatmbti.Confidence{Level: ptr("high")},
		}, chatmbti.Korean())

		assert.Equal(t, "높음", s.Confidence.Level)
		assert.Equal(t, "(감지 실패)", s.Metadata.SenderResolved)
	})
}
