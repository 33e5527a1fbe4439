package gjson_test

import (
	"testing"

	"github.com/fwojciec/chatmbti"
	"github.com/fwojciec/chatmbti/gjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResult = `{
  "label": {"label": "Late-night philosopher", "keyword": "depth"},
  "mbti": {
    "type": "INFP",
    "scores": {"E": 30, "I": 70, "S": 45.5, "N": "high"},
    "explanation": {"I": ["prefers long messages", 3, "rarely starts threads"], "E": "nope"},
    "features": {
      "user_most_active_period": "night",
      "user_top_words": ["honestly", "maybe"],
      "user_top_emojis": ["🥲"],
      "sample_common_messages": ["honestly idk", "🥲"],
      "sample_questions": ["why though?"],
      "sample_count": 4
    },
    "ambiguous_axes": ["T", "F"],
    "persona": "poet",
    "persona_overview": "Quiet.\nThoughtful."
  },
  "confidence": {
    "score": 76,
    "level": "medium",
    "word_count": 18342,
    "volume_score": 64,
    "amount_score": 10,
    "diversity_score": "n/a"
  },
  "meta": {"file_count": 2, "user_name_input": "Min", "user_sender_resolved": "민"},
  "report": "1. Overview\n• calm"
}`

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	t.Run("decodes a full result", func(t *testing.T) {
		t.Parallel()

		r, err := gjson.NewDecoder().Decode([]byte(fullResult))
		require.NoError(t, err)

		assert.Equal(t, chatmbti.KeywordLabel{Text: "Late-night philosopher", Keyword: "depth"}, r.Label)

		require.NotNil(t, r.MBTI)
		assert.Equal(t, "INFP", *r.MBTI.Type)
		assert.Equal(t, map[chatmbti.Axis]float64{
			chatmbti.AxisE: 30, chatmbti.AxisI: 70, chatmbti.AxisS: 45.5,
		}, r.MBTI.Scores)
		assert.Equal(t, map[chatmbti.Axis][]string{
			chatmbti.AxisI: {"prefers long messages", "rarely starts threads"},
		}, r.MBTI.Explanation)
		assert.Equal(t, []chatmbti.Axis{chatmbti.AxisT, chatmbti.AxisF}, r.MBTI.AmbiguousAxes)
		assert.Equal(t, "poet", *r.MBTI.Persona)
		assert.Equal(t, "Quiet.\nThoughtful.", *r.MBTI.PersonaOverview)

		f := r.MBTI.Features
		require.NotNil(t, f)
		assert.Equal(t, "night", *f.MostActivePeriod)
		assert.Equal(t, []string{"honestly", "maybe"}, f.TopWords)
		assert.Equal(t, []string{"🥲"}, f.TopEmojis)
		assert.Equal(t, []chatmbti.SampleSet{
			{Key: "sample_common_messages", Messages: []string{"honestly idk", "🥲"}},
			{Key: "sample_questions", Messages: []string{"why though?"}},
		}, f.Samples)

		c := r.Confidence
		require.NotNil(t, c)
		assert.InDelta(t, 76.0, *c.Score, 0)
		assert.Equal(t, "medium", *c.Level)
		assert.Nil(t, c.LevelLabel)
		assert.InDelta(t, 18342.0, *c.WordCount, 0)
		assert.InDelta(t, 64.0, *c.DataAmountScore, 0)
		assert.Nil(t, c.SourceDiversityScore)

		require.NotNil(t, r.Meta)
		assert.InDelta(t, 2.0, *r.Meta.FileCount, 0)
		assert.Equal(t, "Min", *r.Meta.UserNameInput)
		assert.Equal(t, "민", *r.Meta.UserSenderResolved)

		assert.Equal(t, "1. Overview\n• calm", *r.Report)
	})

	t.Run("accepts a plain string label", func(t *testing.T) {
		t.Parallel()

		r, err := gjson.NewDecoder().Decode([]byte(`{"label": "Mood maker"}`))
		require.NoError(t, err)

		assert.Equal(t, chatmbti.PlainLabel("Mood maker"), r.Label)
	})

	t.Run("drops fields of the wrong type", func(t *testing.T) {
		t.Parallel()

		r, err := gjson.NewDecoder().Decode([]byte(`{"label": 7, "mbti": [], "confidence": "high", "meta": null, "report": {"text": "x"}}`))
		require.NoError(t, err)

		assert.Equal(t, &chatmbti.AnalysisResult{}, r)
	})

	t.Run("accepts an empty object", func(t *testing.T) {
		t.Parallel()

		r, err := gjson.NewDecoder().Decode([]byte(`{}`))
		require.NoError(t, err)

		assert.Equal(t, &chatmbti.AnalysisResult{}, r)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := gjson.NewDecoder().Decode([]byte(`{"label": `))

		assert.ErrorIs(t, err, gjson.ErrInvalidJSON)
	})

	t.Run("rejects non-object documents", func(t *testing.T) {
		t.Parallel()

		_, err := gjson.NewDecoder().Decode([]byte(`["a"]`))

		assert.ErrorIs(t, err, gjson.ErrNotObject)
	})

	t.Run("prefers the primary data amount key", func(t *testing.T) {
		t.Parallel()

		r, err := gjson.NewDecoder().Decode([]byte(`{"confidence": {"amount_score": 1, "data_amount_score": 9, "source_score": 3}}`))
		require.NoError(t, err)

		assert.InDelta(t, 9.0, *r.Confidence.DataAmountScore, 0)
		assert.InDelta(t, 3.0, *r.Confidence.SourceDiversityScore, 0)
	})
}
