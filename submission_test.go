package chatmbti_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/chatmbti"
	"github.com/fwojciec/chatmbti/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Submit(t *testing.T) {
	t.Parallel()

	files := []chatmbti.File{{Path: "/tmp/KakaoTalk_chat.txt"}}

	t.Run("rejects an empty name without calling the service", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
			t.Fatal("analyzer must not be called")
			return nil, nil
		}}
		c := chatmbti.NewController(analyzer, nil)

		state := c.Submit(context.Background(), "   ", files)

		assert.Equal(t, chatmbti.PhaseError, state.Phase)
		assert.Equal(t, chatmbti.English().Status.MissingName, state.Message)
		assert.ErrorIs(t, state.Err, chatmbti.ErrNoName)
		assert.Zero(t, c.Attempt())
	})

	t.Run("rejects zero files without calling the service", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
			t.Fatal("analyzer must not be called")
			return nil, nil
		}}
		c := chatmbti.NewController(analyzer, nil)

		state := c.Submit(context.Background(), "Alice", nil)

		assert.Equal(t, chatmbti.PhaseError, state.Phase)
		assert.Equal(t, chatmbti.English().Status.MissingFiles, state.Message)
		assert.ErrorIs(t, state.Err, chatmbti.ErrNoFiles)
	})

	t.Run("maps the result and opens the overview on success", func(t *testing.T) {
		t.Parallel()

		var got chatmbti.Submission
		analyzer := &mock.Analyzer{AnalyzeFn: func(_ context.Context, s chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
			got = s
			return &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{Type: ptr("ISTP")}}, nil
		}}
		d := chatmbti.NewDisclosure(nil)
		c := chatmbti.NewController(analyzer, d)

		state := c.Submit(context.Background(), "  Alice ", files)

		assert.Equal(t, chatmbti.PhaseSuccess, state.Phase)
		assert.Equal(t, chatmbti.English().Status.Success, state.Message)
		assert.Equal(t, chatmbti.Submission{UserName: "Alice", Files: files}, got)
		require.NotNil(t, c.Sections())
		assert.Equal(t, "ISTP", c.Sections().Traits.Type)
		assert.True(t, d.IsOpen(chatmbti.PanelOverview))
	})

	t.Run("surfaces status code and server text", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
			return nil, &chatmbti.TransportError{StatusCode: 500, Body: "db down"}
		}}
		c := chatmbti.NewController(analyzer, nil)

		state := c.Submit(context.Background(), "Alice", files)

		assert.Equal(t, chatmbti.PhaseError, state.Phase)
		assert.Contains(t, state.Message, "500")
		assert.Contains(t, state.Message, "db down")
		assert.Nil(t, c.Sections())
	})

	t.Run("uses a generic message for malformed responses", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
			return nil, &chatmbti.MalformedResponseError{Err: errors.New("unexpected EOF")}
		}}
		c := chatmbti.NewController(analyzer, nil)

		state := c.Submit(context.Background(), "Alice", files)

		assert.Equal(t, chatmbti.PhaseError, state.Phase)
		assert.Equal(t, "Analysis failed: the server returned a response that could not be read", state.Message)
	})

	t.Run("treats a nil result as malformed", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
			return nil, nil
		}}
		c := chatmbti.NewController(analyzer, nil)

		state := c.Submit(context.Background(), "Alice", files)

		var merr *chatmbti.MalformedResponseError
		assert.ErrorAs(t, state.Err, &merr)
	})

	t.Run("walks through every phase", func(t *testing.T) {
		t.Parallel()

		var phases []chatmbti.Phase
		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
			return &chatmbti.AnalysisResult{}, nil
		}}
		c := chatmbti.NewController(analyzer, nil, chatmbti.WithTransitionHook(func(_, to chatmbti.Phase) {
			phases = append(phases, to)
		}))

		c.Submit(context.Background(), "", files)
		c.Submit(context.Background(), "Alice", files)

		assert.Equal(t, []chatmbti.Phase{
			chatmbti.PhaseValidating, chatmbti.PhaseError,
			chatmbti.PhaseValidating, chatmbti.PhaseLoading, chatmbti.PhaseSuccess,
		}, phases)
	})
}

func TestController_Begin(t *testing.T) {
	t.Parallel()

	files := []chatmbti.File{{Path: "a.txt"}}

	t.Run("clears prior sections immediately", func(t *testing.T) {
		t.Parallel()

		c := chatmbti.NewController(nil, nil)
		_, attempt, ok := c.Begin("Alice", files)
		require.True(t, ok)
		c.Finish(attempt, &chatmbti.AnalysisResult{}, nil)
		require.NotNil(t, c.Sections())

		_, _, ok = c.Begin("Alice", files)

		require.True(t, ok)
		assert.Nil(t, c.Sections())
		assert.Equal(t, chatmbti.PhaseLoading, c.State().Phase)
		assert.Equal(t, chatmbti.English().Status.Loading, c.State().Message)
	})

	t.Run("applies responses in arrival order", func(t *testing.T) {
		t.Parallel()

		c := chatmbti.NewController(nil, nil)
		_, first, _ := c.Begin("Alice", files)
		_, second, _ := c.Begin("Alice", files)

		current := c.Finish(second, &chatmbti.AnalysisResult{MBTI: &chatmbti.MBTI{Type: ptr("ENTP")}}, nil)
		assert.True(t, current)

		current = c.Finish(first, nil, &chatmbti.TransportError{StatusCode: 502, Body: "bad gateway"})

		assert.False(t, current)
		assert.Equal(t, chatmbti.PhaseError, c.State().Phase)
		assert.Nil(t, c.Sections())
	})

	t.Run("localizes validation messages", func(t *testing.T) {
		t.Parallel()

		c := chatmbti.NewController(nil, nil, chatmbti.WithLocale(chatmbti.Korean()))

		_, _, ok := c.Begin("", files)

		assert.False(t, ok)
		assert.Equal(t, "먼저 내 카카오톡 이름을 입력해주세요.", c.State().Message)
	})
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", chatmbti.PhaseIdle.String())
	assert.Equal(t, "loading", chatmbti.PhaseLoading.String())
	assert.Equal(t, "phase(9)", chatmbti.Phase(9).String())
}
