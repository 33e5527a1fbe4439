package mock

import (
	"context"

	"github.com/fwojciec/chatmbti"
)

// Compile-time interface verification.
var (
	_ chatmbti.Analyzer = (*Analyzer)(nil)
	_ chatmbti.Decoder  = (*Decoder)(nil)
)

// Analyzer is a mock implementation of chatmbti.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, s chatmbti.Submission) (*chatmbti.AnalysisResult, error)
}

func (a *Analyzer) Analyze(ctx context.Context, s chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
	return a.AnalyzeFn(ctx, s)
}

// Decoder is a mock implementation of chatmbti.Decoder.
type Decoder struct {
	DecodeFn func(data []byte) (*chatmbti.AnalysisResult, error)
}

func (d *Decoder) Decode(data []byte) (*chatmbti.AnalysisResult, error) {
	return d.DecodeFn(data)
}
