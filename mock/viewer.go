package mock

import (
	"context"

	"github.com/fwojciec/chatmbti"
)

// Compile-time interface verification.
var _ chatmbti.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of chatmbti.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, form chatmbti.Form) error
}

func (v *Viewer) View(ctx context.Context, form chatmbti.Form) error {
	return v.ViewFn(ctx, form)
}
