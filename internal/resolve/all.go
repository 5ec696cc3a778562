package resolve

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/session"
)

// ResolveAll advances every symbol to target, at most parallelism at a
// time (unbounded when parallelism <= 0). The first error cancels the
// remaining work and is returned.
func ResolveAll(ctx context.Context, sess *session.Session, syms []*fir.Symbol, target phase.ResolvePhase, parallelism int) error {
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for _, sym := range syms {
		g.Go(func() error {
			return sess.EnsureResolved(gctx, sym, target)
		})
	}
	return g.Wait()
}
