// Package resolve drives declarations through the resolve phases.
//
// EnsureResolved is the single gate every reader goes through before it
// inspects phase-dependent data of a declaration. Phases only move forward;
// each step runs the transformer registered for that phase while holding the
// symbol's transition lock.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AmrAfifiy/kotlin/internal/diagnostics"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/session"
)

var (
	// ErrCyclicResolution is returned when resolving a symbol requires the
	// symbol itself to be resolved first.
	ErrCyclicResolution = errors.New("cyclic resolution")
	// ErrNoTransformer is returned when no transformer handles a phase.
	ErrNoTransformer = errors.New("no transformer registered")
)

// Transformer moves one declaration into a phase. It must only touch data
// belonging to that phase.
type Transformer func(ctx context.Context, sess *session.Session, decl fir.Declaration) error

// Resolver holds the phase transformers and implements session.LazyResolver.
type Resolver struct {
	transformers map[phase.ResolvePhase]Transformer
}

// NewResolver returns a resolver with the default transformers.
func NewResolver() *Resolver {
	r := &Resolver{transformers: make(map[phase.ResolvePhase]Transformer)}
	for p := phase.First + 1; p <= phase.Last; p++ {
		r.transformers[p] = noop
	}
	r.transformers[phase.Types] = resolveTypes
	r.transformers[phase.Contracts] = resolveContract
	r.transformers[phase.AnnotationArgumentsMapping] = mapAnnotationArguments
	return r
}

// NewEmptyResolver returns a resolver without any transformer.
func NewEmptyResolver() *Resolver {
	return &Resolver{transformers: make(map[phase.ResolvePhase]Transformer)}
}

// With replaces the transformer of p. Resolvers must be configured before
// the session using them is built.
func (r *Resolver) With(p phase.ResolvePhase, t Transformer) *Resolver {
	r.transformers[p] = t
	return r
}

func noop(context.Context, *session.Session, fir.Declaration) error { return nil }

type stackKey struct{}

// frame is one entry of the resolution stack carried by a context.
type frame struct {
	sym    *fir.Symbol
	parent *frame
}

func stackFrom(ctx context.Context) *frame {
	f, _ := ctx.Value(stackKey{}).(*frame)
	return f
}

func (f *frame) contains(sym *fir.Symbol) bool {
	for ; f != nil; f = f.parent {
		if f.sym == sym {
			return true
		}
	}
	return false
}

// path renders the stack from the outermost symbol up to sym.
func (f *frame) path(sym *fir.Symbol) string {
	var parts []string
	for ; f != nil; f = f.parent {
		parts = append(parts, f.sym.Fir().DisplayName())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	parts = append(parts, sym.Fir().DisplayName())
	return strings.Join(parts, " -> ")
}

// EnsureResolved advances sym to at least target. It returns immediately
// when the symbol is already there. Cancellation of ctx is checked before
// every step.
func (r *Resolver) EnsureResolved(ctx context.Context, sess *session.Session, sym *fir.Symbol, target phase.ResolvePhase) error {
	if sym.Phase() >= target {
		return nil
	}
	if !target.Valid() {
		return fmt.Errorf("invalid resolve phase %d", target)
	}

	stack := stackFrom(ctx)
	if stack.contains(sym) {
		cycle := stack.path(sym)
		sess.Diagnostics().Add(diagnostics.CyclicResolution(sym.Fir().Source(), cycle))
		return fmt.Errorf("%w: %s", ErrCyclicResolution, cycle)
	}
	inner := context.WithValue(ctx, stackKey{}, &frame{sym: sym, parent: stack})

	for sym.Phase() < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sym.Transition(func() error { return r.step(inner, sess, sym, target) }); err != nil {
			return err
		}
	}
	return nil
}

// step runs the transformer of the phase after the current one. It is
// called with the transition lock held; another goroutine may have advanced
// the symbol in the meantime.
func (r *Resolver) step(ctx context.Context, sess *session.Session, sym *fir.Symbol, target phase.ResolvePhase) error {
	cur := sym.Phase()
	if cur >= target {
		return nil
	}
	next := cur.Next()
	t, ok := r.transformers[next]
	if !ok {
		return fmt.Errorf("%s: %w for %s", sym, ErrNoTransformer, next)
	}
	if err := t(ctx, sess, sym.Fir()); err != nil {
		return fmt.Errorf("resolving %s to %s: %w", sym, next, err)
	}
	sym.AdvanceTo(next)
	sess.Tracer().Resolved(sym, next)
	return nil
}
