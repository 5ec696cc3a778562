// Package session provides the component container that resolution runs
// against.
//
// A Session is assembled once by a Builder and never changes afterwards:
// the symbol registry is frozen and every collaborator is fixed. Declarations
// reachable from the session are still mutated by lazy resolution, but only
// through the resolver the session was built with.
package session

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/AmrAfifiy/kotlin/internal/diagnostics"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/phase"
)

var (
	// ErrFrozen is returned when declaring into a built session.
	ErrFrozen = errors.New("session is frozen")
	// ErrNoResolver is returned by EnsureResolved on a session built
	// without a lazy resolver.
	ErrNoResolver = errors.New("session has no lazy resolver")
)

// SymbolProvider finds classifier symbols by class id.
type SymbolProvider interface {
	ClassLikeSymbol(id names.ClassId) *fir.Symbol
}

// LazyResolver advances a symbol to a phase on demand.
type LazyResolver interface {
	EnsureResolved(ctx context.Context, sess *Session, sym *fir.Symbol, target phase.ResolvePhase) error
}

// Session is the immutable set of components shared by one resolution run.
type Session struct {
	name     string
	registry *Registry
	resolver LazyResolver
	tracer   *Tracer
	diags    *diagnostics.Bag
	token    *ValidityToken
}

func (s *Session) Name() string { return s.name }

// Registry exposes the frozen symbol registry
func (s *Session) Registry() *Registry { return s.registry }

// ClassLikeSymbol implements SymbolProvider.
func (s *Session) ClassLikeSymbol(id names.ClassId) *fir.Symbol {
	return s.registry.ClassLikeSymbol(id)
}

func (s *Session) Tracer() *Tracer { return s.tracer }

// Diagnostics is the bag every component of the session reports into.
func (s *Session) Diagnostics() *diagnostics.Bag { return s.diags }

// Token guards annotation views created from this session.
func (s *Session) Token() *ValidityToken { return s.token }

// EnsureResolved asks the session's resolver to advance sym to target.
func (s *Session) EnsureResolved(ctx context.Context, sym *fir.Symbol, target phase.ResolvePhase) error {
	if sym.Phase() >= target {
		return nil
	}
	if s.resolver == nil {
		return ErrNoResolver
	}
	return s.resolver.EnsureResolved(ctx, s, sym, target)
}

// Builder assembles a Session.
type Builder struct {
	name     string
	registry *Registry
	resolver LazyResolver
	tracer   *Tracer
	diags    *diagnostics.Bag
	token    *ValidityToken
	errs     []error
	built    bool
}

// NewBuilder starts a session named name with an empty registry.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		registry: NewRegistry(),
	}
}

// WithBuiltins declares the built-in classes.
func (b *Builder) WithBuiltins() *Builder {
	for _, decl := range Builtins() {
		b.Declare(decl)
	}
	return b
}

// Declare adds top-level declarations. Errors are reported by Build.
func (b *Builder) Declare(decls ...fir.Declaration) *Builder {
	for _, d := range decls {
		if err := b.registry.Declare(d); err != nil {
			b.errs = append(b.errs, err)
		}
	}
	return b
}

func (b *Builder) WithResolver(r LazyResolver) *Builder {
	b.resolver = r
	return b
}

func (b *Builder) WithTracer(t *Tracer) *Builder {
	b.tracer = t
	return b
}

// WithDebug installs a tracer writing to w, or to stderr when w is nil.
func (b *Builder) WithDebug(debug bool, w io.Writer) *Builder {
	if w == nil {
		w = os.Stderr
	}
	b.tracer = NewTracer(w, debug)
	return b
}

func (b *Builder) WithDiagnostics(bag *diagnostics.Bag) *Builder {
	b.diags = bag
	return b
}

func (b *Builder) WithToken(t *ValidityToken) *Builder {
	b.token = t
	return b
}

// Build freezes the registry and returns the session. A builder can only
// be built once.
func (b *Builder) Build() (*Session, error) {
	if b.built {
		return nil, errors.New("session builder already used")
	}
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	b.built = true
	b.registry.freeze()

	s := &Session{
		name:     b.name,
		registry: b.registry,
		resolver: b.resolver,
		tracer:   b.tracer,
		diags:    b.diags,
		token:    b.token,
	}
	if s.tracer == nil {
		s.tracer = NewTracer(io.Discard, false)
	}
	if s.diags == nil {
		s.diags = diagnostics.NewBag()
	}
	if s.token == nil {
		s.token = NewValidityToken()
	}
	return s, nil
}
