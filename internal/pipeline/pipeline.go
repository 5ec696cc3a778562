package pipeline

import (
	"context"
	"fmt"

	"github.com/AmrAfifiy/kotlin/internal/annotations"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/resolve"
	"github.com/AmrAfifiy/kotlin/internal/session"
	"github.com/AmrAfifiy/kotlin/internal/storage"
)

// Options controls one run.
type Options struct {
	Target phase.ResolvePhase
	// Parallelism bounds ResolveAll. Zero or less means unbounded.
	Parallelism int
}

// Pipeline resolves a set of declarations and runs the checkers over them
type Pipeline struct {
	sess  *session.Session
	opts  Options
	cache *annotations.MappingCache

	records []storage.AnnotationRecord
	stats   Stats
}

// New creates a pipeline over sess. A target below TYPES is raised to TYPES
// since every later stage reads resolved annotation types.
func New(sess *session.Session, opts Options) *Pipeline {
	if !opts.Target.Valid() || opts.Target < phase.Types {
		opts.Target = phase.Types
	}
	return &Pipeline{
		sess:  sess,
		opts:  opts,
		cache: annotations.NewMappingCache(sess),
	}
}

// Run executes every stage over syms. Problems in the declarations are
// reported as diagnostics; the returned error is for failures that stop
// the run.
func (p *Pipeline) Run(ctx context.Context, syms []*fir.Symbol) error {
	tr := p.sess.Tracer()

	tr.Stage(1, "Resolution")
	if err := resolve.ResolveAll(ctx, p.sess, syms, p.opts.Target, p.opts.Parallelism); err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}

	tr.Stage(2, "Annotation index")
	if err := p.runIndexPhase(ctx, syms); err != nil {
		return err
	}

	tr.Stage(3, "Contracts")
	p.runContractPhase(syms)

	tr.Stage(4, "Type aliases")
	p.runAliasPhase(ctx, syms)

	p.collectStats(syms)
	tr.Success("Resolution finished (%d declarations, %d annotations)", len(syms), len(p.records))
	return nil
}

// Session returns the session the pipeline runs in.
func (p *Pipeline) Session() *session.Session { return p.sess }

// Records is the annotation index built by the last run.
func (p *Pipeline) Records() []storage.AnnotationRecord { return p.records }

// Stats of the last run.
func (p *Pipeline) Stats() Stats { return p.stats }

// Save writes the annotation index to store.
func (p *Pipeline) Save(ctx context.Context, store storage.IndexStore) error {
	if err := store.SaveIndex(ctx, p.records); err != nil {
		return fmt.Errorf("saving annotation index: %w", err)
	}
	return nil
}
