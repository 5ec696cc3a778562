package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/config"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/loader"
	"github.com/AmrAfifiy/kotlin/internal/pipeline"
	"github.com/AmrAfifiy/kotlin/internal/resolve"
	"github.com/AmrAfifiy/kotlin/internal/session"
)

type FORMAT int

const (
	ANSI FORMAT = iota
	PLAIN
)

// Options for one run
type Options struct {
	// Fixture files, declared into one session in order
	Files []string
	// In-memory fixture, used when Files is empty
	Code string
	// Config supplies the target phase and parallelism. Nil means defaults.
	Config *config.Config
	// Debug output
	Debug bool
	// Output format: ANSI colors or plain text
	LogFormat FORMAT
}

// Result of a run
type Result struct {
	Success bool
	// Output holds the debug trace and the emitted diagnostics.
	Output   string
	Pipeline *pipeline.Pipeline
	Symbols  []*fir.Symbol
}

// Session returns the session of a run that got past loading, or nil.
func (r Result) Session() *session.Session {
	if r.Pipeline == nil {
		return nil
	}
	return r.Pipeline.Session()
}

// Compile loads the fixtures, resolves every declaration they contain and
// runs the checkers.
func Compile(ctx context.Context, opts *Options) Result {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	var out bytes.Buffer
	finish := func(r Result) Result {
		r.Output = out.String()
		if opts.LogFormat == PLAIN {
			r.Output = colors.StripANSI(r.Output)
		}
		return r
	}

	fixtures, err := load(opts)
	if err != nil {
		colors.RED.Fprintf(&out, "Failed to load fixture: %v\n", err)
		return finish(Result{Success: false})
	}

	name := "playground"
	if len(opts.Files) > 0 {
		name = opts.Files[0]
	}
	b := session.NewBuilder(name).
		WithBuiltins().
		WithResolver(resolve.NewResolver()).
		WithDebug(opts.Debug || cfg.Debug, &out)
	var syms []*fir.Symbol
	for _, fx := range fixtures {
		b = fx.Declare(b)
		syms = append(syms, fx.Symbols()...)
	}
	sess, err := b.Build()
	if err != nil {
		colors.RED.Fprintf(&out, "Failed to create session: %v\n", err)
		return finish(Result{Success: false})
	}

	p := pipeline.New(sess, pipeline.Options{Target: cfg.TargetPhase(), Parallelism: cfg.Parallelism})
	if err := p.Run(ctx, syms); err != nil {
		colors.RED.Fprintf(&out, "%v\n", err)
		sess.Diagnostics().EmitAll(&out)
		return finish(Result{Success: false, Pipeline: p, Symbols: syms})
	}
	sess.Diagnostics().EmitAll(&out)
	return finish(Result{Success: !sess.Diagnostics().HasErrors(), Pipeline: p, Symbols: syms})
}

func load(opts *Options) ([]*loader.Fixture, error) {
	if len(opts.Files) == 0 {
		if opts.Code == "" {
			return nil, fmt.Errorf("no fixture given")
		}
		fx, err := loader.LoadString("playground.yaml", opts.Code)
		if err != nil {
			return nil, err
		}
		return []*loader.Fixture{fx}, nil
	}

	fixtures := make([]*loader.Fixture, 0, len(opts.Files))
	for _, path := range opts.Files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		fx, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}
