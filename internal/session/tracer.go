package session

import (
	"io"
	"sync"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/phase"
)

// Tracer prints debug progress. A nil or disabled tracer prints nothing.
type Tracer struct {
	w       io.Writer
	enabled bool
	mu      sync.Mutex
}

func NewTracer(w io.Writer, enabled bool) *Tracer {
	return &Tracer{w: w, enabled: enabled}
}

func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled && t.w != nil
}

func (t *Tracer) print(c colors.COLOR, format string, args ...any) {
	if !t.Enabled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	c.Fprintf(t.w, format, args...)
}

// Stage prints a numbered stage banner.
func (t *Tracer) Stage(n int, title string) {
	t.print(colors.CYAN, "\n[Phase %d] %s\n", n, title)
}

// Resolved records that sym reached p.
func (t *Tracer) Resolved(sym *fir.Symbol, p phase.ResolvePhase) {
	t.print(colors.PURPLE, "  ✓ %s -> %s\n", sym, p)
}

func (t *Tracer) Info(format string, args ...any) {
	t.print(colors.CYAN, "  ℹ "+format+"\n", args...)
}

func (t *Tracer) Warn(format string, args ...any) {
	t.print(colors.YELLOW, "  ⚠ "+format+"\n", args...)
}

func (t *Tracer) Success(format string, args ...any) {
	t.print(colors.GREEN, "  ✓ "+format+"\n", args...)
}
