package diagnostics

import (
	"io"
	"sort"
	"sync"
)

// Bag collects diagnostics from concurrent resolution and checker passes.
type Bag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewBag creates an empty diagnostic bag
func NewBag() *Bag {
	return &Bag{diagnostics: make([]*Diagnostic, 0)}
}

// Add adds a diagnostic to the bag. Nil diagnostics are ignored.
func (b *Bag) Add(diag *Diagnostic) {
	if diag == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.diagnostics = append(b.diagnostics, diag)

	switch diag.Severity {
	case Error:
		b.errorCount++
	case Warning:
		b.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0
}

// ErrorCount returns the number of errors
func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// WarningCount returns the number of warnings
func (b *Bag) WarningCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnCount
}

// Diagnostics returns a copy of all diagnostics
func (b *Bag) Diagnostics() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]*Diagnostic, len(b.diagnostics))
	copy(result, b.diagnostics)
	return result
}

// WithCode returns the diagnostics carrying the given code.
func (b *Bag) WithCode(code string) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range b.Diagnostics() {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Sorted returns the diagnostics ordered by primary location. Parallel
// passes add diagnostics in nondeterministic order; emitting sorted keeps
// output stable.
func (b *Bag) Sorted() []*Diagnostic {
	diags := b.Diagnostics()
	sort.SliceStable(diags, func(i, j int) bool {
		li, lj := diags[i].PrimaryLocation(), diags[j].PrimaryLocation()
		switch {
		case li == nil && lj == nil:
			return diags[i].Message < diags[j].Message
		case li == nil:
			return false
		case lj == nil:
			return true
		case li.Filename != lj.Filename:
			return li.Filename < lj.Filename
		case li.Start.Line != lj.Start.Line:
			return li.Start.Line < lj.Start.Line
		case li.Start.Column != lj.Start.Column:
			return li.Start.Column < lj.Start.Column
		}
		return diags[i].Message < diags[j].Message
	})
	return diags
}

// EmitAll writes every diagnostic followed by a summary line to w.
func (b *Bag) EmitAll(w io.Writer) {
	emitter := NewEmitter(w)
	for _, diag := range b.Sorted() {
		emitter.Emit(diag)
	}
	emitter.Summary(b.ErrorCount(), b.WarningCount())
}

// Clear removes all diagnostics
func (b *Bag) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = make([]*Diagnostic, 0)
	b.errorCount = 0
	b.warnCount = 0
}
