package pipeline

import (
	"fmt"
	"io"
	"sort"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/phase"
)

// Stats summarizes one run.
type Stats struct {
	Declarations int
	ByKind       map[fir.SymbolKind]int
	ByPhase      map[phase.ResolvePhase]int
	Annotations  int
	// Unknown counts annotations whose class could not be determined.
	Unknown   int
	Contracts int
	Errors    int
	Warnings  int
}

func (p *Pipeline) collectStats(syms []*fir.Symbol) {
	s := Stats{
		Declarations: len(syms),
		ByKind:       make(map[fir.SymbolKind]int),
		ByPhase:      make(map[phase.ResolvePhase]int),
		Annotations:  len(p.records),
	}
	for _, sym := range syms {
		s.ByKind[sym.Kind()]++
		s.ByPhase[sym.Phase()]++
		if fn, ok := sym.Fir().(*fir.SimpleFunction); ok && fn.Contract() != nil {
			s.Contracts++
		}
	}
	for _, r := range p.records {
		if r.ClassId == "" {
			s.Unknown++
		}
	}
	s.Errors = p.sess.Diagnostics().ErrorCount()
	s.Warnings = p.sess.Diagnostics().WarningCount()
	p.stats = s
}

// PrintSummary prints a summary of the last run
func (p *Pipeline) PrintSummary(w io.Writer) {
	s := p.stats
	fmt.Fprintln(w)
	colors.CYAN.Fprintln(w, "═══════════════════════════════════════")
	colors.CYAN.Fprintln(w, "        RESOLUTION SUMMARY")
	colors.CYAN.Fprintln(w, "═══════════════════════════════════════")

	fmt.Fprintf(w, "Session: %s\n", p.sess.Name())
	fmt.Fprintf(w, "Target Phase: %s\n", p.opts.Target)
	fmt.Fprintf(w, "Declarations: %d\n\n", s.Declarations)

	kinds := make([]fir.SymbolKind, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(w, " - %s: %d\n", k, s.ByKind[k])
	}

	fmt.Fprintf(w, "\nAnnotations: %d (%d unknown)\n", s.Annotations, s.Unknown)
	fmt.Fprintf(w, "Contracts: %d\n", s.Contracts)
	if s.Errors > 0 {
		colors.RED.Fprintf(w, "Errors: %d\n", s.Errors)
	} else {
		colors.GREEN.Fprintf(w, "Errors: 0\n")
	}
	if s.Warnings > 0 {
		colors.YELLOW.Fprintf(w, "Warnings: %d\n", s.Warnings)
	}
}
