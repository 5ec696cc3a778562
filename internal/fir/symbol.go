package fir

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/AmrAfifiy/kotlin/internal/phase"
)

// SymbolKind categorizes symbols
type SymbolKind int

const (
	ClassSymbol SymbolKind = iota
	TypeAliasSymbol
	FunctionSymbol
	PropertySymbol
)

func (k SymbolKind) String() string {
	switch k {
	case ClassSymbol:
		return "class"
	case TypeAliasSymbol:
		return "typealias"
	case FunctionSymbol:
		return "function"
	case PropertySymbol:
		return "property"
	default:
		return "unknown"
	}
}

// Symbol is a stable handle to a declaration. The declaration it owns is
// mutated in place by resolution; the phase recorded here says how far.
type Symbol struct {
	kind  SymbolKind
	fir   Declaration
	phase atomic.Int32

	// transition serializes phase advances of this symbol.
	transition sync.Mutex
}

func newSymbol(kind SymbolKind, decl Declaration) *Symbol {
	s := &Symbol{kind: kind, fir: decl}
	s.phase.Store(int32(phase.Raw))
	return s
}

func (s *Symbol) Kind() SymbolKind { return s.kind }

// Fir returns the backing declaration. Readers must make sure the symbol is
// resolved far enough for the data they inspect.
func (s *Symbol) Fir() Declaration { return s.fir }

// Phase returns the current resolve phase.
func (s *Symbol) Phase() phase.ResolvePhase {
	return phase.ResolvePhase(s.phase.Load())
}

// AdvanceTo raises the phase to target. It never lowers the phase and
// reports whether this call changed it.
func (s *Symbol) AdvanceTo(target phase.ResolvePhase) bool {
	for {
		cur := s.phase.Load()
		if cur >= int32(target) {
			return false
		}
		if s.phase.CompareAndSwap(cur, int32(target)) {
			return true
		}
	}
}

// Transition runs fn while holding the symbol's transition lock.
func (s *Symbol) Transition(fn func() error) error {
	s.transition.Lock()
	defer s.transition.Unlock()
	return fn()
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s %s", s.kind, s.fir.DisplayName())
}
