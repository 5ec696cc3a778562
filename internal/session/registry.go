package session

import (
	"fmt"
	"sync"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
)

// DefaultImports are searched after the declaration's own package when a
// simple type name is resolved.
var DefaultImports = []names.FqName{
	"kotlin",
	"kotlin.annotation",
	"kotlin.collections",
	"kotlin.reflect",
}

// Registry holds the top-level symbols of a session. Classifiers are keyed
// by class id, callables by fully qualified name.
type Registry struct {
	mu          sync.RWMutex
	frozen      bool
	classifiers map[names.ClassId]*fir.Symbol
	byFqName    map[names.FqName]names.ClassId
	callables   map[names.FqName][]*fir.Symbol
	order       []*fir.Symbol
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		classifiers: make(map[names.ClassId]*fir.Symbol),
		byFqName:    make(map[names.FqName]names.ClassId),
		callables:   make(map[names.FqName][]*fir.Symbol),
	}
}

// Declare adds a top-level declaration. Classifiers must have unique ids.
func (r *Registry) Declare(decl fir.Declaration) error {
	sym := decl.Symbol()
	if sym == nil {
		return fmt.Errorf("%s has no symbol and cannot be declared", decl.DisplayName())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrFrozen
	}

	switch d := decl.(type) {
	case *fir.RegularClass:
		if err := r.declareClassifier(d.ClassId, sym); err != nil {
			return err
		}
	case *fir.TypeAlias:
		if err := r.declareClassifier(d.ClassId, sym); err != nil {
			return err
		}
	case *fir.SimpleFunction:
		fq := d.Package.Child(d.Name)
		r.callables[fq] = append(r.callables[fq], sym)
	case *fir.Property:
		fq := d.Package.Child(d.Name)
		r.callables[fq] = append(r.callables[fq], sym)
	default:
		return fmt.Errorf("cannot declare %T at top level", decl)
	}

	r.order = append(r.order, sym)
	return nil
}

func (r *Registry) declareClassifier(id names.ClassId, sym *fir.Symbol) error {
	if _, exists := r.classifiers[id]; exists {
		return fmt.Errorf("classifier '%s' already declared", id)
	}
	r.classifiers[id] = sym
	r.byFqName[id.FqName()] = id
	return nil
}

func (r *Registry) freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// ClassLikeSymbol returns the class or type alias symbol for id, or nil.
func (r *Registry) ClassLikeSymbol(id names.ClassId) *fir.Symbol {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classifiers[id]
}

// Callables returns the functions and properties named fq.
func (r *Registry) Callables(fq names.FqName) []*fir.Symbol {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*fir.Symbol(nil), r.callables[fq]...)
}

// Symbols returns every declared symbol in declaration order
func (r *Registry) Symbols() []*fir.Symbol {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*fir.Symbol(nil), r.order...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Find looks a symbol up by its display name, e.g. "pkg/Foo" or "pkg.f".
func (r *Registry) Find(name string) (*fir.Symbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sym := range r.order {
		if sym.Fir().DisplayName() == name {
			return sym, true
		}
	}
	return nil, false
}

// ResolveQualifier finds the classifier a written name refers to from
// inside package pkg. The package itself wins over the exact qualified
// name, which wins over default imports.
func (r *Registry) ResolveQualifier(qualifier names.FqName, pkg names.FqName) (names.ClassId, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !pkg.IsRoot() {
		if id, ok := r.byFqName[names.FqName(string(pkg)+"."+string(qualifier))]; ok {
			return id, true
		}
	}
	if id, ok := r.byFqName[qualifier]; ok {
		return id, true
	}
	for _, imp := range DefaultImports {
		if id, ok := r.byFqName[names.FqName(string(imp)+"."+string(qualifier))]; ok {
			return id, true
		}
	}
	return names.ClassId{}, false
}
