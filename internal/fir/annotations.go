package fir

import (
	"sync"
	"sync/atomic"

	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// ArgumentMapping maps formal parameter names of an annotation's primary
// constructor to argument expressions.
type ArgumentMapping map[names.Name]Expression

// AnnotationUse is either a plain Annotation or an AnnotationCall.
type AnnotationUse interface {
	Base() *Annotation
	// Resolved reports whether the argument mapping is final.
	Resolved() bool
	Source() *source.Location
}

// Annotation is an annotation whose arguments are already keyed by name,
// as produced from compiled metadata. Plain annotations are always resolved.
type Annotation struct {
	TypeRef       *TypeRef
	UseSiteTarget string
	Location      *source.Location

	mu      sync.RWMutex
	mapping ArgumentMapping
}

// NewAnnotation creates a resolved annotation with the given mapping.
func NewAnnotation(ref *TypeRef, mapping ArgumentMapping) *Annotation {
	if mapping == nil {
		mapping = ArgumentMapping{}
	}
	return &Annotation{TypeRef: ref, mapping: mapping}
}

func (a *Annotation) Base() *Annotation        { return a }
func (a *Annotation) Resolved() bool           { return true }
func (a *Annotation) Source() *source.Location { return a.Location }

// Mapping returns the current argument mapping. Callers must not modify it.
func (a *Annotation) Mapping() ArgumentMapping {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mapping
}

func (a *Annotation) setMapping(m ArgumentMapping) {
	a.mu.Lock()
	a.mapping = m
	a.mu.Unlock()
}

// AnnotationCall is an annotation written in source: it carries the raw
// argument list until the ANNOTATION_ARGUMENTS_MAPPING phase binds it.
type AnnotationCall struct {
	Annotation

	// ArgumentList holds arguments in source order. Named arguments are
	// *NamedArgumentExpression.
	ArgumentList []Expression

	resolved atomic.Bool
}

// NewAnnotationCall creates an unresolved annotation call.
func NewAnnotationCall(ref *TypeRef, args ...Expression) *AnnotationCall {
	call := &AnnotationCall{ArgumentList: args}
	call.TypeRef = ref
	call.mapping = ArgumentMapping{}
	return call
}

func (c *AnnotationCall) Resolved() bool { return c.resolved.Load() }

// Resolve stores the final mapping and marks the call resolved.
func (c *AnnotationCall) Resolve(m ArgumentMapping) {
	if m == nil {
		m = ArgumentMapping{}
	}
	c.setMapping(m)
	c.resolved.Store(true)
}
