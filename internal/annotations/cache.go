package annotations

import (
	"context"
	"sync"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/session"
)

// MappingCache memoizes BindArguments per annotation. Bindings are shared
// between readers and must not be modified.
type MappingCache struct {
	sess    *session.Session
	entries sync.Map // fir.AnnotationUse -> map[string]fir.Expression
}

func NewMappingCache(sess *session.Session) *MappingCache {
	return &MappingCache{sess: sess}
}

// Get returns the binding of ann. Annotations whose type is not resolved
// yet are bound but not cached.
func (c *MappingCache) Get(ctx context.Context, ann fir.AnnotationUse) map[string]fir.Expression {
	if v, ok := c.entries.Load(ann); ok {
		return v.(map[string]fir.Expression)
	}
	m := BindArguments(ctx, ann, c.sess)
	if ref := ann.Base().TypeRef; ref != nil && ref.IsResolved() {
		v, _ := c.entries.LoadOrStore(ann, m)
		return v.(map[string]fir.Expression)
	}
	return m
}

// Len counts cached entries
func (c *MappingCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
