// Package annotations answers questions about the annotations of a
// declaration: which classes they instantiate and how their arguments bind
// to the annotation constructor's parameters.
package annotations

import (
	"context"
	"fmt"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/session"
)

// ClassIdOf returns the class an annotation instantiates, after expanding
// type aliases. The result is absent when the annotation type is not
// resolved or does not expand to a class-like type.
func ClassIdOf(ctx context.Context, ann fir.AnnotationUse, sess *session.Session) (names.ClassId, bool) {
	ref := ann.Base().TypeRef
	if ref == nil {
		return names.ClassId{}, false
	}
	cls, ok := sess.ExpandedClassLike(ctx, ref.Cone())
	if !ok {
		return names.ClassId{}, false
	}
	return cls.LookupTag, true
}

// ContainsAnnotation reports whether sym carries an annotation of class id.
// The symbol is resolved to TYPES first.
func ContainsAnnotation(ctx context.Context, sess *session.Session, sym *fir.Symbol, id names.ClassId) (bool, error) {
	if err := sess.EnsureResolved(ctx, sym, phase.Types); err != nil {
		return false, fmt.Errorf("looking for @%s on %s: %w", id, sym, err)
	}
	for _, ann := range sym.Fir().Annotations() {
		if got, ok := ClassIdOf(ctx, ann, sess); ok && got == id {
			return true, nil
		}
	}
	return false, nil
}

// AnnotationClassIds returns the distinct classes of sym's annotations in
// declaration order. Annotations whose class cannot be determined are
// skipped. The symbol is resolved to TYPES first.
func AnnotationClassIds(ctx context.Context, sess *session.Session, sym *fir.Symbol) ([]names.ClassId, error) {
	if err := sess.EnsureResolved(ctx, sym, phase.Types); err != nil {
		return nil, fmt.Errorf("collecting annotation classes of %s: %w", sym, err)
	}
	var ids []names.ClassId
	seen := make(map[names.ClassId]bool)
	for _, ann := range sym.Fir().Annotations() {
		id, ok := ClassIdOf(ctx, ann, sess)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
