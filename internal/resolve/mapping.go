package resolve

import (
	"context"

	"github.com/AmrAfifiy/kotlin/internal/annotations"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/session"
)

// mapAnnotationArguments binds the arguments of every annotation call owned
// by decl and stores the result, marking the call resolved.
func mapAnnotationArguments(ctx context.Context, sess *session.Session, decl fir.Declaration) error {
	for _, owner := range annotationOwners(decl) {
		for _, use := range owner.Annotations() {
			bindCall(ctx, sess, use)
		}
	}
	return ctx.Err()
}

func bindCall(ctx context.Context, sess *session.Session, use fir.AnnotationUse) {
	call, ok := use.(*fir.AnnotationCall)
	if !ok || call.Resolved() {
		return
	}
	for _, arg := range call.ArgumentList {
		nested := arg
		if named, ok := arg.(*fir.NamedArgumentExpression); ok {
			nested = named.Expression
		}
		if inner, ok := nested.(*fir.AnnotationExpression); ok {
			bindCall(ctx, sess, inner.Annotation)
		}
	}
	call.Resolve(annotations.ToArgumentMapping(annotations.BindArguments(ctx, call, sess)))
}

// annotationOwners lists decl and the nested declarations resolved with it.
func annotationOwners(decl fir.Declaration) []fir.Declaration {
	owners := []fir.Declaration{decl}
	switch d := decl.(type) {
	case *fir.RegularClass:
		for _, ctor := range d.Constructors {
			owners = append(owners, ctor)
			for _, p := range ctor.ValueParameters {
				owners = append(owners, p)
			}
		}
	case *fir.SimpleFunction:
		for _, p := range d.ValueParameters {
			owners = append(owners, p)
		}
	}
	return owners
}
