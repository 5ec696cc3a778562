package resolve

import (
	"context"

	"github.com/AmrAfifiy/kotlin/internal/diagnostics"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/session"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

// packageOf returns the package a declaration's names are resolved in.
func packageOf(decl fir.Declaration) names.FqName {
	switch d := decl.(type) {
	case *fir.RegularClass:
		return d.ClassId.Package
	case *fir.TypeAlias:
		return d.ClassId.Package
	case *fir.SimpleFunction:
		return d.Package
	case *fir.Property:
		return d.Package
	default:
		return names.Root
	}
}

type typeResolver struct {
	sess *session.Session
	pkg  names.FqName
}

// resolveTypes resolves every type reference owned by decl, annotation
// types included. Unknown names resolve to error types and are reported.
func resolveTypes(_ context.Context, sess *session.Session, decl fir.Declaration) error {
	r := &typeResolver{sess: sess, pkg: packageOf(decl)}
	r.annotations(decl)

	switch d := decl.(type) {
	case *fir.RegularClass:
		for _, st := range d.SuperTypes {
			r.ref(st)
		}
		for _, ctor := range d.Constructors {
			r.annotations(ctor)
			r.parameters(ctor.ValueParameters)
		}
	case *fir.TypeAlias:
		r.ref(d.Expanded)
	case *fir.SimpleFunction:
		r.ref(d.Receiver)
		r.ref(d.ReturnType)
		r.parameters(d.ValueParameters)
		if d.RawContract != nil {
			for _, eff := range d.RawContract.Effects {
				r.condition(eff.Implies)
			}
		}
	case *fir.Property:
		r.ref(d.ReturnType)
	}
	return nil
}

func (r *typeResolver) parameters(params []*fir.ValueParameter) {
	for _, p := range params {
		r.annotations(p)
		r.ref(p.Type)
		r.expression(p.DefaultValue)
	}
}

func (r *typeResolver) annotations(decl fir.Declaration) {
	for _, use := range decl.Annotations() {
		r.annotation(use)
	}
}

func (r *typeResolver) annotation(use fir.AnnotationUse) {
	ref := use.Base().TypeRef
	if ref == nil || ref.IsResolved() {
		return
	}
	t := r.cone(ref.User)
	if types.IsError(t) {
		r.sess.Diagnostics().Add(diagnostics.UnresolvedAnnotation(ref.Location, ref.User.String()))
	}
	ref.SetCone(t)

	if call, ok := use.(*fir.AnnotationCall); ok {
		for _, arg := range call.ArgumentList {
			r.expression(arg)
		}
	}
}

func (r *typeResolver) expression(e fir.Expression) {
	switch ex := e.(type) {
	case *fir.NamedArgumentExpression:
		r.expression(ex.Expression)
	case *fir.GetClassCall:
		r.ref(ex.Type)
	case *fir.ArrayLiteral:
		for _, el := range ex.Elements {
			r.expression(el)
		}
	case *fir.AnnotationExpression:
		r.annotation(ex.Annotation)
	}
}

func (r *typeResolver) condition(c *fir.RawCondition) {
	if c == nil {
		return
	}
	r.ref(c.Type)
	for _, op := range c.Operands {
		r.condition(op)
	}
}

func (r *typeResolver) ref(ref *fir.TypeRef) {
	if ref == nil || ref.IsResolved() {
		return
	}
	t := r.cone(ref.User)
	if types.IsError(t) && ref.User != nil {
		r.sess.Diagnostics().Add(diagnostics.UnresolvedType(ref.Location, ref.User.String()))
	}
	ref.SetCone(t)
}

// cone builds the cone type of a written type. The first unresolved part
// makes the whole type an error type.
func (r *typeResolver) cone(u *fir.UserType) types.ConeType {
	if u == nil {
		return types.NewError("missing type")
	}
	id, ok := r.sess.Registry().ResolveQualifier(u.Qualifier, r.pkg)
	if !ok {
		return types.NewError("unresolved reference: " + string(u.Qualifier))
	}
	args := make([]types.ConeType, 0, len(u.Arguments))
	for _, a := range u.Arguments {
		arg := r.cone(a)
		if types.IsError(arg) {
			return arg
		}
		args = append(args, arg)
	}
	return types.WithNullability(types.NewClassLike(id, args...), u.Nullable)
}
