package annotations

import (
	"context"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/session"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

// Binding is the outcome of binding one annotation's arguments.
type Binding struct {
	// Mapping holds at most one expression per parameter name.
	Mapping map[string]fir.Expression
	// Formals are the primary constructor parameter names, nil when the
	// annotation class or its primary constructor is unknown.
	Formals []names.Name
	// Dropped are positional arguments that found no free parameter, by
	// index in the argument list.
	Dropped map[int]fir.Expression
	// FastPath is set when the mapping came from an already resolved
	// annotation.
	FastPath bool
}

// BindArguments maps the arguments of ann to the parameter names of the
// annotation class's primary constructor. It never fails: anything that
// cannot be determined yields fewer entries.
func BindArguments(ctx context.Context, ann fir.AnnotationUse, sess *session.Session) map[string]fir.Expression {
	return Bind(ctx, ann, sess).Mapping
}

// Bind is BindArguments with the details callers need for reporting.
//
// Named arguments are bound first, whatever their position, so they always
// win over positional ones. Positional arguments then take the remaining
// parameter names in order through a single cursor that never moves back;
// once the cursor is exhausted every further positional argument is
// dropped.
func Bind(ctx context.Context, ann fir.AnnotationUse, sess *session.Session) Binding {
	if ann.Resolved() {
		return Binding{Mapping: rekey(ann.Base().Mapping()), FastPath: true}
	}
	call, ok := ann.(*fir.AnnotationCall)
	if !ok {
		return Binding{Mapping: map[string]fir.Expression{}}
	}
	return BindCall(ctx, call, sess)
}

// BindCall binds the written arguments of call, ignoring any mapping
// already stored on it.
func BindCall(ctx context.Context, call *fir.AnnotationCall, sess *session.Session) Binding {
	cone, ok := types.AsClassLike(call.TypeRef.Cone())
	if !ok {
		return Binding{Mapping: map[string]fir.Expression{}}
	}
	formals := formalNames(ctx, sess, cone)

	result := Binding{Mapping: make(map[string]fir.Expression), Formals: formals}
	for _, arg := range call.ArgumentList {
		if named, ok := arg.(*fir.NamedArgumentExpression); ok {
			result.Mapping[string(named.Name)] = named.Expression
		}
	}

	cursor := 0
	for i, arg := range call.ArgumentList {
		if _, ok := arg.(*fir.NamedArgumentExpression); ok {
			continue
		}
		bound := false
		for cursor < len(formals) {
			name := string(formals[cursor])
			cursor++
			if _, claimed := result.Mapping[name]; !claimed {
				result.Mapping[name] = arg
				bound = true
				break
			}
		}
		if !bound {
			if result.Dropped == nil {
				result.Dropped = make(map[int]fir.Expression)
			}
			result.Dropped[i] = arg
		}
	}
	return result
}

// formalNames returns the parameter names of the primary constructor of
// the class cone refers to, or nil.
func formalNames(ctx context.Context, sess *session.Session, cone *types.ClassLikeType) []names.Name {
	class := sess.ExpandedClass(ctx, cone)
	if class == nil {
		return nil
	}
	ctor := class.PrimaryConstructor()
	if ctor == nil {
		return nil
	}
	return ctor.ParameterNames()
}

func rekey(m fir.ArgumentMapping) map[string]fir.Expression {
	out := make(map[string]fir.Expression, len(m))
	for name, expr := range m {
		out[string(name)] = expr
	}
	return out
}

// ToArgumentMapping converts a bound mapping back to parameter names.
func ToArgumentMapping(m map[string]fir.Expression) fir.ArgumentMapping {
	out := make(fir.ArgumentMapping, len(m))
	for name, expr := range m {
		out[names.Name(name)] = expr
	}
	return out
}
