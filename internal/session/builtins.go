package session

import (
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

var (
	replaceWithId         = names.TopLevel("kotlin", "ReplaceWith")
	deprecationLevelId    = names.TopLevel("kotlin", "DeprecationLevel")
	annotationTargetId    = names.TopLevel("kotlin.annotation", "AnnotationTarget")
	annotationRetentionId = names.TopLevel("kotlin.annotation", "AnnotationRetention")
	suppressId            = names.TopLevel("kotlin", "Suppress")
)

func param(name names.Name, t types.ConeType, def fir.Expression) *fir.ValueParameter {
	return &fir.ValueParameter{Name: name, Type: fir.NewResolvedTypeRef(t), DefaultValue: def}
}

func varargParam(name names.Name, t types.ConeType) *fir.ValueParameter {
	p := param(name, t, nil)
	p.IsVararg = true
	return p
}

func annotationClass(id names.ClassId, params ...*fir.ValueParameter) *fir.RegularClass {
	c := fir.NewRegularClass(id, fir.KindAnnotationClass)
	c.AddConstructor(&fir.Constructor{IsPrimary: true, ValueParameters: params})
	return c
}

// Builtins returns fresh declarations of the classes every session knows.
// They are created fully resolved.
func Builtins() []fir.Declaration {
	var decls []fir.Declaration
	for _, id := range types.BuiltinClassIds() {
		decls = append(decls, fir.NewRegularClass(id, fir.KindClass))
	}
	decls = append(decls,
		fir.NewRegularClass(deprecationLevelId, fir.KindEnumClass),
		fir.NewRegularClass(annotationTargetId, fir.KindEnumClass),
		fir.NewRegularClass(annotationRetentionId, fir.KindEnumClass),
		fir.NewRegularClass(replaceWithId, fir.KindAnnotationClass),
		annotationClass(types.DeprecatedId,
			param("message", types.StringType, nil),
			param("replaceWith", types.NewClassLike(replaceWithId), nil),
			param("level", types.NewClassLike(deprecationLevelId),
				&fir.PropertyAccessExpression{Qualifier: "DeprecationLevel", Callee: "WARNING"}),
		),
		annotationClass(types.TargetId,
			varargParam("allowedTargets", types.NewClassLike(annotationTargetId)),
		),
		annotationClass(types.RetentionId,
			param("value", types.NewClassLike(annotationRetentionId),
				&fir.PropertyAccessExpression{Qualifier: "AnnotationRetention", Callee: "RUNTIME"}),
		),
		annotationClass(suppressId,
			varargParam("names", types.StringType),
		),
	)
	for _, d := range decls {
		d.Symbol().AdvanceTo(phase.Last)
	}
	return decls
}
