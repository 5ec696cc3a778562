package types

import "github.com/AmrAfifiy/kotlin/internal/names"

const (
	kotlinPackage     names.FqName = "kotlin"
	annotationPackage names.FqName = "kotlin.annotation"
)

// Well-known class ids.
var (
	AnyId        = names.TopLevel(kotlinPackage, "Any")
	NothingId    = names.TopLevel(kotlinPackage, "Nothing")
	UnitId       = names.TopLevel(kotlinPackage, "Unit")
	BooleanId    = names.TopLevel(kotlinPackage, "Boolean")
	IntId        = names.TopLevel(kotlinPackage, "Int")
	LongId       = names.TopLevel(kotlinPackage, "Long")
	DoubleId     = names.TopLevel(kotlinPackage, "Double")
	StringId     = names.TopLevel(kotlinPackage, "String")
	ArrayId      = names.TopLevel(kotlinPackage, "Array")
	KClassId     = names.TopLevel("kotlin.reflect", "KClass")
	DeprecatedId = names.TopLevel(kotlinPackage, "Deprecated")
	TargetId     = names.TopLevel(annotationPackage, "Target")
	RetentionId  = names.TopLevel(annotationPackage, "Retention")
)

// Commonly used types
var (
	AnyType         ConeType = NewClassLike(AnyId)
	NullableAnyType ConeType = WithNullability(NewClassLike(AnyId), true)
	NothingType     ConeType = NewClassLike(NothingId)
	UnitType        ConeType = NewClassLike(UnitId)
	BooleanType     ConeType = NewClassLike(BooleanId)
	IntType         ConeType = NewClassLike(IntId)
	LongType        ConeType = NewClassLike(LongId)
	DoubleType      ConeType = NewClassLike(DoubleId)
	StringType      ConeType = NewClassLike(StringId)
)

// BuiltinClassIds lists the classes every session knows without a fixture.
func BuiltinClassIds() []names.ClassId {
	return []names.ClassId{
		AnyId, NothingId, UnitId, BooleanId, IntId, LongId, DoubleId, StringId,
		ArrayId, KClassId,
	}
}
