package fir

import (
	"sync"
	"testing"

	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolPhaseNeverDecreases(t *testing.T) {
	c := NewRegularClass(names.ParseClassId("pkg/Foo"), KindClass)
	sym := c.Symbol()
	require.NotNil(t, sym)
	assert.Equal(t, phase.Raw, sym.Phase())
	assert.Same(t, c, sym.Fir())

	assert.True(t, sym.AdvanceTo(phase.Types))
	assert.False(t, sym.AdvanceTo(phase.Imports))
	assert.Equal(t, phase.Types, sym.Phase())
	assert.False(t, sym.AdvanceTo(phase.Types))
	assert.Equal(t, "class pkg/Foo", sym.String())
}

func TestSymbolConcurrentAdvance(t *testing.T) {
	sym := NewSimpleFunction(names.NewFqName("pkg"), "f").Symbol()

	var wg sync.WaitGroup
	for p := phase.First; p <= phase.Last; p++ {
		wg.Add(1)
		go func(target phase.ResolvePhase) {
			defer wg.Done()
			sym.AdvanceTo(target)
		}(p)
	}
	wg.Wait()
	assert.Equal(t, phase.Last, sym.Phase())
}

func TestPrimaryConstructor(t *testing.T) {
	c := NewRegularClass(names.ParseClassId("pkg/Marker"), KindAnnotationClass)
	assert.Nil(t, c.PrimaryConstructor())

	secondary := &Constructor{}
	primary := &Constructor{IsPrimary: true, ValueParameters: []*ValueParameter{
		{Name: "tag"}, {Name: "level"},
	}}
	c.AddConstructor(secondary)
	c.AddConstructor(primary)

	assert.Same(t, primary, c.PrimaryConstructor())
	assert.Equal(t, []names.Name{"tag", "level"}, primary.ParameterNames())
	assert.Equal(t, c.ClassId, primary.Owner)
	assert.Nil(t, primary.Symbol())
}

func TestAnnotationCallResolution(t *testing.T) {
	ref := NewUserTypeRef(&UserType{Qualifier: "Marker"}, nil)
	call := NewAnnotationCall(ref, NewConst(ConstInt, 5))

	assert.False(t, call.Resolved())
	assert.Empty(t, call.Base().Mapping())

	arg := NewConst(ConstString, "q")
	call.Resolve(ArgumentMapping{"tag": arg})
	assert.True(t, call.Resolved())
	assert.Same(t, arg, call.Base().Mapping()["tag"])

	plain := NewAnnotation(ref, nil)
	assert.True(t, plain.Resolved())
	assert.NotNil(t, plain.Mapping())
}

func TestTypeRef(t *testing.T) {
	ref := NewUserTypeRef(&UserType{
		Qualifier: "kotlin.collections.List",
		Arguments: []*UserType{{Qualifier: "String", Nullable: true}},
	}, nil)
	assert.False(t, ref.IsResolved())
	assert.Nil(t, ref.Cone())
	assert.Equal(t, "kotlin.collections.List<String?>", ref.String())

	ref.SetCone(types.StringType)
	assert.True(t, ref.IsResolved())
	assert.Equal(t, types.StringType, ref.Cone())

	var missing *TypeRef
	assert.Nil(t, missing.Cone())
	assert.Equal(t, "<no type>", missing.String())
}

func TestExpressionStrings(t *testing.T) {
	named := &NamedArgumentExpression{Name: "tag", Expression: NewConst(ConstString, "q")}
	assert.Equal(t, `tag = "q"`, named.String())
	assert.Equal(t, "7L", NewConst(ConstLong, 7).String())
	assert.Equal(t, "null", NewConst(ConstNull, nil).String())

	arr := &ArrayLiteral{Elements: []Expression{NewConst(ConstInt, 1), NewConst(ConstBoolean, true)}}
	assert.Equal(t, "[1, true]", arr.String())

	access := &PropertyAccessExpression{Qualifier: "AnnotationTarget", Callee: "CLASS"}
	assert.Equal(t, "AnnotationTarget.CLASS", access.String())
}

func TestClassKindRoundTrip(t *testing.T) {
	for k := range classKindNames {
		got, ok := ParseClassKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseClassKind("struct")
	assert.False(t, ok)
}
