package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassIdString(t *testing.T) {
	tests := []struct {
		id   ClassId
		want string
	}{
		{TopLevel("kotlin", "Deprecated"), "kotlin/Deprecated"},
		{TopLevel("kotlin.annotation", "Target"), "kotlin/annotation/Target"},
		{NewClassId(Root, "Marker"), "Marker"},
		{NewClassId("a.b", "Outer.Inner"), "a/b/Outer.Inner"},
		{ClassId{Package: "a", Relative: "L", Local: true}, ".a/L"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.id.String())
		assert.Equal(t, tt.id, ParseClassId(tt.want), "parse %q", tt.want)
	}
}

func TestClassIdEqualityIsValueEquality(t *testing.T) {
	a := ParseClassId("pkg/Marker")
	b := TopLevel(NewFqName("pkg"), "Marker")
	assert.True(t, a == b)

	set := map[ClassId]bool{a: true}
	assert.True(t, set[b])
}

func TestNestedClassIds(t *testing.T) {
	outer := TopLevel("pkg", "Outer")
	inner := outer.Nested("Inner")

	assert.True(t, inner.IsNested())
	assert.Equal(t, Name("Inner"), inner.ShortClassName())
	assert.Equal(t, FqName("pkg.Outer.Inner"), inner.FqName())

	got, ok := inner.Outer()
	assert.True(t, ok)
	assert.Equal(t, outer, got)

	_, ok = outer.Outer()
	assert.False(t, ok)
}

func TestFqName(t *testing.T) {
	f := NewFqName("a", "b", "c")
	assert.Equal(t, Name("c"), f.ShortName())
	assert.Equal(t, FqName("a.b"), f.Parent())
	assert.Equal(t, []Name{"a", "b", "c"}, f.Segments())
	assert.Nil(t, Root.Segments())
	assert.Equal(t, FqName("x"), Root.Child("x"))
	assert.True(t, Init.IsSpecial())
	assert.False(t, Name("value").IsSpecial())
	assert.True(t, ClassId{}.IsZero())
}
