package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedAlias(id string, target types.ConeType) *fir.TypeAlias {
	a := fir.NewTypeAlias(names.ParseClassId(id), fir.NewResolvedTypeRef(target))
	a.Symbol().AdvanceTo(phase.Types)
	return a
}

func TestBuildFreezesRegistry(t *testing.T) {
	b := NewBuilder("main").WithBuiltins()
	sess, err := b.Build()
	require.NoError(t, err)

	err = sess.Registry().Declare(fir.NewRegularClass(names.ParseClassId("pkg/Late"), fir.KindClass))
	assert.ErrorIs(t, err, ErrFrozen)

	_, err = b.Build()
	assert.Error(t, err)
}

func TestDuplicateClassifierFailsBuild(t *testing.T) {
	id := names.ParseClassId("pkg/Foo")
	_, err := NewBuilder("main").
		Declare(fir.NewRegularClass(id, fir.KindClass), fir.NewRegularClass(id, fir.KindObject)).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pkg/Foo")
}

func TestResolveQualifierPrecedence(t *testing.T) {
	local := fir.NewRegularClass(names.ParseClassId("app/String"), fir.KindClass)
	marker := fir.NewRegularClass(names.ParseClassId("lib/Marker"), fir.KindAnnotationClass)
	sess, err := NewBuilder("main").WithBuiltins().Declare(local, marker).Build()
	require.NoError(t, err)
	reg := sess.Registry()

	id, ok := reg.ResolveQualifier("String", "app")
	require.True(t, ok)
	assert.Equal(t, local.ClassId, id)

	id, ok = reg.ResolveQualifier("String", "other")
	require.True(t, ok)
	assert.Equal(t, types.StringId, id)

	id, ok = reg.ResolveQualifier("lib.Marker", "app")
	require.True(t, ok)
	assert.Equal(t, marker.ClassId, id)

	id, ok = reg.ResolveQualifier("Target", names.Root)
	require.True(t, ok)
	assert.Equal(t, types.TargetId, id)

	_, ok = reg.ResolveQualifier("Missing", "app")
	assert.False(t, ok)
}

func TestRegistryLookups(t *testing.T) {
	f := fir.NewSimpleFunction("pkg", "check")
	c := fir.NewRegularClass(names.ParseClassId("pkg/Foo"), fir.KindClass)
	sess, err := NewBuilder("main").Declare(c, f).Build()
	require.NoError(t, err)

	assert.Equal(t, 2, sess.Registry().Len())
	assert.Equal(t, []*fir.Symbol{c.Symbol(), f.Symbol()}, sess.Registry().Symbols())
	assert.Equal(t, []*fir.Symbol{f.Symbol()}, sess.Registry().Callables("pkg.check"))

	sym, ok := sess.Registry().Find("pkg.check")
	require.True(t, ok)
	assert.Same(t, f.Symbol(), sym)
	assert.Same(t, c.Symbol(), sess.ClassLikeSymbol(c.ClassId))
}

func TestFullyExpandFollowsAliasChain(t *testing.T) {
	marker := fir.NewRegularClass(names.ParseClassId("pkg/Marker"), fir.KindAnnotationClass)
	first := resolvedAlias("pkg/M1", types.NewClassLike(marker.ClassId))
	second := resolvedAlias("pkg/M2", types.NewClassLike(first.ClassId))
	sess, err := NewBuilder("main").Declare(marker, first, second).Build()
	require.NoError(t, err)

	got := sess.FullyExpand(context.Background(), types.NewClassLike(second.ClassId))
	cls, ok := types.AsClassLike(got)
	require.True(t, ok)
	assert.Equal(t, marker.ClassId, cls.LookupTag)

	nullable := sess.FullyExpand(context.Background(), types.WithNullability(types.NewClassLike(second.ClassId), true))
	assert.True(t, nullable.IsNullable())

	assert.Same(t, marker, sess.ExpandedClass(context.Background(), types.NewClassLike(first.ClassId)))
}

func TestFullyExpandStopsOnCycle(t *testing.T) {
	a := resolvedAlias("pkg/A", types.NewClassLike(names.ParseClassId("pkg/B")))
	b := resolvedAlias("pkg/B", types.NewClassLike(names.ParseClassId("pkg/A")))
	var out bytes.Buffer
	colors.SetEnabled(false)
	defer colors.SetEnabled(true)

	sess, err := NewBuilder("main").Declare(a, b).WithDebug(true, &out).Build()
	require.NoError(t, err)

	got := sess.FullyExpand(context.Background(), types.NewClassLike(a.ClassId))
	assert.True(t, types.IsError(got))
	assert.True(t, IsCyclicExpansion(got))
	assert.False(t, IsCyclicExpansion(types.NewError("other")))
	_, ok := sess.ExpandedClassLike(context.Background(), types.NewClassLike(a.ClassId))
	assert.False(t, ok)
	assert.Contains(t, out.String(), "type alias cycle")
}

func TestFullyExpandWithoutResolver(t *testing.T) {
	alias := fir.NewTypeAlias(names.ParseClassId("pkg/A"),
		fir.NewUserTypeRef(&fir.UserType{Qualifier: "String"}, nil))
	sess, err := NewBuilder("main").Declare(alias).Build()
	require.NoError(t, err)

	assert.ErrorIs(t, sess.EnsureResolved(context.Background(), alias.Symbol(), phase.Types), ErrNoResolver)
	assert.True(t, types.IsError(sess.FullyExpand(context.Background(), types.NewClassLike(alias.ClassId))))

	plain := types.NewClassLike(names.ParseClassId("pkg/Unknown"))
	assert.Same(t, plain, sess.FullyExpand(context.Background(), plain))
}

func TestBuiltinsAreResolved(t *testing.T) {
	for _, d := range Builtins() {
		assert.Equal(t, phase.Last, d.Symbol().Phase(), d.DisplayName())
	}

	sess, err := NewBuilder("main").WithBuiltins().Build()
	require.NoError(t, err)
	deprecated := sess.ExpandedClass(context.Background(), types.NewClassLike(types.DeprecatedId))
	require.NotNil(t, deprecated)
	assert.Equal(t, []names.Name{"message", "replaceWith", "level"},
		deprecated.PrimaryConstructor().ParameterNames())
}

func TestValidityToken(t *testing.T) {
	tok := NewValidityToken()
	assert.True(t, tok.IsValid())
	tok.Invalidate()
	assert.False(t, tok.IsValid())

	var none *ValidityToken
	assert.False(t, none.IsValid())
}

func TestTracerIsQuietWhenDisabled(t *testing.T) {
	var out bytes.Buffer
	NewTracer(&out, false).Info("hidden %d", 1)
	assert.Empty(t, out.String())

	var nilTracer *Tracer
	nilTracer.Warn("no panic")

	colors.SetEnabled(false)
	defer colors.SetEnabled(true)
	NewTracer(&out, true).Stage(2, "Resolve")
	assert.Equal(t, "\n[Phase 2] Resolve\n", out.String())
}
