package annotations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmrAfifiy/kotlin/internal/annotations"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/loader"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/resolve"
	"github.com/AmrAfifiy/kotlin/internal/session"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

const libFixture = `
package: lib
classes:
  - name: Marker
    kind: annotation class
    constructor:
      - {name: level, type: Int}
      - {name: tag, type: String, default: '"x"'}
  - name: F
    kind: annotation class
    constructor: [{name: a, type: String}, {name: b, type: String}, {name: c, type: String}]
  - name: One
    kind: annotation class
    constructor: [{name: a, type: String}]
  - name: NoCtor
    kind: annotation class
  - name: Foo
    annotations:
      - 'Marker(tag = "q", 5)'
      - 'M(1)'
      - 'lib.Marker(level = 2)'
      - 'Deprecated("old")'
  - name: Precedence
    annotations: ['F(b = "X", "Y", "Z")']
  - name: Exhausted
    annotations: ['One("X", "Y")']
  - name: Bare
    annotations: ['NoCtor("X")']
  - name: Cyclic
    annotations: ['A(1)', 'Marker(2)']
  - name: Ghost
    annotations: ['Missing(1)', 'Marker(3)']
aliases:
  - {name: M, type: Marker}
  - {name: A, type: B}
  - {name: B, type: A}
`

type env struct {
	ctx  context.Context
	sess *session.Session
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fx, err := loader.LoadString("lib.yaml", libFixture)
	require.NoError(t, err)
	sess, err := fx.Declare(session.NewBuilder("test").WithBuiltins()).WithResolver(resolve.NewResolver()).Build()
	require.NoError(t, err)
	return &env{ctx: context.Background(), sess: sess}
}

func (e *env) symbol(t *testing.T, name string) *fir.Symbol {
	t.Helper()
	sym, ok := e.sess.Registry().Find(name)
	require.True(t, ok, "no declaration %s", name)
	return sym
}

// annotationsAt resolves name to TYPES and returns its annotations.
func (e *env) annotationsAt(t *testing.T, name string) []fir.AnnotationUse {
	t.Helper()
	sym := e.symbol(t, name)
	require.NoError(t, e.sess.EnsureResolved(e.ctx, sym, phase.Types))
	return sym.Fir().Annotations()
}

func rendered(m map[string]fir.Expression) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

func TestClassIdOfIsStableAcrossAliases(t *testing.T) {
	e := newEnv(t)
	uses := e.annotationsAt(t, "lib/Foo")
	require.Len(t, uses, 4)

	want := names.ParseClassId("lib/Marker")
	for _, use := range uses[:3] {
		id, ok := annotations.ClassIdOf(e.ctx, use, e.sess)
		require.True(t, ok)
		assert.Equal(t, want, id)
	}

	id, ok := annotations.ClassIdOf(e.ctx, uses[3], e.sess)
	require.True(t, ok)
	assert.Equal(t, types.DeprecatedId, id)
}

func TestClassIdOfUnresolvedIsAbsent(t *testing.T) {
	e := newEnv(t)
	call := fir.NewAnnotationCall(fir.NewUserTypeRef(&fir.UserType{Qualifier: "Marker"}, nil))

	_, ok := annotations.ClassIdOf(e.ctx, call, e.sess)
	assert.False(t, ok)

	uses := e.annotationsAt(t, "lib/Ghost")
	_, ok = annotations.ClassIdOf(e.ctx, uses[0], e.sess)
	assert.False(t, ok)
}

func TestClassIdOfAliasCycleIsAbsent(t *testing.T) {
	e := newEnv(t)
	uses := e.annotationsAt(t, "lib/Cyclic")

	_, ok := annotations.ClassIdOf(e.ctx, uses[0], e.sess)
	assert.False(t, ok)

	ids, err := annotations.AnnotationClassIds(e.ctx, e.sess, e.symbol(t, "lib/Cyclic"))
	require.NoError(t, err)
	assert.Equal(t, []names.ClassId{names.ParseClassId("lib/Marker")}, ids)
}

func TestAnnotationClassIdsResolvesFirst(t *testing.T) {
	e := newEnv(t)
	sym := e.symbol(t, "lib/Foo")
	require.Less(t, sym.Phase(), phase.Types)

	ids, err := annotations.AnnotationClassIds(e.ctx, e.sess, sym)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sym.Phase(), phase.Types)
	assert.Equal(t, []names.ClassId{names.ParseClassId("lib/Marker"), types.DeprecatedId}, ids)
}

func TestAnnotationClassIdsSkipsUnresolved(t *testing.T) {
	e := newEnv(t)
	ids, err := annotations.AnnotationClassIds(e.ctx, e.sess, e.symbol(t, "lib/Ghost"))
	require.NoError(t, err)
	assert.Equal(t, []names.ClassId{names.ParseClassId("lib/Marker")}, ids)
}

func TestContainsAnnotation(t *testing.T) {
	e := newEnv(t)
	sym := e.symbol(t, "lib/Foo")

	ok, err := annotations.ContainsAnnotation(e.ctx, e.sess, sym, types.DeprecatedId)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, sym.Phase(), phase.Types)

	ok, err = annotations.ContainsAnnotation(e.ctx, e.sess, sym, names.ParseClassId("lib/One"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContainsAnnotationPropagatesResolveErrors(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(e.ctx)
	cancel()

	_, err := annotations.ContainsAnnotation(ctx, e.sess, e.symbol(t, "lib/Foo"), types.DeprecatedId)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBindNamedBeatsPositional(t *testing.T) {
	e := newEnv(t)
	uses := e.annotationsAt(t, "lib/Foo")

	b := annotations.Bind(e.ctx, uses[0], e.sess)
	assert.False(t, b.FastPath)
	assert.Equal(t, []names.Name{"level", "tag"}, b.Formals)
	assert.Equal(t, map[string]string{"tag": `"q"`, "level": "5"}, rendered(b.Mapping))
	assert.Empty(t, b.Dropped)
}

func TestBindSkipsClaimedNames(t *testing.T) {
	e := newEnv(t)
	uses := e.annotationsAt(t, "lib/Precedence")

	got := annotations.BindArguments(e.ctx, uses[0], e.sess)
	assert.Equal(t, map[string]string{"b": `"X"`, "a": `"Y"`, "c": `"Z"`}, rendered(got))
}

func TestBindDropsWhenExhausted(t *testing.T) {
	e := newEnv(t)
	uses := e.annotationsAt(t, "lib/Exhausted")

	b := annotations.Bind(e.ctx, uses[0], e.sess)
	assert.Equal(t, map[string]string{"a": `"X"`}, rendered(b.Mapping))
	require.Len(t, b.Dropped, 1)
	assert.Equal(t, `"Y"`, b.Dropped[1].String())
}

func TestBindWithoutPrimaryConstructor(t *testing.T) {
	e := newEnv(t)
	uses := e.annotationsAt(t, "lib/Bare")

	b := annotations.Bind(e.ctx, uses[0], e.sess)
	assert.Empty(t, b.Mapping)
	assert.Nil(t, b.Formals)
	assert.Len(t, b.Dropped, 1)
}

func TestBindThroughAlias(t *testing.T) {
	e := newEnv(t)
	uses := e.annotationsAt(t, "lib/Foo")

	got := annotations.BindArguments(e.ctx, uses[1], e.sess)
	assert.Equal(t, map[string]string{"level": "1"}, rendered(got))
}

func TestBindAliasCycleIsEmpty(t *testing.T) {
	e := newEnv(t)
	uses := e.annotationsAt(t, "lib/Cyclic")
	assert.Empty(t, annotations.BindArguments(e.ctx, uses[0], e.sess))
}

func TestBindFastPath(t *testing.T) {
	e := newEnv(t)
	sym := e.symbol(t, "lib/Foo")
	require.NoError(t, e.sess.EnsureResolved(e.ctx, sym, phase.Last))

	use := sym.Fir().Annotations()[0]
	require.True(t, use.Resolved())
	b := annotations.Bind(e.ctx, use, e.sess)
	assert.True(t, b.FastPath)
	assert.Equal(t, map[string]string{"tag": `"q"`, "level": "5"}, rendered(b.Mapping))

	// The stored mapping wins over the written arguments.
	call := fir.NewAnnotationCall(use.Base().TypeRef, fir.NewConst(fir.ConstInt, 9))
	call.Resolve(fir.ArgumentMapping{"tag": fir.NewConst(fir.ConstString, "stored")})
	got := annotations.BindArguments(e.ctx, call, e.sess)
	assert.Equal(t, map[string]string{"tag": `"stored"`}, rendered(got))

	plain := fir.NewAnnotation(nil, fir.ArgumentMapping{"level": fir.NewConst(fir.ConstInt, 1)})
	assert.Equal(t, map[string]string{"level": "1"}, rendered(annotations.BindArguments(e.ctx, plain, e.sess)))
}

func TestBindNonClassLikeIsEmpty(t *testing.T) {
	e := newEnv(t)

	param := fir.NewAnnotationCall(fir.NewResolvedTypeRef(types.NewTypeParameter("T")), fir.NewConst(fir.ConstInt, 1))
	assert.Empty(t, annotations.BindArguments(e.ctx, param, e.sess))

	broken := fir.NewAnnotationCall(fir.NewResolvedTypeRef(types.NewError("nope")), fir.NewConst(fir.ConstInt, 1))
	assert.Empty(t, annotations.BindArguments(e.ctx, broken, e.sess))

	unresolved := fir.NewAnnotationCall(fir.NewUserTypeRef(&fir.UserType{Qualifier: "Marker"}, nil), fir.NewConst(fir.ConstInt, 1))
	assert.Empty(t, annotations.BindArguments(e.ctx, unresolved, e.sess))

	uses := e.annotationsAt(t, "lib/Ghost")
	assert.Empty(t, annotations.BindArguments(e.ctx, uses[0], e.sess))
}

func TestBindNamedUnknownParameterIsKept(t *testing.T) {
	e := newEnv(t)
	ref := fir.NewResolvedTypeRef(types.NewClassLike(names.ParseClassId("lib/One")))
	call := fir.NewAnnotationCall(ref,
		&fir.NamedArgumentExpression{Name: "zzz", Expression: fir.NewConst(fir.ConstInt, 1)},
		fir.NewConst(fir.ConstInt, 2),
	)
	got := annotations.BindArguments(e.ctx, call, e.sess)
	assert.Equal(t, map[string]string{"zzz": "1", "a": "2"}, rendered(got))
}

func TestViews(t *testing.T) {
	e := newEnv(t)
	token := session.NewValidityToken()
	sym := e.symbol(t, "lib/Ghost")

	views, err := annotations.Annotations(e.ctx, e.sess, sym, token)
	require.NoError(t, err)
	require.Len(t, views, 2)

	_, known, err := views[0].ClassId()
	require.NoError(t, err)
	assert.False(t, known)

	id, known, err := views[1].ClassId()
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, names.ParseClassId("lib/Marker"), id)

	args, err := views[1].Arguments(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"level": "3"}, rendered(args))

	target, err := views[1].UseSiteTarget()
	require.NoError(t, err)
	assert.Empty(t, target)
	assert.NotNil(t, views[1].Source())

	token.Invalidate()
	_, _, err = views[1].ClassId()
	assert.ErrorIs(t, err, annotations.ErrInvalidToken)
	_, err = views[1].Arguments(e.ctx)
	assert.ErrorIs(t, err, annotations.ErrInvalidToken)
	_, err = views[1].UseSiteTarget()
	assert.ErrorIs(t, err, annotations.ErrInvalidToken)

	_, err = annotations.Annotations(e.ctx, e.sess, sym, token)
	assert.ErrorIs(t, err, annotations.ErrInvalidToken)
}

func TestMappingCache(t *testing.T) {
	e := newEnv(t)
	cache := annotations.NewMappingCache(e.sess)

	unresolved := fir.NewAnnotationCall(fir.NewUserTypeRef(&fir.UserType{Qualifier: "Marker"}, nil))
	assert.Empty(t, cache.Get(e.ctx, unresolved))
	assert.Equal(t, 0, cache.Len())

	uses := e.annotationsAt(t, "lib/Foo")
	first := cache.Get(e.ctx, uses[0])
	second := cache.Get(e.ctx, uses[0])
	assert.Equal(t, map[string]string{"tag": `"q"`, "level": "5"}, rendered(first))
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, first, second)
}
