package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmrAfifiy/kotlin/internal/config"
	"github.com/AmrAfifiy/kotlin/internal/phase"
)

const library = `
package: lib
classes:
  - name: Marker
    kind: annotation class
    constructor:
      - {name: level, type: Int}
      - {name: tag, type: String, default: '"x"'}
  - name: Foo
    annotations:
      - 'Marker(tag = "q", 5)'
      - {type: Deprecated, args: ['"old"'], target: field}
functions:
  - name: check
    params:
      - {name: x, type: 'Any?'}
    returns: Boolean
    contract:
      - returns: "true"
        implies: {notNull: x}
`

const broken = `
package: lib
classes:
  - name: Foo
    annotations: ['Missing(1)']
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompile_InMemory(t *testing.T) {
	result := Compile(context.Background(), &Options{Code: library, LogFormat: PLAIN})

	require.True(t, result.Success, result.Output)
	require.NotNil(t, result.Session())
	assert.Len(t, result.Symbols, 3)
	assert.Empty(t, result.Output)
	for _, sym := range result.Symbols {
		assert.Equal(t, phase.Last, sym.Phase())
	}
}

func TestCompile_ReportsDiagnostics(t *testing.T) {
	result := Compile(context.Background(), &Options{Code: broken, LogFormat: PLAIN})

	assert.False(t, result.Success)
	assert.Contains(t, result.Output, "error[A0001]")
	assert.Contains(t, result.Output, "Missing")
	assert.NotContains(t, result.Output, "\033[")
}

func TestCompile_Files(t *testing.T) {
	lib := writeFixture(t, "lib.yaml", library)
	other := writeFixture(t, "other.yaml", "package: app\nclasses:\n  - name: Bar\n    annotations: ['lib.Marker(1)']\n")

	result := Compile(context.Background(), &Options{Files: []string{lib, other}, LogFormat: PLAIN})

	require.True(t, result.Success, result.Output)
	assert.Len(t, result.Symbols, 4)

	got, err := Bindings(context.Background(), result.Session(), "app/Bar")
	require.NoError(t, err)
	assert.Equal(t, []string{`@lib/Marker(level = 1)`}, got)
}

func TestCompile_MissingFile(t *testing.T) {
	result := Compile(context.Background(), &Options{Files: []string{"does/not/exist.yaml"}, LogFormat: PLAIN})

	assert.False(t, result.Success)
	assert.Nil(t, result.Session())
	assert.Contains(t, result.Output, "file not found: does/not/exist.yaml")
}

func TestCompile_NoInput(t *testing.T) {
	result := Compile(context.Background(), &Options{})

	assert.False(t, result.Success)
	assert.Contains(t, result.Output, "no fixture given")
}

func TestCompile_MalformedFixture(t *testing.T) {
	result := Compile(context.Background(), &Options{Code: "classes:\n  - kind: class\n", LogFormat: PLAIN})

	assert.False(t, result.Success)
	assert.Contains(t, result.Output, "class without a name")
}

func TestCompile_DebugTrace(t *testing.T) {
	result := Compile(context.Background(), &Options{Code: library, Debug: true, LogFormat: PLAIN})

	require.True(t, result.Success)
	assert.Contains(t, result.Output, "[Phase 1] Resolution")
	assert.Contains(t, result.Output, "function lib.check -> BODY_RESOLVE")
}

func TestCompile_ConfigTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Target = phase.Status.String()

	result := Compile(context.Background(), &Options{Code: library, Config: cfg})

	require.True(t, result.Success)
	for _, sym := range result.Symbols {
		assert.Equal(t, phase.Status, sym.Phase())
	}
	assert.Empty(t, Contracts(result.Symbols))
}

func TestCompile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Compile(ctx, &Options{Code: library, LogFormat: PLAIN})

	assert.False(t, result.Success)
	assert.Contains(t, result.Output, "resolution failed")
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	result := Compile(ctx, &Options{Code: library})
	require.True(t, result.Success)
	sess := result.Session()

	ids, err := ClassIds(ctx, sess, "lib/Foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/Marker", "kotlin/Deprecated"}, ids)

	bindings, err := Bindings(ctx, sess, "lib/Foo")
	require.NoError(t, err)
	assert.Equal(t, []string{
		`@lib/Marker(level = 5, tag = "q")`,
		`field:@kotlin/Deprecated(message = "old")`,
	}, bindings)

	assert.Equal(t, []string{"lib.check: returns(true) implies x != null"}, Contracts(result.Symbols))

	_, err = ClassIds(ctx, sess, "lib/Nope")
	assert.EqualError(t, err, "no declaration named lib/Nope")
	_, err = Bindings(ctx, sess, "lib/Nope")
	assert.Error(t, err)
}
