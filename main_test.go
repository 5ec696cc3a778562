package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/config"
)

const fixture = `
package: lib
classes:
  - name: Marker
    kind: annotation class
    constructor:
      - {name: level, type: Int}
  - name: Foo
    annotations: ['Marker(3)']
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return path
}

func TestReplCommands(t *testing.T) {
	colors.SetEnabled(false)
	defer colors.SetEnabled(true)

	var out bytes.Buffer
	r := &repl{cfg: config.Default(), out: &out}
	ctx := context.Background()

	assert.False(t, r.handle(ctx, ":bind lib/Foo"))
	assert.Contains(t, out.String(), "nothing loaded")

	out.Reset()
	assert.False(t, r.handle(ctx, ":load "+writeFixture(t)))
	assert.Contains(t, out.String(), "✓ 2 declaration(s) loaded")

	out.Reset()
	assert.False(t, r.handle(ctx, ":bind lib/Foo"))
	assert.Equal(t, "@lib/Marker(level = 3)\n", out.String())

	out.Reset()
	assert.False(t, r.handle(ctx, ":classids lib/Foo"))
	assert.Equal(t, "lib/Marker\n", out.String())

	out.Reset()
	assert.False(t, r.handle(ctx, ":contracts"))
	assert.Equal(t, "(none)\n", out.String())

	out.Reset()
	assert.False(t, r.handle(ctx, ":classids lib/Nope"))
	assert.Contains(t, out.String(), "no declaration named lib/Nope")

	out.Reset()
	assert.False(t, r.handle(ctx, ":frobnicate"))
	assert.Contains(t, out.String(), "unknown command")

	assert.True(t, r.handle(ctx, ":quit"))
}

func TestIndexCommand(t *testing.T) {
	colors.SetEnabled(false)
	defer colors.SetEnabled(true)

	db := filepath.Join(t.TempDir(), "index.db")
	lib := writeFixture(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	defer func() { dbPath, findId = "", "" }()

	rootCmd.SetArgs([]string{"index", "--db", db, lib})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "1 annotation(s) saved")

	out.Reset()
	rootCmd.SetArgs([]string{"index", "--db", db, "--find", "lib/Marker"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "lib/Foo#0 level=3\n", out.String())
}

func TestScenariosCommand(t *testing.T) {
	colors.SetEnabled(false)
	defer colors.SetEnabled(true)

	doc := "## Test: marker\n\n```fixture\n" + fixture + "```\n\n```binding lib/Foo\n@lib/Marker(level = 3)\n```\n\n" +
		"## Test: wrong\n\n```fixture\n" + fixture + "```\n\n```classids lib/Foo\nlib/Other\n```\n"
	path := filepath.Join(t.TempDir(), "scenarios.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"scenarios", path})

	err := rootCmd.Execute()
	require.EqualError(t, err, "1 scenario(s) failed")
	assert.Contains(t, out.String(), "PASS marker\n")
	assert.Contains(t, out.String(), "FAIL wrong\n")
	assert.Contains(t, out.String(), "    want: lib/Other\n")
}
