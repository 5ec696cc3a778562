package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var sample = []AnnotationRecord{
	{
		Declaration: "lib/Foo",
		Position:    0,
		ClassId:     "lib/Marker",
		Arguments:   []Argument{{Name: "level", Rendered: "5"}, {Name: "tag", Rendered: `"q"`}},
	},
	{Declaration: "lib/Foo", Position: 1, ClassId: "kotlin/Deprecated", UseSiteTarget: "field",
		Arguments: []Argument{{Name: "message", Rendered: `"old"`}}},
	{Declaration: "lib/Bar", Position: 0, ClassId: ""},
	{Declaration: "lib/Bar", Position: 1, ClassId: "lib/Marker", Arguments: []Argument{{Name: "level", Rendered: "1"}}},
}

func TestSaveAndLoadIndex(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveIndex(ctx, sample))
	got, err := s.LoadIndex(ctx)
	require.NoError(t, err)

	want := []AnnotationRecord{sample[2], sample[3], sample[0], sample[1]}
	assert.Equal(t, want, got)
}

func TestSaveIndexReplacesSnapshot(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveIndex(ctx, sample))
	require.NoError(t, s.SaveIndex(ctx, sample[:1]))

	got, err := s.LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample[:1], got)
}

func TestFindByClassId(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveIndex(ctx, sample))

	got, err := s.FindByClassId(ctx, "lib/Marker")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "lib/Bar", got[0].Declaration)
	assert.Equal(t, "lib/Foo", got[1].Declaration)
	assert.Equal(t, sample[0].Arguments, got[1].Arguments)

	got, err = s.FindByClassId(ctx, "lib/Nothing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveIndexRejectsDuplicates(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveIndex(ctx, sample))

	err := s.SaveIndex(ctx, []AnnotationRecord{sample[0], sample[0]})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lib/Foo#0")

	got, err := s.LoadIndex(ctx)
	require.NoError(t, err)
	assert.Len(t, got, len(sample))
}
