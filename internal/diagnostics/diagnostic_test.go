package diagnostics

import (
	"bytes"
	"sync"
	"testing"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{Error, "error"},
		{Warning, "warning"},
		{Info, "info"},
		{Hint, "hint"},
		{Severity(999), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.severity.String())
	}
}

func TestNewError(t *testing.T) {
	diag := NewError("test error message")

	require.NotNil(t, diag)
	assert.Equal(t, Error, diag.Severity)
	assert.Equal(t, "test error message", diag.Message)
	assert.NotNil(t, diag.Labels)
	assert.NotNil(t, diag.Notes)
}

func TestPrimaryLabelIsKeptFirst(t *testing.T) {
	first := source.NewLocation("a.yaml", 1, 1, 3)
	second := source.NewLocation("a.yaml", 2, 1, 3)

	diag := NewError("boom").
		WithPrimaryLabel(first, "here").
		WithSecondaryLabel(second, "and there").
		WithPrimaryLabel(second, "ignored")

	require.Len(t, diag.Labels, 2)
	assert.Equal(t, Primary, diag.Labels[0].Style)
	assert.Same(t, first, diag.PrimaryLocation())
}

func TestSecondaryWithoutPrimaryPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewError("x").WithSecondaryLabel(source.NewLocation("", 1, 1, 1), "ctx")
	})
}

func TestDiagnosticString(t *testing.T) {
	assert.Equal(t, "error[A0001]: unresolved annotation: Foo",
		UnresolvedAnnotation(nil, "Foo").String())
	assert.Equal(t, "warning: plain", NewWarning("plain").String())
}

func TestBagCounts(t *testing.T) {
	bag := NewBag()
	bag.Add(NewError("error 1"))
	bag.Add(NewWarning("warning 1"))
	bag.Add(NewInfo("info"))
	bag.Add(nil)

	assert.True(t, bag.HasErrors())
	assert.Equal(t, 1, bag.ErrorCount())
	assert.Equal(t, 1, bag.WarningCount())
	assert.Len(t, bag.Diagnostics(), 3)

	bag.Clear()
	assert.False(t, bag.HasErrors())
	assert.Empty(t, bag.Diagnostics())
}

func TestBagConcurrentAdd(t *testing.T) {
	bag := NewBag()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bag.Add(NewError("concurrent"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, bag.ErrorCount())
}

func TestBagSortedAndWithCode(t *testing.T) {
	bag := NewBag()
	bag.Add(UnresolvedType(source.NewLocation("b.yaml", 1, 1, 1), "Later"))
	bag.Add(UnresolvedAnnotation(source.NewLocation("a.yaml", 9, 2, 1), "Earlier"))
	bag.Add(NewWarning("no location"))

	sorted := bag.Sorted()
	require.Len(t, sorted, 3)
	assert.Contains(t, sorted[0].Message, "Earlier")
	assert.Contains(t, sorted[1].Message, "Later")
	assert.Equal(t, "no location", sorted[2].Message)

	assert.Len(t, bag.WithCode(ErrUnresolvedAnnotation), 1)
}

func TestEmitAll(t *testing.T) {
	colors.SetEnabled(false)
	defer colors.SetEnabled(true)

	bag := NewBag()
	bag.Add(UnresolvedAnnotation(source.NewLocation("lib.yaml", 4, 7, 3), "Foo"))
	bag.Add(ErroneousContractPredicate(source.NewLocation("lib.yaml", 8, 1, 3), "x is Bar", NewError("Bar is unresolved")))

	var buf bytes.Buffer
	bag.EmitAll(&buf)
	out := buf.String()

	assert.Contains(t, out, "error[A0001]: unresolved annotation: Foo")
	assert.Contains(t, out, "  --> lib.yaml:4:7 no annotation class with this name")
	assert.Contains(t, out, "= help: check the import")
	assert.Contains(t, out, "= note: Bar is unresolved")
	assert.Contains(t, out, "Analysis failed with 2 error(s)")
}
