package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrerequisitesFormAChain(t *testing.T) {
	for p := First + 1; p <= Last; p++ {
		prev, ok := Prerequisites[p]
		assert.True(t, ok, "missing prerequisite for %s", p)
		assert.Equal(t, p-1, prev, "prerequisite of %s", p)
	}
	_, ok := Prerequisites[Raw]
	assert.False(t, ok)
}

func TestParseRoundTrip(t *testing.T) {
	for p := First; p <= Last; p++ {
		got, ok := Parse(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}

	_, ok := Parse("NOPE")
	assert.False(t, ok)
}

func TestNextSaturates(t *testing.T) {
	assert.Equal(t, Imports, Raw.Next())
	assert.Equal(t, Last, Last.Next())
	assert.False(t, ResolvePhase(42).Valid())
	assert.Equal(t, "UNKNOWN", ResolvePhase(42).String())
}
