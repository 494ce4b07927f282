package detector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAlternates(t *testing.T) {
	toggle := NewToggle(rand.New(rand.NewSource(1)))

	const n = 100
	outcomes := make([]bool, 0, n)
	for i := 0; i < n; i++ {
		outcomes = append(outcomes, toggle.Next())
	}

	manipulated := 0
	for i, v := range outcomes {
		if v {
			manipulated++
		}
		if i > 0 {
			assert.NotEqual(t, outcomes[i-1], v, "outcomes %d and %d must differ", i-1, i)
		}
	}
	assert.Equal(t, n/2, manipulated)
}

func TestToggleSeed(t *testing.T) {
	toggle := NewToggle(rand.New(rand.NewSource(1)))

	toggle.Seed(true)
	require.False(t, toggle.Next())
	assert.False(t, toggle.Last())

	toggle.Seed(false)
	require.True(t, toggle.Next())
	assert.True(t, toggle.Last())
}

func TestToggleInitialStateVaries(t *testing.T) {
	// Different seeds must be able to produce both initial states.
	seen := map[bool]bool{}
	for seed := int64(0); seed < 32; seed++ {
		toggle := NewToggle(rand.New(rand.NewSource(seed)))
		seen[toggle.Last()] = true
	}
	assert.Len(t, seen, 2)
}
