package detector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"deepcheck/common/models"
)

func TestClassifyBuckets(t *testing.T) {
	tests := []struct {
		confidence float64
		expected   models.Classification
	}{
		{0, models.HighlyAuthentic},
		{19.99, models.HighlyAuthentic},
		{20, models.LikelyAuthentic}, // boundary lands in the upper bracket
		{59.99, models.LikelyAuthentic},
		{60, models.PossiblyManipulated},
		{89.99, models.PossiblyManipulated},
		{90, models.HighlyManipulated},
		{100, models.HighlyManipulated},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	severity := map[models.Classification]int{
		models.HighlyAuthentic:     0,
		models.LikelyAuthentic:     1,
		models.PossiblyManipulated: 2,
		models.HighlyManipulated:   3,
	}
	previous := -1
	for c := 0.0; c <= 100; c += 0.25 {
		s, ok := severity[Classify(c)]
		assert.True(t, ok, "unknown classification for %v", c)
		assert.GreaterOrEqual(t, s, previous, "severity decreased at %v", c)
		previous = s
	}
}

func TestRiskFor(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		assert.Equal(t, models.RiskLow, riskFor(rng, false))
	}

	seen := map[models.RiskLevel]int{}
	for i := 0; i < 1000; i++ {
		level := riskFor(rng, true)
		assert.Contains(t, []models.RiskLevel{models.RiskMedium, models.RiskHigh}, level)
		seen[level]++
	}
	assert.Positive(t, seen[models.RiskMedium])
	assert.Positive(t, seen[models.RiskHigh])
}
