package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStageForScore validates the stage ladder, including exact boundaries.
func TestStageForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected Stage
	}{
		{0, StageProblemDiscovery},
		{40.0, StageProblemDiscovery},
		{40.01, StageProblemSolutionFit},
		{60.0, StageProblemSolutionFit},
		{60.1, StagePMFInProgress},
		{80.0, StagePMFInProgress},
		{80.1, StagePMFAchieved},
		{100, StagePMFAchieved},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StageForScore(tt.score), "score %.2f", tt.score)
	}
}

// TestLabelForQuality validates the quality label cutpoints.
func TestLabelForQuality(t *testing.T) {
	assert.Equal(t, QualityVeryLow, LabelForQuality(0))
	assert.Equal(t, QualityVeryLow, LabelForQuality(24))
	assert.Equal(t, QualityMedium, LabelForQuality(25))
	assert.Equal(t, QualityMedium, LabelForQuality(59))
	assert.Equal(t, QualityHigh, LabelForQuality(60))
	assert.Equal(t, QualityHigh, LabelForQuality(100))
}

// TestDefaultWeights ensures the default table covers all keys and sums to 1.
func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Len(t, w, len(AllComponentKeys))

	sum := 0.0
	for _, key := range AllComponentKeys {
		weight, ok := w[key]
		assert.True(t, ok, "missing weight for %s", key)
		assert.GreaterOrEqual(t, weight, 0.0)
		sum += weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Copies must be independent.
	w[ComponentProblem] = 0.99
	assert.Equal(t, 0.20, DefaultWeights()[ComponentProblem])
}
