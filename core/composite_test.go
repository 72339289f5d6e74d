package core

import (
	"math"
	"testing"

	"github.com/handpartners/pmfstudio/schema"
	"github.com/stretchr/testify/assert"
)

// TestCompositeScoreDefaults reproduces the worked examples with the
// default weight table.
func TestCompositeScoreDefaults(t *testing.T) {
	weights := schema.DefaultWeights()

	t.Run("strong survey", func(t *testing.T) {
		comps := schema.ComponentScores{
			schema.ComponentProblem:   90,
			schema.ComponentPersona:   85,
			schema.ComponentSolution:  75,
			schema.ComponentMarket:    90,
			schema.ComponentRetention: 45,
		}
		result := CompositeScore(comps, weights)
		assert.InDelta(t, 76.8, result.Score, 1e-9)
		assert.Equal(t, schema.StagePMFInProgress, result.Stage)
	})

	t.Run("all defaults", func(t *testing.T) {
		comps := schema.ComponentScores{
			schema.ComponentProblem:   35,
			schema.ComponentPersona:   30,
			schema.ComponentSolution:  50,
			schema.ComponentMarket:    40,
			schema.ComponentRetention: 40,
		}
		result := CompositeScore(comps, weights)
		assert.InDelta(t, 40.5, result.Score, 1e-9)
		assert.Equal(t, schema.StageProblemSolutionFit, result.Stage)
	})
}

// TestCompositeScoreClamping checks out-of-range components clamp before weighting.
func TestCompositeScoreClamping(t *testing.T) {
	weights := schema.DefaultWeights()
	comps := schema.ComponentScores{
		schema.ComponentProblem:   500,
		schema.ComponentPersona:   -50,
		schema.ComponentSolution:  100,
		schema.ComponentMarket:    100,
		schema.ComponentRetention: 100,
	}
	result := CompositeScore(comps, weights)
	// 0.2*100 + 0.1*0 + 0.25*100 + 0.25*100 + 0.2*100 = 90
	assert.InDelta(t, 90.0, result.Score, 1e-9)
}

// TestCompositeScoreMissingComponents treats absent keys as 0.
func TestCompositeScoreMissingComponents(t *testing.T) {
	weights := schema.DefaultWeights()
	result := CompositeScore(schema.ComponentScores{}, weights)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, schema.StageProblemDiscovery, result.Stage)
}

// TestCompositeScoreMonotonic verifies the score never decreases when a
// single component increases and everything else is held fixed.
func TestCompositeScoreMonotonic(t *testing.T) {
	weights := schema.DefaultWeights()
	base := schema.ComponentScores{
		schema.ComponentProblem:   50,
		schema.ComponentPersona:   50,
		schema.ComponentSolution:  50,
		schema.ComponentMarket:    50,
		schema.ComponentRetention: 50,
	}

	for _, key := range schema.AllComponentKeys {
		prev := CompositeScore(base, weights).Score
		for _, bump := range []float64{60, 75, 90, 100} {
			comps := schema.ComponentScores{}
			for k, v := range base {
				comps[k] = v
			}
			comps[key] = bump
			next := CompositeScore(comps, weights).Score
			assert.GreaterOrEqual(t, next, prev, "component %s at %.0f", key, bump)
			prev = next
		}
	}
}

// TestNormalizeWeights covers renormalization and the default fallback.
func TestNormalizeWeights(t *testing.T) {
	t.Run("renormalizes positive weights", func(t *testing.T) {
		w := NormalizeWeights(schema.WeightTable{
			schema.ComponentProblem:  2,
			schema.ComponentSolution: 2,
		})
		assert.InDelta(t, 0.5, w[schema.ComponentProblem], 1e-9)
		assert.InDelta(t, 0.5, w[schema.ComponentSolution], 1e-9)
	})

	t.Run("nil falls back to defaults", func(t *testing.T) {
		assert.Equal(t, schema.DefaultWeights(), NormalizeWeights(nil))
	})

	t.Run("non-positive sum falls back to defaults", func(t *testing.T) {
		w := NormalizeWeights(schema.WeightTable{schema.ComponentProblem: -1, schema.ComponentSolution: 1})
		assert.Equal(t, schema.DefaultWeights(), w)
	})

	t.Run("non-finite sum falls back to defaults", func(t *testing.T) {
		w := NormalizeWeights(schema.WeightTable{schema.ComponentProblem: math.NaN(), schema.ComponentSolution: 1})
		assert.Equal(t, schema.DefaultWeights(), w)

		w = NormalizeWeights(schema.WeightTable{schema.ComponentMarket: math.Inf(1)})
		assert.Equal(t, schema.DefaultWeights(), w)
	})

	t.Run("sum is one for any positive table", func(t *testing.T) {
		w := NormalizeWeights(schema.WeightTable{
			schema.ComponentProblem:   3,
			schema.ComponentPersona:   1,
			schema.ComponentSolution:  7,
			schema.ComponentMarket:    2,
			schema.ComponentRetention: 5,
		})
		sum := 0.0
		for _, weight := range w {
			sum += weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})
}
