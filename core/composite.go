package core

import (
	"math"

	"github.com/handpartners/pmfstudio/schema"
)

// CompositeScore reduces component scores and a weight table to a single
// PMF score with its stage label. Components are clamped to [0,100]
// before weighting; keys missing from the component map contribute 0.
// The score is rounded to one decimal and the stage thresholds apply to
// the unadjusted score.
func CompositeScore(components schema.ComponentScores, weights schema.WeightTable) schema.PmfResult {
	total := 0.0
	for key, weight := range weights {
		total += weight * clamp(components[key], 0, 100)
	}
	score := math.Round(total*10) / 10
	return schema.PmfResult{
		Score: score,
		Stage: schema.StageForScore(score),
	}
}
