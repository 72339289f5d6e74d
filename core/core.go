// Package core implements the PMF scoring pipeline: component scoring,
// weighted composite reduction, input quality estimation, and the
// quality-gated display adjustment.
//
// Everything in this package is a pure, synchronous computation over an
// in-memory survey. No function here performs I/O, blocks, or returns an
// error: untrusted survey input always degrades to the weakest-evidence
// branch of each rule instead of failing the request.
package core

import (
	"maps"
	"math"

	"github.com/handpartners/pmfstudio/schema"
)

// Engine binds an immutable weight table at construction and runs the
// full pipeline per survey. Safe for concurrent use.
type Engine struct {
	weights schema.WeightTable
}

// NewEngine returns an Engine over the given weight table. A nil, empty,
// or non-positive-sum table falls back to the defaults. The table is
// copied so later mutation by the caller cannot leak in.
func NewEngine(weights schema.WeightTable) *Engine {
	return &Engine{weights: NormalizeWeights(weights)}
}

// NormalizeWeights returns a copy of w rescaled to sum to 1.0, or the
// default table when w is missing, empty, or has a degenerate total
// (zero or less, NaN, or infinite).
func NormalizeWeights(w schema.WeightTable) schema.WeightTable {
	if len(w) == 0 {
		return schema.DefaultWeights()
	}
	total := 0.0
	for _, weight := range w {
		total += weight
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return schema.DefaultWeights()
	}
	normalized := make(schema.WeightTable, len(w))
	for key, weight := range w {
		normalized[key] = weight / total
	}
	return normalized
}

// Weights returns a copy of the engine's active weight table.
func (e *Engine) Weights() schema.WeightTable {
	out := make(schema.WeightTable, len(e.weights))
	maps.Copy(out, e.weights)
	return out
}

// Evaluate runs the four pipeline stages over one survey and returns the
// complete evaluation. Deterministic and side-effect free: scoring the
// same input twice yields identical results.
func (e *Engine) Evaluate(in schema.SurveyInput) schema.Evaluation {
	components := ComponentScoresFromSurvey(in)
	result := CompositeScore(components, e.weights)
	quality := AssessQuality(in)
	display := DecideDisplay(result, quality)
	return schema.Evaluation{
		Components: components,
		Result:     result,
		Quality:    quality,
		Display:    display,
	}
}
