package core

import (
	"strings"
	"testing"

	"github.com/handpartners/pmfstudio/schema"
	"github.com/stretchr/testify/assert"
)

var richAnswer = strings.Repeat("we interviewed founders weekly ", 3) // > 60 runes

// TestAssessQualityEmpty gives zero for an empty survey.
func TestAssessQualityEmpty(t *testing.T) {
	q := AssessQuality(survey(map[string]any{}))
	assert.Equal(t, 0, q.Score)
	assert.Equal(t, schema.QualityVeryLow, q.Label)
	assert.Equal(t, 0, q.Answered)
	assert.Equal(t, len(qualityFields), q.Fields)
}

// TestAssessQualityCounters checks the per-field bucketing.
func TestAssessQualityCounters(t *testing.T) {
	q := AssessQuality(survey(map[string]any{
		"problem":  richAnswer,       // answered + rich
		"solution": "a landing page", // answered only
		"target":   "asdf",           // answered + garbage (stoplist)
		"usp":      "ok",             // answered + garbage (too short)
		"channels": "   ",            // whitespace, excluded entirely
	}))

	assert.Equal(t, 4, q.Answered)
	assert.Equal(t, 1, q.Rich)
	assert.Equal(t, 2, q.Garbage)
}

// TestAssessQualityFormula checks the combined score against a hand
// computation.
func TestAssessQualityFormula(t *testing.T) {
	// 2 answered of 23, 1 rich, 0 garbage:
	// base = 100*(0.6*2/23 + 0.4*1/23) = 100*1.6/23 ~= 6.96 -> 7
	q := AssessQuality(survey(map[string]any{
		"problem":  richAnswer,
		"solution": "a working prototype",
	}))
	assert.Equal(t, 7, q.Score)
	assert.Equal(t, schema.QualityVeryLow, q.Label)
}

// TestAssessQualityGarbagePenalty verifies garbage answers pull the score down.
func TestAssessQualityGarbagePenalty(t *testing.T) {
	clean := map[string]any{}
	dirty := map[string]any{}
	for _, field := range qualityFields {
		clean[field] = richAnswer
		dirty[field] = "asdf"
	}

	qClean := AssessQuality(survey(clean))
	qDirty := AssessQuality(survey(dirty))

	assert.Equal(t, 100, qClean.Score)
	assert.Equal(t, schema.QualityHigh, qClean.Label)

	// Full coverage, zero richness, all garbage:
	// base = 60, penalized by 0.7 -> 18
	assert.Equal(t, 18, qDirty.Score)
	assert.Equal(t, schema.QualityVeryLow, qDirty.Label)
	assert.Less(t, qDirty.Score, qClean.Score)
}

// TestAssessQualityStoplistCaseInsensitive checks stoplist matching.
func TestAssessQualityStoplistCaseInsensitive(t *testing.T) {
	q := AssessQuality(survey(map[string]any{"problem": "Testing"}))
	assert.Equal(t, 1, q.Garbage)
}

// TestAssessQualityNumericFields makes numeric answers count as coverage.
func TestAssessQualityNumericFields(t *testing.T) {
	q := AssessQuality(survey(map[string]any{"users_count": float64(1200)}))
	assert.Equal(t, 1, q.Answered)
	assert.Equal(t, 1, q.Garbage) // "1200" is four runes
}

// TestAssessQualityBounds keeps the score in [0,100] for adversarial input.
func TestAssessQualityBounds(t *testing.T) {
	inputs := []map[string]any{
		{},
		{"problem": strings.Repeat("x", 10000)},
		{"problem": "asdf", "solution": "1234", "target": "test"},
	}
	for _, raw := range inputs {
		q := AssessQuality(survey(raw))
		assert.GreaterOrEqual(t, q.Score, 0)
		assert.LessOrEqual(t, q.Score, 100)
	}
}
