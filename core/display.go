package core

import (
	"math"

	"github.com/handpartners/pmfstudio/schema"
)

// Quality thresholds and score ceilings for the display policy. The core
// business rule: low-confidence input can never surface a high score, and
// the displayed score is monotonically non-decreasing in quality.
const (
	qualityInvalidBelow = 20
	qualityThinBelow    = 40
	qualityNormalFrom   = 60

	thinScoreCap  = 20.0
	basicScoreCap = 35.0
)

// Caveat notes attached to downgraded displays.
const (
	noteInvalid = "Responses are too short to assess product-market fit. Add at least a few sentences per question and run the assessment again."
	noteThin    = "Survey responses are too thin to trust the full score. A capped score is shown for reference only."
	noteBasic   = "Responses cover the basics but lack depth. The score is shown for reference with a conservative cap."
)

// Stage overrides shown when the numeric score is suppressed or capped.
const (
	stageInvalid = "Insufficient data / cannot assess"
	stageThin    = "Insufficient data / Early Problem Fit"
	stageBasic   = "Early exploration / Problem Discovery"
)

// DecideDisplay combines the composite result and the quality assessment
// into the final presentation decision.
func DecideDisplay(result schema.PmfResult, quality schema.QualityAssessment) schema.DisplayDecision {
	// A score that is not a finite number cannot be displayed at all;
	// fall through to a text-only reference display.
	if math.IsNaN(result.Score) || math.IsInf(result.Score, 0) {
		return schema.DisplayDecision{
			Mode:  schema.DisplayReference,
			Score: nil,
			Stage: string(result.Stage),
			Note:  "Score could not be computed from the submitted responses.",
		}
	}

	switch {
	case quality.Score < qualityInvalidBelow:
		return schema.DisplayDecision{
			Mode:  schema.DisplayInvalid,
			Score: nil,
			Stage: stageInvalid,
			Note:  noteInvalid,
		}
	case quality.Score < qualityThinBelow:
		return schema.DisplayDecision{
			Mode:  schema.DisplayReference,
			Score: capScore(result.Score, thinScoreCap),
			Stage: stageThin,
			Note:  noteThin,
		}
	case quality.Score < qualityNormalFrom:
		return schema.DisplayDecision{
			Mode:  schema.DisplayReference,
			Score: capScore(result.Score, basicScoreCap),
			Stage: stageBasic,
			Note:  noteBasic,
		}
	default:
		score := result.Score
		return schema.DisplayDecision{
			Mode:  schema.DisplayNormal,
			Score: &score,
			Stage: string(result.Stage),
		}
	}
}

func capScore(score, ceiling float64) *float64 {
	capped := math.Min(score, ceiling)
	return &capped
}
