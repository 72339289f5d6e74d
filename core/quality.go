package core

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/handpartners/pmfstudio/schema"
)

// qualityFields is the fixed set of text-bearing survey fields evaluated
// for answer quality. Deliberately broader than the fields used for
// component scoring: quality measures how seriously the whole survey was
// filled in, not just the scored signals.
var qualityFields = []string{
	"problem", "problem_intensity", "current_alternatives", "willingness_to_pay",
	"target", "beachhead_customer", "customer_access",
	"solution", "usp", "mvp_status", "pricing_model",
	"users_count", "repeat_usage", "retention_signal",
	"revenue_status", "key_feedback",
	"market_size", "channels", "cac_ltv_estimate",
	"pmf_pull_signal", "referral_signal",
	"next_experiments", "biggest_risk",
}

// garbageStoplist holds placeholder tokens that mark an answer as filler
// regardless of the length heuristic. Matched case-insensitively against
// the whole trimmed answer.
var garbageStoplist = map[string]struct{}{
	"asdf":    {},
	"qwer":    {},
	"zxcv":    {},
	"test":    {},
	"testing": {},
	"1234":    {},
	"12345":   {},
	"abc":     {},
	"abcd":    {},
	"n/a":     {},
	"na":      {},
	"none":    {},
	"tbd":     {},
	"todo":    {},
	"-":       {},
	".":       {},
}

const (
	richAnswerRunes = 60  // answers at least this long count as substantive
	garbageMaxRunes = 4   // answers this short count as filler
	coverageWeight  = 0.6 // share of the base score driven by answer coverage
	richnessWeight  = 0.4 // share driven by substantive answers
	garbagePenalty  = 0.7 // maximum fraction shaved off for all-filler input
)

// AssessQuality independently scores how substantive the free-text answers
// are. Operates only over the fixed qualityFields set; component scores
// never feed into this estimate.
func AssessQuality(in schema.SurveyInput) schema.QualityAssessment {
	answered, rich, garbage := 0, 0, 0

	for _, field := range qualityFields {
		answer := strings.TrimSpace(in.Get(field).AsText())
		if answer == "" {
			continue
		}
		answered++
		runes := utf8.RuneCountInString(answer)
		if runes >= richAnswerRunes {
			rich++
		}
		if _, stop := garbageStoplist[strings.ToLower(answer)]; stop || runes <= garbageMaxRunes {
			garbage++
		}
	}

	total := len(qualityFields)
	coverage := float64(answered) / float64(total)
	richness := float64(rich) / float64(total)
	base := 100 * (coverageWeight*coverage + richnessWeight*richness)

	garbageRatio := float64(garbage) / math.Max(float64(answered), 1)
	score := int(math.Round(clamp(base*(1-garbagePenalty*garbageRatio), 0, 100)))

	return schema.QualityAssessment{
		Score:    score,
		Label:    schema.LabelForQuality(score),
		Answered: answered,
		Rich:     rich,
		Garbage:  garbage,
		Fields:   total,
	}
}
