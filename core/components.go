package core

import (
	"strings"
	"unicode/utf8"

	"github.com/handpartners/pmfstudio/schema"
)

// Fixed component score levels. Each scoring rule picks one of a small set
// of evidence tiers rather than interpolating, except where a continuous
// signal (Sean Ellis, NPS, retention) is available.
const (
	problemStrong = 90 // validated problem text plus heavy interview count
	problemSolid  = 70
	problemThin   = 60
	problemNone   = 35

	personaSegments = 85 // two or more named segments
	personaSingle   = 65
	personaProse    = 60
	personaNone     = 30

	solutionPraised  = 75
	solutionUnproven = 50

	marketPaying  = 90
	marketPilots  = 85
	marketEarly   = 70
	marketNascent = 40

	retentionDefault = 40
)

// ComponentScoresFromSurvey converts heterogeneous, partially-missing
// survey fields into the five component scores. Pure function of the
// input; every key is always present in the result and every value lies
// in [0,100].
func ComponentScoresFromSurvey(in schema.SurveyInput) schema.ComponentScores {
	interviews := in.Get("interviews_count").IntOr(0)

	return schema.ComponentScores{
		schema.ComponentProblem:   problemScore(in, interviews),
		schema.ComponentPersona:   personaScore(in),
		schema.ComponentSolution:  solutionScore(in),
		schema.ComponentMarket:    marketScore(in, interviews),
		schema.ComponentRetention: retentionScore(in),
	}
}

// problemScore weighs problem text against customer interview volume.
func problemScore(in schema.SurveyInput, interviews int) float64 {
	hasText := strings.TrimSpace(in.Get("problem").AsText()) != ""
	switch {
	case hasText && interviews >= 8:
		return problemStrong
	case hasText && interviews >= 3:
		return problemSolid
	case interviews >= 8:
		return problemThin
	default:
		return problemNone
	}
}

// personaScore grades the "target" field by its shape: a multi-entry list
// beats a single segment beats descriptive prose.
func personaScore(in schema.SurveyInput) float64 {
	target := in.Get("target")
	switch {
	case target.Kind == schema.KindList && len(target.List) >= 2:
		return personaSegments
	case target.Kind == schema.KindList && len(target.List) == 1:
		return personaSingle
	case target.Kind == schema.KindText && utf8.RuneCountInString(target.Text) > 10:
		return personaProse
	default:
		return personaNone
	}
}

// solutionScore follows a priority chain: Sean Ellis beats NPS beats a
// raw positive-comment count. A metric that is present but unparseable
// falls through to the next link in the chain.
func solutionScore(in schema.SurveyInput) float64 {
	if sean, ok := in.Get("very_disappointed_percent").AsNumber(); ok {
		return mapSeanEllisToScore(sean)
	}
	if nps, ok := in.Get("nps").AsNumber(); ok {
		return scaleNPS(nps)
	}
	if in.Get("positive_comments").IntOr(0) >= 5 {
		return solutionPraised
	}
	return solutionUnproven
}

// marketScore ranks traction evidence: paying customers, then pilot
// volume, then any meaningful pilot or interview activity.
func marketScore(in schema.SurveyInput, interviews int) float64 {
	pilots := in.Get("pilot_users").IntOr(0)
	paid := in.Get("paid_customers").IntOr(0)
	switch {
	case paid >= 20:
		return marketPaying
	case pilots >= 50:
		return marketPilots
	case pilots >= 10 || interviews >= 10:
		return marketEarly
	default:
		return marketNascent
	}
}

// retentionScore prefers day-7 retention over DAU/MAU. Values at or below
// 1 are read as fractions. A day-7 field that is present but unparseable
// pins the score to the default rather than falling through to DAU/MAU;
// the presence of the stronger signal means the weaker one was not the
// founder's primary measurement.
func retentionScore(in schema.SurveyInput) float64 {
	if day7 := in.Get("day7_retention"); day7.Kind != schema.KindEmpty {
		v, ok := day7.AsNumber()
		if !ok {
			return retentionDefault
		}
		if v <= 1 {
			v *= 100
		}
		return clamp(v, 0, 100)
	}
	if dauMau := in.Get("dau_mau"); dauMau.Kind != schema.KindEmpty {
		v, ok := dauMau.AsNumber()
		if !ok {
			return retentionDefault
		}
		if v <= 1 {
			v *= 100
		}
		return clamp(v*0.8, 0, 100)
	}
	return retentionDefault
}

// mapSeanEllisToScore maps a "very disappointed %" metric onto [0,100]
// via a piecewise-linear curve. The curve rewards crossing the classic
// 40% PMF threshold: slope 1.2 below 20, 1.8 between 20 and 40, then
// linear to saturation.
func mapSeanEllisToScore(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 100:
		return 100
	case x < 20:
		return x * 1.2
	case x < 40:
		return 24 + (x-20)*1.8
	default:
		return min(100, 60+(x-40))
	}
}

// scaleNPS linearly rescales an NPS value (-100..100) to [0,100].
func scaleNPS(nps float64) float64 {
	return clamp((nps+100)/2, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
