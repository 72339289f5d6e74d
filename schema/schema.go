// Package schema has configs, models and shared types for all parts of pmfstudio.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldKind tags the shape of a single survey answer.
type FieldKind int

// All field kinds supported.
const (
	KindEmpty FieldKind = iota
	KindText
	KindNumber
	KindList
)

// FieldValue is a tagged variant for one survey answer. Surveys arrive as
// loose JSON where any field may be a string, a number, a list, or absent;
// values are normalized here at the input boundary so the scoring rules
// never touch untyped data.
type FieldValue struct {
	Kind   FieldKind
	Text   string
	Number float64
	List   []string
}

// TextValue wraps a string answer.
func TextValue(s string) FieldValue {
	return FieldValue{Kind: KindText, Text: s}
}

// NumberValue wraps a numeric answer.
func NumberValue(f float64) FieldValue {
	return FieldValue{Kind: KindNumber, Number: f}
}

// ListValue wraps a multi-select answer.
func ListValue(items ...string) FieldValue {
	return FieldValue{Kind: KindList, List: items}
}

// IsEmpty reports whether the field carries no usable content.
// Whitespace-only text counts as empty.
func (v FieldValue) IsEmpty() bool {
	switch v.Kind {
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	case KindList:
		return len(v.List) == 0
	case KindNumber:
		return false
	default:
		return true
	}
}

// AsText renders the field as a string for free-text evaluation.
// Numbers are formatted compactly; lists are joined with commas.
func (v FieldValue) AsText() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindList:
		return strings.Join(v.List, ", ")
	default:
		return ""
	}
}

// AsNumber attempts a numeric reading of the field. Text is parsed with
// strconv; anything unparseable reports ok=false so callers can take the
// weakest-evidence branch instead of failing. NaN and infinities also
// report ok=false: a non-finite value would poison every clamp and
// threshold comparison downstream.
func (v FieldValue) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		if !isFinite(v.Number) {
			return 0, false
		}
		return v.Number, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil || !isFinite(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IntOr returns the field as an integer, truncating fractional values,
// or def when the field has no numeric reading.
func (v FieldValue) IntOr(def int) int {
	f, ok := v.AsNumber()
	if !ok {
		return def
	}
	return int(f)
}

// SurveyInput is one submitted survey: a mapping from field name to value.
// All fields are optional and the structure is immutable after parsing.
type SurveyInput map[string]FieldValue

// Get returns the value for a field, or an empty FieldValue when absent.
func (in SurveyInput) Get(key string) FieldValue {
	return in[key]
}

// Has reports whether the field was submitted at all, even if empty.
func (in SurveyInput) Has(key string) bool {
	v, ok := in[key]
	return ok && v.Kind != KindEmpty
}

// ParseSurvey normalizes a decoded JSON body into a SurveyInput.
// Unrecognized value shapes degrade to their string rendering rather
// than being dropped.
func ParseSurvey(raw map[string]any) SurveyInput {
	in := make(SurveyInput, len(raw))
	for key, val := range raw {
		in[key] = parseFieldValue(val)
	}
	return in
}

func parseFieldValue(val any) FieldValue {
	switch v := val.(type) {
	case nil:
		return FieldValue{}
	case string:
		return TextValue(v)
	case float64:
		return NumberValue(v)
	case int:
		return NumberValue(float64(v))
	case int64:
		return NumberValue(float64(v))
	case bool:
		return TextValue(strconv.FormatBool(v))
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, parseFieldValue(item).AsText())
		}
		return ListValue(items...)
	case []string:
		return ListValue(v...)
	default:
		return TextValue(fmt.Sprintf("%v", v))
	}
}

// ComponentScores maps the five component keys to values in [0,100].
type ComponentScores map[ComponentKey]float64

// WeightTable maps the five component keys to non-negative weights
// summing to 1.0. Treated as immutable once loaded.
type WeightTable map[ComponentKey]float64

// PmfResult is the weighted composite score with its stage label,
// before any quality adjustment.
type PmfResult struct {
	Score float64 `json:"score"`
	Stage Stage   `json:"stage"`
}

// QualityAssessment estimates how substantive the free-text answers are.
// Derived independently from the survey, not from the PMF score.
type QualityAssessment struct {
	Score    int          `json:"score"`
	Label    QualityLabel `json:"label"`
	Answered int          `json:"answered"` // non-empty key fields
	Rich     int          `json:"rich"`     // answered fields with substantive length
	Garbage  int          `json:"garbage"`  // answered fields flagged as filler
	Fields   int          `json:"fields"`   // total key fields evaluated
}

// DisplayDecision is the final presentation artifact handed to the report
// renderer. Score is nil when the numeric display is suppressed.
type DisplayDecision struct {
	Mode  DisplayMode `json:"mode"`
	Score *float64    `json:"score"`
	Stage string      `json:"stage"`
	Note  string      `json:"note,omitempty"`
}

// Evaluation bundles everything produced by one scoring pass.
type Evaluation struct {
	Components ComponentScores   `json:"components"`
	Result     PmfResult         `json:"result"`
	Quality    QualityAssessment `json:"quality"`
	Display    DisplayDecision   `json:"display"`
}
