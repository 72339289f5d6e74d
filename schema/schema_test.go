package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseSurvey checks that loose JSON shapes normalize to tagged values.
func TestParseSurvey(t *testing.T) {
	raw := map[string]any{
		"problem":          "manual invoice reconciliation eats hours",
		"interviews_count": float64(12),
		"target":           []any{"SMB", "Enterprise"},
		"nps":              "45",
		"notes":            nil,
	}

	in := ParseSurvey(raw)

	assert.Equal(t, KindText, in.Get("problem").Kind)
	assert.Equal(t, KindNumber, in.Get("interviews_count").Kind)
	assert.Equal(t, 12, in.Get("interviews_count").IntOr(0))
	assert.Equal(t, KindList, in.Get("target").Kind)
	assert.Equal(t, []string{"SMB", "Enterprise"}, in.Get("target").List)
	assert.Equal(t, KindEmpty, in.Get("notes").Kind)
	assert.Equal(t, KindEmpty, in.Get("missing").Kind)
}

// TestFieldValueAsNumber covers numeric readings of mixed field kinds.
func TestFieldValueAsNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    FieldValue
		expected float64
		ok       bool
	}{
		{"number", NumberValue(42.5), 42.5, true},
		{"numeric text", TextValue("0.45"), 0.45, true},
		{"padded numeric text", TextValue("  12 "), 12, true},
		{"prose text", TextValue("around ten"), 0, false},
		{"empty", FieldValue{}, 0, false},
		{"list", ListValue("a", "b"), 0, false},
		{"nan number", NumberValue(math.NaN()), 0, false},
		{"positive inf number", NumberValue(math.Inf(1)), 0, false},
		{"nan text", TextValue("NaN"), 0, false},
		{"inf text", TextValue("-Inf"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.AsNumber()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestFieldValueIsEmpty checks the whitespace-only text rule.
func TestFieldValueIsEmpty(t *testing.T) {
	assert.True(t, FieldValue{}.IsEmpty())
	assert.True(t, TextValue("   ").IsEmpty())
	assert.True(t, ListValue().IsEmpty())
	assert.False(t, TextValue("x").IsEmpty())
	assert.False(t, NumberValue(0).IsEmpty())
	assert.False(t, ListValue("SMB").IsEmpty())
}

// TestFieldValueIntOr checks truncation and fallback behavior.
func TestFieldValueIntOr(t *testing.T) {
	assert.Equal(t, 8, NumberValue(8.9).IntOr(0))
	assert.Equal(t, 3, TextValue("3").IntOr(0))
	assert.Equal(t, 7, TextValue("lots").IntOr(7))
	assert.Equal(t, 0, FieldValue{}.IntOr(0))
}
