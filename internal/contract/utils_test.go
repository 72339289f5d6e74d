package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handpartners/pmfstudio/schema"
)

// TestGetStageColorLabel verifies that every stage string yields a label
// containing the original text.
func TestGetStageColorLabel(t *testing.T) {
	stages := []string{
		string(schema.StageProblemDiscovery),
		string(schema.StageProblemSolutionFit),
		string(schema.StagePMFInProgress),
		string(schema.StagePMFAchieved),
		"Insufficient data / cannot assess",
	}
	for _, stage := range stages {
		assert.Contains(t, GetStageColorLabel(stage), stage)
	}
}

// TestGetQualityColorLabel verifies that quality labels round-trip through coloring.
func TestGetQualityColorLabel(t *testing.T) {
	for label := range schema.ValidQualityLabels {
		assert.Contains(t, GetQualityColorLabel(label), string(label))
	}
}

// TestTruncateText covers boundary conditions around the ellipsis width.
func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		expected string
	}{
		{"short text unchanged", "abc", 10, "abc"},
		{"exact width unchanged", "abcdefghij", 10, "abcdefghij"},
		{"long text truncated", "abcdefghijk", 10, "abcdefg..."},
		{"tiny width unchanged", "abcdef", 3, "abcdef"},
		{"unicode runes", "ファウンダーインタビュー", 8, "ファウンダ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

// TestParseBoolString covers accepted and rejected boolean spellings.
func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestAuthError verifies the error string carries the code.
func TestAuthError(t *testing.T) {
	err := NewAuthError(AuthTokenExpired)
	assert.Equal(t, "auth: token_expired", err.Error())
	assert.Equal(t, AuthTokenExpired, err.Code)
}

// TestGetDBFilePath verifies the default database lives under the home directory.
func TestGetDBFilePath(t *testing.T) {
	path := GetDBFilePath()
	assert.Contains(t, path, ".pmfstudio.db")
}
