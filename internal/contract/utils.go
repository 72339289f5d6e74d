package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/handpartners/pmfstudio/schema"
)

// Color variables for console output.
var (
	AchievedColor   = color.New(color.FgGreen, color.Bold) // achievedColor marks the PMF Achieved stage.
	InProgressColor = color.New(color.FgCyan, color.Bold)  // inProgressColor marks active product/market fit work.
	FitColor        = color.New(color.FgYellow)            // fitColor marks problem/solution fit, not bold.
	DiscoveryColor  = color.New(color.FgRed)               // discoveryColor marks early discovery / weak signal.
)

// GetStageColorLabel returns a colored stage label for console output (table).
// Reference and invalid display modes use the weak-signal color since their
// stage strings are caveats rather than pipeline stages.
func GetStageColorLabel(stage string) string {
	switch stage {
	case string(schema.StagePMFAchieved):
		return AchievedColor.Sprint(stage)
	case string(schema.StagePMFInProgress):
		return InProgressColor.Sprint(stage)
	case string(schema.StageProblemSolutionFit):
		return FitColor.Sprint(stage)
	default:
		return DiscoveryColor.Sprint(stage)
	}
}

// GetQualityColorLabel returns a colored quality label for console output.
func GetQualityColorLabel(label schema.QualityLabel) string {
	switch label {
	case schema.QualityHigh:
		return AchievedColor.Sprint(string(label))
	case schema.QualityMedium:
		return FitColor.Sprint(string(label))
	default:
		return DiscoveryColor.Sprint(string(label))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the default SQLite DB file.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pmfstudio.db"
	}
	return filepath.Join(homeDir, ".pmfstudio.db")
}

// TruncateText truncates a text answer to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both content and the "..."
// suffix. Without this check, small maxWidth values could cause slice bounds
// errors in the truncation calculation.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
