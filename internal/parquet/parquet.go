// Package parquet exports evaluation history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/handpartners/pmfstudio/schema"
)

// EvaluationRow represents one scored survey in the export.
// This struct maps to the pmfstudio_evaluations database table.
type EvaluationRow struct {
	// ID is the unique identifier for this evaluation
	ID int64 `parquet:"id,snappy"`

	// StartupName is the name the survey was submitted under
	StartupName string `parquet:"startup_name,snappy"`

	// Score is the raw composite PMF score before quality gating
	Score float64 `parquet:"pmf_score,snappy"`

	// Stage is the PMF stage derived from the composite score
	Stage string `parquet:"stage,snappy"`

	// QualityScore is the data-quality estimate for the survey
	QualityScore int32 `parquet:"quality_score,snappy"`

	// QualityLabel is the coarse quality bucket
	QualityLabel string `parquet:"quality_label,snappy"`

	// DisplayMode records how the score was presented
	DisplayMode string `parquet:"display_mode,snappy"`

	// Component scores, 0-100
	ProblemScore   float64 `parquet:"problem_score,snappy"`
	PersonaScore   float64 `parquet:"persona_score,snappy"`
	SolutionScore  float64 `parquet:"solution_score,snappy"`
	MarketScore    float64 `parquet:"market_score,snappy"`
	RetentionScore float64 `parquet:"retention_score,snappy"`

	// CreatedAt is when the evaluation was recorded
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ConvertEvaluationRecords converts database records into Parquet rows.
func ConvertEvaluationRecords(records []schema.EvaluationRecord) []EvaluationRow {
	rows := make([]EvaluationRow, len(records))
	for i, rec := range records {
		rows[i] = EvaluationRow{
			ID:             rec.ID,
			StartupName:    rec.StartupName,
			Score:          rec.Score,
			Stage:          rec.Stage,
			QualityScore:   int32(rec.QualityScore),
			QualityLabel:   rec.QualityLabel,
			DisplayMode:    rec.DisplayMode,
			ProblemScore:   rec.ProblemScore,
			PersonaScore:   rec.PersonaScore,
			SolutionScore:  rec.SolutionScore,
			MarketScore:    rec.MarketScore,
			RetentionScore: rec.RetentionScore,
			CreatedAt:      rec.CreatedAt,
		}
	}
	return rows
}

// WriteEvaluationsParquet writes evaluation rows to a Parquet file.
func WriteEvaluationsParquet(data []EvaluationRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the EvaluationRow struct tags
	writer := parquet.NewGenericWriter[EvaluationRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
