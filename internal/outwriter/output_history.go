package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// WriteHistory outputs stored evaluations, dispatching on the output format.
// Parquet export is handled by the caller since it writes files directly.
func WriteHistory(records []schema.EvaluationRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryCSV(w, records)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, cfg)
		}, "Wrote table")
	}
}

// writeHistoryTable generates and writes the human-readable history table.
func writeHistoryTable(w io.Writer, records []schema.EvaluationRecord, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Startup", "Score", "Stage", "Quality", "Recorded"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxNameWidth := GetMaxTableTextWidth(cfg)

	var data [][]string
	for i, rec := range records {
		stage := rec.Stage
		if cfg.UseColors {
			stage = contract.GetStageColorLabel(stage)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(rec.StartupName, maxNameWidth),
			fmtScore(rec.Score),
			stage,
			strconv.Itoa(rec.QualityScore),
			rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// historyCSVHeader is the column order for CSV history output.
var historyCSVHeader = []string{
	"id", "startup", "pmf_score", "stage", "quality_score", "quality_label", "display_mode",
	"problem_score", "persona_score", "solution_score", "market_score", "retention_score",
	"created_at",
}

// writeHistoryCSV writes evaluation records in CSV format.
func writeHistoryCSV(w io.Writer, records []schema.EvaluationRecord) error {
	return writeCSVWithHeader(w, historyCSVHeader, func(csvWriter *csv.Writer) error {
		for _, rec := range records {
			row := []string{
				strconv.FormatInt(rec.ID, 10),
				rec.StartupName,
				fmtScore(rec.Score),
				rec.Stage,
				strconv.Itoa(rec.QualityScore),
				rec.QualityLabel,
				rec.DisplayMode,
				fmtScore(rec.ProblemScore),
				fmtScore(rec.PersonaScore),
				fmtScore(rec.SolutionScore),
				fmtScore(rec.MarketScore),
				fmtScore(rec.RetentionScore),
				rec.CreatedAt.Format(contract.DateTimeFormat),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
