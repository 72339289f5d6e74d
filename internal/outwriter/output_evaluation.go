package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// componentLabels maps component keys to table row labels.
var componentLabels = map[schema.ComponentKey]string{
	schema.ComponentProblem:   "Problem",
	schema.ComponentPersona:   "Persona",
	schema.ComponentSolution:  "Solution",
	schema.ComponentMarket:    "Market",
	schema.ComponentRetention: "Retention",
}

// evaluationDocument is the JSON shape for a single scored survey.
type evaluationDocument struct {
	StartupName string            `json:"startup_name,omitempty"`
	Evaluation  schema.Evaluation `json:"evaluation"`
}

// WriteEvaluation outputs one scored survey, dispatching on the output format.
func WriteEvaluation(startupName string, eval schema.Evaluation, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, evaluationDocument{StartupName: startupName, Evaluation: eval})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationCSV(w, startupName, eval)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationTable(w, startupName, eval, cfg)
		}, "Wrote table")
	}
}

// writeEvaluationTable generates and writes the human-readable result.
func writeEvaluationTable(w io.Writer, startupName string, eval schema.Evaluation, cfg *contract.Config) error {
	if startupName != "" {
		if _, err := fmt.Fprintf(w, "Startup: %s\n", startupName); err != nil {
			return err
		}
	}

	if cfg.Explain {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Component", "Score"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, key := range schema.AllComponentKeys {
			data = append(data, []string{
				componentLabels[key],
				fmtScore(eval.Components[key]),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	score := "n/a"
	if eval.Display.Score != nil {
		score = fmtScore(*eval.Display.Score)
	}
	stage := eval.Display.Stage
	quality := fmt.Sprintf("%d (%s)", eval.Quality.Score, eval.Quality.Label)
	if cfg.UseColors {
		stage = contract.GetStageColorLabel(stage)
		quality = fmt.Sprintf("%d (%s)", eval.Quality.Score, contract.GetQualityColorLabel(eval.Quality.Label))
	}

	if _, err := fmt.Fprintf(w, "PMF Score: %s\nStage: %s\nData Quality: %s\n", score, stage, quality); err != nil {
		return err
	}
	if eval.Display.Note != "" {
		if _, err := fmt.Fprintf(w, "Note: %s\n", eval.Display.Note); err != nil {
			return err
		}
	}
	return nil
}

// evaluationCSVHeader is the column order for CSV evaluation output.
var evaluationCSVHeader = []string{
	"startup", "pmf_score", "stage", "quality_score", "quality_label", "display_mode",
	"problem_score", "persona_score", "solution_score", "market_score", "retention_score",
}

// writeEvaluationCSV writes one evaluation as a single CSV row.
func writeEvaluationCSV(w io.Writer, startupName string, eval schema.Evaluation) error {
	return writeCSVWithHeader(w, evaluationCSVHeader, func(csvWriter *csv.Writer) error {
		score := ""
		if eval.Display.Score != nil {
			score = fmtScore(*eval.Display.Score)
		}
		return csvWriter.Write([]string{
			startupName,
			score,
			eval.Display.Stage,
			strconv.Itoa(eval.Quality.Score),
			string(eval.Quality.Label),
			string(eval.Display.Mode),
			fmtScore(eval.Components[schema.ComponentProblem]),
			fmtScore(eval.Components[schema.ComponentPersona]),
			fmtScore(eval.Components[schema.ComponentSolution]),
			fmtScore(eval.Components[schema.ComponentMarket]),
			fmtScore(eval.Components[schema.ComponentRetention]),
		})
	})
}
