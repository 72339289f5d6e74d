package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/internal/outwriter"
	"github.com/handpartners/pmfstudio/internal/store"
	"github.com/handpartners/pmfstudio/schema"
)

// scoreCmd scores a single survey and prints the gated result.
var scoreCmd = &cobra.Command{
	Use:   "score [survey.json]",
	Short: "Score a PMF survey and print the gated result.",
	Long: `Score founder survey responses and print the product-market fit assessment.

Reads a JSON object of survey responses from a file, or from stdin when no
path is given. Computes the five component scores, the weighted composite,
and the data quality estimate, then applies the display gate: sparse or
filler-heavy surveys get a capped score or no score at all.

Every scored survey is appended to the evaluation history unless the
backend is set to none.

Examples:
  # Score a survey from a file
  pmfstudio score survey.json --name "Acme"

  # Score from stdin with the component breakdown
  cat survey.json | pmfstudio score --explain

  # Machine-readable output
  pmfstudio score survey.json --output json --output-file result.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runScore(rootCtx); err != nil {
			contract.LogFatal("Cannot score survey", err)
		}
	},
}

func runScore(ctx context.Context) error {
	in, err := loadSurvey(cfg)
	if err != nil {
		return err
	}

	eval := core.NewEngine(cfg.Weights).Evaluate(in)
	recordEvaluationHistory(ctx, eval)

	return outwriter.WriteEvaluation(cfg.StartupName, eval, cfg)
}

// recordEvaluationHistory appends the evaluation to the history store.
// Storage failures are warnings, not errors: the score was still computed.
func recordEvaluationHistory(ctx context.Context, eval schema.Evaluation) {
	if cfg.Backend == schema.NoneBackend {
		return
	}

	s, err := store.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		contract.LogWarn("opening history store", err)
		return
	}
	defer func() { _ = s.Close() }()

	if _, err := s.RecordEvaluation(ctx, cfg.StartupName, eval); err != nil {
		contract.LogWarn("recording evaluation", err)
	}
}
