package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/internal/outwriter"
	"github.com/handpartners/pmfstudio/internal/parquet"
	"github.com/handpartners/pmfstudio/internal/store"
)

// historyCmd focused on evaluation history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage scored survey history and exports",
	Long: `Manage the append-only history of scored surveys.

Every survey scored via the CLI, the HTTP API, or the MCP server is recorded
with its composite score, stage, component breakdown and data quality, unless
the backend is set to none.

Subcommands:
  list   - show recent evaluations
  export - export all evaluations to Parquet for analytics
  clear  - remove all recorded evaluations

Examples:
  # Show the 10 most recent evaluations
  pmfstudio history list --limit 10

  # Export for analysis in pandas/DuckDB
  pmfstudio history export --output-file evaluations.parquet`,
}

// historyListCmd shows recent evaluations.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show recent evaluations, newest first",
	PreRunE: adminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runHistoryList(rootCtx); err != nil {
			contract.LogFatal("Cannot list history", err)
		}
	},
}

// historyClearCmd removes all recorded evaluations.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded evaluations",
	Long: `Delete the entire evaluation history.

WARNING: This action cannot be undone. Consider exporting data first:

  pmfstudio history export --output-file backup.parquet
  pmfstudio history clear`,
	PreRunE: adminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runHistoryClear(rootCtx); err != nil {
			contract.LogFatal("Cannot clear history", err)
		}
	},
}

// historyExportCmd exports evaluations to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export all evaluations to Parquet",
	PreRunE: adminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runHistoryExport(rootCtx); err != nil {
			contract.LogFatal("Cannot export history", err)
		}
	},
}

func runHistoryList(ctx context.Context) error {
	s, err := store.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	records, err := s.ListEvaluations(ctx, cfg.HistoryLimit)
	if err != nil {
		return err
	}
	return outwriter.WriteHistory(records, cfg)
}

func runHistoryClear(ctx context.Context) error {
	s, err := store.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	n, err := s.ClearEvaluations(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Cleared %d evaluations.\n", n)
	return nil
}

func runHistoryExport(ctx context.Context) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet export")
	}

	s, err := store.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	records, err := s.AllEvaluations(ctx)
	if err != nil {
		return err
	}

	rows := parquet.ConvertEvaluationRecords(records)
	if err := parquet.WriteEvaluationsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("Exported %d evaluations to %s\n", len(rows), cfg.OutputFile)
	return nil
}
