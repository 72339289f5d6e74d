package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// metricsCmd displays the scoring methodology.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the component weights and display policy",
	Long: `Show how the composite PMF score is computed and gated.

Displays the active component weight table (defaults merged with any custom
weights from .pmfstudio.yaml), the stage buckets, and the quality-based
display policy. No survey is scored - this is purely informational.

Examples:
  # Show the default methodology
  pmfstudio metrics

  # Validate custom weights from a config file
  pmfstudio metrics --config .pmfstudio.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runMetrics(); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}

// componentNames maps component keys to display names.
var componentNames = map[schema.ComponentKey]string{
	schema.ComponentProblem:   "Problem",
	schema.ComponentPersona:   "Persona",
	schema.ComponentSolution:  "Solution",
	schema.ComponentMarket:    "Market",
	schema.ComponentRetention: "Retention",
}

func runMetrics() error {
	weights := core.NewEngine(cfg.Weights).Weights()

	fmt.Println("Composite = sum(component score * weight), rounded to 1 decimal.")
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Component", "Weight"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, key := range schema.AllComponentKeys {
		data = append(data, []string{componentNames[key], fmt.Sprintf("%.2f", weights[key])})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Stage buckets:")
	fmt.Printf("  <= 40: %s\n", schema.StageProblemDiscovery)
	fmt.Printf("  <= 60: %s\n", schema.StageProblemSolutionFit)
	fmt.Printf("  <= 80: %s\n", schema.StagePMFInProgress)
	fmt.Printf("  >  80: %s\n", schema.StagePMFAchieved)
	fmt.Println()
	fmt.Println("Display policy (by data quality):")
	fmt.Println("  quality < 20: no score shown, survey too sparse to assess")
	fmt.Println("  quality < 40: score capped at 20.0, reference only")
	fmt.Println("  quality < 60: score capped at 35.0, reference only")
	fmt.Println("  quality >= 60: full score shown")
	return nil
}
