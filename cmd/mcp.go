package cmd

import (
	"github.com/spf13/cobra"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/internal/mcp"
	"github.com/handpartners/pmfstudio/internal/store"
	"github.com/handpartners/pmfstudio/schema"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the PMF scoring MCP server",
	Long:  `Launch an MCP server that allows AI agents to score surveys and assess data quality via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		engine := core.NewEngine(cfg.Weights)

		var history contract.HistoryStore
		if cfg.Backend != schema.NoneBackend {
			s, err := store.Open(cfg.Backend, cfg.DBConnect)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()
			history = s
		}

		return mcp.StartMCPServer(rootCtx, engine, history)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
