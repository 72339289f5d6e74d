// Package cmd defines the command-line interface for pmfstudio.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the token subcommands to the parent token command
	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
	tokenCmd.AddCommand(tokenExtendCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("name", "n", "", "Name of the startup the survey belongs to")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultHistoryLimit, "Number of history results to display")
	rootCmd.PersistentFlags().String("backend", string(schema.SQLiteBackend), "Storage backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("weights-file", "", "Path to a JSON component weight table (renormalized; falls back to defaults when unreadable)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("explain", false, "Print the per-component score breakdown")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address for the HTTP API")
	serveCmd.Flags().String("auth", "no", "Require API tokens on scoring endpoints (yes/no)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("recipient", "", "Email address to deliver the report to")
	reportCmd.Flags().String("drive-folder", contract.DefaultDriveFolder, "Google Drive folder name for uploaded reports")
	reportCmd.Flags().String("model", contract.DefaultGeminiModel, "Gemini model for narrative generation")
	reportCmd.Flags().String("pandoc", "pandoc", "Path to the pandoc binary")
	reportCmd.Flags().String("upload", "yes", "Upload the rendered PDF to Google Drive (yes/no)")
	reportCmd.Flags().String("email", "no", "Email the rendered PDF via Resend (yes/no)")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of the token subcommands to Viper
	tokenCreateCmd.Flags().String("label", "", "Human-readable label for the token")
	tokenCreateCmd.Flags().String("perm", "score", "Permission scope for the token")
	tokenCreateCmd.Flags().Int("days", contract.DefaultTokenDays, "Number of days until the token expires")
	if err := viper.BindPFlags(tokenCreateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding token create flags", err)
	}
	tokenExtendCmd.Flags().Int("days", contract.DefaultTokenDays, "Number of days to extend the token by")
	if err := viper.BindPFlags(tokenExtendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding token extend flags", err)
	}
}
