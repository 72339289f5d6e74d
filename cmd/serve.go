package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/internal/httpapi"
	"github.com/handpartners/pmfstudio/internal/store"
	"github.com/handpartners/pmfstudio/schema"
)

// serveCmd starts the HTTP scoring API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PMF scoring HTTP API.",
	Long: `Run the scoring service as an HTTP API.

Endpoints:
  GET  /        - service info
  GET  /health  - liveness probe
  POST /score   - score a survey, returns the gated result
  POST /report  - score, render and deliver the PDF report

With --auth yes, the scoring endpoints require an API token, passed as a
Bearer header or a ?token= query parameter. Tokens are managed with the
'pmfstudio token' subcommands and need a database backend.

Examples:
  # Local development server
  pmfstudio serve --addr :8080 --backend none

  # Token-protected with history tracking
  pmfstudio serve --auth yes --backend sqlite`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runServe(rootCtx)
	},
}

func runServe(ctx context.Context) error {
	engine := core.NewEngine(cfg.Weights)

	var tokens contract.TokenStore
	var history contract.HistoryStore
	if cfg.Backend != schema.NoneBackend {
		s, err := store.Open(cfg.Backend, cfg.DBConnect)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		tokens = s
		history = s
	}

	handler := httpapi.NewHandler(engine, tokens, history, buildReportService(ctx), version, cfg.AuthEnabled)
	srv := httpapi.NewServer(cfg.ServeAddr, handler)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return srv.Stop()
	}
}
