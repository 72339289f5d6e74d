package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/internal/outwriter"
	"github.com/handpartners/pmfstudio/internal/store"
)

// tokenCmd focused on API token administration.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API access tokens",
	Long: `Manage the tokens that protect the scoring API when --auth is enabled.

Tokens are stored in the configured database backend with a label, a
permission scope, and an expiry. A token presented to the API is rejected
when it is unknown, revoked, expired, or has a malformed expiry.

Subcommands:
  create - mint a new token
  list   - show all tokens
  revoke - deactivate a token
  extend - push out a token's expiry

Examples:
  # Mint a 30-day token for a partner integration
  pmfstudio token create --label "partner-x" --days 30

  # Deactivate a leaked token
  pmfstudio token revoke 3f2a...`,
}

// tokenCreateCmd mints a new API token.
var tokenCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Mint a new API token",
	PreRunE: adminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runTokenCreate(rootCtx); err != nil {
			contract.LogFatal("Cannot create token", err)
		}
	},
}

// tokenListCmd shows all tokens.
var tokenListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all API tokens",
	PreRunE: adminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runTokenList(rootCtx); err != nil {
			contract.LogFatal("Cannot list tokens", err)
		}
	},
}

// tokenRevokeCmd deactivates a token.
var tokenRevokeCmd = &cobra.Command{
	Use:     "revoke <token>",
	Short:   "Deactivate an API token",
	Args:    cobra.ExactArgs(1),
	PreRunE: adminSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runTokenRevoke(rootCtx, args[0]); err != nil {
			contract.LogFatal("Cannot revoke token", err)
		}
	},
}

// tokenExtendCmd pushes out a token's expiry.
var tokenExtendCmd = &cobra.Command{
	Use:     "extend <token>",
	Short:   "Extend an API token's expiry",
	Args:    cobra.ExactArgs(1),
	PreRunE: adminSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runTokenExtend(rootCtx, args[0]); err != nil {
			contract.LogFatal("Cannot extend token", err)
		}
	},
}

func runTokenCreate(ctx context.Context) error {
	s, err := store.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	rec, err := s.CreateToken(ctx, input.Label, input.Perm, input.Days)
	if err != nil {
		return err
	}

	fmt.Printf("Token created: %s\n", rec.Token)
	fmt.Printf("  Label:   %s\n", rec.Label)
	fmt.Printf("  Perm:    %s\n", rec.Perm)
	fmt.Printf("  Expires: %s\n", rec.ExpiresAt)
	return nil
}

func runTokenList(ctx context.Context) error {
	s, err := store.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	records, err := s.ListTokens(ctx)
	if err != nil {
		return err
	}
	return outwriter.WriteTokens(records, cfg)
}

func runTokenRevoke(ctx context.Context, token string) error {
	s, err := store.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ok, err := s.RevokeToken(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("token not found")
	}
	fmt.Println("Token revoked.")
	return nil
}

func runTokenExtend(ctx context.Context, token string) error {
	s, err := store.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ok, err := s.ExtendToken(ctx, token, input.Days)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("token not found")
	}
	fmt.Printf("Token extended by %d days.\n", input.Days)
	return nil
}
