package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/internal/deliver"
	"github.com/handpartners/pmfstudio/internal/feedback"
	"github.com/handpartners/pmfstudio/internal/outwriter"
	"github.com/handpartners/pmfstudio/internal/report"
)

// reportCmd runs the full assessment-to-delivery pipeline.
var reportCmd = &cobra.Command{
	Use:   "report [survey.json]",
	Short: "Score a survey and deliver a PDF assessment report.",
	Long: `Score a survey, generate the narrative assessment, render it to PDF
and deliver it.

The pipeline scores the survey, asks Gemini for a founder-facing narrative
(skipped without GEMINI_API_KEY or when the survey is too sparse to assess),
renders the report with pandoc, then uploads it to Google Drive and/or emails
it via Resend. Delivery channels degrade independently: a failed upload or
email is a warning, and the report is still produced.

Credentials come from the environment:
  GEMINI_API_KEY                - narrative generation
  GOOGLE_SERVICE_ACCOUNT_JSON   - Drive upload (with --upload)
  GOOGLE_DRIVE_SHARED_DRIVE_ID  - optional shared drive for uploads
  RESEND_API_KEY                - email delivery (with --email)

Examples:
  # Score and upload to Drive
  pmfstudio report survey.json --name "Acme"

  # Email the report as well
  pmfstudio report survey.json --email yes --recipient founder@acme.com

  # Render locally without any delivery
  pmfstudio report survey.json --upload no`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReport(rootCtx); err != nil {
			contract.LogFatal("Cannot deliver report", err)
		}
	},
}

func runReport(ctx context.Context) error {
	in, err := loadSurvey(cfg)
	if err != nil {
		return err
	}

	eval := core.NewEngine(cfg.Weights).Evaluate(in)
	recordEvaluationHistory(ctx, eval)

	svc := buildReportService(ctx)
	link, err := svc.Deliver(ctx, cfg.StartupName, in, eval)
	if err != nil {
		return err
	}

	if err := outwriter.WriteEvaluation(cfg.StartupName, eval, cfg); err != nil {
		return err
	}
	if link != "" {
		fmt.Printf("Report uploaded: %s\n", link)
	}
	return nil
}

// buildReportService wires narrative, upload and email collaborators from
// the validated config and the environment. Missing credentials disable the
// corresponding channel with a warning rather than failing the pipeline.
func buildReportService(ctx context.Context) *report.Service {
	var narrator contract.Narrator
	gen, err := feedback.NewGenerator(ctx, os.Getenv("GEMINI_API_KEY"), cfg.Report.GeminiModel)
	if err != nil {
		contract.LogWarn("narrative generation disabled", err)
	} else {
		narrator = gen
	}

	var uploader contract.Uploader
	if cfg.Report.Upload {
		up, err := deliver.NewDriveUploader(
			ctx,
			[]byte(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")),
			cfg.Report.DriveFolder,
			os.Getenv("GOOGLE_DRIVE_SHARED_DRIVE_ID"),
		)
		if err != nil {
			contract.LogWarn("drive upload disabled", err)
		} else {
			uploader = up
		}
	}

	var mailer contract.Mailer
	if cfg.Report.Email {
		m, err := deliver.NewResendMailer(os.Getenv("RESEND_API_KEY"), "")
		if err != nil {
			contract.LogWarn("email delivery disabled", err)
		} else {
			mailer = m
		}
	}

	return report.NewService(narrator, uploader, mailer, cfg.Report.PandocPath, cfg.Report.Recipient)
}
