package report

import (
	"context"
	"fmt"
	"time"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// Renderer turns a markdown document into PDF bytes. It exists so tests can
// run the delivery pipeline without a pandoc binary.
type Renderer func(ctx context.Context, markdown string) ([]byte, error)

// Service orchestrates narrative generation, PDF rendering and delivery.
// Narrator, Uploader and Mailer are all optional: a missing or failing
// narrator degrades to a report without narrative, and a failing uploader
// or mailer degrades to a report without that channel. Only rendering
// failures abort delivery.
type Service struct {
	Narrator  contract.Narrator
	Uploader  contract.Uploader
	Mailer    contract.Mailer
	Render    Renderer
	Recipient string
}

// NewService wires a delivery service that renders with pandoc.
func NewService(narrator contract.Narrator, uploader contract.Uploader, mailer contract.Mailer, pandocPath, recipient string) *Service {
	return &Service{
		Narrator: narrator,
		Uploader: uploader,
		Mailer:   mailer,
		Render: func(ctx context.Context, markdown string) ([]byte, error) {
			return RenderPDF(ctx, pandocPath, markdown)
		},
		Recipient: recipient,
	}
}

// Deliver renders the full report and sends it through the configured
// channels. Returns the drive link when upload succeeded, otherwise "".
func (s *Service) Deliver(ctx context.Context, startupName string, in schema.SurveyInput, eval schema.Evaluation) (string, error) {
	narrative := ""
	if s.Narrator != nil {
		text, err := s.Narrator.Narrative(ctx, startupName, in, eval)
		if err != nil {
			contract.LogWarn("generating narrative", err)
		} else {
			narrative = text
		}
	}

	now := time.Now().UTC()
	markdown := BuildReportMarkdown(startupName, eval, narrative, now)

	pdf, err := s.Render(ctx, markdown)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	filename := ReportFilename(startupName, now)

	link := ""
	if s.Uploader != nil {
		uploaded, err := s.Uploader.Upload(ctx, filename, pdf)
		if err != nil {
			contract.LogWarn("uploading report", err)
		} else {
			link = uploaded
		}
	}

	if s.Mailer != nil && s.Recipient != "" {
		subject := "Your PMF assessment report"
		if startupName != "" {
			subject = fmt.Sprintf("PMF assessment report for %s", startupName)
		}
		body := emailBody(startupName, eval, link)
		if err := s.Mailer.Send(ctx, s.Recipient, subject, body, filename, pdf); err != nil {
			contract.LogWarn("emailing report", err)
		}
	}

	return link, nil
}

// emailBody builds the short HTML summary that accompanies the attachment.
func emailBody(startupName string, eval schema.Evaluation, link string) string {
	greeting := "Hi,"
	if startupName != "" {
		greeting = fmt.Sprintf("Hi %s team,", startupName)
	}
	score := "not assessable"
	if eval.Display.Score != nil {
		score = fmt.Sprintf("%.1f / 100", *eval.Display.Score)
	}
	body := fmt.Sprintf(
		"<p>%s</p><p>Your PMF assessment is attached.</p><p><b>Score:</b> %s<br><b>Stage:</b> %s</p>",
		greeting, score, eval.Display.Stage,
	)
	if link != "" {
		body += fmt.Sprintf(`<p>You can also view the report online: <a href="%s">%s</a></p>`, link, link)
	}
	return body
}
