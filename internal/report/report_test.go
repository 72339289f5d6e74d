package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/schema"
)

func strongEvaluation(t *testing.T) (schema.SurveyInput, schema.Evaluation) {
	t.Helper()
	long := strings.Repeat("we heard this pain point in every founder interview we ran ", 2)
	in := schema.ParseSurvey(map[string]any{
		"problem":                   long,
		"problem_intensity":         long,
		"current_alternatives":      long,
		"willingness_to_pay":        long,
		"target":                    []any{"SMB ops leads", "Agency owners"},
		"beachhead_customer":        long,
		"customer_access":           long,
		"solution":                  long,
		"usp":                       long,
		"mvp_status":                long,
		"pricing_model":             long,
		"retention_signal":          long,
		"key_feedback":              long,
		"market_size":               long,
		"channels":                  long,
		"pmf_pull_signal":           long,
		"interviews_count":          12,
		"very_disappointed_percent": 55,
		"paid_customers":            30,
		"day7_retention":            0.45,
	})
	return in, core.NewEngine(nil).Evaluate(in)
}

// TestBuildReportMarkdown verifies the overview section and narrative placement.
func TestBuildReportMarkdown(t *testing.T) {
	_, eval := strongEvaluation(t)
	narrative := "## Problem & Persona\n\nClear, repeated pain.\n\n## Recommendations & Next Steps\n\nScale outbound."

	md := BuildReportMarkdown("Acme", eval, narrative, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, md, "# PMF Assessment Report: Acme")
	assert.Contains(t, md, "*Generated August 29, 2026*")
	assert.Contains(t, md, "**PMF Score:** 76.8 / 100")
	assert.Contains(t, md, "| Problem | 90 |")
	assert.Contains(t, md, "| Retention | 45 |")
	assert.Contains(t, md, "## Problem & Persona")
	assert.Contains(t, md, "Scale outbound.")
	assert.NotContains(t, md, "Qualitative analysis was not generated")
}

// TestBuildReportMarkdownFallback verifies the report without narrative and
// without a displayable score.
func TestBuildReportMarkdownFallback(t *testing.T) {
	in := schema.ParseSurvey(map[string]any{"problem": "asdf"})
	eval := core.NewEngine(nil).Evaluate(in)

	md := BuildReportMarkdown("", eval, "", time.Now())

	assert.Contains(t, md, "# PMF Assessment Report\n")
	assert.Contains(t, md, "**PMF Score:** not assessable")
	assert.Contains(t, md, "Qualitative analysis was not generated")
	assert.Contains(t, md, "## Recommendations & Next Steps")
}

// TestReportFilename verifies name sanitization.
func TestReportFilename(t *testing.T) {
	at := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "PMF_Report_Acme_Corp_2026-08-29.pdf", ReportFilename("Acme Corp", at))
	assert.Equal(t, "PMF_Report_startup_2026-08-29.pdf", ReportFilename("  ", at))
	assert.Equal(t, "PMF_Report_a_b_c_2026-08-29.pdf", ReportFilename("a/b:c", at))
}

// fakeNarrator returns fixed text or an error.
type fakeNarrator struct {
	text string
	err  error
}

func (f *fakeNarrator) Narrative(ctx context.Context, startupName string, in schema.SurveyInput, eval schema.Evaluation) (string, error) {
	return f.text, f.err
}

// fakeUploader captures the uploaded file.
type fakeUploader struct {
	filename string
	size     int
	link     string
	err      error
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	f.filename = filename
	f.size = len(content)
	return f.link, f.err
}

// fakeMailer captures the sent message.
type fakeMailer struct {
	to      string
	subject string
	body    string
	sent    bool
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string, attachmentName string, attachment []byte) error {
	f.to = to
	f.subject = subject
	f.body = body
	f.sent = true
	return nil
}

func fakeRender(ctx context.Context, markdown string) ([]byte, error) {
	return []byte("%PDF " + markdown[:20]), nil
}

// TestServiceDeliver verifies the full pipeline with all channels configured.
func TestServiceDeliver(t *testing.T) {
	in, eval := strongEvaluation(t)
	uploader := &fakeUploader{link: "https://drive.example/x"}
	mailer := &fakeMailer{}
	svc := &Service{
		Narrator:  &fakeNarrator{text: "## Problem & Persona\n\nStrong."},
		Uploader:  uploader,
		Mailer:    mailer,
		Render:    fakeRender,
		Recipient: "founder@example.com",
	}

	link, err := svc.Deliver(context.Background(), "Acme", in, eval)
	require.NoError(t, err)
	assert.Equal(t, "https://drive.example/x", link)
	assert.Contains(t, uploader.filename, "PMF_Report_Acme_")
	assert.Greater(t, uploader.size, 0)
	assert.True(t, mailer.sent)
	assert.Equal(t, "founder@example.com", mailer.to)
	assert.Contains(t, mailer.subject, "Acme")
	assert.Contains(t, mailer.body, "https://drive.example/x")
}

// TestServiceDeliverDegrades verifies narrator and uploader failures do not
// abort delivery.
func TestServiceDeliverDegrades(t *testing.T) {
	in, eval := strongEvaluation(t)
	svc := &Service{
		Narrator: &fakeNarrator{err: assert.AnError},
		Uploader: &fakeUploader{err: assert.AnError},
		Render:   fakeRender,
	}

	link, err := svc.Deliver(context.Background(), "Acme", in, eval)
	require.NoError(t, err)
	assert.Empty(t, link)
}

// TestServiceDeliverRenderFailure verifies rendering failures abort delivery.
func TestServiceDeliverRenderFailure(t *testing.T) {
	in, eval := strongEvaluation(t)
	svc := &Service{
		Render: func(ctx context.Context, markdown string) ([]byte, error) {
			return nil, assert.AnError
		},
	}

	_, err := svc.Deliver(context.Background(), "Acme", in, eval)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering report")
}
