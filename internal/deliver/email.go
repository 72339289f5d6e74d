// Package deliver sends rendered reports out via email and Google Drive.
package deliver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/handpartners/pmfstudio/internal/contract"
)

// resendEndpoint is the Resend transactional email API.
const resendEndpoint = "https://api.resend.com/emails"

// defaultFromAddress is used when no sender is configured.
const defaultFromAddress = "PMF Lab <reports@pmflab.handpartners.com>"

// emailTimeout bounds one delivery attempt.
const emailTimeout = 20 * time.Second

// ResendMailer implements contract.Mailer on top of the Resend HTTP API.
type ResendMailer struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

var _ contract.Mailer = &ResendMailer{} // Compile-time check

// NewResendMailer creates a mailer using the given API key. An empty from
// address falls back to the default sender.
func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is not set")
	}
	if from == "" {
		from = defaultFromAddress
	}
	return &ResendMailer{
		apiKey:     apiKey,
		from:       from,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: emailTimeout},
	}, nil
}

// resendAttachment is one base64-encoded attachment in a Resend payload.
type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// resendPayload is the request body for the Resend send-email endpoint.
type resendPayload struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// Send delivers the report body with an optional attachment.
func (m *ResendMailer) Send(ctx context.Context, to, subject, body string, attachmentName string, attachment []byte) error {
	payload := resendPayload{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	}
	if len(attachment) > 0 {
		payload.Attachments = []resendAttachment{{
			Filename: attachmentName,
			Content:  base64.StdEncoding.EncodeToString(attachment),
		}}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email delivery failed with status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
