package deliver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResendMailerSend verifies payload shape, auth header and attachment encoding.
func TestResendMailerSend(t *testing.T) {
	var got resendPayload
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m, err := NewResendMailer("re_test_key", "")
	require.NoError(t, err)
	m.endpoint = server.URL

	pdf := []byte("%PDF-1.4 fake")
	err = m.Send(context.Background(), "founder@example.com", "Your PMF report", "<p>attached</p>", "report.pdf", pdf)
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, defaultFromAddress, got.From)
	assert.Equal(t, []string{"founder@example.com"}, got.To)
	assert.Equal(t, "Your PMF report", got.Subject)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "report.pdf", got.Attachments[0].Filename)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pdf), got.Attachments[0].Content)
}

// TestResendMailerSendNoAttachment verifies the attachments key is omitted.
func TestResendMailerSendNoAttachment(t *testing.T) {
	var raw map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m, err := NewResendMailer("re_test_key", "PMF Lab <custom@example.com>")
	require.NoError(t, err)
	m.endpoint = server.URL

	require.NoError(t, m.Send(context.Background(), "founder@example.com", "subject", "body", "", nil))
	assert.NotContains(t, raw, "attachments")
	assert.Equal(t, "PMF Lab <custom@example.com>", raw["from"])
}

// TestResendMailerSendFailure verifies non-2xx responses surface the body.
func TestResendMailerSendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid recipient"}`))
	}))
	defer server.Close()

	m, err := NewResendMailer("re_test_key", "")
	require.NoError(t, err)
	m.endpoint = server.URL

	err = m.Send(context.Background(), "not-an-address", "subject", "body", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "invalid recipient")
}

// TestNewResendMailerRequiresKey verifies the missing-key error.
func TestNewResendMailerRequiresKey(t *testing.T) {
	_, err := NewResendMailer("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}
