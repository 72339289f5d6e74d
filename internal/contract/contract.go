// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/handpartners/pmfstudio/schema"
)

// Auth error codes returned by token validation. These strings are part of
// the HTTP API surface and must stay stable.
const (
	AuthMissingToken        = "missing_token"
	AuthTokenNotFound       = "token_not_found"
	AuthTokenRevoked        = "token_revoked"
	AuthNoExpirySet         = "no_expiry_set"
	AuthInvalidExpiryFormat = "invalid_expiry_format"
	AuthTokenExpired        = "token_expired"
)

// AuthError describes why a token failed validation.
type AuthError struct {
	Code string
}

func (e *AuthError) Error() string {
	return "auth: " + e.Code
}

// NewAuthError returns an AuthError with the given code.
func NewAuthError(code string) *AuthError {
	return &AuthError{Code: code}
}

// TokenStore defines the interface for API token persistence.
// This allows the HTTP layer to be tested without a real database.
type TokenStore interface {
	// CreateToken mints a new token with the given label, permission and lifetime in days.
	CreateToken(ctx context.Context, label, perm string, days int) (schema.TokenRecord, error)

	// ListTokens returns every token record, active or not.
	ListTokens(ctx context.Context) ([]schema.TokenRecord, error)

	// RevokeToken marks a token inactive. Returns false if the token does not exist.
	RevokeToken(ctx context.Context, token string) (bool, error)

	// ExtendToken pushes a token's expiry out by the given number of days
	// from now. Returns false if the token does not exist.
	ExtendToken(ctx context.Context, token string, days int) (bool, error)

	// ValidateToken checks that a token exists, is active and is not expired.
	// Failures are reported as *AuthError.
	ValidateToken(ctx context.Context, token string) (schema.TokenRecord, error)

	// Close closes the underlying connection.
	Close() error
}

// HistoryStore defines the interface for recording completed evaluations.
type HistoryStore interface {
	// RecordEvaluation stores one evaluation and returns its row ID.
	RecordEvaluation(ctx context.Context, startupName string, eval schema.Evaluation) (int64, error)

	// ListEvaluations returns the most recent evaluations, newest first.
	ListEvaluations(ctx context.Context, limit int) ([]schema.EvaluationRecord, error)

	// AllEvaluations returns every stored evaluation, oldest first.
	AllEvaluations(ctx context.Context) ([]schema.EvaluationRecord, error)

	// ClearEvaluations deletes all stored evaluations and returns the count removed.
	ClearEvaluations(ctx context.Context) (int64, error)

	// Close closes the underlying connection.
	Close() error
}

// Narrator produces the qualitative sections of a report from an evaluation.
// Implementations may call a remote model; failures should be returned so
// callers can degrade to a report without narrative.
type Narrator interface {
	Narrative(ctx context.Context, startupName string, in schema.SurveyInput, eval schema.Evaluation) (string, error)
}

// Uploader stores a rendered report and returns a shareable link.
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) (string, error)
}

// Mailer sends a rendered report to a recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string, attachmentName string, attachment []byte) error
}
