package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// naiveTimeFormat matches timestamps written without a zone offset.
// Such values are interpreted as UTC.
const naiveTimeFormat = "2006-01-02T15:04:05"

// CreateToken mints a new token with the given label, permission and lifetime in days.
func (s *Store) CreateToken(ctx context.Context, label, perm string, days int) (schema.TokenRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return schema.TokenRecord{}, fmt.Errorf("token storage requires a database backend")
	}

	if days <= 0 {
		days = contract.DefaultTokenDays
	}
	if perm == "" {
		perm = "score"
	}

	now := time.Now().UTC()
	rec := schema.TokenRecord{
		Token:     strings.ReplaceAll(uuid.New().String(), "-", ""),
		Label:     label,
		Perm:      perm,
		ExpiresAt: now.AddDate(0, 0, days).Format(time.RFC3339),
		CreatedAt: now.Format(time.RFC3339),
		Active:    true,
	}

	quotedTableName := quoteTableName(tokensTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (token, label, perm, expires_at, created_at, active) VALUES ($1, $2, $3, $4, $5, $6)`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (token, label, perm, expires_at, created_at, active) VALUES (?, ?, ?, ?, ?, ?)`, quotedTableName)
	}

	if _, err := s.db.ExecContext(ctx, query, rec.Token, rec.Label, rec.Perm, rec.ExpiresAt, rec.CreatedAt, rec.Active); err != nil {
		return schema.TokenRecord{}, fmt.Errorf("failed to insert token: %w", err)
	}

	return rec, nil
}

// ListTokens returns every token record, newest first.
func (s *Store) ListTokens(ctx context.Context) ([]schema.TokenRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(tokensTable, s.backend)
	query := fmt.Sprintf(`SELECT token, label, perm, expires_at, created_at, active FROM %s ORDER BY created_at DESC`, quotedTableName)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.TokenRecord
	for rows.Next() {
		var rec schema.TokenRecord
		if err := rows.Scan(&rec.Token, &rec.Label, &rec.Perm, &rec.ExpiresAt, &rec.CreatedAt, &rec.Active); err != nil {
			return nil, fmt.Errorf("failed to scan token row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RevokeToken marks a token inactive. Returns false if the token does not exist.
func (s *Store) RevokeToken(ctx context.Context, token string) (bool, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return false, nil
	}

	quotedTableName := quoteTableName(tokensTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET active = FALSE WHERE token = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET active = 0 WHERE token = ?`, quotedTableName)
	}

	result, err := s.db.ExecContext(ctx, query, token)
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ExtendToken pushes a token's expiry out by the given number of days from now.
// Returns false if the token does not exist.
func (s *Store) ExtendToken(ctx context.Context, token string, days int) (bool, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return false, nil
	}
	if days <= 0 {
		days = contract.DefaultTokenDays
	}

	newExpiry := time.Now().UTC().AddDate(0, 0, days).Format(time.RFC3339)

	quotedTableName := quoteTableName(tokensTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET expires_at = $1 WHERE token = $2`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET expires_at = ? WHERE token = ?`, quotedTableName)
	}

	result, err := s.db.ExecContext(ctx, query, newExpiry, token)
	if err != nil {
		return false, fmt.Errorf("failed to extend token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ValidateToken checks that a token exists, is active and is not expired.
// Failures are reported as *contract.AuthError so the HTTP layer can map
// them to stable error codes.
func (s *Store) ValidateToken(ctx context.Context, token string) (schema.TokenRecord, error) {
	if token == "" {
		return schema.TokenRecord{}, contract.NewAuthError(contract.AuthMissingToken)
	}
	if s.backend == schema.NoneBackend || s.db == nil {
		return schema.TokenRecord{}, contract.NewAuthError(contract.AuthTokenNotFound)
	}

	quotedTableName := quoteTableName(tokensTable, s.backend)
	query := fmt.Sprintf(`SELECT token, label, perm, expires_at, created_at, active FROM %s WHERE token = %s`,
		quotedTableName, placeholder(s.backend, 1))

	var rec schema.TokenRecord
	row := s.db.QueryRowContext(ctx, query, token)
	if err := row.Scan(&rec.Token, &rec.Label, &rec.Perm, &rec.ExpiresAt, &rec.CreatedAt, &rec.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schema.TokenRecord{}, contract.NewAuthError(contract.AuthTokenNotFound)
		}
		return schema.TokenRecord{}, fmt.Errorf("failed to look up token: %w", err)
	}

	if !rec.Active {
		return schema.TokenRecord{}, contract.NewAuthError(contract.AuthTokenRevoked)
	}
	if strings.TrimSpace(rec.ExpiresAt) == "" {
		return schema.TokenRecord{}, contract.NewAuthError(contract.AuthNoExpirySet)
	}

	expiry, err := parseExpiry(rec.ExpiresAt)
	if err != nil {
		return schema.TokenRecord{}, contract.NewAuthError(contract.AuthInvalidExpiryFormat)
	}
	if time.Now().UTC().After(expiry) {
		return schema.TokenRecord{}, contract.NewAuthError(contract.AuthTokenExpired)
	}

	return rec, nil
}

// parseExpiry accepts RFC3339 timestamps, falling back to naive timestamps
// interpreted as UTC.
func parseExpiry(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(naiveTimeFormat, value, time.UTC)
}
