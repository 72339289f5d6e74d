package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pmfstudio_test.db")
	s, err := Open(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleEvaluation(score float64, quality int) schema.Evaluation {
	stage := schema.StageForScore(score)
	shown := score
	return schema.Evaluation{
		Components: schema.ComponentScores{
			schema.ComponentProblem:   70,
			schema.ComponentPersona:   65,
			schema.ComponentSolution:  75,
			schema.ComponentMarket:    70,
			schema.ComponentRetention: 45,
		},
		Result: schema.PmfResult{Score: score, Stage: stage},
		Quality: schema.QualityAssessment{
			Score: quality,
			Label: schema.LabelForQuality(quality),
		},
		Display: schema.DisplayDecision{
			Mode:  schema.DisplayNormal,
			Score: &shown,
			Stage: string(stage),
		},
	}
}

// TestTokenLifecycle exercises create, list, revoke and extend against SQLite.
func TestTokenLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := s.CreateToken(ctx, "ci-bot", "score", 30)
	require.NoError(t, err)
	assert.Len(t, rec.Token, 32)
	assert.True(t, rec.Active)
	assert.Equal(t, "ci-bot", rec.Label)

	records, err := s.ListTokens(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Token, records[0].Token)

	ok, err := s.RevokeToken(ctx, rec.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.RevokeToken(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.ExtendToken(ctx, rec.Token, 10)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestValidateToken covers every auth error code the store can return.
func TestValidateToken(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := s.CreateToken(ctx, "valid", "score", 30)
	require.NoError(t, err)

	setExpiry := func(token, expiry string) {
		_, err := s.db.Exec(`UPDATE "pmfstudio_tokens" SET expires_at = ? WHERE token = ?`, expiry, token)
		require.NoError(t, err)
	}
	mkToken := func(label string) string {
		r, err := s.CreateToken(ctx, label, "score", 30)
		require.NoError(t, err)
		return r.Token
	}

	revoked := mkToken("revoked")
	_, err = s.RevokeToken(ctx, revoked)
	require.NoError(t, err)

	noExpiry := mkToken("no-expiry")
	setExpiry(noExpiry, "")

	badExpiry := mkToken("bad-expiry")
	setExpiry(badExpiry, "next tuesday")

	expired := mkToken("expired")
	setExpiry(expired, time.Now().UTC().Add(-time.Hour).Format(time.RFC3339))

	naive := mkToken("naive")
	setExpiry(naive, time.Now().UTC().Add(24*time.Hour).Format("2006-01-02T15:04:05"))

	tests := []struct {
		name     string
		token    string
		wantCode string
	}{
		{"valid token", rec.Token, ""},
		{"naive expiry accepted", naive, ""},
		{"missing token", "", contract.AuthMissingToken},
		{"unknown token", "deadbeef", contract.AuthTokenNotFound},
		{"revoked token", revoked, contract.AuthTokenRevoked},
		{"no expiry", noExpiry, contract.AuthNoExpirySet},
		{"invalid expiry format", badExpiry, contract.AuthInvalidExpiryFormat},
		{"expired token", expired, contract.AuthTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateToken(ctx, tt.token)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var authErr *contract.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

// TestHistoryRoundTrip verifies recording and reading evaluations.
func TestHistoryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id1, err := s.RecordEvaluation(ctx, "Acme", sampleEvaluation(68.5, 72))
	require.NoError(t, err)
	id2, err := s.RecordEvaluation(ctx, "Globex", sampleEvaluation(42.0, 45))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	recent, err := s.ListEvaluations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Globex", recent[0].StartupName)
	assert.Equal(t, 42.0, recent[0].Score)
	assert.Equal(t, string(schema.StageProblemSolutionFit), recent[0].Stage)

	all, err := s.AllEvaluations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Acme", all[0].StartupName)
	assert.Equal(t, 70.0, all[0].Components()[schema.ComponentProblem])
	assert.WithinDuration(t, time.Now().UTC(), all[0].CreatedAt, time.Minute)

	removed, err := s.ClearEvaluations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	all, err = s.AllEvaluations(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// TestNoneBackendNoOps verifies the disabled store never touches a database.
func TestNoneBackendNoOps(t *testing.T) {
	s, err := Open(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	_, err = s.CreateToken(ctx, "x", "score", 1)
	assert.Error(t, err)

	records, err := s.ListTokens(ctx)
	require.NoError(t, err)
	assert.Nil(t, records)

	id, err := s.RecordEvaluation(ctx, "Acme", sampleEvaluation(50, 50))
	require.NoError(t, err)
	assert.Zero(t, id)

	var authErr *contract.AuthError
	_, err = s.ValidateToken(ctx, "anything")
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, contract.AuthTokenNotFound, authErr.Code)
}
