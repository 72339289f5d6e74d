package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/handpartners/pmfstudio/schema"
)

const evaluationColumns = `id, startup_name, score, stage, quality_score, quality_label, display_mode,
	problem_score, persona_score, solution_score, market_score, retention_score, created_at`

// RecordEvaluation stores one evaluation and returns its row ID.
func (s *Store) RecordEvaluation(ctx context.Context, startupName string, eval schema.Evaluation) (int64, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(evaluationsTable, s.backend)
	args := []any{
		startupName,
		eval.Result.Score,
		string(eval.Result.Stage),
		eval.Quality.Score,
		string(eval.Quality.Label),
		string(eval.Display.Mode),
		eval.Components[schema.ComponentProblem],
		eval.Components[schema.ComponentPersona],
		eval.Components[schema.ComponentSolution],
		eval.Components[schema.ComponentMarket],
		eval.Components[schema.ComponentRetention],
	}

	var id int64
	var err error
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (startup_name, score, stage, quality_score, quality_label, display_mode,
			problem_score, persona_score, solution_score, market_score, retention_score, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`, quotedTableName)
		args = append(args, time.Now().UTC())
		err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (startup_name, score, stage, quality_score, quality_label, display_mode,
			problem_score, persona_score, solution_score, market_score, retention_score, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
		args = append(args, formatTime(time.Now().UTC(), s.backend))
		var result sql.Result
		result, err = s.db.ExecContext(ctx, query, args...)
		if err == nil {
			id, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return id, nil
}

// ListEvaluations returns the most recent evaluations, newest first.
func (s *Store) ListEvaluations(ctx context.Context, limit int) ([]schema.EvaluationRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 1
	}

	quotedTableName := quoteTableName(evaluationsTable, s.backend)
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id DESC LIMIT %s`,
		evaluationColumns, quotedTableName, placeholder(s.backend, 1))

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanEvaluations(rows)
}

// AllEvaluations returns every stored evaluation, oldest first.
func (s *Store) AllEvaluations(ctx context.Context) ([]schema.EvaluationRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(evaluationsTable, s.backend)
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, evaluationColumns, quotedTableName)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanEvaluations(rows)
}

// ClearEvaluations deletes all stored evaluations and returns the count removed.
func (s *Store) ClearEvaluations(ctx context.Context) (int64, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(evaluationsTable, s.backend)
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, quotedTableName))
	if err != nil {
		return 0, fmt.Errorf("failed to clear evaluations: %w", err)
	}
	return result.RowsAffected()
}

// scanEvaluations reads evaluation rows, handling the per-backend time format.
func (s *Store) scanEvaluations(rows *sql.Rows) ([]schema.EvaluationRecord, error) {
	var records []schema.EvaluationRecord
	for rows.Next() {
		var rec schema.EvaluationRecord

		switch s.backend {
		case schema.SQLiteBackend:
			var createdAtStr string
			if err := rows.Scan(&rec.ID, &rec.StartupName, &rec.Score, &rec.Stage,
				&rec.QualityScore, &rec.QualityLabel, &rec.DisplayMode,
				&rec.ProblemScore, &rec.PersonaScore, &rec.SolutionScore,
				&rec.MarketScore, &rec.RetentionScore, &createdAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan evaluation row: %w", err)
			}
			t, err := time.Parse(time.RFC3339Nano, createdAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse created_at: %w", err)
			}
			rec.CreatedAt = t
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&rec.ID, &rec.StartupName, &rec.Score, &rec.Stage,
				&rec.QualityScore, &rec.QualityLabel, &rec.DisplayMode,
				&rec.ProblemScore, &rec.PersonaScore, &rec.SolutionScore,
				&rec.MarketScore, &rec.RetentionScore, &rec.CreatedAt); err != nil {
				return nil, fmt.Errorf("failed to scan evaluation row: %w", err)
			}
		}

		records = append(records, rec)
	}
	return records, rows.Err()
}
