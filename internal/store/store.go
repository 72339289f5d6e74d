// Package store persists API tokens and evaluation history.
package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// Table names for token and history storage.
const (
	tokensTable      = "pmfstudio_tokens"
	evaluationsTable = "pmfstudio_evaluations"
)

// Store handles durable storage operations using various database backends.
// It implements both the token and history interfaces on one connection.
type Store struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

// Compile-time checks
var (
	_ contract.TokenStore   = &Store{}
	_ contract.HistoryStore = &Store{}
)

// Open initializes and returns a new Store based on the backend type.
func Open(backend schema.DatabaseBackend, connStr string) (*Store, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite3"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &Store{db: nil, backend: backend, driverName: ""}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schemas
	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, backend: backend, driverName: driverName}, nil
}

// Close closes the underlying DB connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Backend returns the configured database backend.
func (s *Store) Backend() schema.DatabaseBackend {
	return s.backend
}

// createTables creates the token and evaluation tables.
func createTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{tokensTable, getCreateTokensQuery(backend)},
		{evaluationsTable, getCreateEvaluationsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateTokensQuery returns the CREATE TABLE query for pmfstudio_tokens.
// Expiry timestamps are stored as text on every backend so that malformed
// values survive round-trips and fail at validation time, not at scan time.
func getCreateTokensQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tokensTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				token VARCHAR(64) PRIMARY KEY,
				label VARCHAR(255) NOT NULL,
				perm VARCHAR(32) NOT NULL,
				expires_at VARCHAR(64) NOT NULL,
				created_at VARCHAR(64) NOT NULL,
				active TINYINT(1) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				token TEXT PRIMARY KEY,
				label TEXT NOT NULL,
				perm TEXT NOT NULL,
				expires_at TEXT NOT NULL,
				created_at TEXT NOT NULL,
				active BOOLEAN NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				token TEXT PRIMARY KEY,
				label TEXT NOT NULL,
				perm TEXT NOT NULL,
				expires_at TEXT NOT NULL,
				created_at TEXT NOT NULL,
				active INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// getCreateEvaluationsQuery returns the CREATE TABLE query for pmfstudio_evaluations.
func getCreateEvaluationsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(evaluationsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				startup_name VARCHAR(255) NOT NULL,
				score DOUBLE NOT NULL,
				stage VARCHAR(64) NOT NULL,
				quality_score INT NOT NULL,
				quality_label VARCHAR(16) NOT NULL,
				display_mode VARCHAR(16) NOT NULL,
				problem_score DOUBLE NOT NULL,
				persona_score DOUBLE NOT NULL,
				solution_score DOUBLE NOT NULL,
				market_score DOUBLE NOT NULL,
				retention_score DOUBLE NOT NULL,
				created_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				startup_name TEXT NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				stage TEXT NOT NULL,
				quality_score INT NOT NULL,
				quality_label TEXT NOT NULL,
				display_mode TEXT NOT NULL,
				problem_score DOUBLE PRECISION NOT NULL,
				persona_score DOUBLE PRECISION NOT NULL,
				solution_score DOUBLE PRECISION NOT NULL,
				market_score DOUBLE PRECISION NOT NULL,
				retention_score DOUBLE PRECISION NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				startup_name TEXT NOT NULL,
				score REAL NOT NULL,
				stage TEXT NOT NULL,
				quality_score INTEGER NOT NULL,
				quality_label TEXT NOT NULL,
				display_mode TEXT NOT NULL,
				problem_score REAL NOT NULL,
				persona_score REAL NOT NULL,
				solution_score REAL NOT NULL,
				market_score REAL NOT NULL,
				retention_score REAL NOT NULL,
				created_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

var validTableNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// quoteTableName quotes a table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if !validTableNamePattern.MatchString(name) {
		// Table names are package constants, so this only trips in development.
		panic(fmt.Sprintf("invalid table name: %s", name))
	}
	switch backend {
	case schema.MySQLBackend:
		return "`" + name + "`"
	default: // SQLite and PostgreSQL
		return `"` + name + `"`
	}
}

// placeholder returns the Nth parameter placeholder for the backend.
func placeholder(backend schema.DatabaseBackend, n int) string {
	switch backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// formatTime converts a time value into the representation the backend stores.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
