// Package history persists analysis reports in a local SQLite database so
// past investigations can be reviewed without re-running the agent.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/logsleuth/logsleuth/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id        TEXT NOT NULL,
	error_code      TEXT NOT NULL DEFAULT '',
	error_summary   TEXT NOT NULL DEFAULT '',
	affected_module TEXT NOT NULL DEFAULT '',
	user_info       TEXT NOT NULL DEFAULT '',
	server_status   TEXT NOT NULL DEFAULT '',
	risk_level      TEXT NOT NULL DEFAULT '',
	recommendation  TEXT NOT NULL DEFAULT '',
	raw_error_logs  TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reports_event_id ON reports(event_id);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`

// Entry is a stored report with its persistence metadata.
type Entry struct {
	ID        int64
	Report    types.AnalysisReport
	CreatedAt time.Time
}

// Store persists reports in SQLite.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location,
// ~/.logsleuth/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".logsleuth", "history.db"), nil
}

// Open opens (creating if needed) the history database at path. An empty
// path uses DefaultPath.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite benefits from a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("history database ping failed: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run history migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Save stores a report and returns its row ID.
func (s *Store) Save(ctx context.Context, report *types.AnalysisReport) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (
			event_id, error_code, error_summary, affected_module,
			user_info, server_status, risk_level, recommendation, raw_error_logs
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.EventID, report.ErrorCode, report.ErrorSummary, report.AffectedModule,
		report.UserInfo, report.ServerStatus, string(report.RiskLevel),
		report.Recommendation, report.RawErrorLogs,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read report id: %w", err)
	}
	return id, nil
}

// List returns the most recent entries, newest first. A non-positive limit
// defaults to 20.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, error_code, error_summary, affected_module,
		       user_info, server_status, risk_level, recommendation,
		       raw_error_logs, created_at
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// FindByEventID returns all stored reports for an event, newest first.
func (s *Store) FindByEventID(ctx context.Context, eventID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, error_code, error_summary, affected_module,
		       user_info, server_status, risk_level, recommendation,
		       raw_error_logs, created_at
		FROM reports
		WHERE event_id = ?
		ORDER BY created_at DESC, id DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports for %s: %w", eventID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var risk string
		if err := rows.Scan(
			&e.ID, &e.Report.EventID, &e.Report.ErrorCode, &e.Report.ErrorSummary,
			&e.Report.AffectedModule, &e.Report.UserInfo, &e.Report.ServerStatus,
			&risk, &e.Report.Recommendation, &e.Report.RawErrorLogs, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		e.Report.RiskLevel = types.RiskLevel(risk)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}
	return entries, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
