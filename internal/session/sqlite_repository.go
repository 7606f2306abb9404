package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRepository реализует Repository для встраиваемого хранилища.
// Метки времени хранятся как TEXT в RFC3339.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository открывает файл БД и готовит схему
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activity_sessions (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  status TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT,
  duration_ms INTEGER NOT NULL DEFAULT 0,
  notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_activity_sessions_started_at ON activity_sessions(started_at);

CREATE TABLE IF NOT EXISTS sleep_sessions (
  id TEXT PRIMARY KEY,
  status TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT,
  duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sleep_sessions_started_at ON sleep_sessions(started_at);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create session tables: %w", err)
	}
	return nil
}

// Close закрывает файл БД
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveActivitySession(ctx context.Context, session *ActivitySession) error {
	const stmt = `
INSERT INTO activity_sessions (id, type, status, started_at, ended_at, duration_ms, notes)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  status=excluded.status,
  ended_at=excluded.ended_at,
  duration_ms=excluded.duration_ms,
  notes=excluded.notes;
`
	_, err := r.db.ExecContext(ctx, stmt,
		session.ID,
		string(session.Type),
		string(session.Status),
		session.StartedAt.Format(time.RFC3339Nano),
		formatNullableTime(session.EndedAt),
		session.DurationMs,
		session.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SaveSleepSession(ctx context.Context, session *SleepSession) error {
	const stmt = `
INSERT INTO sleep_sessions (id, status, started_at, ended_at, duration_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  status=excluded.status,
  ended_at=excluded.ended_at,
  duration_ms=excluded.duration_ms;
`
	_, err := r.db.ExecContext(ctx, stmt,
		session.ID,
		string(session.Status),
		session.StartedAt.Format(time.RFC3339Nano),
		formatNullableTime(session.EndedAt),
		session.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to save sleep session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListActivitySessions(ctx context.Context, limit, offset int) ([]*ActivitySession, error) {
	const query = `
SELECT id, type, status, started_at, ended_at, duration_ms, notes
FROM activity_sessions
ORDER BY started_at DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*ActivitySession
	for rows.Next() {
		var session ActivitySession
		var startedAt string
		var endedAt sql.NullString

		err := rows.Scan(
			&session.ID,
			&session.Type,
			&session.Status,
			&startedAt,
			&endedAt,
			&session.DurationMs,
			&session.Notes,
		)
		if err != nil {
			continue
		}

		session.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			continue
		}
		session.EndedAt = parseNullableTime(endedAt)

		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}

func (r *SQLiteRepository) ListSleepSessions(ctx context.Context, limit, offset int) ([]*SleepSession, error) {
	const query = `
SELECT id, status, started_at, ended_at, duration_ms
FROM sleep_sessions
ORDER BY started_at DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*SleepSession
	for rows.Next() {
		var session SleepSession
		var startedAt string
		var endedAt sql.NullString

		err := rows.Scan(
			&session.ID,
			&session.Status,
			&startedAt,
			&endedAt,
			&session.DurationMs,
		)
		if err != nil {
			continue
		}

		session.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			continue
		}
		session.EndedAt = parseNullableTime(endedAt)

		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}

func formatNullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil
	}
	return &t
}
