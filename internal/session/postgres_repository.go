package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresRepository реализует Repository для PostgreSQL (Infrastructure Layer)
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository создает репозиторий поверх готового соединения
func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	r := &PostgresRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewPostgresRepositoryFromDSN создает репозиторий из строки подключения
func NewPostgresRepositoryFromDSN(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Настройки пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return NewPostgresRepository(db)
}

func (r *PostgresRepository) ensureSchema() error {
	ddl := `
	CREATE TABLE IF NOT EXISTS activity_sessions (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		ended_at TIMESTAMP,
		duration_ms BIGINT NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_activity_sessions_started_at ON activity_sessions(started_at);

	CREATE TABLE IF NOT EXISTS sleep_sessions (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		ended_at TIMESTAMP,
		duration_ms BIGINT NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sleep_sessions_started_at ON sleep_sessions(started_at);
	`

	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create session tables: %w", err)
	}
	return nil
}

// Close закрывает соединение с БД
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) SaveActivitySession(ctx context.Context, session *ActivitySession) error {
	query := `
		INSERT INTO activity_sessions (id, type, status, started_at, ended_at, duration_ms, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET status = $3, ended_at = $5, duration_ms = $6, notes = $7
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Type,
		session.Status,
		session.StartedAt,
		session.EndedAt,
		session.DurationMs,
		session.Notes,
	)

	if err != nil {
		return fmt.Errorf("failed to save activity session: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SaveSleepSession(ctx context.Context, session *SleepSession) error {
	query := `
		INSERT INTO sleep_sessions (id, status, started_at, ended_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET status = $2, ended_at = $4, duration_ms = $5
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Status,
		session.StartedAt,
		session.EndedAt,
		session.DurationMs,
	)

	if err != nil {
		return fmt.Errorf("failed to save sleep session: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListActivitySessions(ctx context.Context, limit, offset int) ([]*ActivitySession, error) {
	query := `
		SELECT id, type, status, started_at, ended_at, duration_ms, notes
		FROM activity_sessions
		ORDER BY started_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*ActivitySession
	for rows.Next() {
		var session ActivitySession
		err := rows.Scan(
			&session.ID,
			&session.Type,
			&session.Status,
			&session.StartedAt,
			&session.EndedAt,
			&session.DurationMs,
			&session.Notes,
		)
		if err != nil {
			continue // Пропускаем поврежденные записи
		}
		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}

func (r *PostgresRepository) ListSleepSessions(ctx context.Context, limit, offset int) ([]*SleepSession, error) {
	query := `
		SELECT id, status, started_at, ended_at, duration_ms
		FROM sleep_sessions
		ORDER BY started_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*SleepSession
	for rows.Next() {
		var session SleepSession
		err := rows.Scan(
			&session.ID,
			&session.Status,
			&session.StartedAt,
			&session.EndedAt,
			&session.DurationMs,
		)
		if err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}
