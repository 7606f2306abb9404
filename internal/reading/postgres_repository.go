package reading

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/wellband/bracelet/internal/engine"
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
	CREATE TABLE IF NOT EXISTS readings (
		id BIGSERIAL PRIMARY KEY,
		ts TIMESTAMP NOT NULL,
		state TEXT NOT NULL,
		heart_rate INTEGER NOT NULL,
		hrv INTEGER NOT NULL,
		spo2 DOUBLE PRECISION NOT NULL,
		skin_temp DOUBLE PRECISION NOT NULL,
		stress INTEGER NOT NULL,
		muscle_o2 DOUBLE PRECISION NOT NULL,
		muscle_fatigue TEXT NOT NULL,
		resp_rate INTEGER NOT NULL,
		vo2 DOUBLE PRECISION NOT NULL,
		lactate DOUBLE PRECISION NOT NULL,
		cadence INTEGER NOT NULL,
		training_load INTEGER NOT NULL,
		hydration INTEGER NOT NULL,
		recovery_min INTEGER NOT NULL,
		battery DOUBLE PRECISION NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_readings_ts ON readings(ts);

	CREATE TABLE IF NOT EXISTS device_state (
		device_id TEXT PRIMARY KEY,
		battery_level DOUBLE PRECISION NOT NULL,
		connected BOOLEAN NOT NULL,
		last_sync TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_summaries (
		date DATE PRIMARY KEY,
		resting_hr INTEGER NOT NULL,
		avg_hrv INTEGER NOT NULL,
		avg_spo2 DOUBLE PRECISION NOT NULL,
		sleep_hours DOUBLE PRECISION NOT NULL,
		activity_minutes INTEGER NOT NULL,
		training_load INTEGER NOT NULL,
		recovery_score INTEGER NOT NULL,
		avg_hydration INTEGER NOT NULL
	);
	`

	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create reading tables: %w", err)
	}
	return nil
}

// Close закрывает соединение с БД
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const readingColumns = `ts, state, heart_rate, hrv, spo2, skin_temp, stress, muscle_o2, muscle_fatigue,
		resp_rate, vo2, lactate, cadence, training_load, hydration, recovery_min, battery`

func (r *PostgresRepository) SaveReading(ctx context.Context, reading engine.Reading) error {
	query := `
		INSERT INTO readings (` + readingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.ExecContext(ctx, query,
		reading.Timestamp,
		reading.State,
		reading.HeartRate,
		reading.HRV,
		reading.SpO2,
		reading.SkinTemp,
		reading.Stress,
		reading.MuscleO2,
		reading.MuscleFatigue,
		reading.RespRate,
		reading.VO2,
		reading.Lactate,
		reading.Cadence,
		reading.TrainingLoad,
		reading.Hydration,
		reading.RecoveryMin,
		reading.Battery,
	)

	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanReading(rows *sql.Rows) (engine.Reading, error) {
	var reading engine.Reading
	err := rows.Scan(
		&reading.Timestamp,
		&reading.State,
		&reading.HeartRate,
		&reading.HRV,
		&reading.SpO2,
		&reading.SkinTemp,
		&reading.Stress,
		&reading.MuscleO2,
		&reading.MuscleFatigue,
		&reading.RespRate,
		&reading.VO2,
		&reading.Lactate,
		&reading.Cadence,
		&reading.TrainingLoad,
		&reading.Hydration,
		&reading.RecoveryMin,
		&reading.Battery,
	)
	return reading, err
}

func (r *PostgresRepository) LatestReading(ctx context.Context) (*engine.Reading, error) {
	readings, err := r.RecentReadings(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}
	return &readings[0], nil
}

func (r *PostgresRepository) RecentReadings(ctx context.Context, limit int) ([]engine.Reading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM readings
		ORDER BY ts DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent readings: %w", err)
	}
	defer rows.Close()

	var readings []engine.Reading
	for rows.Next() {
		reading, err := r.scanReading(rows)
		if err != nil {
			continue // Пропускаем поврежденные записи
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}

func (r *PostgresRepository) ListReadings(ctx context.Context, from, to time.Time, limit int) ([]engine.Reading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM readings
		WHERE ts >= $1 AND ts <= $2
		ORDER BY ts ASC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var readings []engine.Reading
	for rows.Next() {
		reading, err := r.scanReading(rows)
		if err != nil {
			continue
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}

func (r *PostgresRepository) SaveDeviceState(ctx context.Context, deviceID string, state engine.DeviceState) error {
	query := `
		INSERT INTO device_state (device_id, battery_level, connected, last_sync)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (device_id)
		DO UPDATE SET battery_level = $2, connected = $3, last_sync = $4
	`

	_, err := r.db.ExecContext(ctx, query, deviceID, state.BatteryLevel, state.Connected, state.LastSync)
	if err != nil {
		return fmt.Errorf("failed to save device state: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeviceState(ctx context.Context, deviceID string) (*engine.DeviceState, error) {
	query := `
		SELECT battery_level, connected, last_sync
		FROM device_state
		WHERE device_id = $1
	`

	var state engine.DeviceState
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(&state.BatteryLevel, &state.Connected, &state.LastSync)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get device state: %w", err)
	}

	return &state, nil
}

func (r *PostgresRepository) SaveDailySummary(ctx context.Context, summary DailySummary) error {
	query := `
		INSERT INTO daily_summaries (date, resting_hr, avg_hrv, avg_spo2, sleep_hours,
			activity_minutes, training_load, recovery_score, avg_hydration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (date)
		DO UPDATE SET resting_hr = $2, avg_hrv = $3, avg_spo2 = $4, sleep_hours = $5,
			activity_minutes = $6, training_load = $7, recovery_score = $8, avg_hydration = $9
	`

	_, err := r.db.ExecContext(ctx, query,
		summary.Date,
		summary.RestingHR,
		summary.AvgHRV,
		summary.AvgSpO2,
		summary.SleepHours,
		summary.ActivityMinutes,
		summary.TrainingLoad,
		summary.RecoveryScore,
		summary.AvgHydration,
	)

	if err != nil {
		return fmt.Errorf("failed to save daily summary: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListDailySummaries(ctx context.Context, days int) ([]DailySummary, error) {
	query := `
		SELECT date, resting_hr, avg_hrv, avg_spo2, sleep_hours,
			activity_minutes, training_load, recovery_score, avg_hydration
		FROM daily_summaries
		ORDER BY date DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var summary DailySummary
		err := rows.Scan(
			&summary.Date,
			&summary.RestingHR,
			&summary.AvgHRV,
			&summary.AvgSpO2,
			&summary.SleepHours,
			&summary.ActivityMinutes,
			&summary.TrainingLoad,
			&summary.RecoveryScore,
			&summary.AvgHydration,
		)
		if err != nil {
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

func (r *PostgresRepository) CountDailySummaries(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_summaries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count daily summaries: %w", err)
	}
	return count, nil
}
