package reading

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wellband/bracelet/internal/engine"
)

// SQLiteRepository реализует Repository для встраиваемого хранилища.
// Метки времени показаний хранятся как INTEGER (Unix, миллисекунды),
// чтобы сравнение диапазонов не зависело от текстового формата.
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
CREATE TABLE IF NOT EXISTS readings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts INTEGER NOT NULL,
  state TEXT NOT NULL,
  heart_rate INTEGER NOT NULL,
  hrv INTEGER NOT NULL,
  spo2 REAL NOT NULL,
  skin_temp REAL NOT NULL,
  stress INTEGER NOT NULL,
  muscle_o2 REAL NOT NULL,
  muscle_fatigue TEXT NOT NULL,
  resp_rate INTEGER NOT NULL,
  vo2 REAL NOT NULL,
  lactate REAL NOT NULL,
  cadence INTEGER NOT NULL,
  training_load INTEGER NOT NULL,
  hydration INTEGER NOT NULL,
  recovery_min INTEGER NOT NULL,
  battery REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_readings_ts ON readings(ts);

CREATE TABLE IF NOT EXISTS device_state (
  device_id TEXT PRIMARY KEY,
  battery_level REAL NOT NULL,
  connected INTEGER NOT NULL,
  last_sync INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_summaries (
  date TEXT PRIMARY KEY,
  resting_hr INTEGER NOT NULL,
  avg_hrv INTEGER NOT NULL,
  avg_spo2 REAL NOT NULL,
  sleep_hours REAL NOT NULL,
  activity_minutes INTEGER NOT NULL,
  training_load INTEGER NOT NULL,
  recovery_score INTEGER NOT NULL,
  avg_hydration INTEGER NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create reading tables: %w", err)
	}
	return nil
}

// Close закрывает файл БД
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveReading(ctx context.Context, reading engine.Reading) error {
	const stmt = `
INSERT INTO readings (ts, state, heart_rate, hrv, spo2, skin_temp, stress, muscle_o2, muscle_fatigue,
  resp_rate, vo2, lactate, cadence, training_load, hydration, recovery_min, battery)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := r.db.ExecContext(ctx, stmt,
		reading.Timestamp.UnixMilli(),
		string(reading.State),
		reading.HeartRate,
		reading.HRV,
		reading.SpO2,
		reading.SkinTemp,
		reading.Stress,
		reading.MuscleO2,
		string(reading.MuscleFatigue),
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

func (r *SQLiteRepository) scanReading(rows *sql.Rows) (engine.Reading, error) {
	var reading engine.Reading
	var ts int64

	err := rows.Scan(
		&ts,
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
	if err != nil {
		return reading, err
	}

	reading.Timestamp = time.UnixMilli(ts)
	return reading, nil
}

func (r *SQLiteRepository) LatestReading(ctx context.Context) (*engine.Reading, error) {
	readings, err := r.RecentReadings(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}
	return &readings[0], nil
}

func (r *SQLiteRepository) RecentReadings(ctx context.Context, limit int) ([]engine.Reading, error) {
	const query = `
SELECT ts, state, heart_rate, hrv, spo2, skin_temp, stress, muscle_o2, muscle_fatigue,
  resp_rate, vo2, lactate, cadence, training_load, hydration, recovery_min, battery
FROM readings
ORDER BY ts DESC
LIMIT ?;
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

func (r *SQLiteRepository) ListReadings(ctx context.Context, from, to time.Time, limit int) ([]engine.Reading, error) {
	const query = `
SELECT ts, state, heart_rate, hrv, spo2, skin_temp, stress, muscle_o2, muscle_fatigue,
  resp_rate, vo2, lactate, cadence, training_load, hydration, recovery_min, battery
FROM readings
WHERE ts >= ? AND ts <= ?
ORDER BY ts ASC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, query, from.UnixMilli(), to.UnixMilli(), limit)
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

func (r *SQLiteRepository) SaveDeviceState(ctx context.Context, deviceID string, state engine.DeviceState) error {
	const stmt = `
INSERT INTO device_state (device_id, battery_level, connected, last_sync)
VALUES (?, ?, ?, ?)
ON CONFLICT(device_id) DO UPDATE SET
  battery_level=excluded.battery_level,
  connected=excluded.connected,
  last_sync=excluded.last_sync;
`
	_, err := r.db.ExecContext(ctx, stmt, deviceID, state.BatteryLevel, state.Connected, state.LastSync.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save device state: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeviceState(ctx context.Context, deviceID string) (*engine.DeviceState, error) {
	const query = `
SELECT battery_level, connected, last_sync
FROM device_state
WHERE device_id = ?;
`
	var state engine.DeviceState
	var lastSync int64

	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(&state.BatteryLevel, &state.Connected, &lastSync)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get device state: %w", err)
	}

	state.LastSync = time.UnixMilli(lastSync)
	return &state, nil
}

func (r *SQLiteRepository) SaveDailySummary(ctx context.Context, summary DailySummary) error {
	const stmt = `
INSERT INTO daily_summaries (date, resting_hr, avg_hrv, avg_spo2, sleep_hours,
  activity_minutes, training_load, recovery_score, avg_hydration)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  resting_hr=excluded.resting_hr,
  avg_hrv=excluded.avg_hrv,
  avg_spo2=excluded.avg_spo2,
  sleep_hours=excluded.sleep_hours,
  activity_minutes=excluded.activity_minutes,
  training_load=excluded.training_load,
  recovery_score=excluded.recovery_score,
  avg_hydration=excluded.avg_hydration;
`
	_, err := r.db.ExecContext(ctx, stmt,
		summary.Date.Format(dateLayout),
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

func (r *SQLiteRepository) ListDailySummaries(ctx context.Context, days int) ([]DailySummary, error) {
	const query = `
SELECT date, resting_hr, avg_hrv, avg_spo2, sleep_hours,
  activity_minutes, training_load, recovery_score, avg_hydration
FROM daily_summaries
ORDER BY date DESC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var summary DailySummary
		var date string

		err := rows.Scan(
			&date,
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

		summary.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			continue
		}

		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

func (r *SQLiteRepository) CountDailySummaries(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_summaries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count daily summaries: %w", err)
	}
	return count, nil
}
