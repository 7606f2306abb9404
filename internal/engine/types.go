package engine

import (
	"context"
	"time"

	"github.com/wellband/bracelet/internal/vitals"
)

// Reading представляет снимок всех каналов браслета за один тик.
// Значения уже округлены до точности канала.
type Reading struct {
	Timestamp     time.Time                 `json:"timestamp"`
	State         vitals.PhysiologicalState `json:"state"`
	HeartRate     int                       `json:"heart_rate"`
	HRV           int                       `json:"hrv"`
	SpO2          float64                   `json:"spo2"`
	SkinTemp      float64                   `json:"skin_temp"`
	Stress        int                       `json:"stress"`
	MuscleO2      float64                   `json:"muscle_o2"`
	MuscleFatigue vitals.FatigueLevel       `json:"muscle_fatigue"`
	RespRate      int                       `json:"resp_rate"`
	VO2           float64                   `json:"vo2"`
	Lactate       float64                   `json:"lactate"`
	Cadence       int                       `json:"cadence"`
	TrainingLoad  int                       `json:"training_load"`
	Hydration     int                       `json:"hydration"`
	RecoveryMin   int                       `json:"recovery_min"`
	Battery       float64                   `json:"battery"`
}

// DeviceState представляет состояние виртуального устройства
type DeviceState struct {
	BatteryLevel float64   `json:"battery_level"`
	Connected    bool      `json:"connected"`
	LastSync     time.Time `json:"last_sync"`
}

// ActivitySignal сообщает движку об открытой тренировочной сессии
type ActivitySignal struct {
	Type      vitals.ActivityType
	StartedAt time.Time
}

// SleepSignal сообщает движку об открытой сессии сна
type SleepSignal struct {
	StartedAt time.Time
}

// SessionLookup предоставляет движку доступ к активным сессиям.
// nil без ошибки означает отсутствие сессии.
type SessionLookup interface {
	ActiveActivitySession(ctx context.Context) (*ActivitySignal, error)
	ActiveSleepSession(ctx context.Context) (*SleepSignal, error)
}

// ReadingSink принимает данные тиков для сохранения
type ReadingSink interface {
	PersistReading(ctx context.Context, reading Reading) error
	PersistDeviceState(ctx context.Context, state DeviceState) error
}

// Stats содержит счетчики работы движка
type Stats struct {
	Running      bool                      `json:"running"`
	State        vitals.PhysiologicalState `json:"state"`
	TickCount    int64                     `json:"tick_count"`
	IntervalMs   int64                     `json:"interval_ms"`
	Battery      float64                   `json:"battery"`
	TrainingLoad int                       `json:"training_load"`
	Hydration    int                       `json:"hydration"`
}
