package reading

import (
	"context"
	"time"

	"github.com/wellband/bracelet/internal/engine"
)

// Repository определяет интерфейс хранилища телеметрии (Domain Layer)
type Repository interface {
	SaveReading(ctx context.Context, reading engine.Reading) error
	LatestReading(ctx context.Context) (*engine.Reading, error)
	RecentReadings(ctx context.Context, limit int) ([]engine.Reading, error)
	ListReadings(ctx context.Context, from, to time.Time, limit int) ([]engine.Reading, error)

	SaveDeviceState(ctx context.Context, deviceID string, state engine.DeviceState) error
	DeviceState(ctx context.Context, deviceID string) (*engine.DeviceState, error)

	SaveDailySummary(ctx context.Context, summary DailySummary) error
	ListDailySummaries(ctx context.Context, days int) ([]DailySummary, error)
	CountDailySummaries(ctx context.Context) (int, error)

	Close() error
}

// CacheStore определяет интерфейс быстрого слоя (Redis).
// Кэш не авторитетен: сбои не мешают записи в основное хранилище.
type CacheStore interface {
	SetLatestReading(ctx context.Context, reading engine.Reading) error
	GetLatestReading(ctx context.Context) (*engine.Reading, error)

	PushRecentReading(ctx context.Context, reading engine.Reading) error
	GetRecentReadings(ctx context.Context, limit int) ([]engine.Reading, error)

	SetDeviceState(ctx context.Context, deviceID string, state engine.DeviceState) error
	GetDeviceState(ctx context.Context, deviceID string) (*engine.DeviceState, error)
}
