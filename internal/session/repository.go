package session

import (
	"context"
)

// Repository определяет интерфейс архива завершенных сессий (Domain Layer)
type Repository interface {
	SaveActivitySession(ctx context.Context, session *ActivitySession) error
	SaveSleepSession(ctx context.Context, session *SleepSession) error
	ListActivitySessions(ctx context.Context, limit, offset int) ([]*ActivitySession, error)
	ListSleepSessions(ctx context.Context, limit, offset int) ([]*SleepSession, error)

	Close() error
}

// CacheStore определяет интерфейс зеркала активных сессий (Redis).
// Зеркало не авторитетно: менеджер переживает его недоступность.
type CacheStore interface {
	SetActiveActivity(ctx context.Context, session *ActivitySession) error
	GetActiveActivity(ctx context.Context) (*ActivitySession, error)
	ClearActiveActivity(ctx context.Context) error

	SetActiveSleep(ctx context.Context, session *SleepSession) error
	GetActiveSleep(ctx context.Context) (*SleepSession, error)
	ClearActiveSleep(ctx context.Context) error
}
