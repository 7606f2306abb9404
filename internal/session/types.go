package session

import (
	"errors"
	"time"

	"github.com/wellband/bracelet/internal/vitals"
)

var (
	ErrActivityAlreadyActive = errors.New("activity session already active")
	ErrSleepAlreadyActive    = errors.New("sleep session already active")
	ErrNoActiveSession       = errors.New("no active session")
	ErrInvalidActivityType   = errors.New("invalid activity type")
)

// SessionStatus представляет статус сессии
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// ActivitySession представляет тренировочную сессию браслета
type ActivitySession struct {
	ID         string              `json:"id"`
	Type       vitals.ActivityType `json:"type"`
	Status     SessionStatus       `json:"status"`
	StartedAt  time.Time           `json:"started_at"`
	EndedAt    *time.Time          `json:"ended_at,omitempty"`
	DurationMs int64               `json:"duration_ms"`
	Notes      string              `json:"notes,omitempty"`
}

// SleepSession представляет сессию сна
type SleepSession struct {
	ID         string        `json:"id"`
	Status     SessionStatus `json:"status"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    *time.Time    `json:"ended_at,omitempty"`
	DurationMs int64         `json:"duration_ms"`
}

// StartActivityRequest - запрос на старт тренировки
type StartActivityRequest struct {
	Type  string `json:"type" example:"running"`
	Notes string `json:"notes,omitempty" example:"Morning run"`
}

// SessionList - архив завершенных сессий обоих видов
type SessionList struct {
	Activities []*ActivitySession `json:"activities"`
	Sleep      []*SleepSession    `json:"sleep"`
}
