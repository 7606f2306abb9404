package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wellband/bracelet/internal/vitals"
)

// Manager управляет сессиями браслета (Application Layer).
// Одновременно открыто не более одной тренировки и одной сессии сна.
// Авторитетная копия активных сессий живет в памяти, Redis служит
// зеркалом и переживает перезапуск процесса.
type Manager struct {
	cache      CacheStore // nil, если Redis не настроен
	repository Repository

	mu             sync.RWMutex
	activeActivity *ActivitySession
	activeSleep    *SleepSession
}

// NewManager создает новый менеджер сессий
func NewManager(cache CacheStore, repository Repository) *Manager {
	return &Manager{
		cache:      cache,
		repository: repository,
	}
}

// RestoreActive поднимает активные сессии из зеркала после перезапуска
func (m *Manager) RestoreActive(ctx context.Context) {
	if m.cache == nil {
		return
	}

	if activity, err := m.cache.GetActiveActivity(ctx); err != nil {
		log.Printf("[WARN] Failed to restore activity session from cache: %v", err)
	} else if activity != nil {
		m.mu.Lock()
		m.activeActivity = activity
		m.mu.Unlock()
		log.Printf("[SESSION] Restored active activity session: %s (%s)", activity.ID, activity.Type)
	}

	if sleep, err := m.cache.GetActiveSleep(ctx); err != nil {
		log.Printf("[WARN] Failed to restore sleep session from cache: %v", err)
	} else if sleep != nil {
		m.mu.Lock()
		m.activeSleep = sleep
		m.mu.Unlock()
		log.Printf("[SESSION] Restored active sleep session: %s", sleep.ID)
	}
}

// StartActivity открывает тренировочную сессию
func (m *Manager) StartActivity(ctx context.Context, req *StartActivityRequest) (*ActivitySession, error) {
	activityType := vitals.ActivityType(req.Type)
	if !activityType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidActivityType, req.Type)
	}

	session := &ActivitySession{
		ID:        uuid.New().String(),
		Type:      activityType,
		Status:    SessionStatusActive,
		StartedAt: time.Now(),
		Notes:     req.Notes,
	}

	m.mu.Lock()
	if m.activeActivity != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrActivityAlreadyActive, m.activeActivity.ID)
	}
	m.activeActivity = session
	m.mu.Unlock()

	m.mirrorActivity(ctx, session)

	log.Printf("[SESSION] Started activity session: %s (%s)", session.ID, session.Type)
	return session, nil
}

// StopActivity закрывает тренировочную сессию и отправляет ее в архив
func (m *Manager) StopActivity(ctx context.Context) (*ActivitySession, error) {
	m.mu.Lock()
	session := m.activeActivity
	if session == nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: activity", ErrNoActiveSession)
	}

	now := time.Now()
	session.Status = SessionStatusCompleted
	session.EndedAt = &now
	session.DurationMs = now.Sub(session.StartedAt).Milliseconds()
	m.activeActivity = nil
	m.mu.Unlock()

	m.clearActivityMirror(ctx)

	if err := m.repository.SaveActivitySession(ctx, session); err != nil {
		return session, fmt.Errorf("failed to archive activity session: %w", err)
	}

	log.Printf("[SESSION] Stopped activity session: %s (%s), duration: %dms",
		session.ID, session.Type, session.DurationMs)
	return session, nil
}

// ActiveActivity возвращает открытую тренировку, nil - если ее нет
func (m *Manager) ActiveActivity(ctx context.Context) (*ActivitySession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeActivity, nil
}

// StartSleep открывает сессию сна
func (m *Manager) StartSleep(ctx context.Context) (*SleepSession, error) {
	session := &SleepSession{
		ID:        uuid.New().String(),
		Status:    SessionStatusActive,
		StartedAt: time.Now(),
	}

	m.mu.Lock()
	if m.activeSleep != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrSleepAlreadyActive, m.activeSleep.ID)
	}
	m.activeSleep = session
	m.mu.Unlock()

	m.mirrorSleep(ctx, session)

	log.Printf("[SESSION] Started sleep session: %s", session.ID)
	return session, nil
}

// StopSleep закрывает сессию сна и отправляет ее в архив
func (m *Manager) StopSleep(ctx context.Context) (*SleepSession, error) {
	m.mu.Lock()
	session := m.activeSleep
	if session == nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: sleep", ErrNoActiveSession)
	}

	now := time.Now()
	session.Status = SessionStatusCompleted
	session.EndedAt = &now
	session.DurationMs = now.Sub(session.StartedAt).Milliseconds()
	m.activeSleep = nil
	m.mu.Unlock()

	m.clearSleepMirror(ctx)

	if err := m.repository.SaveSleepSession(ctx, session); err != nil {
		return session, fmt.Errorf("failed to archive sleep session: %w", err)
	}

	log.Printf("[SESSION] Stopped sleep session: %s, duration: %dms", session.ID, session.DurationMs)
	return session, nil
}

// ActiveSleep возвращает открытую сессию сна, nil - если ее нет
func (m *Manager) ActiveSleep(ctx context.Context) (*SleepSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeSleep, nil
}

// ListSessions возвращает архив завершенных сессий
func (m *Manager) ListSessions(ctx context.Context, limit, offset int) (*SessionList, error) {
	activities, err := m.repository.ListActivitySessions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity sessions: %w", err)
	}

	sleep, err := m.repository.ListSleepSessions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep sessions: %w", err)
	}

	return &SessionList{Activities: activities, Sleep: sleep}, nil
}

// ===== Зеркалирование в кэш (best-effort) =====

func (m *Manager) mirrorActivity(ctx context.Context, session *ActivitySession) {
	if m.cache == nil {
		return
	}
	if err := m.cache.SetActiveActivity(ctx, session); err != nil {
		log.Printf("[WARN] Failed to mirror activity session to cache: %v", err)
	}
}

func (m *Manager) clearActivityMirror(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if err := m.cache.ClearActiveActivity(ctx); err != nil {
		log.Printf("[WARN] Failed to clear activity session mirror: %v", err)
	}
}

func (m *Manager) mirrorSleep(ctx context.Context, session *SleepSession) {
	if m.cache == nil {
		return
	}
	if err := m.cache.SetActiveSleep(ctx, session); err != nil {
		log.Printf("[WARN] Failed to mirror sleep session to cache: %v", err)
	}
}

func (m *Manager) clearSleepMirror(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if err := m.cache.ClearActiveSleep(ctx); err != nil {
		log.Printf("[WARN] Failed to clear sleep session mirror: %v", err)
	}
}
