package session

import (
	"context"
	"sync"
)

// MemoryRepository хранит архив сессий в памяти.
// Используется в тестах и при STORAGE_DRIVER=memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	activities []*ActivitySession
	sleep      []*SleepSession
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Close ничего не освобождает, реализует Repository
func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) SaveActivitySession(ctx context.Context, session *ActivitySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.activities {
		if existing.ID == session.ID {
			r.activities[i] = session
			return nil
		}
	}
	r.activities = append(r.activities, session)
	return nil
}

func (r *MemoryRepository) SaveSleepSession(ctx context.Context, session *SleepSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.sleep {
		if existing.ID == session.ID {
			r.sleep[i] = session
			return nil
		}
	}
	r.sleep = append(r.sleep, session)
	return nil
}

// ListActivitySessions отдает архив от новых к старым
func (r *MemoryRepository) ListActivitySessions(ctx context.Context, limit, offset int) ([]*ActivitySession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*ActivitySession
	for i := len(r.activities) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.activities[i])
	}
	return result, nil
}

func (r *MemoryRepository) ListSleepSessions(ctx context.Context, limit, offset int) ([]*SleepSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*SleepSession
	for i := len(r.sleep) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.sleep[i])
	}
	return result, nil
}
