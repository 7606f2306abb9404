package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wellband/bracelet/internal/vitals"
)

// fakeCache - скриптуемое зеркало для тестов
type fakeCache struct {
	mu       sync.Mutex
	activity *ActivitySession
	sleep    *SleepSession
	failing  bool
}

func (c *fakeCache) SetActiveActivity(ctx context.Context, session *ActivitySession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("cache unavailable")
	}
	c.activity = session
	return nil
}

func (c *fakeCache) GetActiveActivity(ctx context.Context) (*ActivitySession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, errors.New("cache unavailable")
	}
	return c.activity, nil
}

func (c *fakeCache) ClearActiveActivity(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("cache unavailable")
	}
	c.activity = nil
	return nil
}

func (c *fakeCache) SetActiveSleep(ctx context.Context, session *SleepSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("cache unavailable")
	}
	c.sleep = session
	return nil
}

func (c *fakeCache) GetActiveSleep(ctx context.Context) (*SleepSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, errors.New("cache unavailable")
	}
	return c.sleep, nil
}

func (c *fakeCache) ClearActiveSleep(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("cache unavailable")
	}
	c.sleep = nil
	return nil
}

func TestManager_StartActivity(t *testing.T) {
	cache := &fakeCache{}
	m := NewManager(cache, NewMemoryRepository())

	session, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: "running", Notes: "tempo"})
	if err != nil {
		t.Fatalf("StartActivity failed: %v", err)
	}

	if session.ID == "" {
		t.Error("Session ID must be assigned")
	}
	if session.Type != vitals.ActivityRunning {
		t.Errorf("Session type = %s, expected running", session.Type)
	}
	if session.Status != SessionStatusActive {
		t.Errorf("Session status = %s, expected ACTIVE", session.Status)
	}

	// Зеркало получило копию
	mirrored, _ := cache.GetActiveActivity(context.Background())
	if mirrored == nil || mirrored.ID != session.ID {
		t.Error("Active session must be mirrored to cache")
	}
}

func TestManager_StartActivityRejectsSecond(t *testing.T) {
	m := NewManager(nil, NewMemoryRepository())

	if _, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: "running"}); err != nil {
		t.Fatalf("First StartActivity failed: %v", err)
	}

	_, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: "yoga"})
	if !errors.Is(err, ErrActivityAlreadyActive) {
		t.Errorf("Expected ErrActivityAlreadyActive, got %v", err)
	}
}

func TestManager_StartActivityRejectsUnknownType(t *testing.T) {
	m := NewManager(nil, NewMemoryRepository())

	_, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: "skydiving"})
	if !errors.Is(err, ErrInvalidActivityType) {
		t.Errorf("Expected ErrInvalidActivityType, got %v", err)
	}
}

func TestManager_StopActivityArchives(t *testing.T) {
	cache := &fakeCache{}
	repo := NewMemoryRepository()
	m := NewManager(cache, repo)

	started, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: "cycling"})
	if err != nil {
		t.Fatalf("StartActivity failed: %v", err)
	}

	stopped, err := m.StopActivity(context.Background())
	if err != nil {
		t.Fatalf("StopActivity failed: %v", err)
	}

	if stopped.ID != started.ID {
		t.Errorf("Stopped session ID = %s, expected %s", stopped.ID, started.ID)
	}
	if stopped.Status != SessionStatusCompleted {
		t.Errorf("Stopped status = %s, expected COMPLETED", stopped.Status)
	}
	if stopped.EndedAt == nil {
		t.Error("EndedAt must be set on stop")
	}

	// Менеджер больше не видит активную тренировку
	if active, _ := m.ActiveActivity(context.Background()); active != nil {
		t.Error("Active activity must be cleared after stop")
	}

	// Зеркало очищено, архив пополнен
	if mirrored, _ := cache.GetActiveActivity(context.Background()); mirrored != nil {
		t.Error("Cache mirror must be cleared after stop")
	}
	archived, _ := repo.ListActivitySessions(context.Background(), 10, 0)
	if len(archived) != 1 || archived[0].ID != started.ID {
		t.Errorf("Archive must hold the stopped session, got %d entries", len(archived))
	}
}

func TestManager_StopActivityWithoutActive(t *testing.T) {
	m := NewManager(nil, NewMemoryRepository())

	_, err := m.StopActivity(context.Background())
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession, got %v", err)
	}
}

func TestManager_SleepLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	m := NewManager(nil, repo)

	started, err := m.StartSleep(context.Background())
	if err != nil {
		t.Fatalf("StartSleep failed: %v", err)
	}

	if _, err := m.StartSleep(context.Background()); !errors.Is(err, ErrSleepAlreadyActive) {
		t.Errorf("Expected ErrSleepAlreadyActive, got %v", err)
	}

	active, _ := m.ActiveSleep(context.Background())
	if active == nil || active.ID != started.ID {
		t.Error("ActiveSleep must return the open session")
	}

	stopped, err := m.StopSleep(context.Background())
	if err != nil {
		t.Fatalf("StopSleep failed: %v", err)
	}
	if stopped.Status != SessionStatusCompleted {
		t.Errorf("Stopped status = %s, expected COMPLETED", stopped.Status)
	}

	archived, _ := repo.ListSleepSessions(context.Background(), 10, 0)
	if len(archived) != 1 {
		t.Errorf("Archive must hold the sleep session, got %d entries", len(archived))
	}
}

// Сон и тренировка не мешают друг другу
func TestManager_ActivityAndSleepIndependent(t *testing.T) {
	m := NewManager(nil, NewMemoryRepository())

	if _, err := m.StartSleep(context.Background()); err != nil {
		t.Fatalf("StartSleep failed: %v", err)
	}
	if _, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: "walking"}); err != nil {
		t.Fatalf("StartActivity failed: %v", err)
	}

	if _, err := m.StopActivity(context.Background()); err != nil {
		t.Fatalf("StopActivity failed: %v", err)
	}
	if active, _ := m.ActiveSleep(context.Background()); active == nil {
		t.Error("Sleep session must survive activity stop")
	}
}

func TestManager_CacheFailureDoesNotBlock(t *testing.T) {
	cache := &fakeCache{failing: true}
	m := NewManager(cache, NewMemoryRepository())

	if _, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: "hiit"}); err != nil {
		t.Fatalf("StartActivity must survive cache failure: %v", err)
	}
	if _, err := m.StopActivity(context.Background()); err != nil {
		t.Fatalf("StopActivity must survive cache failure: %v", err)
	}
}

func TestManager_RestoreActive(t *testing.T) {
	cache := &fakeCache{
		activity: &ActivitySession{
			ID:        "restored-activity",
			Type:      vitals.ActivityStrength,
			Status:    SessionStatusActive,
			StartedAt: time.Now().Add(-10 * time.Minute),
		},
		sleep: &SleepSession{
			ID:        "restored-sleep",
			Status:    SessionStatusActive,
			StartedAt: time.Now().Add(-8 * time.Hour),
		},
	}

	m := NewManager(cache, NewMemoryRepository())
	m.RestoreActive(context.Background())

	activity, _ := m.ActiveActivity(context.Background())
	if activity == nil || activity.ID != "restored-activity" {
		t.Error("Activity session must be restored from cache")
	}
	sleep, _ := m.ActiveSleep(context.Background())
	if sleep == nil || sleep.ID != "restored-sleep" {
		t.Error("Sleep session must be restored from cache")
	}
}

func TestManager_EngineLookupAdapter(t *testing.T) {
	m := NewManager(nil, NewMemoryRepository())

	// Без сессий оба сигнала пустые
	if signal, err := m.ActiveActivitySession(context.Background()); err != nil || signal != nil {
		t.Errorf("Expected (nil, nil) without sessions, got (%v, %v)", signal, err)
	}
	if signal, err := m.ActiveSleepSession(context.Background()); err != nil || signal != nil {
		t.Errorf("Expected (nil, nil) without sessions, got (%v, %v)", signal, err)
	}

	started, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: "swimming"})
	if err != nil {
		t.Fatalf("StartActivity failed: %v", err)
	}

	signal, err := m.ActiveActivitySession(context.Background())
	if err != nil || signal == nil {
		t.Fatalf("Expected activity signal, got (%v, %v)", signal, err)
	}
	if signal.Type != vitals.ActivitySwimming {
		t.Errorf("Signal type = %s, expected swimming", signal.Type)
	}
	if !signal.StartedAt.Equal(started.StartedAt) {
		t.Error("Signal StartedAt must match the session")
	}
}

func TestManager_ListSessions(t *testing.T) {
	m := NewManager(nil, NewMemoryRepository())

	for _, activityType := range []string{"running", "yoga"} {
		if _, err := m.StartActivity(context.Background(), &StartActivityRequest{Type: activityType}); err != nil {
			t.Fatalf("StartActivity failed: %v", err)
		}
		if _, err := m.StopActivity(context.Background()); err != nil {
			t.Fatalf("StopActivity failed: %v", err)
		}
	}

	list, err := m.ListSessions(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}

	if len(list.Activities) != 2 {
		t.Fatalf("Expected 2 archived activities, got %d", len(list.Activities))
	}
	// Архив отдается от новых к старым
	if list.Activities[0].Type != vitals.ActivityYoga {
		t.Errorf("Newest session first, got %s", list.Activities[0].Type)
	}
	if len(list.Sleep) != 0 {
		t.Errorf("Expected no sleep sessions, got %d", len(list.Sleep))
	}
}
