package session

import (
	"context"

	"github.com/wellband/bracelet/internal/engine"
)

// Manager реализует engine.SessionLookup: движок видит активные сессии
// как сигналы без деталей архива.

func (m *Manager) ActiveActivitySession(ctx context.Context) (*engine.ActivitySignal, error) {
	session, err := m.ActiveActivity(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	return &engine.ActivitySignal{Type: session.Type, StartedAt: session.StartedAt}, nil
}

func (m *Manager) ActiveSleepSession(ctx context.Context) (*engine.SleepSignal, error) {
	session, err := m.ActiveSleep(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	return &engine.SleepSignal{StartedAt: session.StartedAt}, nil
}
