package reading

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wellband/bracelet/internal/engine"
)

// MemoryRepository хранит телеметрию в памяти.
// Используется в тестах и при STORAGE_DRIVER=memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	readings  []engine.Reading
	devices   map[string]engine.DeviceState
	summaries map[string]DailySummary
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		devices:   make(map[string]engine.DeviceState),
		summaries: make(map[string]DailySummary),
	}
}

// Close ничего не освобождает, реализует Repository
func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) SaveReading(ctx context.Context, reading engine.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readings = append(r.readings, reading)
	return nil
}

func (r *MemoryRepository) LatestReading(ctx context.Context) (*engine.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.readings) == 0 {
		return nil, nil
	}

	reading := r.readings[len(r.readings)-1]
	return &reading, nil
}

func (r *MemoryRepository) RecentReadings(ctx context.Context, limit int) ([]engine.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var readings []engine.Reading
	for i := len(r.readings) - 1; i >= 0 && len(readings) < limit; i-- {
		readings = append(readings, r.readings[i])
	}

	return readings, nil
}

func (r *MemoryRepository) ListReadings(ctx context.Context, from, to time.Time, limit int) ([]engine.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Показания добавляются в хронологическом порядке
	var readings []engine.Reading
	for _, reading := range r.readings {
		if reading.Timestamp.Before(from) || reading.Timestamp.After(to) {
			continue
		}
		readings = append(readings, reading)
		if len(readings) >= limit {
			break
		}
	}

	return readings, nil
}

func (r *MemoryRepository) SaveDeviceState(ctx context.Context, deviceID string, state engine.DeviceState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.devices[deviceID] = state
	return nil
}

func (r *MemoryRepository) DeviceState(ctx context.Context, deviceID string) (*engine.DeviceState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.devices[deviceID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (r *MemoryRepository) SaveDailySummary(ctx context.Context, summary DailySummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summaries[summary.Date.Format(dateLayout)] = summary
	return nil
}

func (r *MemoryRepository) ListDailySummaries(ctx context.Context, days int) ([]DailySummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]DailySummary, 0, len(r.summaries))
	for _, summary := range r.summaries {
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date.After(summaries[j].Date)
	})

	if len(summaries) > days {
		summaries = summaries[:days]
	}

	return summaries, nil
}

func (r *MemoryRepository) CountDailySummaries(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.summaries), nil
}
