package reading

import (
	"context"
	"log"

	"github.com/wellband/bracelet/internal/engine"
)

// Recorder реализует engine.ReadingSink: каждое показание попадает в
// основное хранилище, а кэш обновляется по возможности
type Recorder struct {
	repository Repository
	cache      CacheStore // nil, если Redis не настроен
	deviceID   string
}

// NewRecorder создает новый экземпляр Recorder
func NewRecorder(repository Repository, cache CacheStore, deviceID string) *Recorder {
	return &Recorder{
		repository: repository,
		cache:      cache,
		deviceID:   deviceID,
	}
}

func (r *Recorder) PersistReading(ctx context.Context, reading engine.Reading) error {
	if err := r.repository.SaveReading(ctx, reading); err != nil {
		return err
	}

	r.mirrorReading(ctx, reading)
	return nil
}

func (r *Recorder) PersistDeviceState(ctx context.Context, state engine.DeviceState) error {
	if err := r.repository.SaveDeviceState(ctx, r.deviceID, state); err != nil {
		return err
	}

	r.mirrorDeviceState(ctx, state)
	return nil
}

// Ошибки кэша не прерывают запись: основное хранилище уже обновлено

func (r *Recorder) mirrorReading(ctx context.Context, reading engine.Reading) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetLatestReading(ctx, reading); err != nil {
		log.Printf("[WARN] Failed to cache latest reading: %v", err)
	}
	if err := r.cache.PushRecentReading(ctx, reading); err != nil {
		log.Printf("[WARN] Failed to cache recent reading: %v", err)
	}
}

func (r *Recorder) mirrorDeviceState(ctx context.Context, state engine.DeviceState) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetDeviceState(ctx, r.deviceID, state); err != nil {
		log.Printf("[WARN] Failed to cache device state: %v", err)
	}
}
