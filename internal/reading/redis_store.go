package reading

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wellband/bracelet/internal/engine"
)

// recentCap ограничивает длину списка последних показаний в Redis
const recentCap = 100

// latestReadingTTL - срок жизни ключа последнего показания.
// После остановки эмулятора ключ истекает и чтение уходит в хранилище.
const latestReadingTTL = 5 * time.Minute

// RedisStore реализует CacheStore для Redis (Infrastructure Layer)
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает новый экземпляр RedisStore
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

// ===== Ключи Redis =====

const (
	latestReadingKey  = "bracelet:reading:latest"
	recentReadingsKey = "bracelet:reading:recent"
)

func deviceStateKey(deviceID string) string {
	return fmt.Sprintf("bracelet:device:%s:state", deviceID)
}

// ===== Последнее показание =====

func (r *RedisStore) SetLatestReading(ctx context.Context, reading engine.Reading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	return r.client.Set(ctx, latestReadingKey, data, latestReadingTTL).Err()
}

func (r *RedisStore) GetLatestReading(ctx context.Context) (*engine.Reading, error) {
	data, err := r.client.Get(ctx, latestReadingKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest reading: %w", err)
	}

	var reading engine.Reading
	if err := json.Unmarshal([]byte(data), &reading); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reading: %w", err)
	}

	return &reading, nil
}

// ===== Лента последних показаний =====

func (r *RedisStore) PushRecentReading(ctx context.Context, reading engine.Reading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.LPush(ctx, recentReadingsKey, data)
	pipe.LTrim(ctx, recentReadingsKey, 0, recentCap-1)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisStore) GetRecentReadings(ctx context.Context, limit int) ([]engine.Reading, error) {
	if limit <= 0 || limit > recentCap {
		limit = recentCap
	}

	data, err := r.client.LRange(ctx, recentReadingsKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent readings: %w", err)
	}

	readings := make([]engine.Reading, 0, len(data))
	for _, item := range data {
		var reading engine.Reading
		if err := json.Unmarshal([]byte(item), &reading); err != nil {
			continue // Пропускаем поврежденные записи
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

// ===== Состояние устройства =====

func (r *RedisStore) SetDeviceState(ctx context.Context, deviceID string, state engine.DeviceState) error {
	// Сохраняем как Hash для эффективного обновления отдельных полей
	fields := map[string]interface{}{
		"battery_level": state.BatteryLevel,
		"connected":     state.Connected,
		"last_sync":     state.LastSync.Unix(),
	}

	return r.client.HSet(ctx, deviceStateKey(deviceID), fields).Err()
}

func (r *RedisStore) GetDeviceState(ctx context.Context, deviceID string) (*engine.DeviceState, error) {
	data, err := r.client.HGetAll(ctx, deviceStateKey(deviceID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get device state: %w", err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	state := &engine.DeviceState{}

	// Парсим значения из Hash
	if val, ok := data["battery_level"]; ok {
		state.BatteryLevel, _ = strconv.ParseFloat(val, 64)
	}
	if val, ok := data["connected"]; ok {
		state.Connected, _ = strconv.ParseBool(val)
	}
	if val, ok := data["last_sync"]; ok {
		timestamp, _ := strconv.ParseInt(val, 10, 64)
		state.LastSync = time.Unix(timestamp, 0)
	}

	return state, nil
}
