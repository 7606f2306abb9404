package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Ключи зеркала: устройство одно, активная сессия каждого вида одна
const (
	activeActivityKey = "bracelet:session:activity:active"
	activeSleepKey    = "bracelet:session:sleep:active"
)

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

func (r *RedisStore) SetActiveActivity(ctx context.Context, session *ActivitySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal activity session: %w", err)
	}
	return r.client.Set(ctx, activeActivityKey, data, 0).Err()
}

func (r *RedisStore) GetActiveActivity(ctx context.Context) (*ActivitySession, error) {
	data, err := r.client.Get(ctx, activeActivityKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get activity session: %w", err)
	}

	var session ActivitySession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity session: %w", err)
	}

	return &session, nil
}

func (r *RedisStore) ClearActiveActivity(ctx context.Context) error {
	return r.client.Del(ctx, activeActivityKey).Err()
}

func (r *RedisStore) SetActiveSleep(ctx context.Context, session *SleepSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal sleep session: %w", err)
	}
	return r.client.Set(ctx, activeSleepKey, data, 0).Err()
}

func (r *RedisStore) GetActiveSleep(ctx context.Context) (*SleepSession, error) {
	data, err := r.client.Get(ctx, activeSleepKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sleep session: %w", err)
	}

	var session SleepSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sleep session: %w", err)
	}

	return &session, nil
}

func (r *RedisStore) ClearActiveSleep(ctx context.Context) error {
	return r.client.Del(ctx, activeSleepKey).Err()
}
