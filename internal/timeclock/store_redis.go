// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeclock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/constants"
)

// RedisActiveTimerStore implements the ActiveTimerStore interface on Redis.
//
// # Keys
//
// One key per account: "clock:active:<userID>" holding the open entry ID.
// The TTL is set by the caller to the maximum shift duration, so a marker
// whose shift was never closed disappears on its own.
type RedisActiveTimerStore struct {
	client *redis.Client
}

// NewActiveTimerStore creates a new Redis implementation of the ActiveTimerStore.
func NewActiveTimerStore(client *redis.Client) *RedisActiveTimerStore {
	return &RedisActiveTimerStore{client: client}
}

// timerKey builds the Redis key for an account's active-timer marker.
func timerKey(userID string) string {
	return constants.RedisPrefixActiveTimer + userID
}

// Set registers the open entry ID for an account with a TTL.
func (store *RedisActiveTimerStore) Set(ctx context.Context, userID, entryID string, ttl time.Duration) error {
	if err := store.client.Set(ctx, timerKey(userID), entryID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_timer_set_failed: %w", err)
	}
	return nil
}

// Get returns the open entry ID, or [apperr.NotFound] when no marker exists.
func (store *RedisActiveTimerStore) Get(ctx context.Context, userID string) (string, error) {
	entryID, err := store.client.Get(ctx, timerKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Active timer")
		}
		return "", fmt.Errorf("redis_timer_get_failed: %w", err)
	}
	return entryID, nil
}

// Clear removes the account's marker. Clearing a missing marker is a no-op.
func (store *RedisActiveTimerStore) Clear(ctx context.Context, userID string) error {
	if err := store.client.Del(ctx, timerKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_timer_clear_failed: %w", err)
	}
	return nil
}
