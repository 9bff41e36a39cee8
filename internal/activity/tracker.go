// Package activity keeps per-client last-seen timestamps and lifetime rep
// totals in Redis, so they outlive the in-memory engine state.
package activity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	lastSeenKey = "squatcoach||client-last-seen"
	repsKey     = "squatcoach||client-reps"
)

type Tracker struct {
	redisClient *redis.Client
}

func NewTracker(redisClient *redis.Client) *Tracker {
	return &Tracker{
		redisClient: redisClient,
	}
}

// Touch stores at as the client's last activity.
func (t *Tracker) Touch(ctx context.Context, clientID string, at time.Time) error {
	if err := t.redisClient.HSet(ctx, lastSeenKey, clientID, at.Unix()).Err(); err != nil {
		return fmt.Errorf("set last seen: %w", err)
	}
	return nil
}

// AddReps increments the client's lifetime rep total and returns the new value.
func (t *Tracker) AddReps(ctx context.Context, clientID string, reps int) (int64, error) {
	total, err := t.redisClient.HIncrBy(ctx, repsKey, clientID, int64(reps)).Result()
	if err != nil {
		return 0, fmt.Errorf("incr reps: %w", err)
	}
	return total, nil
}

// LastSeen returns false if the client was never seen.
func (t *Tracker) LastSeen(ctx context.Context, clientID string) (time.Time, bool, error) {
	val, err := t.redisClient.HGet(ctx, lastSeenKey, clientID).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get last seen: %w", err)
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last seen [%s]: %w", val, err)
	}
	return time.Unix(unix, 0), true, nil
}

func (t *Tracker) TotalReps(ctx context.Context, clientID string) (int64, error) {
	val, err := t.redisClient.HGet(ctx, repsKey, clientID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get total reps: %w", err)
	}
	return val, nil
}

// KnownClients counts every client ever seen, across restarts.
func (t *Tracker) KnownClients(ctx context.Context) (int64, error) {
	count, err := t.redisClient.HLen(ctx, lastSeenKey).Result()
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}
