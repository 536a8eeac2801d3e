package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// failureWindow bounds how long a failure streak survives without new
// failures before the counter quietly expires.
const failureWindow = time.Hour

// LockoutStore tracks per-credential failed login attempts in Redis.
// Keys: fail:<username> (counter), lock:<username> (marker with TTL).
type LockoutStore struct {
	client *redis.Client
}

// NewLockoutStore creates a LockoutStore wrapping the given Redis client.
func NewLockoutStore(client *redis.Client) *LockoutStore {
	return &LockoutStore{client: client}
}

// RecordFailure increments the failure counter and returns the new count.
// The window TTL is set only on the first failure of a streak.
func (s *LockoutStore) RecordFailure(ctx context.Context, username string) (int, error) {
	count, err := s.client.Incr(ctx, failKey(username)).Result()
	if err != nil {
		return 0, fmt.Errorf("lockout incr: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, failKey(username), failureWindow).Err(); err != nil {
			return int(count), fmt.Errorf("lockout expire: %w", err)
		}
	}
	return int(count), nil
}

// Reset clears the failure counter after a successful login.
func (s *LockoutStore) Reset(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, failKey(username)).Err(); err != nil {
		return fmt.Errorf("lockout reset: %w", err)
	}
	return nil
}

// Lock sets the lockout marker. SetNX keeps the original expiry when a
// marker already exists, so repeated failures never extend a lock.
func (s *LockoutStore) Lock(ctx context.Context, username string, duration time.Duration) error {
	if err := s.client.SetNX(ctx, lockKey(username), "1", duration).Err(); err != nil {
		return fmt.Errorf("lockout set: %w", err)
	}
	return nil
}

// LockedFor returns the remaining lockout duration, zero when unlocked.
func (s *LockoutStore) LockedFor(ctx context.Context, username string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, lockKey(username)).Result()
	if err != nil {
		return 0, fmt.Errorf("lockout ttl: %w", err)
	}
	// -2 means no key, -1 means no expiry; neither counts as locked.
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

func failKey(username string) string {
	return "fail:" + username
}

func lockKey(username string) string {
	return "lock:" + username
}
