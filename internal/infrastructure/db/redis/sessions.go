package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// SessionStore keeps server-side session records in Redis so a logout
// revokes the session even while its cookie is still circulating.
// Key: session:<id> → identity id, with the session TTL.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Open creates a new session for the identity and returns its id.
func (s *SessionStore) Open(ctx context.Context, identityID string, ttl time.Duration) (string, error) {
	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(sessionID), identityID, ttl).Err(); err != nil {
		return "", fmt.Errorf("session open: %w", err)
	}
	return sessionID, nil
}

// Resolve maps a session id back to its identity id. A missing key means
// the session expired or was revoked.
func (s *SessionStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	identityID, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrSessionExpired
	}
	if err != nil {
		return "", fmt.Errorf("session resolve: %w", err)
	}
	return identityID, nil
}

// Revoke deletes the session record. Revoking an unknown session is not
// an error; logout stays idempotent.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}
