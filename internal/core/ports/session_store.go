package ports

import (
	"context"
	"time"
)

// SessionStore manages server-side session records. Sessions are opaque to
// clients; revoking one invalidates the cookie that references it.
type SessionStore interface {
	Open(ctx context.Context, identityID string, ttl time.Duration) (sessionID string, err error)
	Resolve(ctx context.Context, sessionID string) (identityID string, err error)
	Revoke(ctx context.Context, sessionID string) error
}
