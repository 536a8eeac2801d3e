package ports

import (
	"context"
	"time"
)

// LockoutStore tracks failed login attempts per credential. The state is
// server-authoritative; clients only ever observe it through classified
// login errors.
type LockoutStore interface {
	// RecordFailure increments the failure counter and returns the new count.
	RecordFailure(ctx context.Context, username string) (int, error)
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, username string) error
	// Lock sets the lockout marker. A marker that already exists keeps its
	// original expiry; repeated failures never extend a lock.
	Lock(ctx context.Context, username string, duration time.Duration) error
	// LockedFor returns the remaining lockout duration, or zero when the
	// credential is not locked.
	LockedFor(ctx context.Context, username string) (time.Duration, error)
}
