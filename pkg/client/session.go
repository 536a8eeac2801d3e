package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SessionState is the resolver's belief about who is logged in. The
// explicit Unresolved state replaces any timer-based settling: consumers
// wait for a real state transition, never a debounce.
type SessionState int

const (
	// Unresolved means no identity round trip has completed yet.
	Unresolved SessionState = iota
	// Anonymous means the server confirmed there is no session.
	Anonymous
	// Authenticated means the server returned an identity.
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unresolved"
	}
}

// Snapshot is an immutable view of the resolver's state. Err is only set
// when a fetch failed outright; a confirmed logged-out session is the
// Anonymous state, not an error.
type Snapshot struct {
	State    SessionState
	Identity *Identity
	Err      error
}

// Resolved reports whether the identity round trip has completed.
func (s Snapshot) Resolved() bool {
	return s.State != Unresolved
}

const defaultStaleAfter = 5 * time.Minute

// Resolver maintains the single cached identity record. All mutation
// funnels through Login, Logout, and Refresh; every write is stamped
// with a monotonic version so a slow background refresh can never
// clobber a newer login or logout (last write wins, explicitly).
type Resolver struct {
	client     *Client
	staleAfter time.Duration
	log        zerolog.Logger

	mu           sync.Mutex
	snap         Snapshot
	version      uint64
	fetchedAt    time.Time
	extraRefresh bool
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithStaleAfter overrides the 5 minute staleness window.
func WithStaleAfter(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.staleAfter = d }
}

// WithLogger attaches a logger for retry and cache events.
func WithLogger(log zerolog.Logger) ResolverOption {
	return func(r *Resolver) { r.log = log }
}

// NewResolver builds a Resolver over the given client.
func NewResolver(c *Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:     c,
		staleAfter: defaultStaleAfter,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns the current cached state without any network call.
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Current returns the cached snapshot when it is fresh, refreshing it
// over the network otherwise.
func (r *Resolver) Current(ctx context.Context) Snapshot {
	r.mu.Lock()
	fresh := r.snap.Resolved() && time.Since(r.fetchedAt) < r.staleAfter
	snap := r.snap
	r.mu.Unlock()

	if fresh {
		return snap
	}
	return r.Refresh(ctx)
}

// Refresh fetches the identity from the server, retrying once on a
// transient transport failure. If the round trip still leaves the state
// unresolved, exactly one further refresh is attempted; this covers a
// session cookie landing in the jar just after the first load started.
func (r *Resolver) Refresh(ctx context.Context) Snapshot {
	snap := r.fetchOnce(ctx)

	if !snap.Resolved() {
		r.mu.Lock()
		again := !r.extraRefresh
		r.extraRefresh = true
		r.mu.Unlock()
		if again {
			snap = r.fetchOnce(ctx)
		}
	}
	return snap
}

func (r *Resolver) fetchOnce(ctx context.Context) Snapshot {
	r.mu.Lock()
	began := r.version
	r.mu.Unlock()

	identity, err := r.client.Me(ctx)
	if err != nil && isTransient(err) {
		r.log.Debug().Err(err).Msg("identity fetch failed, retrying once")
		identity, err = r.client.Me(ctx)
	}

	snap := Snapshot{}
	switch {
	case err != nil:
		snap.State = Unresolved
		snap.Err = err
	case identity == nil:
		snap.State = Anonymous
	default:
		snap.State = Authenticated
		snap.Identity = identity
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.version != began {
		// A login or logout landed while this fetch was in flight.
		// The newer write wins; discard the stale result.
		r.log.Debug().Msg("discarding stale identity fetch")
		return r.snap
	}
	r.version++
	r.snap = snap
	r.fetchedAt = time.Now()
	return snap
}

// Login authenticates and writes the returned identity straight into
// the cache without an extra round trip. On failure the cache is left
// untouched and the classified error is returned for display.
func (r *Resolver) Login(ctx context.Context, username, password string) (*Identity, error) {
	identity, err := r.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.version++
	r.snap = Snapshot{State: Authenticated, Identity: identity}
	r.fetchedAt = time.Now()
	r.mu.Unlock()

	return identity, nil
}

// Logout clears the cached identity unconditionally, then revokes the
// server session. The local clear happens even when the network call
// fails: server-side expiry is independent, and a client stuck showing
// a dead session is worse than a spurious logout.
func (r *Resolver) Logout(ctx context.Context) error {
	r.mu.Lock()
	r.version++
	r.snap = Snapshot{State: Anonymous}
	r.fetchedAt = time.Now()
	r.mu.Unlock()

	if err := r.client.Logout(ctx); err != nil {
		r.log.Warn().Err(err).Msg("server logout failed, local session cleared anyway")
		return err
	}
	return nil
}
