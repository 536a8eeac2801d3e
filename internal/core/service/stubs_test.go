package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

type stubIdentityRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]*domain.Identity
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*domain.Identity)}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

func (r *stubIdentityRepo) FindByUsername(_ context.Context, username string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byID {
		if i.Username == username {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.byID[id]; ok {
		return cloneIdentity(i), nil
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byID {
		if i.Username == identity.Username {
			return nil, domain.ErrIdentityExists
		}
	}
	copy := cloneIdentity(identity)
	if copy.ID == "" {
		r.nextID++
		copy.ID = "id-" + strconv.Itoa(r.nextID)
	}
	r.byID[copy.ID] = cloneIdentity(copy)
	return copy, nil
}

func (r *stubIdentityRepo) Update(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[identity.ID]; !ok {
		return nil, domain.ErrIdentityNotFound
	}
	r.byID[identity.ID] = cloneIdentity(identity)
	return cloneIdentity(identity), nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrIdentityNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubIdentityRepo) List(_ context.Context) ([]*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Identity, 0, len(r.byID))
	for _, i := range r.byID {
		out = append(out, cloneIdentity(i))
	}
	return out, nil
}

type stubHouseholdRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Household
}

func newStubHouseholdRepo() *stubHouseholdRepo {
	return &stubHouseholdRepo{byID: make(map[string]*domain.Household)}
}

func (r *stubHouseholdRepo) FindByNationalID(_ context.Context, nationalID string) (*domain.Household, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.byID[nationalID]; ok {
		clone := *h
		return &clone, nil
	}
	return nil, domain.ErrHouseholdNotFound
}

func (r *stubHouseholdRepo) Create(_ context.Context, household *domain.Household) (*domain.Household, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *household
	if clone.ID == "" {
		clone.ID = "hh-" + clone.NationalID
	}
	r.byID[clone.NationalID] = &clone
	out := clone
	return &out, nil
}

type stubSettingsRepo struct {
	mu       sync.Mutex
	settings domain.Settings
	loadErr  error
	loads    int
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{settings: domain.DefaultSettings()}
}

func (r *stubSettingsRepo) Load(_ context.Context) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.loadErr != nil {
		return domain.Settings{}, r.loadErr
	}
	return r.settings, nil
}

func (r *stubSettingsRepo) Save(_ context.Context, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}

// stubLockouts is an in-memory LockoutStore mirroring the Redis
// implementation's semantics, including the no-extension rule.
type stubLockouts struct {
	mu     sync.Mutex
	counts map[string]int
	locks  map[string]time.Time
}

func newStubLockouts() *stubLockouts {
	return &stubLockouts{counts: make(map[string]int), locks: make(map[string]time.Time)}
}

func (l *stubLockouts) RecordFailure(_ context.Context, username string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[username]++
	return l.counts[username], nil
}

func (l *stubLockouts) Reset(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counts, username)
	return nil
}

func (l *stubLockouts) Lock(_ context.Context, username string, duration time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.locks[username]; ok && until.After(time.Now()) {
		return nil
	}
	l.locks[username] = time.Now().Add(duration)
	return nil
}

func (l *stubLockouts) LockedFor(_ context.Context, username string) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	until, ok := l.locks[username]
	if !ok {
		return 0, nil
	}
	left := time.Until(until)
	if left < 0 {
		return 0, nil
	}
	return left, nil
}

type stubAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(entry domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *stubAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Action
	}
	return out
}
