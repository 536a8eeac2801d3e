package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

// LockoutConfig tunes the failed-login state machine.
type LockoutConfig struct {
	// MaxAttempts is the failure count that triggers a lockout.
	MaxAttempts int
	// LockoutDuration is how long a locked credential stays locked.
	LockoutDuration time.Duration
	// WarnAfter is the remaining-attempt count at or below which failures
	// start carrying an explicit "N attempts remaining" classification.
	WarnAfter int
}

// DefaultLockoutConfig matches the historical policy: five attempts,
// fifteen-minute lock, warnings on the last two attempts.
func DefaultLockoutConfig() LockoutConfig {
	return LockoutConfig{
		MaxAttempts:     5,
		LockoutDuration: 15 * time.Minute,
		WarnAfter:       2,
	}
}

// AuthService implements login with server-authoritative lockout state,
// household head registration, and password changes.
type AuthService struct {
	identities ports.IdentityRepository
	households ports.HouseholdRepository
	lockouts   ports.LockoutStore
	settings   ports.SettingsService
	audit      ports.AuditRecorder
	lockout    LockoutConfig
	log        zerolog.Logger
}

func NewAuthService(
	identities ports.IdentityRepository,
	households ports.HouseholdRepository,
	lockouts ports.LockoutStore,
	settings ports.SettingsService,
	audit ports.AuditRecorder,
	lockout LockoutConfig,
	log zerolog.Logger,
) *AuthService {
	if lockout.MaxAttempts <= 0 {
		lockout = DefaultLockoutConfig()
	}
	return &AuthService{
		identities: identities,
		households: households,
		lockouts:   lockouts,
		settings:   settings,
		audit:      audit,
		lockout:    lockout,
		log:        log,
	}
}

// Login verifies credentials and drives the lockout state machine. All
// failure paths return a *domain.AuthError so callers can render a
// classified message; the credential's existence is never revealed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// A lock rejects the attempt regardless of password correctness and
	// is never extended by further attempts.
	remaining, err := s.lockouts.LockedFor(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Msg("lockout lookup failed, continuing without lock state")
	}
	if remaining > 0 {
		return nil, &domain.AuthError{Kind: domain.KindLockedOut, LockoutMinutes: ceilMinutes(remaining)}
	}

	identity, err := s.identities.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, fmt.Errorf("login: %w", err)
	}

	if identity == nil || bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, s.recordFailure(ctx, username)
	}

	if err := s.lockouts.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset lockout counter after successful login")
	}

	s.audit.Record(domain.AuditEntry{Username: username, Action: domain.AuditLogin, At: time.Now().UTC()})

	identity.Capabilities = identity.Classify().Set()
	return identity, nil
}

// recordFailure increments the counter and classifies the resulting
// failure: lockout at the maximum, a remaining-attempts warning near it,
// generic invalid credentials otherwise. Unknown usernames feed the same
// counter so responses never betray which accounts exist.
func (s *AuthService) recordFailure(ctx context.Context, username string) error {
	count, err := s.lockouts.RecordFailure(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
		return domain.ErrInvalidCredentials
	}

	s.audit.Record(domain.AuditEntry{Username: username, Action: domain.AuditLoginFailed, At: time.Now().UTC()})

	if count >= s.lockout.MaxAttempts {
		if err := s.lockouts.Lock(ctx, username, s.lockout.LockoutDuration); err != nil {
			s.log.Error().Err(err).Msg("failed to set lockout marker")
		}
		s.audit.Record(domain.AuditEntry{Username: username, Action: domain.AuditLockout, At: time.Now().UTC()})
		return &domain.AuthError{Kind: domain.KindLockedOut, LockoutMinutes: ceilMinutes(s.lockout.LockoutDuration)}
	}

	if left := s.lockout.MaxAttempts - count; left <= s.lockout.WarnAfter {
		return &domain.AuthError{Kind: domain.KindRemainingAttempts, RemainingAttempts: left}
	}
	return domain.ErrInvalidCredentials
}

// Register creates a head account together with its household record.
// The password is validated against the current policy before anything
// is persisted.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Identity, error) {
	if input.DisplayName == "" || input.Password == "" || !domain.IsNationalID(input.NationalID) {
		return nil, domain.ErrInvalidCredentials
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("register: load settings: %w", err)
	}
	if violations := domain.ValidatePassword(input.Password, settings.PasswordPolicy); len(violations) > 0 {
		return nil, &domain.PolicyError{Violations: violations}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		Username:     input.NationalID,
		PasswordHash: string(hash),
		Role:         domain.RoleHead,
		Phone:        input.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	identity.Capabilities = identity.Classify().Set()

	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	if _, err := s.households.Create(ctx, &domain.Household{
		NationalID:  input.NationalID,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return nil, fmt.Errorf("register: create household: %w", err)
	}

	s.audit.Record(domain.AuditEntry{Username: input.NationalID, Action: domain.AuditRegister, At: now})
	return created, nil
}

// ChangePassword verifies the current password, checks the replacement
// against the live policy, and stores the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, identityID, current, next string) error {
	identity, err := s.identities.FindByID(ctx, identityID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return fmt.Errorf("change password: load settings: %w", err)
	}
	if violations := domain.ValidatePassword(next, settings.PasswordPolicy); len(violations) > 0 {
		return &domain.PolicyError{Violations: violations}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	identity.PasswordHash = string(hash)
	identity.UpdatedAt = time.Now().UTC()
	if _, err := s.identities.Update(ctx, identity); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{Username: identity.Username, Action: domain.AuditPasswordChange, At: identity.UpdatedAt})
	return nil
}

func ceilMinutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}
