package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

// UserService implements administrative account management with the
// protected-account and root-only rules enforced server-side: a non-root
// admin never touches a root account, a protected account, or the root
// role itself.
type UserService struct {
	identities ports.IdentityRepository
	settings   ports.SettingsService
	audit      ports.AuditRecorder
}

func NewUserService(identities ports.IdentityRepository, settings ports.SettingsService, audit ports.AuditRecorder) *UserService {
	return &UserService{identities: identities, settings: settings, audit: audit}
}

// List returns every account. Admin capability required.
func (s *UserService) List(ctx context.Context, actor *domain.Identity) ([]*domain.Identity, error) {
	if !actorIsAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	identities, err := s.identities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, identity := range identities {
		identity.Capabilities = identity.Classify().Set()
	}
	return identities, nil
}

// Create registers a new account with an explicit role. Creating a root
// account requires root; the password must satisfy the live policy.
func (s *UserService) Create(ctx context.Context, actor *domain.Identity, username, password, role string) (*domain.Identity, error) {
	if !actorIsAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	if role != domain.RoleHead && role != domain.RoleAdmin && role != domain.RoleRoot {
		return nil, domain.ErrInvalidCredentials
	}
	if role == domain.RoleRoot && !actor.Classify().IsRoot {
		return nil, domain.ErrForbidden
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("create user: load settings: %w", err)
	}
	if violations := domain.ValidatePassword(password, settings.PasswordPolicy); len(violations) > 0 {
		return nil, &domain.PolicyError{Violations: violations}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	identity.Capabilities = identity.Classify().Set()

	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		Username: actor.Username,
		Action:   domain.AuditUserEdit,
		Detail:   "created " + username,
		At:       now,
	})
	return created, nil
}

// Update edits an account. Editing a root or protected account, or
// promoting to root, requires root.
func (s *UserService) Update(ctx context.Context, actor *domain.Identity, targetID string, update ports.UserUpdate) (*domain.Identity, error) {
	if !actorIsAdmin(actor) {
		return nil, domain.ErrForbidden
	}

	target, err := s.identities.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEditable(actor, target); err != nil {
		return nil, err
	}

	if update.Role != nil {
		role := *update.Role
		if role != domain.RoleHead && role != domain.RoleAdmin && role != domain.RoleRoot {
			return nil, domain.ErrInvalidCredentials
		}
		if role == domain.RoleRoot && !actor.Classify().IsRoot {
			return nil, domain.ErrForbidden
		}
		target.Role = role
	}
	if update.Phone != nil {
		target.Phone = *update.Phone
	}
	if update.IsProtected != nil {
		if !actor.Classify().IsRoot {
			return nil, domain.ErrForbidden
		}
		target.IsProtected = *update.IsProtected
	}
	if update.Password != nil {
		settings, err := s.settings.Current(ctx)
		if err != nil {
			return nil, fmt.Errorf("update user: load settings: %w", err)
		}
		if violations := domain.ValidatePassword(*update.Password, settings.PasswordPolicy); len(violations) > 0 {
			return nil, &domain.PolicyError{Violations: violations}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		target.PasswordHash = string(hash)
	}

	// Promotion or demotion recomputes the stored capability set.
	target.Capabilities = target.Classify().Set()
	target.UpdatedAt = time.Now().UTC()

	updated, err := s.identities.Update(ctx, target)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		Username: actor.Username,
		Action:   domain.AuditUserEdit,
		Detail:   "updated " + target.Username,
		At:       target.UpdatedAt,
	})
	return updated, nil
}

// Delete removes an account under the same protection rules as Update.
// An account never deletes itself.
func (s *UserService) Delete(ctx context.Context, actor *domain.Identity, targetID string) error {
	if !actorIsAdmin(actor) {
		return domain.ErrForbidden
	}
	if actor.ID == targetID {
		return domain.ErrForbidden
	}

	target, err := s.identities.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.checkEditable(actor, target); err != nil {
		return err
	}

	if err := s.identities.Delete(ctx, targetID); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{
		Username: actor.Username,
		Action:   domain.AuditUserDelete,
		Detail:   "deleted " + target.Username,
		At:       time.Now().UTC(),
	})
	return nil
}

func (s *UserService) checkEditable(actor, target *domain.Identity) error {
	if actor.Classify().IsRoot {
		return nil
	}
	if target.Role == domain.RoleRoot {
		return domain.ErrForbidden
	}
	if target.IsProtected {
		return domain.ErrProtectedAccount
	}
	return nil
}

func actorIsAdmin(actor *domain.Identity) bool {
	return actor != nil && actor.Classify().IsAdmin
}
