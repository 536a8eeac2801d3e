package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

func newUserFixture(t *testing.T) (*UserService, *stubIdentityRepo, *domain.Identity, *domain.Identity) {
	t.Helper()
	identities := newStubIdentityRepo()
	settings := NewSettingsService(newStubSettingsRepo(), time.Minute, zerolog.Nop())
	svc := NewUserService(identities, settings, &stubAudit{})

	root, err := identities.Create(context.Background(), &domain.Identity{Username: "sysroot", Role: domain.RoleRoot})
	if err != nil {
		t.Fatalf("seed root: %v", err)
	}
	admin, err := identities.Create(context.Background(), &domain.Identity{Username: "supervisor", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return svc, identities, root, admin
}

func TestUserService_List_RequiresAdmin(t *testing.T) {
	svc, _, _, admin := newUserFixture(t)

	head := &domain.Identity{ID: "h1", Username: "405857004", Role: domain.RoleHead}
	if _, err := svc.List(context.Background(), head); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for head, got %v", err)
	}

	users, err := svc.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if len(u.Capabilities) == 0 {
			t.Fatalf("expected capabilities recomputed on read: %+v", u)
		}
	}
}

func TestUserService_Create_RootRoleRequiresRoot(t *testing.T) {
	svc, _, root, admin := newUserFixture(t)

	if _, err := svc.Create(context.Background(), admin, "newroot", "Str0ngpass", domain.RoleRoot); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	created, err := svc.Create(context.Background(), root, "newroot", "Str0ngpass", domain.RoleRoot)
	if err != nil {
		t.Fatalf("root create failed: %v", err)
	}
	if created.Role != domain.RoleRoot {
		t.Fatalf("unexpected role: %s", created.Role)
	}
}

func TestUserService_Create_DualRoleAdminGetsBothCapabilities(t *testing.T) {
	svc, _, root, _ := newUserFixture(t)

	created, err := svc.Create(context.Background(), root, "410302772", "Str0ngpass", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	caps := map[domain.Capability]bool{}
	for _, c := range created.Capabilities {
		caps[c] = true
	}
	if !caps[domain.CapabilityHead] || !caps[domain.CapabilityAdmin] {
		t.Fatalf("dual-role admin must persist both capabilities: %v", created.Capabilities)
	}
}

func TestUserService_Update_ProtectedAccountRules(t *testing.T) {
	svc, identities, root, admin := newUserFixture(t)

	protected, err := identities.Create(context.Background(), &domain.Identity{
		Username: "treasurer", Role: domain.RoleAdmin, IsProtected: true,
	})
	if err != nil {
		t.Fatalf("seed protected: %v", err)
	}

	phone := "0790000000"
	if _, err := svc.Update(context.Background(), admin, protected.ID, ports.UserUpdate{Phone: &phone}); !errors.Is(err, domain.ErrProtectedAccount) {
		t.Fatalf("expected protected-account error, got %v", err)
	}
	if _, err := svc.Update(context.Background(), admin, root.ID, ports.UserUpdate{Phone: &phone}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden editing root, got %v", err)
	}
	if _, err := svc.Update(context.Background(), root, protected.ID, ports.UserUpdate{Phone: &phone}); err != nil {
		t.Fatalf("root must edit protected accounts: %v", err)
	}
}

func TestUserService_Update_RoleChangeRecomputesCapabilities(t *testing.T) {
	svc, identities, root, _ := newUserFixture(t)

	head, err := identities.Create(context.Background(), &domain.Identity{Username: "410302772", Role: domain.RoleHead})
	if err != nil {
		t.Fatalf("seed head: %v", err)
	}

	role := domain.RoleAdmin
	updated, err := svc.Update(context.Background(), root, head.ID, ports.UserUpdate{Role: &role})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	caps := map[domain.Capability]bool{}
	for _, c := range updated.Capabilities {
		caps[c] = true
	}
	// Numeric username promoted to admin becomes dual-role.
	if !caps[domain.CapabilityHead] || !caps[domain.CapabilityAdmin] {
		t.Fatalf("expected dual-role capability set, got %v", updated.Capabilities)
	}
}

func TestUserService_Delete_Rules(t *testing.T) {
	svc, identities, root, admin := newUserFixture(t)

	if err := svc.Delete(context.Background(), admin, admin.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("self-delete must be forbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), admin, root.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin deleting root must be forbidden, got %v", err)
	}

	head, _ := identities.Create(context.Background(), &domain.Identity{Username: "405857004", Role: domain.RoleHead})
	if err := svc.Delete(context.Background(), admin, head.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := identities.FindByID(context.Background(), head.ID); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected identity removed, got %v", err)
	}
}
