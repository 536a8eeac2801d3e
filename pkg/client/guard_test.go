package client

import "testing"

func authSnap(role, username string) Snapshot {
	return Snapshot{
		State:    Authenticated,
		Identity: &Identity{ID: "id-1", Username: username, Role: role},
	}
}

func TestGuard_UnresolvedAlwaysHoldsOnSpinner(t *testing.T) {
	snap := Snapshot{State: Unresolved}
	if d := Guard(snap); d != ShowSpinner {
		t.Fatalf("unguarded route: expected spinner, got %v", d)
	}
	if d := Guard(snap, CapabilityAdmin); d != ShowSpinner {
		t.Fatalf("guarded route: expected spinner, got %v", d)
	}
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	snap := Snapshot{State: Anonymous}
	if d := Guard(snap, CapabilityHead); d != RedirectLogin {
		t.Fatalf("expected redirect to login, got %v", d)
	}
}

func TestGuard_NoRequirementRendersForAnySession(t *testing.T) {
	if d := Guard(authSnap(RoleHead, "405857004")); d != Render {
		t.Fatalf("expected render, got %v", d)
	}
}

func TestGuard_MissingCapabilityRedirectsToNotFound(t *testing.T) {
	if d := Guard(authSnap(RoleHead, "405857004"), CapabilityAdmin); d != RedirectNotFound {
		t.Fatalf("expected not-found, got %v", d)
	}
}

func TestGuard_DualRoleAdminReachesBothScopes(t *testing.T) {
	snap := authSnap(RoleAdmin, "410302772")

	if d := Guard(snap, CapabilityHead); d != Render {
		t.Fatalf("dual-role admin must reach household routes, got %v", d)
	}
	if d := Guard(snap, CapabilityAdmin); d != Render {
		t.Fatalf("dual-role admin must reach admin routes, got %v", d)
	}
}

func TestGuard_RootIsNotDualRole(t *testing.T) {
	snap := authSnap(RoleRoot, "99999999")

	if d := Guard(snap, CapabilityHead); d != RedirectNotFound {
		t.Fatalf("numeric-username root must not gain head capability, got %v", d)
	}
	if d := Guard(snap, CapabilityAdmin); d != Render {
		t.Fatalf("root must reach admin routes, got %v", d)
	}
	if d := Guard(snap, CapabilityRoot); d != Render {
		t.Fatalf("root must reach root routes, got %v", d)
	}
}

func TestGuard_AnyOfRequiredCapabilitiesAdmits(t *testing.T) {
	if d := Guard(authSnap(RoleHead, "405857004"), CapabilityAdmin, CapabilityHead); d != Render {
		t.Fatalf("matching any required capability must admit, got %v", d)
	}
}
