package client

import "strings"

// MaintenanceBlocked reports whether the maintenance gate should hold a
// visitor on the maintenance page. Admin and root accounts pass so
// operators can keep working; the auth views stay reachable for
// everyone, since privileged users need somewhere to log in from.
//
// This is a presentation control only. The server enforces the same
// gate independently on every request.
func MaintenanceBlocked(settings PublicSettings, snap Snapshot, path string) bool {
	if !settings.MaintenanceOn() {
		return false
	}
	if strings.HasPrefix(path, "/auth") {
		return false
	}
	if snap.State == Authenticated && Classify(snap.Identity).IsAdmin {
		return false
	}
	return true
}
