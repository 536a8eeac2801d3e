package client

// Decision is what a route guard should render for a navigation.
type Decision int

const (
	// ShowSpinner means the identity is not yet resolved; hold rendering.
	ShowSpinner Decision = iota
	// RedirectLogin means the visitor is confirmed anonymous.
	RedirectLogin
	// RedirectNotFound means the identity lacks a required capability.
	// Not-found rather than forbidden, so gated routes do not advertise
	// their existence.
	RedirectNotFound
	// Render means the view may be shown.
	Render
)

func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "redirect-login"
	case RedirectNotFound:
		return "redirect-not-found"
	case Render:
		return "render"
	default:
		return "spinner"
	}
}

// Guard evaluates whether a view may render for the given session
// snapshot. Routes declare required capabilities, not raw roles, so a
// dual-role admin satisfies both household and administrative gates
// through the one classification everything else uses.
//
// Evaluation order: an unresolved snapshot always holds on the spinner,
// never a protected view; a confirmed-anonymous snapshot redirects to
// login; then any one of the required capabilities admits. No required
// capabilities means the route only needs a session.
func Guard(snap Snapshot, required ...Capability) Decision {
	if !snap.Resolved() {
		return ShowSpinner
	}
	if snap.State == Anonymous || snap.Identity == nil {
		return RedirectLogin
	}
	if len(required) == 0 {
		return Render
	}

	caps := Classify(snap.Identity)
	for _, c := range required {
		if caps.Has(c) {
			return Render
		}
	}
	return RedirectNotFound
}
