package client

import (
	"context"
	"sync"
	"time"
)

// LoginType selects which identifier semantics a login form applies.
// Head logins use a national-identity-shaped identifier; admin and root
// use a free-form username. Both travel in the same credential shape.
type LoginType string

const (
	LoginHead  LoginType = "head"
	LoginAdmin LoginType = "admin"
)

// Dashboard paths the flow redirects to after a successful login.
const (
	HouseholdDashboard = "/dashboard"
	AdminDashboard     = "/admin"
)

// Outcome is a successful login result. WelcomeName is the household's
// registered display name when the account is a head and the lookup
// succeeded, otherwise the raw username.
type Outcome struct {
	Identity    *Identity
	Redirect    string
	WelcomeName string
}

// Flow drives a login form: one submission at a time, classified
// failures for display, redirect target chosen from the resolved
// capability set. No automatic resubmission; the user retries.
type Flow struct {
	resolver *Resolver
	client   *Client

	mu         sync.Mutex
	submitting bool
}

// NewFlow builds a Flow over the resolver and its underlying client.
func NewFlow(resolver *Resolver, client *Client) *Flow {
	return &Flow{resolver: resolver, client: client}
}

// Submitting reports whether a submission is in flight.
func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit attempts a login. Failures come back as a *Failure whose Kind
// the caller switches on for display; a second Submit while one is in
// flight fails immediately without a network call.
func (f *Flow) Submit(ctx context.Context, identifier, password string, loginType LoginType) (*Outcome, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, &Failure{Kind: KindValidation, Message: "submission already in progress"}
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if loginType == LoginHead && !allDigits(identifier) {
		return nil, &Failure{Kind: KindValidation, Message: "identifier must be a national identity number"}
	}

	identity, err := f.resolver.Login(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Identity:    identity,
		Redirect:    AdminDashboard,
		WelcomeName: identity.Username,
	}
	if identity.Role == RoleHead {
		outcome.Redirect = HouseholdDashboard
		// The welcome greeting uses the registered household name, not
		// the raw identifier. Best effort: the login itself already
		// succeeded, so a failed lookup just falls back to the username.
		if household, err := f.client.MyHousehold(ctx); err == nil {
			outcome.WelcomeName = household.DisplayName
		}
	}
	return outcome, nil
}

// SubmitRegistration validates the password against the given policy
// locally, then registers the household. A policy failure never reaches
// the network. On success the server has already opened a session and
// the resolver cache is updated to match.
func (f *Flow) SubmitRegistration(ctx context.Context, input RegisterInput, policy PasswordPolicy) (*Identity, error) {
	if violations := ValidatePassword(input.Password, policy); len(violations) > 0 {
		return nil, &Failure{
			Kind:       KindValidation,
			Message:    "password rejected by policy",
			Violations: violations,
		}
	}

	identity, err := f.client.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	f.resolver.mu.Lock()
	f.resolver.version++
	f.resolver.snap = Snapshot{State: Authenticated, Identity: identity}
	f.resolver.fetchedAt = time.Now()
	f.resolver.mu.Unlock()

	return identity, nil
}
