package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIdentityNotFound  = errors.New("identity not found")
	ErrIdentityExists    = errors.New("identity already exists")
	ErrHouseholdNotFound = errors.New("household not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrProtectedAccount  = errors.New("account is protected")
	ErrMaintenance       = errors.New("service under maintenance")
	ErrSessionExpired    = errors.New("session expired")
)

// FailureKind is the structured classification of a login failure. Clients
// switch on the kind, never on the display text.
type FailureKind string

const (
	KindInvalidCredentials FailureKind = "invalid_credentials"
	KindRemainingAttempts  FailureKind = "remaining_attempts"
	KindLockedOut          FailureKind = "locked_out"
)

// AuthError is a login failure with a machine-readable kind alongside the
// localized display message. RemainingAttempts is set for
// KindRemainingAttempts; LockoutMinutes for KindLockedOut.
type AuthError struct {
	Kind              FailureKind
	RemainingAttempts int
	LockoutMinutes    int
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case KindRemainingAttempts:
		return fmt.Sprintf("invalid credentials, %d attempts remaining", e.RemainingAttempts)
	case KindLockedOut:
		return fmt.Sprintf("account locked, try again in %d minutes", e.LockoutMinutes)
	default:
		return "invalid credentials"
	}
}

// ErrInvalidCredentials is the generic login failure. It is an *AuthError
// so every login failure path carries a kind.
var ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials}

// PolicyError carries the password policy violations that blocked a
// registration or password change.
type PolicyError struct {
	Violations []Violation
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("password rejected by policy (%d violations)", len(e.Violations))
}

// AsAuthError unwraps err into an *AuthError, or nil.
func AsAuthError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
