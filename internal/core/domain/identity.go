package domain

import "time"

const (
	RoleHead  = "head"
	RoleAdmin = "admin"
	RoleRoot  = "root"
)

// Capability is a single permission context derived from an account's role.
type Capability string

const (
	CapabilityHead  Capability = "HEAD"
	CapabilityAdmin Capability = "ADMIN"
	CapabilityRoot  Capability = "ROOT"
)

// Identity models an authenticated account as exposed to clients.
// Clients never construct one; they only read what the server issued.
type Identity struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	Phone        string       `json:"phone,omitempty"`
	IsProtected  bool         `json:"isProtected"`
	Capabilities []Capability `json:"capabilities,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Capabilities is the effective permission set derived from the raw role
// field and the username shape. It is recomputed on every read so a role
// edit never leaves a stale classification behind.
type Capabilities struct {
	IsRoot     bool
	IsAdmin    bool
	IsHead     bool
	IsDualRole bool
}

// Classify derives the effective capability set for an account.
//
// An admin whose username is purely numeric (shaped like a national
// identity number) is dual-role: it carries head capability for
// household-scoped views on top of its administrative capability. Only
// admin rows get this treatment; a root account is never dual-role, even
// with a numeric username.
func Classify(role, username string) Capabilities {
	dual := role == RoleAdmin && allDigits(username)
	return Capabilities{
		IsRoot:     role == RoleRoot,
		IsAdmin:    role == RoleAdmin || role == RoleRoot,
		IsHead:     role == RoleHead || dual,
		IsDualRole: dual,
	}
}

// Set flattens the classification into a persistable capability set,
// computed at account creation or promotion time.
func (c Capabilities) Set() []Capability {
	var set []Capability
	if c.IsHead {
		set = append(set, CapabilityHead)
	}
	if c.IsAdmin {
		set = append(set, CapabilityAdmin)
	}
	if c.IsRoot {
		set = append(set, CapabilityRoot)
	}
	return set
}

// Has reports whether the classification grants the given capability.
func (c Capabilities) Has(cap Capability) bool {
	switch cap {
	case CapabilityHead:
		return c.IsHead
	case CapabilityAdmin:
		return c.IsAdmin
	case CapabilityRoot:
		return c.IsRoot
	}
	return false
}

// Classify recomputes the identity's effective capabilities from its
// current role and username.
func (i *Identity) Classify() Capabilities {
	return Classify(i.Role, i.Username)
}

// IsNationalID reports whether s is shaped like a national identity
// number: one or more digits and nothing else.
func IsNationalID(s string) bool {
	return allDigits(s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
