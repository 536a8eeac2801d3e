package client

// Role values as stored on the identity record.
const (
	RoleHead  = "head"
	RoleAdmin = "admin"
	RoleRoot  = "root"
)

// Capability is a single permission context. Route declarations name the
// capabilities they require rather than raw roles, so a dual-role admin
// satisfies both household and administrative gates.
type Capability string

const (
	CapabilityHead  Capability = "HEAD"
	CapabilityAdmin Capability = "ADMIN"
	CapabilityRoot  Capability = "ROOT"
)

// Capabilities is the effective permission set derived from the raw role
// and the username shape. It is recomputed on every evaluation from the
// current identity, never cached independently, so a role edit on the
// server takes effect on the next read.
type Capabilities struct {
	IsRoot     bool
	IsAdmin    bool
	IsHead     bool
	IsDualRole bool
}

// Classify derives the effective capability set for an identity. An
// admin whose username is purely numeric is dual-role and carries head
// capability on top of its administrative one. Only admin rows get the
// treatment; a root account is never dual-role.
func Classify(identity *Identity) Capabilities {
	if identity == nil {
		return Capabilities{}
	}
	dual := identity.Role == RoleAdmin && allDigits(identity.Username)
	return Capabilities{
		IsRoot:     identity.Role == RoleRoot,
		IsAdmin:    identity.Role == RoleAdmin || identity.Role == RoleRoot,
		IsHead:     identity.Role == RoleHead || dual,
		IsDualRole: dual,
	}
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
