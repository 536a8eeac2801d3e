package domain

import "time"

// Audit actions recorded by the identity layer.
const (
	AuditLogin          = "login"
	AuditLoginFailed    = "login_failed"
	AuditLockout        = "lockout"
	AuditLogout         = "logout"
	AuditRegister       = "register"
	AuditPasswordChange = "password_change"
	AuditUserEdit       = "user_edit"
	AuditUserDelete     = "user_delete"
)

// AuditEntry is one line of the root-only system log.
type AuditEntry struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Action   string    `json:"action"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}
