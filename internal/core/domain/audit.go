package domain

import "time"

// Audit actions recorded by the security trail.
const (
	AuditRegister    = "auth.register"
	AuditLogin       = "auth.login"
	AuditRefresh     = "auth.refresh"
	AuditLogout      = "auth.logout"
	AuditUserCreated = "user.created"
	AuditUserUpdated = "user.updated"
	AuditUserDeleted = "user.deleted"
)

// AuditEvent records a security-relevant action for the audit trail.
// Actor is the user id the action was performed as; Subject is the entity
// acted upon (often the actor itself for auth events).
type AuditEvent struct {
	Actor   string
	Action  string
	Subject string
	At      time.Time
}
