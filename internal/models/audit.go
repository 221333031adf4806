package models

import "time"

// AuditEvent is an internal record of a security-relevant occurrence.
// Audit events are never exposed over the API.
type AuditEvent struct {
	ID        int64
	Kind      string // e.g. "auth.login_failed", "item.denied"
	UserID    *int64
	Detail    string
	CreatedAt time.Time
}
