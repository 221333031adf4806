package services

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
)

// AuditServiceProvider defines the interface for the internal audit trail.
type AuditServiceProvider interface {
	Record(kind string, userID *int64, detail string)
	Prune(olderThan time.Duration) (int64, error)
}

// AuditService records security-relevant occurrences (failed logins,
// duplicate registrations, cross-user access attempts) for operators.
// Nothing here is ever exposed over the API.
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// Record logs a new audit event. Auditing is best-effort: a failure to
// write the event must not fail the request that triggered it, so
// errors are logged and swallowed.
func (s *AuditService) Record(kind string, userID *int64, detail string) {
	_, err := s.db.Exec("INSERT INTO audit_events (kind, user_id, detail) VALUES (?, ?, ?)", kind, userID, detail)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("Failed to record audit event")
	}
}

// Prune deletes audit events older than the given age and returns the
// number of rows removed. The cutoff is formatted the way sqlite's
// CURRENT_TIMESTAMP stores it, so the comparison is purely textual.
func (s *AuditService) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC().Format("2006-01-02 15:04:05")
	res, err := s.db.Exec("DELETE FROM audit_events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
