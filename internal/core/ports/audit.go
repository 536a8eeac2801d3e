package ports

import (
	"context"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// AuditRecorder accepts audit entries for asynchronous persistence.
// Recording never blocks the authentication path.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists and queries the system log.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
