package ports

import (
	"context"

	"github.com/locauto/rental-system/internal/core/domain"
)

// AuditTrail accepts security events for asynchronous recording. Record must
// not block the request path beyond queueing.
type AuditTrail interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
