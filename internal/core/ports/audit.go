package ports

import (
	"context"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

// AuditRecorder accepts security events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.SecurityEvent)
}

// AuditRepository persists security events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.SecurityEvent) error
}
