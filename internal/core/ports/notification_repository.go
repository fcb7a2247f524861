package ports

import (
	"context"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/notification"
)

// NotificationRepository records every message the service attempts to send.
// Records are informational; a write failure here must never affect a
// committed transition.
type NotificationRepository interface {
	// Add persists a notification record.
	Add(ctx context.Context, record *notification.Notification) error

	// GetByLoad retrieves all notification records for a load.
	GetByLoad(ctx context.Context, loadID kernel.UUID) ([]*notification.Notification, error)
}
