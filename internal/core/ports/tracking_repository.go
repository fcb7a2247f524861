package ports

import (
	"context"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/tracking"
)

// TrackingEventRepository defines the persistence contract for the chain of
// custody. Events are append-only; there is no update or delete.
type TrackingEventRepository interface {
	// Add persists a tracking event. Called inside the same transaction as
	// the status write so the custody trail never diverges from the status.
	Add(ctx context.Context, event *tracking.Event) error

	// GetByLoad retrieves all events for a load in commit order.
	GetByLoad(ctx context.Context, loadID kernel.UUID) ([]*tracking.Event, error)
}
