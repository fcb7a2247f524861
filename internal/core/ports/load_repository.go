// Package ports defines the repository and collaborator interfaces of the
// load lifecycle service. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
)

// LoadRepository defines the persistence contract for load aggregates.
type LoadRepository interface {
	// Add persists a new load aggregate to storage.
	// The load must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *load.Load) error

	// Update persists changes to an existing load aggregate under the
	// optimistic-concurrency protocol: the write applies only while the
	// persisted version still equals the version the aggregate was loaded
	// with, and increments it. When the row was modified concurrently the
	// update affects zero rows and a StateConflictError is returned; the
	// caller must re-fetch and retry rather than treat the write as applied.
	Update(ctx context.Context, aggregate *load.Load) error

	// Get retrieves a load aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such load exists.
	Get(ctx context.Context, id kernel.UUID) (*load.Load, error)

	// GetByTrackingCode retrieves a load by its public tracking code. This is
	// the lookup behind the unauthenticated tracking page.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*load.Load, error)

	// GetRecentByShipper retrieves the shipper's loads created at or after
	// the given instant. Used by duplicate detection at intake.
	GetRecentByShipper(ctx context.Context, shipperID kernel.UUID, since time.Time) ([]*load.Load, error)

	// GetOverdue retrieves loads in an active movement status whose delivery
	// deadline has passed. Used by the overdue-load background job.
	GetOverdue(ctx context.Context, now time.Time) ([]*load.Load, error)
}
