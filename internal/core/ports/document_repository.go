package ports

import (
	"context"

	"meddrop/internal/core/domain/model/document"
	"meddrop/internal/core/domain/model/kernel"
)

// DocumentRepository defines the persistence contract for load documents.
// Documents are mutated only by the side-effect orchestrator after a
// committed transition, never directly by any other path.
type DocumentRepository interface {
	// Add persists a new document record.
	Add(ctx context.Context, doc *document.Document) error

	// GetByLoad retrieves all documents attached to a load.
	GetByLoad(ctx context.Context, loadID kernel.UUID) ([]*document.Document, error)

	// LockAllForLoad marks every unlocked document of the load as locked at
	// the given instant. Already-locked documents keep their original lock
	// time; a document never unlocks once locked.
	LockAllForLoad(ctx context.Context, loadID kernel.UUID) error
}
