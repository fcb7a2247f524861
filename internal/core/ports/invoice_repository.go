package ports

import (
	"context"

	"meddrop/internal/core/domain/model/invoice"
	"meddrop/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoices. An invoice
// references exactly one load; the human-readable number comes from a
// database sequence so it is assigned monotonically.
type InvoiceRepository interface {
	// Add persists a new invoice and assigns its sequence-derived number.
	Add(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error)

	// GetByLoad retrieves the invoice attached to a load.
	// Returns ObjectNotFoundError when the load has no invoice.
	GetByLoad(ctx context.Context, loadID kernel.UUID) (*invoice.Invoice, error)
}
