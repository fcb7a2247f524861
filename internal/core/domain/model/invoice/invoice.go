// Package invoice contains the Invoice entity created by the side-effect
// orchestrator when a load is delivered. Every invoice belongs to exactly one
// load; the reverse link on the load enforces the at-most-once rule.
package invoice

import (
	"errors"
	"fmt"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"
)

// ErrInvoiceIsNotConstructed is returned when an Invoice was not created via
// a constructor.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice constructor")

// Invoice bills a delivered load. Number carries the human-readable invoice
// number derived from a monotonically assigned sequence.
type Invoice struct {
	id         kernel.UUID
	loadID     kernel.UUID
	number     string
	totalCents int64
	issuedAt   time.Time

	isConstructed bool
}

// FormatNumber renders a sequence value as the human-readable invoice number.
func FormatNumber(sequence int64) string {
	return fmt.Sprintf("INV-%06d", sequence)
}

// NewInvoice creates an invoice for a load. The total is derived from the
// load's quote and must not be negative. The human-readable number is empty
// until persistence assigns it from the sequence.
func NewInvoice(id, loadID kernel.UUID, totalCents int64, issuedAt time.Time) (*Invoice, error) {
	if err := errors.Join(id.Validate(), loadID.Validate()); err != nil {
		return nil, err
	}
	if totalCents < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"invoice total", errors.New("total must not be negative"))
	}
	if issuedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("issuedAt")
	}

	return &Invoice{
		id:            id,
		loadID:        loadID,
		totalCents:    totalCents,
		issuedAt:      issuedAt,
		isConstructed: true,
	}, nil
}

// RestoreInvoice reconstructs a persisted invoice with its assigned number.
func RestoreInvoice(id, loadID kernel.UUID, number string, totalCents int64, issuedAt time.Time) (*Invoice, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("invoice number")
	}

	inv, err := NewInvoice(id, loadID, totalCents, issuedAt)
	if err != nil {
		return nil, err
	}

	inv.number = number
	return inv, nil
}

// Validate ensures the invoice was created through a constructor.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// ID returns the invoice identifier.
func (i *Invoice) ID() kernel.UUID { return i.id }

// LoadID returns the billed load.
func (i *Invoice) LoadID() kernel.UUID { return i.loadID }

// Number returns the human-readable invoice number.
func (i *Invoice) Number() string { return i.number }

// TotalCents returns the invoice total in cents.
func (i *Invoice) TotalCents() int64 { return i.totalCents }

// IssuedAt returns when the invoice was generated.
func (i *Invoice) IssuedAt() time.Time { return i.issuedAt }
