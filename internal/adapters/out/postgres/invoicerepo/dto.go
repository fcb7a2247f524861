// Package invoicerepo persists invoices. Human-readable invoice numbers come
// from a database sequence so they are assigned monotonically even under
// concurrent delivery confirmations.
package invoicerepo

import (
	"time"

	"meddrop/internal/core/domain/model/invoice"
	"meddrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InvoiceDTO represents the database structure for persisting invoices.
// Seq is populated by the database on insert and feeds the invoice number.
type InvoiceDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoadID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Seq        int64     `gorm:"autoIncrement;uniqueIndex"`
	Number     string
	TotalCents int64 `gorm:"column:total_cents"`
	IssuedAt   time.Time
}

// TableName specifies the database table name for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:         inv.ID().Bytes(),
		LoadID:     inv.LoadID().Bytes(),
		Number:     inv.Number(),
		TotalCents: inv.TotalCents(),
		IssuedAt:   inv.IssuedAt(),
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	return invoice.RestoreInvoice(id, loadID, dto.Number, dto.TotalCents, dto.IssuedAt)
}
