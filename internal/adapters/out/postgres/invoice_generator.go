package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"meddrop/internal/adapters/out/postgres/invoicerepo"
	"meddrop/internal/core/domain/model/invoice"
	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceGenerator creates the invoice for a delivered load. Generation
// is idempotent: the load row is locked and its invoice reference re-checked
// inside the generator's own transaction, so two concurrent delivery
// confirmations produce exactly one invoice.
type GormInvoiceGenerator struct {
	db *gorm.DB
}

// NewGormInvoiceGenerator creates an invoice generator on the given database.
func NewGormInvoiceGenerator(db *gorm.DB) *GormInvoiceGenerator {
	return &GormInvoiceGenerator{db: db}
}

// Generate creates an invoice for the load and links it to the load row.
// When an invoice is already attached its identifier is returned unchanged.
func (g *GormInvoiceGenerator) Generate(
	ctx context.Context,
	loadID kernel.UUID,
) (kernel.UUID, error) {
	if err := loadID.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var invoiceID kernel.UUID
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quoteCents int64
		var existing uuid.NullUUID

		row := tx.Raw(`
			SELECT quote_cents, invoice_id
			FROM loads
			WHERE id = ?
			FOR UPDATE
		`, loadID.Bytes()).Row()

		err := row.Scan(&quoteCents, &existing)
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("load", loadID.String())
		}
		if err != nil {
			return err
		}

		if existing.Valid {
			invoiceID, err = kernel.UUIDFromBytes(existing.UUID[:])
			return err
		}

		invoiceID = kernel.NewUUID()
		inv, err := invoice.NewInvoice(invoiceID, loadID, quoteCents, time.Now().UTC())
		if err != nil {
			return err
		}

		if _, err = invoicerepo.NewGormInvoiceRepository(tx).Add(ctx, inv); err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE loads
			SET invoice_id = ?, version = version + 1
			WHERE id = ?
		`, invoiceID.Bytes(), loadID.Bytes()).Error
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	return invoiceID, nil
}
