package invoicerepo

import (
	"context"
	"errors"

	"meddrop/internal/core/domain/model/invoice"
	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Add persists a new invoice. The sequence value assigned by the database on
// insert becomes the invoice number, which is written back in the same call.
// Returns the invoice carrying its assigned number.
func (r *GormInvoiceRepository) Add(
	ctx context.Context,
	inv *invoice.Invoice,
) (*invoice.Invoice, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(inv)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	dto.Number = invoice.FormatNumber(dto.Seq)
	err := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Where("id = ?", dto.ID).
		Update("number", dto.Number).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetByLoad retrieves the invoice attached to a load.
func (r *GormInvoiceRepository) GetByLoad(
	ctx context.Context,
	loadID kernel.UUID,
) (*invoice.Invoice, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "load_id = ?", loadID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", loadID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
