package documentrepo

import (
	"context"
	"time"

	"meddrop/internal/core/domain/model/document"
	"meddrop/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM.
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GORM document repository.
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Add saves a new document to the database.
func (r *GormDocumentRepository) Add(ctx context.Context, doc *document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(doc)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByLoad retrieves all documents attached to a load.
func (r *GormDocumentRepository) GetByLoad(
	ctx context.Context,
	loadID kernel.UUID,
) ([]*document.Document, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DocumentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "load_id = ?", loadID.Bytes()).Error; err != nil {
		return nil, err
	}

	documents := make([]*document.Document, 0, len(dtos))
	for _, dto := range dtos {
		doc, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		documents = append(documents, doc)
	}

	return documents, nil
}

// LockAllForLoad marks every unlocked document of the load as locked now.
// Already-locked documents keep their original lock time, so re-running the
// lock after a delivery retry is harmless.
func (r *GormDocumentRepository) LockAllForLoad(ctx context.Context, loadID kernel.UUID) error {
	if err := loadID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&DocumentDTO{}).
		Where("load_id = ? AND is_locked = ?", loadID.Bytes(), false).
		Updates(map[string]any{
			"is_locked": true,
			"locked_at": time.Now().UTC(),
		}).Error
}
