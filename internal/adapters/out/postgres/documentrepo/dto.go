// Package documentrepo persists load documents. The only mutation after
// creation is locking, which is irreversible.
package documentrepo

import (
	"time"

	"meddrop/internal/core/domain/model/document"
	"meddrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DocumentDTO represents the database structure for persisting documents.
type DocumentDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoadID   uuid.UUID `gorm:"type:uuid;index"`
	Name     string
	IsLocked bool
	LockedAt *time.Time
}

// TableName specifies the database table name for documents.
func (DocumentDTO) TableName() string {
	return "documents"
}

func fromDomain(doc *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:       doc.ID().Bytes(),
		LoadID:   doc.LoadID().Bytes(),
		Name:     doc.Name(),
		IsLocked: doc.IsLocked(),
		LockedAt: doc.LockedAt(),
	}
}

func toDomain(dto DocumentDTO) (*document.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	return document.RestoreDocument(id, loadID, dto.Name, dto.IsLocked, dto.LockedAt)
}
