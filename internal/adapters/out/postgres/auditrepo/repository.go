// Package auditrepo persists the audit trail. Every override and every
// recorded authorization or GPS decision lands here as one row.
package auditrepo

import (
	"context"
	"encoding/json"
	"time"

	"meddrop/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRecordDTO represents the database structure for audit records.
// Metadata is stored as a jsonb document.
type AuditRecordDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Entity    string    `gorm:"index"`
	EntityID  string    `gorm:"column:entity_id;index"`
	Action    string
	Actor     string
	Severity  string
	Success   bool
	Metadata  []byte `gorm:"type:jsonb"`
	CreatedAt time.Time
}

// TableName specifies the database table name for audit records.
func (AuditRecordDTO) TableName() string {
	return "audit_records"
}

// GormAuditLog implements AuditLog using GORM.
type GormAuditLog struct {
	db *gorm.DB
}

// NewGormAuditLog creates a new GORM audit log.
func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Record writes one audit record. It runs on the main connection rather than
// any caller transaction: an audit row must survive even when the business
// transaction rolls back.
func (l *GormAuditLog) Record(ctx context.Context, record ports.AuditRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return err
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	dto := AuditRecordDTO{
		ID:        uuid.New(),
		Entity:    record.Entity,
		EntityID:  record.EntityID,
		Action:    record.Action,
		Actor:     record.Actor,
		Severity:  string(record.Severity),
		Success:   record.Success,
		Metadata:  metadata,
		CreatedAt: createdAt,
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}
