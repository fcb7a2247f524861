package notificationrepo

import (
	"context"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add saves a notification record.
func (r *GormNotificationRepository) Add(
	ctx context.Context,
	record *notification.Notification,
) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByLoad retrieves all notification records for a load.
func (r *GormNotificationRepository) GetByLoad(
	ctx context.Context,
	loadID kernel.UUID,
) ([]*notification.Notification, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "load_id = ?", loadID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		record, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		records = append(records, record)
	}

	return records, nil
}
