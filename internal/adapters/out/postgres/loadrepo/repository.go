package loadrepo

import (
	"context"
	"errors"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLoadRepository implements LoadRepository using GORM.
type GormLoadRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLoadRepository creates a new GORM load repository.
func NewGormLoadRepository(db *gorm.DB, tracker aggregateTracker) *GormLoadRepository {
	return &GormLoadRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new load to the database.
func (r *GormLoadRepository) Add(ctx context.Context, aggregate *load.Load) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing load under the optimistic-lock protocol. The write
// applies only while the persisted version still equals the version the
// aggregate was loaded with, and bumps it by one. A concurrent writer makes
// the guard miss, which surfaces as a StateConflictError for the caller to
// re-fetch and retry.
func (r *GormLoadRepository) Update(ctx context.Context, aggregate *load.Load) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&LoadDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStateConflictError("load", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a load by ID.
func (r *GormLoadRepository) Get(ctx context.Context, id kernel.UUID) (*load.Load, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LoadDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingCode retrieves a load by its public tracking code.
func (r *GormLoadRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*load.Load, error) {
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}

	var dto LoadDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", trackingCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load", trackingCode)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetRecentByShipper retrieves the shipper's loads created at or after the
// given instant, used by duplicate detection at intake.
func (r *GormLoadRepository) GetRecentByShipper(
	ctx context.Context,
	shipperID kernel.UUID,
	since time.Time,
) ([]*load.Load, error) {
	if err := shipperID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LoadDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "shipper_id = ? AND created_at >= ?", shipperID.Bytes(), since).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetOverdue retrieves loads in an active movement status whose delivery
// deadline has passed.
func (r *GormLoadRepository) GetOverdue(ctx context.Context, now time.Time) ([]*load.Load, error) {
	activeStatuses := []string{
		load.StatusScheduled.String(),
		load.StatusEnRoute.String(),
		load.StatusPickedUp.String(),
		load.StatusInTransit.String(),
	}

	var dtos []LoadDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status IN ? AND delivery_deadline IS NOT NULL AND delivery_deadline < ?",
			activeStatuses, now).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []LoadDTO) ([]*load.Load, error) {
	loads := make([]*load.Load, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		loads = append(loads, aggregate)
	}
	return loads, nil
}
