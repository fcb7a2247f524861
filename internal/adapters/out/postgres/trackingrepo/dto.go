// Package trackingrepo persists the append-only chain of custody. Events are
// written in the same transaction as the status change they describe and are
// never updated or deleted.
package trackingrepo

import (
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting tracking events.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoadID      uuid.UUID `gorm:"type:uuid;index"`
	Code        string
	Label       string
	Description string
	Lat         *float64
	Lon         *float64
	ActorType   string `gorm:"column:actor_type"`
	ActorID     string `gorm:"column:actor_id"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for tracking events.
func (EventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(event *tracking.Event) EventDTO {
	dto := EventDTO{
		ID:          event.ID().Bytes(),
		LoadID:      event.LoadID().Bytes(),
		Code:        event.Code(),
		Label:       event.Label(),
		Description: event.Description(),
		ActorType:   event.Actor().Kind().String(),
		ActorID:     event.Actor().ID(),
		CreatedAt:   event.CreatedAt(),
	}
	if location := event.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Lat = &lat
		dto.Lon = &lon
	}
	return dto
}

func toDomain(dto EventDTO) (*tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	actorType, err := tracking.ActorTypeFromString(dto.ActorType)
	if err != nil {
		return nil, err
	}

	actor, err := tracking.NewActor(actorType, dto.ActorID)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return tracking.RestoreEvent(
		id, loadID, dto.Code, dto.Label, dto.Description, location, actor, dto.CreatedAt)
}
