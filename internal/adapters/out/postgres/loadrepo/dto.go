// Package loadrepo provides data transfer objects and mapping functions for
// load persistence. It implements the repository pattern for the load
// aggregate, converting between the domain entity and its relational shape.
package loadrepo

import (
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"

	"github.com/google/uuid"
)

// LoadDTO represents the database structure for persisting load aggregates.
// Facilities are embedded with pickup_/dropoff_ prefixes; the version column
// drives the optimistic-lock protocol in Update.
type LoadDTO struct {
	ID                     uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status                 string      `gorm:"index"`
	DriverID               *uuid.UUID  `gorm:"type:uuid;index"`
	ShipperID              uuid.UUID   `gorm:"type:uuid;index"`
	ServiceType            string      `gorm:"column:service_type"`
	Pickup                 FacilityDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff                FacilityDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	ReadyTime              *time.Time
	DeliveryDeadline       *time.Time
	QuoteCents             int64      `gorm:"column:quote_cents"`
	InvoiceID              *uuid.UUID `gorm:"type:uuid"`
	Temperature            string
	RequiresSignature      bool
	RequiresTemperatureLog bool
	TrackingCode           string `gorm:"uniqueIndex"`
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName specifies the database table name for load entities.
func (LoadDTO) TableName() string {
	return "loads"
}

// FacilityDTO represents an embedded pickup or dropoff facility within the
// loads table. Coordinates are optional; a facility without them simply skips
// geofence checks.
type FacilityDTO struct {
	ID   uuid.UUID `gorm:"type:uuid"`
	Name string
	Lat  *float64
	Lon  *float64
}

// fromDomain converts a load aggregate to its database representation.
func fromDomain(aggregate *load.Load) LoadDTO {
	return LoadDTO{
		ID:                     aggregate.ID().Bytes(),
		Status:                 aggregate.Status().String(),
		DriverID:               optionalBytes(aggregate.DriverID()),
		ShipperID:              aggregate.ShipperID().Bytes(),
		ServiceType:            aggregate.ServiceType().String(),
		Pickup:                 facilityFromDomain(aggregate.Pickup()),
		Dropoff:                facilityFromDomain(aggregate.Dropoff()),
		ReadyTime:              aggregate.ReadyTime(),
		DeliveryDeadline:       aggregate.DeliveryDeadline(),
		QuoteCents:             aggregate.QuoteAmountCents(),
		InvoiceID:              optionalBytes(aggregate.InvoiceID()),
		Temperature:            aggregate.Temperature().String(),
		RequiresSignature:      aggregate.RequiresSignature(),
		RequiresTemperatureLog: aggregate.RequiresTemperatureLog(),
		TrackingCode:           aggregate.TrackingCode(),
		Version:                aggregate.Version(),
	}
}

func facilityFromDomain(facility load.Facility) FacilityDTO {
	dto := FacilityDTO{
		ID:   facility.ID().Bytes(),
		Name: facility.Name(),
	}
	if location := facility.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Lat = &lat
		dto.Lon = &lon
	}
	return dto
}

// toDomain converts a database DTO to a load aggregate via RestoreLoad.
func toDomain(dto LoadDTO) (*load.Load, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	invoiceID, err := optionalUUID(dto.InvoiceID)
	if err != nil {
		return nil, err
	}

	serviceType, err := load.ServiceTypeFromString(dto.ServiceType)
	if err != nil {
		return nil, err
	}

	temperature, err := load.TemperatureFromString(dto.Temperature)
	if err != nil {
		return nil, err
	}

	status, err := load.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := facilityToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}

	dropoff, err := facilityToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	return load.RestoreLoad(load.NewLoadParams{
		ID:                     id,
		ShipperID:              shipperID,
		ServiceType:            serviceType,
		Pickup:                 pickup,
		Dropoff:                dropoff,
		DriverID:               driverID,
		ReadyTime:              dto.ReadyTime,
		DeliveryDeadline:       dto.DeliveryDeadline,
		QuoteAmountCents:       dto.QuoteCents,
		Temperature:            temperature,
		RequiresSignature:      dto.RequiresSignature,
		RequiresTemperatureLog: dto.RequiresTemperatureLog,
		TrackingCode:           dto.TrackingCode,
	}, status, invoiceID, dto.Version)
}

func facilityToDomain(dto FacilityDTO) (load.Facility, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return load.Facility{}, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return load.Facility{}, pointErr
		}
		location = &point
	}

	return load.NewFacility(id, dto.Name, location)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
