// Package contactrepo resolves principals to their notification addresses.
// The notification tier degrades gracefully when a contact is missing, so
// lookups return an empty contact rather than an error for unknown ids.
package contactrepo

import (
	"context"
	"errors"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	kindShipper = "SHIPPER"
	kindDriver  = "DRIVER"
	kindAdmin   = "ADMIN"
)

// ContactDTO represents the database structure for contacts.
type ContactDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind     string    `gorm:"index"`
	Name     string
	Email    string
	Phone    string
	SMSOptIn bool `gorm:"column:sms_opt_in"`
}

// TableName specifies the database table name for contacts.
func (ContactDTO) TableName() string {
	return "contacts"
}

// GormContactDirectory implements ContactDirectory using GORM.
type GormContactDirectory struct {
	db *gorm.DB
}

// NewGormContactDirectory creates a new GORM contact directory.
func NewGormContactDirectory(db *gorm.DB) *GormContactDirectory {
	return &GormContactDirectory{db: db}
}

// ShipperContact returns the shipper's addresses, or an empty contact when
// none are on file.
func (d *GormContactDirectory) ShipperContact(
	ctx context.Context,
	shipperID kernel.UUID,
) (ports.Contact, error) {
	return d.contact(ctx, shipperID, kindShipper)
}

// DriverContact returns the driver's addresses, or an empty contact when none
// are on file.
func (d *GormContactDirectory) DriverContact(
	ctx context.Context,
	driverID kernel.UUID,
) (ports.Contact, error) {
	return d.contact(ctx, driverID, kindDriver)
}

// AdminContacts returns the addresses of all dispatch admins.
func (d *GormContactDirectory) AdminContacts(ctx context.Context) ([]ports.Contact, error) {
	var dtos []ContactDTO
	if err := d.db.WithContext(ctx).Find(&dtos, "kind = ?", kindAdmin).Error; err != nil {
		return nil, err
	}

	contacts := make([]ports.Contact, 0, len(dtos))
	for _, dto := range dtos {
		contacts = append(contacts, toContact(dto))
	}
	return contacts, nil
}

func (d *GormContactDirectory) contact(
	ctx context.Context,
	id kernel.UUID,
	kind string,
) (ports.Contact, error) {
	if err := id.Validate(); err != nil {
		return ports.Contact{}, err
	}

	var dto ContactDTO
	err := d.db.WithContext(ctx).First(&dto, "id = ? AND kind = ?", id.Bytes(), kind).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Contact{}, nil
	}
	if err != nil {
		return ports.Contact{}, err
	}

	return toContact(dto), nil
}

func toContact(dto ContactDTO) ports.Contact {
	return ports.Contact{
		Name:     dto.Name,
		Email:    dto.Email,
		Phone:    dto.Phone,
		SMSOptIn: dto.SMSOptIn,
	}
}
