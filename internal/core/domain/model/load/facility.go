package load

import (
	"errors"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"
	"meddrop/internal/pkg/guard"
)

// ErrFacilityIsNotConstructed is returned when validating a Facility that was
// not created via NewFacility.
var ErrFacilityIsNotConstructed = errors.New("Facility must be created via NewFacility constructor")

// Facility is a pickup or dropoff site referenced by a load. Its geocoordinate
// is optional: sites entered by hand may lack one, in which case geofence
// validation is skipped rather than failed.
type Facility struct { //nolint:recvcheck //using for validation
	id       kernel.UUID
	name     string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewFacility creates a Facility. location may be nil when the site has no
// stored geocoordinate.
func NewFacility(id kernel.UUID, name string, location *kernel.GeoPoint) (Facility, error) {
	facility := Facility{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		facility.setID(id),
		facility.setName(name),
		facility.setLocation(location),
	); err != nil {
		return Facility{}, err
	}

	return facility, nil
}

// Validate ensures the facility was created through NewFacility.
func (f Facility) Validate() error {
	return f.guard.Validate(ErrFacilityIsNotConstructed)
}

// ID returns the facility identifier.
func (f Facility) ID() kernel.UUID {
	return f.id
}

// Name returns the human-readable facility name.
func (f Facility) Name() string {
	return f.name
}

// Location returns the stored geocoordinate, or nil when none is known.
func (f Facility) Location() *kernel.GeoPoint {
	return f.location
}

func (f *Facility) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *Facility) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("facility name")
	}
	f.name = name
	return nil
}

func (f *Facility) setLocation(location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	f.location = location
	return nil
}
