package commands

import (
	"errors"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/ports"
	"meddrop/internal/pkg/errs"
	"meddrop/internal/pkg/guard"
)

var ErrCreateLoadCommandIsNotConstructed = errors.New(
	"CreateLoadCommand must be created via NewCreateLoadCommand constructor",
)

// FacilityInput is the intake shape of a pickup or dropoff site. Coordinates
// are optional; sites without them simply skip geofence validation later.
type FacilityInput struct {
	ID        kernel.UUID
	Name      string
	Latitude  *float64
	Longitude *float64
}

// CreateLoadParams carries the intake request shape.
type CreateLoadParams struct {
	LoadID    kernel.UUID
	ShipperID kernel.UUID
	Actor     ports.Principal

	ServiceType load.ServiceType
	Pickup      FacilityInput
	Dropoff     FacilityInput

	DriverID         *kernel.UUID
	ReadyTime        *time.Time
	DeliveryDeadline *time.Time
	QuoteAmountCents int64

	Temperature            load.TemperatureRequirement
	RequiresSignature      bool
	RequiresTemperatureLog bool

	// QuoteRequested routes the intake through the quoting path, starting
	// the load in NEW instead of Requested/Scheduled.
	QuoteRequested bool

	// OverrideDuplicate forces creation past an exact duplicate match.
	OverrideDuplicate bool

	// AcknowledgeNearDuplicate satisfies the RequireAck near-duplicate
	// policy.
	AcknowledgeNearDuplicate bool
}

// CreateLoadCommand represents a request to register a new load.
type CreateLoadCommand struct { //nolint:recvcheck //using for validation
	loadID    kernel.UUID
	shipperID kernel.UUID
	actor     ports.Principal

	serviceType load.ServiceType
	pickup      load.Facility
	dropoff     load.Facility

	driverID         *kernel.UUID
	readyTime        *time.Time
	deliveryDeadline *time.Time
	quoteAmountCents int64

	temperature            load.TemperatureRequirement
	requiresSignature      bool
	requiresTemperatureLog bool

	quoteRequested           bool
	overrideDuplicate        bool
	acknowledgeNearDuplicate bool

	guard guard.ConstructorGuard
}

// NewCreateLoadCommand creates an intake command. Facility inputs are turned
// into validated value objects here so the handler never sees raw
// coordinates.
func NewCreateLoadCommand(params CreateLoadParams) (CreateLoadCommand, error) {
	command := CreateLoadCommand{
		guard: guard.NewConstructorGuard(),
	}

	pickup, err := buildFacility(params.Pickup)
	if err != nil {
		return CreateLoadCommand{}, err
	}
	dropoff, err := buildFacility(params.Dropoff)
	if err != nil {
		return CreateLoadCommand{}, err
	}

	if err = errors.Join(
		command.setLoadID(params.LoadID),
		command.setShipperID(params.ShipperID),
		command.setActor(params.Actor),
		command.setServiceType(params.ServiceType),
		command.setTemperature(params.Temperature),
		command.setDriverID(params.DriverID),
		command.setQuote(params.QuoteAmountCents),
	); err != nil {
		return CreateLoadCommand{}, err
	}

	command.pickup = pickup
	command.dropoff = dropoff
	command.readyTime = params.ReadyTime
	command.deliveryDeadline = params.DeliveryDeadline
	command.requiresSignature = params.RequiresSignature
	command.requiresTemperatureLog = params.RequiresTemperatureLog
	command.quoteRequested = params.QuoteRequested
	command.overrideDuplicate = params.OverrideDuplicate
	command.acknowledgeNearDuplicate = params.AcknowledgeNearDuplicate

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateLoadCommand) Validate() error {
	return c.guard.Validate(ErrCreateLoadCommandIsNotConstructed)
}

// LoadID returns the identifier assigned to the new load.
func (c CreateLoadCommand) LoadID() kernel.UUID { return c.loadID }

// ShipperID returns the owning shipper.
func (c CreateLoadCommand) ShipperID() kernel.UUID { return c.shipperID }

// Actor returns the authenticated caller.
func (c CreateLoadCommand) Actor() ports.Principal { return c.actor }

// ServiceType returns the requested service level.
func (c CreateLoadCommand) ServiceType() load.ServiceType { return c.serviceType }

// Pickup returns the validated pickup facility.
func (c CreateLoadCommand) Pickup() load.Facility { return c.pickup }

// Dropoff returns the validated dropoff facility.
func (c CreateLoadCommand) Dropoff() load.Facility { return c.dropoff }

// DriverID returns the pre-assigned driver, or nil.
func (c CreateLoadCommand) DriverID() *kernel.UUID { return c.driverID }

// ReadyTime returns when the shipment is ready for pickup, or nil.
func (c CreateLoadCommand) ReadyTime() *time.Time { return c.readyTime }

// DeliveryDeadline returns the promised delivery instant, or nil.
func (c CreateLoadCommand) DeliveryDeadline() *time.Time { return c.deliveryDeadline }

// QuoteAmountCents returns the quoted price in cents.
func (c CreateLoadCommand) QuoteAmountCents() int64 { return c.quoteAmountCents }

// Temperature returns the temperature requirement.
func (c CreateLoadCommand) Temperature() load.TemperatureRequirement { return c.temperature }

// RequiresSignature reports whether delivery needs a signature capture.
func (c CreateLoadCommand) RequiresSignature() bool { return c.requiresSignature }

// RequiresTemperatureLog reports whether custody events must log temperature.
func (c CreateLoadCommand) RequiresTemperatureLog() bool { return c.requiresTemperatureLog }

// QuoteRequested reports whether intake goes through the quoting path.
func (c CreateLoadCommand) QuoteRequested() bool { return c.quoteRequested }

// OverrideDuplicate reports whether an exact duplicate match is overridden.
func (c CreateLoadCommand) OverrideDuplicate() bool { return c.overrideDuplicate }

// AcknowledgeNearDuplicate reports whether a near match was acknowledged.
func (c CreateLoadCommand) AcknowledgeNearDuplicate() bool { return c.acknowledgeNearDuplicate }

func buildFacility(input FacilityInput) (load.Facility, error) {
	var location *kernel.GeoPoint

	switch {
	case input.Latitude == nil && input.Longitude == nil:
		// No stored coordinates.
	case input.Latitude == nil || input.Longitude == nil:
		return load.Facility{}, errs.NewValueIsInvalidErrorWithCause(
			"facility coordinates", errors.New("latitude and longitude must be supplied together"))
	default:
		point, err := kernel.NewGeoPoint(*input.Latitude, *input.Longitude)
		if err != nil {
			return load.Facility{}, err
		}
		location = &point
	}

	return load.NewFacility(input.ID, input.Name, location)
}

func (c *CreateLoadCommand) setLoadID(loadID kernel.UUID) error {
	if err := loadID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("loadId", err)
	}
	c.loadID = loadID
	return nil
}

func (c *CreateLoadCommand) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipperId", err)
	}
	c.shipperID = shipperID
	return nil
}

func (c *CreateLoadCommand) setActor(actor ports.Principal) error {
	if actor.Role == ports.RoleUnknown {
		return errs.NewValueIsRequiredError("actor role")
	}
	if err := actor.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	c.actor = actor
	return nil
}

func (c *CreateLoadCommand) setServiceType(serviceType load.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	c.serviceType = serviceType
	return nil
}

func (c *CreateLoadCommand) setTemperature(temperature load.TemperatureRequirement) error {
	if err := temperature.Validate(); err != nil {
		return err
	}
	c.temperature = temperature
	return nil
}

func (c *CreateLoadCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("driverId", err)
		}
	}
	c.driverID = driverID
	return nil
}

func (c *CreateLoadCommand) setQuote(amountCents int64) error {
	if amountCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quoteAmount", errors.New("quote amount must not be negative"))
	}
	c.quoteAmountCents = amountCents
	return nil
}
