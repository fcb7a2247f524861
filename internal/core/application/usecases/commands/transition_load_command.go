package commands

import (
	"errors"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/services"
	"meddrop/internal/core/ports"
	"meddrop/internal/pkg/errs"
	"meddrop/internal/pkg/guard"
)

var ErrTransitionLoadCommandIsNotConstructed = errors.New(
	"TransitionLoadCommand must be created via NewTransitionLoadCommand constructor",
)

// TransitionLoadParams carries the full transition request shape. Optional
// fields are pointers or zero values; the constructor validates consistency
// between them (a coordinate needs both axes, an override needs a reason).
type TransitionLoadParams struct {
	LoadID       kernel.UUID
	TargetStatus load.Status
	Actor        ports.Principal

	QuoteAmountCents *int64
	QuoteNotes       string

	EventLabel       string
	EventDescription string
	LocationText     string

	DriverID *kernel.UUID

	Latitude       *float64
	Longitude      *float64
	AccuracyMeters float64

	OverrideGpsValidation bool
	OverrideReason        string

	Signature                  string
	SignerName                 string
	SignatureUnavailableReason string

	TemperatureCelsius *float64
}

// TransitionLoadCommand represents a request to move a load to a new status.
// It is the single write entry point of the engine: every status change,
// whether from dispatch, a driver app or a background job, arrives as one of
// these.
type TransitionLoadCommand struct { //nolint:recvcheck //using for validation
	loadID       kernel.UUID
	targetStatus load.Status
	actor        ports.Principal

	quoteAmountCents *int64
	quoteNotes       string

	eventLabel       string
	eventDescription string
	locationText     string

	driverID *kernel.UUID

	reportedPosition *services.ReportedPosition

	overrideGps    bool
	overrideReason string

	signature SignatureFields

	temperatureCelsius *float64

	guard guard.ConstructorGuard
}

// SignatureFields groups the raw signature inputs of a transition request.
type SignatureFields struct {
	Signature         string
	SignerName        string
	UnavailableReason string
}

// NewTransitionLoadCommand creates a transition command after validating the
// request shape. Cross-field rules: latitude and longitude come in pairs, a
// GPS override demands a reason, and a quote amount must not be negative.
func NewTransitionLoadCommand(params TransitionLoadParams) (TransitionLoadCommand, error) {
	command := TransitionLoadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setLoadID(params.LoadID),
		command.setTargetStatus(params.TargetStatus),
		command.setActor(params.Actor),
		command.setQuote(params.QuoteAmountCents),
		command.setDriverID(params.DriverID),
		command.setPosition(params.Latitude, params.Longitude, params.AccuracyMeters),
		command.setOverride(params.OverrideGpsValidation, params.OverrideReason),
	); err != nil {
		return TransitionLoadCommand{}, err
	}

	command.quoteNotes = params.QuoteNotes
	command.eventLabel = params.EventLabel
	command.eventDescription = params.EventDescription
	command.locationText = params.LocationText
	command.signature = SignatureFields{
		Signature:         params.Signature,
		SignerName:        params.SignerName,
		UnavailableReason: params.SignatureUnavailableReason,
	}
	command.temperatureCelsius = params.TemperatureCelsius

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionLoadCommand) Validate() error {
	return c.guard.Validate(ErrTransitionLoadCommandIsNotConstructed)
}

// LoadID returns the load to transition.
func (c TransitionLoadCommand) LoadID() kernel.UUID { return c.loadID }

// TargetStatus returns the requested destination status.
func (c TransitionLoadCommand) TargetStatus() load.Status { return c.targetStatus }

// Actor returns the authenticated caller.
func (c TransitionLoadCommand) Actor() ports.Principal { return c.actor }

// QuoteAmountCents returns the quoted price when this transition carries one.
func (c TransitionLoadCommand) QuoteAmountCents() *int64 { return c.quoteAmountCents }

// QuoteNotes returns the optional free-text quote notes.
func (c TransitionLoadCommand) QuoteNotes() string { return c.quoteNotes }

// EventLabel returns the optional label override for the custody event.
func (c TransitionLoadCommand) EventLabel() string { return c.eventLabel }

// EventDescription returns the optional custody event description.
func (c TransitionLoadCommand) EventDescription() string { return c.eventDescription }

// LocationText returns the optional free-text location of the event.
func (c TransitionLoadCommand) LocationText() string { return c.locationText }

// DriverID returns the driver to assign during this transition, or nil.
func (c TransitionLoadCommand) DriverID() *kernel.UUID { return c.driverID }

// ReportedPosition returns the caller's coordinate and accuracy, or nil when
// none was reported.
func (c TransitionLoadCommand) ReportedPosition() *services.ReportedPosition {
	return c.reportedPosition
}

// OverrideGpsValidation reports whether the caller asked to force the
// transition past a failing geofence check.
func (c TransitionLoadCommand) OverrideGpsValidation() bool { return c.overrideGps }

// OverrideReason returns the documented reason for a GPS override.
func (c TransitionLoadCommand) OverrideReason() string { return c.overrideReason }

// Signature returns the raw signature fields of the request.
func (c TransitionLoadCommand) Signature() SignatureFields { return c.signature }

// TemperatureCelsius returns the reported temperature, or nil.
func (c TransitionLoadCommand) TemperatureCelsius() *float64 { return c.temperatureCelsius }

func (c *TransitionLoadCommand) setLoadID(loadID kernel.UUID) error {
	if err := loadID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("loadId", err)
	}
	c.loadID = loadID
	return nil
}

func (c *TransitionLoadCommand) setTargetStatus(target load.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.targetStatus = target
	return nil
}

func (c *TransitionLoadCommand) setActor(actor ports.Principal) error {
	if actor.Role == ports.RoleUnknown {
		return errs.NewValueIsRequiredError("actor role")
	}
	if err := actor.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	c.actor = actor
	return nil
}

func (c *TransitionLoadCommand) setQuote(amountCents *int64) error {
	if amountCents != nil && *amountCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quoteAmount", errors.New("quote amount must not be negative"))
	}
	c.quoteAmountCents = amountCents
	return nil
}

func (c *TransitionLoadCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("driverId", err)
		}
	}
	c.driverID = driverID
	return nil
}

func (c *TransitionLoadCommand) setPosition(latitude, longitude *float64, accuracyMeters float64) error {
	if latitude == nil && longitude == nil {
		return nil
	}
	if latitude == nil || longitude == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"coordinates", errors.New("latitude and longitude must be supplied together"))
	}
	if accuracyMeters < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"accuracy", errors.New("accuracy must not be negative"))
	}

	point, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return err
	}

	c.reportedPosition = &services.ReportedPosition{
		Point:          point,
		AccuracyMeters: accuracyMeters,
	}
	return nil
}

func (c *TransitionLoadCommand) setOverride(overrideGps bool, reason string) error {
	if overrideGps && reason == "" {
		return errs.NewValueIsRequiredError("overrideReason")
	}
	c.overrideGps = overrideGps
	c.overrideReason = reason
	return nil
}
