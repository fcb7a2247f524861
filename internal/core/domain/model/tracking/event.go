package tracking

import (
	"errors"
	"fmt"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event was not created through
// NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// ActorType identifies who produced a tracking event.
type ActorType int

const (
	// ActorUnknown is the invalid zero value.
	ActorUnknown ActorType = iota

	// ActorSystem marks events produced by the service itself.
	ActorSystem

	// ActorAdmin marks events produced by dispatch staff.
	ActorAdmin

	// ActorDriver marks events produced by the courier in the field.
	ActorDriver

	// ActorShipper marks events produced by the requesting shipper, such as a
	// cancellation or a quote acceptance.
	ActorShipper
)

func actorTypeStrings() map[ActorType]string {
	return map[ActorType]string{
		ActorUnknown: "UNKNOWN",
		ActorSystem:  "SYSTEM",
		ActorAdmin:   "ADMIN",
		ActorDriver:  "DRIVER",
		ActorShipper: "SHIPPER",
	}
}

// ActorTypeFromString parses the wire representation of an actor type.
func ActorTypeFromString(s string) (ActorType, error) {
	for actorType, str := range actorTypeStrings() {
		if str == s && actorType != ActorUnknown {
			return actorType, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause(
		"actorType", fmt.Errorf("%q is not a known actor type", s))
}

// String returns the wire representation of the actor type.
func (a ActorType) String() string {
	if str, ok := actorTypeStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate reports whether the actor type is one of the defined values.
func (a ActorType) Validate() error {
	switch a {
	case ActorSystem, ActorAdmin, ActorDriver, ActorShipper:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"actorType", fmt.Errorf("%d is not a valid actor type", a))
	}
}

// Actor is the identity that produced an event: a type plus a free-form
// identifier (a user id, a driver id, or "system").
type Actor struct {
	kind ActorType
	id   string
}

// NewActor creates an Actor after validating both parts.
func NewActor(kind ActorType, id string) (Actor, error) {
	if err := kind.Validate(); err != nil {
		return Actor{}, err
	}
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	return Actor{kind: kind, id: id}, nil
}

// SystemActor returns the well-known actor used for engine-generated events.
func SystemActor() Actor {
	return Actor{kind: ActorSystem, id: "system"}
}

// Kind returns the actor type.
func (a Actor) Kind() ActorType { return a.kind }

// ID returns the actor identifier.
func (a Actor) ID() string { return a.id }

// Validate checks the actor was created via NewActor or SystemActor.
func (a Actor) Validate() error {
	if a.id == "" {
		return errs.NewValueIsRequiredError("actor id")
	}
	return a.kind.Validate()
}

// eventMeta pairs the semantic code with its default human label.
type eventMeta struct {
	code  string
	label string
}

func statusEventMeta() map[load.Status]eventMeta {
	return map[load.Status]eventMeta{
		load.StatusNew:            {code: "CREATED", label: "Load created"},
		load.StatusQuoteRequested: {code: "QUOTE_REQUESTED", label: "Quote requested"},
		load.StatusQuoted:         {code: "QUOTED", label: "Quote provided"},
		load.StatusQuoteAccepted:  {code: "QUOTE_ACCEPTED", label: "Quote accepted"},
		load.StatusRequested:      {code: "REQUESTED", label: "Pickup requested"},
		load.StatusScheduled:      {code: "SCHEDULED", label: "Pickup scheduled"},
		load.StatusEnRoute:        {code: "EN_ROUTE", label: "Driver en route to pickup"},
		load.StatusPickedUp:       {code: "PICKED_UP", label: "Shipment picked up"},
		load.StatusInTransit:      {code: "IN_TRANSIT", label: "Shipment in transit"},
		load.StatusDelivered:      {code: "DELIVERED", label: "Shipment delivered"},
		load.StatusDenied:         {code: "DENIED", label: "Request denied"},
		load.StatusCancelled:      {code: "CANCELLED", label: "Shipment cancelled"},
	}
}

// CodeForStatus returns the semantic event code and default label recorded
// when a load enters the given status.
func CodeForStatus(status load.Status) (code, label string, err error) {
	meta, ok := statusEventMeta()[status]
	if !ok {
		return "", "", errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("no tracking event code for status %s", status))
	}
	return meta.code, meta.label, nil
}

// Event is one immutable link in a load's chain of custody.
type Event struct {
	id          kernel.UUID
	loadID      kernel.UUID
	code        string
	label       string
	description string
	location    *kernel.GeoPoint
	actor       Actor
	createdAt   time.Time

	isConstructed bool
}

// NewEvent creates a tracking event. description and location are optional;
// label falls back to the code when empty.
func NewEvent(
	id kernel.UUID,
	loadID kernel.UUID,
	code string,
	label string,
	description string,
	location *kernel.GeoPoint,
	actor Actor,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(id.Validate(), loadID.Validate(), actor.Validate()); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("event code")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("event createdAt")
	}
	if label == "" {
		label = code
	}

	return &Event{
		id:            id,
		loadID:        loadID,
		code:          code,
		label:         label,
		description:   description,
		location:      location,
		actor:         actor,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs a persisted event. It shares NewEvent's
// validation since events are immutable.
func RestoreEvent(
	id kernel.UUID,
	loadID kernel.UUID,
	code string,
	label string,
	description string,
	location *kernel.GeoPoint,
	actor Actor,
	createdAt time.Time,
) (*Event, error) {
	return NewEvent(id, loadID, code, label, description, location, actor, createdAt)
}

// Validate ensures the event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event identifier.
func (e *Event) ID() kernel.UUID { return e.id }

// LoadID returns the load this event belongs to.
func (e *Event) LoadID() kernel.UUID { return e.loadID }

// Code returns the semantic event code, e.g. "PICKED_UP".
func (e *Event) Code() string { return e.code }

// Label returns the human-readable label.
func (e *Event) Label() string { return e.label }

// Description returns the optional free-text description.
func (e *Event) Description() string { return e.description }

// Location returns the optional coordinate where the event occurred.
func (e *Event) Location() *kernel.GeoPoint { return e.location }

// Actor returns the identity that produced the event.
func (e *Event) Actor() Actor { return e.actor }

// CreatedAt returns the event timestamp; events are ordered by it.
func (e *Event) CreatedAt() time.Time { return e.createdAt }
