package load

import (
	"fmt"

	"meddrop/internal/pkg/errs"
)

// Status represents the lifecycle state of a load.
//
// The state machine:
//
//	NEW ──> QUOTE_REQUESTED ──> QUOTED ──> QUOTE_ACCEPTED ──> REQUESTED ──> SCHEDULED
//	 │                                                                          │
//	 └──────────────────────> REQUESTED / SCHEDULED                       EN_ROUTE │
//	                                                                          │    │
//	                                                              PICKED_UP <─┴────┘
//	                                                                  │
//	                                                   IN_TRANSIT ────┤
//	                                                        │         │
//	                                                        └──> DELIVERED
//
// DELIVERED, DENIED and CANCELLED are terminal. Every non-terminal status has
// an explicit allow-list of destinations; anything else is rejected with an
// InvalidTransitionError naming the allowed set.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status. The zero value
	// helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is a freshly entered load that has not chosen a path yet.
	StatusNew

	// StatusQuoteRequested means the shipper asked for a price.
	StatusQuoteRequested

	// StatusQuoted means a quote amount has been offered to the shipper.
	StatusQuoted

	// StatusQuoteAccepted means the shipper accepted the offered quote.
	StatusQuoteAccepted

	// StatusRequested is a confirmed shipment awaiting scheduling.
	StatusRequested

	// StatusScheduled means the load is booked; a driver may or may not be
	// assigned yet.
	StatusScheduled

	// StatusEnRoute means the driver is on the way to the pickup facility.
	StatusEnRoute

	// StatusPickedUp means custody of the shipment passed to the driver.
	StatusPickedUp

	// StatusInTransit means the shipment is moving toward the dropoff facility.
	StatusInTransit

	// StatusDelivered is terminal: custody passed to the receiving facility.
	StatusDelivered

	// StatusDenied is terminal: the request was rejected.
	StatusDenied

	// StatusCancelled is terminal: the shipment was called off.
	StatusCancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusNew:            "NEW",
		StatusQuoteRequested: "QUOTE_REQUESTED",
		StatusQuoted:         "QUOTED",
		StatusQuoteAccepted:  "QUOTE_ACCEPTED",
		StatusRequested:      "REQUESTED",
		StatusScheduled:      "SCHEDULED",
		StatusEnRoute:        "EN_ROUTE",
		StatusPickedUp:       "PICKED_UP",
		StatusInTransit:      "IN_TRANSIT",
		StatusDelivered:      "DELIVERED",
		StatusDenied:         "DENIED",
		StatusCancelled:      "CANCELLED",
	}
}

// allowedTransitions is the adjacency table of the state machine. Terminal
// statuses map to an empty list. DELIVERED is reachable only from PICKED_UP
// and IN_TRANSIT so a load can never skip physical pickup.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusNew:            {StatusQuoteRequested, StatusRequested, StatusScheduled, StatusDenied, StatusCancelled},
		StatusQuoteRequested: {StatusQuoted, StatusDenied, StatusCancelled},
		StatusQuoted:         {StatusQuoteAccepted, StatusDenied, StatusCancelled},
		StatusQuoteAccepted:  {StatusRequested, StatusScheduled, StatusCancelled},
		StatusRequested:      {StatusScheduled, StatusDenied, StatusCancelled},
		StatusScheduled:      {StatusEnRoute, StatusPickedUp, StatusCancelled},
		StatusEnRoute:        {StatusPickedUp, StatusCancelled},
		StatusPickedUp:       {StatusInTransit, StatusDelivered, StatusCancelled},
		StatusInTransit:      {StatusDelivered, StatusCancelled},
		StatusDelivered:      {},
		StatusDenied:         {},
		StatusCancelled:      {},
	}
}

// StatusFromString parses the wire representation of a status (e.g.
// "PICKED_UP"). Returns a ValueIsInvalidError for unknown strings.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a known status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate reports whether the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusDenied || s == StatusCancelled
}

// RequiresDriver reports whether a load must have an assigned driver before
// entering this status.
func (s Status) RequiresDriver() bool {
	switch s {
	case StatusEnRoute, StatusPickedUp, StatusInTransit, StatusDelivered:
		return true
	default:
		return false
	}
}

// RequiresGeofence reports whether entering this status with a reported
// coordinate triggers the geofence check against the corresponding facility.
func (s Status) RequiresGeofence() bool {
	return s == StatusPickedUp || s == StatusDelivered
}

// AllowedDestinations returns the allow-list of destinations for this status.
// Terminal and unknown statuses return an empty slice.
func (s Status) AllowedDestinations() []Status {
	return allowedTransitions()[s]
}

// CanTransitionTo checks the adjacency table for the edge s -> target.
// A self-transition is always permitted so idempotent re-submissions succeed.
// Returns an InvalidTransitionError carrying the full allow-list otherwise.
func (s Status) CanTransitionTo(target Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if s == target {
		return nil
	}

	allowed := allowedTransitions()[s]
	for _, destination := range allowed {
		if destination == target {
			return nil
		}
	}

	allowedNames := make([]string, 0, len(allowed))
	for _, destination := range allowed {
		allowedNames = append(allowedNames, destination.String())
	}

	return errs.NewInvalidTransitionError(s.String(), target.String(), allowedNames)
}
