package queries

import (
	"errors"
	"strings"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"
	"meddrop/internal/pkg/guard"
)

var ErrGetTrackingHistoryQueryIsNotConstructed = errors.New(
	"GetTrackingHistoryQuery must be created via NewGetTrackingHistoryQuery constructor",
)

// GetTrackingHistoryQuery retrieves the public tracking view of a shipment by
// its tracking code. This is the query behind the customer-facing tracking
// page, so it carries no internal identifiers beyond the load id.
type GetTrackingHistoryQuery struct { //nolint:recvcheck //using for validation
	trackingCode string

	guard guard.ConstructorGuard
}

// NewGetTrackingHistoryQuery creates a query for a tracking code lookup.
// The code is normalized to upper case before hitting the database.
func NewGetTrackingHistoryQuery(trackingCode string) (GetTrackingHistoryQuery, error) {
	trackingCode = strings.ToUpper(strings.TrimSpace(trackingCode))
	if trackingCode == "" {
		return GetTrackingHistoryQuery{}, errs.NewValueIsRequiredError("trackingCode")
	}

	return GetTrackingHistoryQuery{
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingHistoryQueryIsNotConstructed)
}

// TrackingCode returns the normalized tracking code.
func (q GetTrackingHistoryQuery) TrackingCode() string {
	return q.trackingCode
}

// TrackingEventView is one custody event on the tracking timeline.
type TrackingEventView struct {
	Code        string
	Label       string
	Description string
	Latitude    *float64
	Longitude   *float64
	ActorType   string
	CreatedAt   time.Time
}

// GetTrackingHistoryQueryResponse is the shipment summary plus its custody
// timeline, newest event first.
type GetTrackingHistoryQueryResponse struct {
	LoadID           kernel.UUID
	TrackingCode     string
	Status           string
	ServiceType      string
	PickupName       string
	DropoffName      string
	DeliveryDeadline *time.Time
	ETA              string
	Events           []TrackingEventView
}
