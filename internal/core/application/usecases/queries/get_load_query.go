// Package queries contains the read side of the CQRS split. Queries go
// straight to the database with raw SQL and are never blocked by in-flight
// transitions.
package queries

import (
	"errors"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/guard"
)

var ErrGetLoadQueryIsNotConstructed = errors.New(
	"GetLoadQuery must be created via NewGetLoadQuery constructor",
)

// GetLoadQuery retrieves one load snapshot by identifier.
type GetLoadQuery struct { //nolint:recvcheck //using for validation
	loadID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLoadQuery creates a query for a single load.
func NewGetLoadQuery(loadID kernel.UUID) (GetLoadQuery, error) {
	if err := loadID.Validate(); err != nil {
		return GetLoadQuery{}, err
	}

	return GetLoadQuery{
		loadID: loadID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLoadQuery) Validate() error {
	return q.guard.Validate(ErrGetLoadQueryIsNotConstructed)
}

// LoadID returns the requested load identifier.
func (q GetLoadQuery) LoadID() kernel.UUID {
	return q.loadID
}

// GetLoadQueryResponse is the read-side snapshot of a load.
type GetLoadQueryResponse struct {
	ID                     kernel.UUID
	Status                 string
	DriverID               *kernel.UUID
	ShipperID              kernel.UUID
	ServiceType            string
	PickupName             string
	DropoffName            string
	ReadyTime              *time.Time
	DeliveryDeadline       *time.Time
	QuoteAmountCents       int64
	InvoiceID              *kernel.UUID
	Temperature            string
	RequiresSignature      bool
	RequiresTemperatureLog bool
	TrackingCode           string
	Version                int64
}
