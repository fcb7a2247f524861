package load

import (
	"errors"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"
)

var (
	// ErrLoadIsNotConstructed is returned when a Load instance was not created
	// through NewLoad or RestoreLoad.
	ErrLoadIsNotConstructed = errors.New("Load must be created via NewLoad or RestoreLoad constructor")

	// ErrInvoiceAlreadyAttached is returned when a second invoice attachment
	// is attempted. An invoice is attached at most once per load.
	ErrInvoiceAlreadyAttached = errors.New("an invoice is already attached to this load")

	// ErrDriverNotAssigned blocks transitions into movement statuses on loads
	// without a driver.
	ErrDriverNotAssigned = errors.New("driver is not assigned")
)

// Load is the aggregate root for a single shipment. It is mutated only
// through validated methods; persistence adapters restore it via RestoreLoad
// and carry the version counter for optimistic locking.
type Load struct {
	id           kernel.UUID
	status       Status
	driverID     *kernel.UUID
	shipperID    kernel.UUID
	serviceType  ServiceType
	pickup       Facility
	dropoff      Facility
	readyTime    *time.Time
	deadline     *time.Time
	quoteCents   int64
	invoiceID    *kernel.UUID
	temperature  TemperatureRequirement
	needsSig     bool
	needsTempLog bool
	trackingCode string

	// version is the optimistic-concurrency counter observed at load time.
	// The repository commits a status change only while the persisted version
	// still matches this value.
	version int64

	isConstructed bool
}

// NewLoadParams carries the intake attributes of a new load. The aggregate
// has too many independent fields for positional construction to stay
// readable.
type NewLoadParams struct {
	ID                     kernel.UUID
	ShipperID              kernel.UUID
	ServiceType            ServiceType
	Pickup                 Facility
	Dropoff                Facility
	DriverID               *kernel.UUID
	ReadyTime              *time.Time
	DeliveryDeadline       *time.Time
	QuoteAmountCents       int64
	Temperature            TemperatureRequirement
	RequiresSignature      bool
	RequiresTemperatureLog bool
	TrackingCode           string
}

// NewLoad creates a load at intake. The initial status depends on the
// creation channel: SCHEDULED when a driver is pre-assigned, REQUESTED
// otherwise. Quote-first intakes start from NEW via NewQuoteRequest.
func NewLoad(params NewLoadParams) (*Load, error) {
	aggregate, err := newLoad(params)
	if err != nil {
		return nil, err
	}

	if params.DriverID != nil {
		aggregate.status = StatusScheduled
	} else {
		aggregate.status = StatusRequested
	}

	return aggregate, nil
}

// NewQuoteRequest creates a load that enters the lifecycle through the
// quoting path, starting in NEW.
func NewQuoteRequest(params NewLoadParams) (*Load, error) {
	aggregate, err := newLoad(params)
	if err != nil {
		return nil, err
	}

	aggregate.status = StatusNew
	return aggregate, nil
}

func newLoad(params NewLoadParams) (*Load, error) {
	aggregate := &Load{
		isConstructed: true,
	}

	if err := errors.Join(
		aggregate.setID(params.ID),
		aggregate.setShipperID(params.ShipperID),
		aggregate.setServiceType(params.ServiceType),
		aggregate.setPickup(params.Pickup),
		aggregate.setDropoff(params.Dropoff),
		aggregate.setTemperature(params.Temperature),
		aggregate.setTrackingCode(params.TrackingCode),
		aggregate.setTiming(params.ReadyTime, params.DeliveryDeadline),
		aggregate.setQuoteCents(params.QuoteAmountCents),
	); err != nil {
		return nil, err
	}

	if params.DriverID != nil {
		if err := aggregate.AssignDriver(*params.DriverID); err != nil {
			return nil, err
		}
	}

	aggregate.needsSig = params.RequiresSignature
	aggregate.needsTempLog = params.RequiresTemperatureLog
	return aggregate, nil
}

// RestoreLoad reconstructs a load from persistence, including its current
// status, optional assignments and the optimistic-lock version.
func RestoreLoad(
	params NewLoadParams,
	status Status,
	invoiceID *kernel.UUID,
	version int64,
) (*Load, error) {
	aggregate, err := newLoad(params)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if invoiceID != nil {
		if err := invoiceID.Validate(); err != nil {
			return nil, err
		}
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("load version", errors.New("version must not be negative"))
	}

	aggregate.status = status
	aggregate.invoiceID = invoiceID
	aggregate.version = version
	return aggregate, nil
}

// Validate ensures the Load instance was created via a constructor.
func (l *Load) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLoadIsNotConstructed
	}
	return nil
}

// IsEqual compares two loads by identity.
func (l *Load) IsEqual(other *Load) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the load identifier.
func (l *Load) ID() kernel.UUID { return l.id }

// Status returns the current lifecycle status.
func (l *Load) Status() Status { return l.status }

// DriverID returns the assigned driver, or nil before assignment.
func (l *Load) DriverID() *kernel.UUID { return l.driverID }

// ShipperID returns the owning shipper.
func (l *Load) ShipperID() kernel.UUID { return l.shipperID }

// ServiceType returns the requested service level.
func (l *Load) ServiceType() ServiceType { return l.serviceType }

// Pickup returns the pickup facility.
func (l *Load) Pickup() Facility { return l.pickup }

// Dropoff returns the dropoff facility.
func (l *Load) Dropoff() Facility { return l.dropoff }

// ReadyTime returns when the shipment is ready for pickup, or nil.
func (l *Load) ReadyTime() *time.Time { return l.readyTime }

// DeliveryDeadline returns the promised delivery instant, or nil.
func (l *Load) DeliveryDeadline() *time.Time { return l.deadline }

// QuoteAmountCents returns the quoted price in cents.
func (l *Load) QuoteAmountCents() int64 { return l.quoteCents }

// InvoiceID returns the attached invoice, or nil before billing.
func (l *Load) InvoiceID() *kernel.UUID { return l.invoiceID }

// Temperature returns the temperature requirement.
func (l *Load) Temperature() TemperatureRequirement { return l.temperature }

// RequiresSignature reports whether delivery needs a signature capture.
func (l *Load) RequiresSignature() bool { return l.needsSig }

// RequiresTemperatureLog reports whether custody events must log temperature.
func (l *Load) RequiresTemperatureLog() bool { return l.needsTempLog }

// TrackingCode returns the immutable, externally shareable tracking code.
func (l *Load) TrackingCode() string { return l.trackingCode }

// Version returns the optimistic-lock version observed when the aggregate was
// loaded.
func (l *Load) Version() int64 { return l.version }

// AssignDriver attaches a driver to the load. Reassignment is allowed until
// the load reaches a terminal status.
func (l *Load) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if l.status.IsTerminal() {
		return errs.NewPreconditionFailedErrorWithCause(
			"driver assignment", errors.New("load is in a terminal status"))
	}

	l.driverID = &driverID
	return nil
}

// TransitionTo moves the load to the target status. It enforces the adjacency
// table and the driver precondition for movement statuses. A self-transition
// is a no-op that succeeds without touching any invariant.
func (l *Load) TransitionTo(target Status) error {
	if target == l.status {
		return nil
	}

	if err := l.status.CanTransitionTo(target); err != nil {
		return err
	}

	if target.RequiresDriver() && l.driverID == nil {
		return errs.NewPreconditionFailedErrorWithCause(l.id.String(), ErrDriverNotAssigned)
	}

	l.status = target
	return nil
}

// SetQuote records the quoted price, in cents. Used when the load moves
// through the quoting path.
func (l *Load) SetQuote(amountCents int64) error {
	return l.setQuoteCents(amountCents)
}

// AttachInvoice sets the invoice reference exactly once. A second attempt
// fails with ErrInvoiceAlreadyAttached regardless of the invoice identity, so
// concurrent delivery confirmations can never double-bill.
func (l *Load) AttachInvoice(invoiceID kernel.UUID) error {
	if err := invoiceID.Validate(); err != nil {
		return err
	}
	if l.invoiceID != nil {
		return ErrInvoiceAlreadyAttached
	}

	l.invoiceID = &invoiceID
	return nil
}

func (l *Load) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Load) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipperId", err)
	}
	l.shipperID = shipperID
	return nil
}

func (l *Load) setServiceType(serviceType ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	l.serviceType = serviceType
	return nil
}

func (l *Load) setPickup(pickup Facility) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	l.pickup = pickup
	return nil
}

func (l *Load) setDropoff(dropoff Facility) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	l.dropoff = dropoff
	return nil
}

func (l *Load) setTemperature(temperature TemperatureRequirement) error {
	if err := temperature.Validate(); err != nil {
		return err
	}
	l.temperature = temperature
	return nil
}

func (l *Load) setTrackingCode(trackingCode string) error {
	if trackingCode == "" {
		return errs.NewValueIsRequiredError("trackingCode")
	}
	l.trackingCode = trackingCode
	return nil
}

func (l *Load) setTiming(readyTime, deadline *time.Time) error {
	if readyTime != nil && deadline != nil && deadline.Before(*readyTime) {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryDeadline", errors.New("delivery deadline is before ready time"))
	}
	l.readyTime = readyTime
	l.deadline = deadline
	return nil
}

func (l *Load) setQuoteCents(amountCents int64) error {
	if amountCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quoteAmount", errors.New("quote amount must not be negative"))
	}
	l.quoteCents = amountCents
	return nil
}
