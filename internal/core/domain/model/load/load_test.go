package load_test

import (
	"testing"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFacility(t *testing.T) load.Facility {
	t.Helper()
	point, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	facility, err := load.NewFacility(kernel.NewUUID(), "Mount Hope Lab", &point)
	require.NoError(t, err)
	return facility
}

func validParams(t *testing.T) load.NewLoadParams {
	t.Helper()
	return load.NewLoadParams{
		ID:           kernel.NewUUID(),
		ShipperID:    kernel.NewUUID(),
		ServiceType:  load.ServiceStat,
		Pickup:       validFacility(t),
		Dropoff:      validFacility(t),
		Temperature:  load.TemperatureRefrigerated,
		TrackingCode: "TRK-4F7A2B",
	}
}

func TestNewLoad_WithoutDriverStartsRequested(t *testing.T) {
	aggregate, err := load.NewLoad(validParams(t))

	require.NoError(t, err)
	assert.Equal(t, load.StatusRequested, aggregate.Status())
	assert.Nil(t, aggregate.DriverID())
	assert.Nil(t, aggregate.InvoiceID())
	assert.Equal(t, int64(0), aggregate.Version())
}

func TestNewLoad_WithDriverStartsScheduled(t *testing.T) {
	params := validParams(t)
	driverID := kernel.NewUUID()
	params.DriverID = &driverID

	aggregate, err := load.NewLoad(params)

	require.NoError(t, err)
	assert.Equal(t, load.StatusScheduled, aggregate.Status())
	require.NotNil(t, aggregate.DriverID())
	assert.True(t, driverID.IsEqual(*aggregate.DriverID()))
}

func TestNewQuoteRequest_StartsNew(t *testing.T) {
	aggregate, err := load.NewQuoteRequest(validParams(t))

	require.NoError(t, err)
	assert.Equal(t, load.StatusNew, aggregate.Status())
}

func TestNewLoad_Validation(t *testing.T) {
	t.Run("missing tracking code", func(t *testing.T) {
		params := validParams(t)
		params.TrackingCode = ""
		_, err := load.NewLoad(params)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing shipper", func(t *testing.T) {
		params := validParams(t)
		params.ShipperID = kernel.UUID{}
		_, err := load.NewLoad(params)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("deadline before ready time", func(t *testing.T) {
		params := validParams(t)
		ready := time.Now()
		deadline := ready.Add(-time.Hour)
		params.ReadyTime = &ready
		params.DeliveryDeadline = &deadline
		_, err := load.NewLoad(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative quote", func(t *testing.T) {
		params := validParams(t)
		params.QuoteAmountCents = -100
		_, err := load.NewLoad(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unconstructed facility", func(t *testing.T) {
		params := validParams(t)
		params.Pickup = load.Facility{}
		_, err := load.NewLoad(params)
		require.ErrorIs(t, err, load.ErrFacilityIsNotConstructed)
	})
}

func TestLoad_Validate(t *testing.T) {
	var zero load.Load
	require.ErrorIs(t, zero.Validate(), load.ErrLoadIsNotConstructed)

	aggregate, err := load.NewLoad(validParams(t))
	require.NoError(t, err)
	require.NoError(t, aggregate.Validate())
}

func TestLoad_TransitionTo(t *testing.T) {
	t.Run("scheduled to picked up with driver", func(t *testing.T) {
		params := validParams(t)
		driverID := kernel.NewUUID()
		params.DriverID = &driverID
		aggregate, err := load.NewLoad(params)
		require.NoError(t, err)

		require.NoError(t, aggregate.TransitionTo(load.StatusPickedUp))
		assert.Equal(t, load.StatusPickedUp, aggregate.Status())
	})

	t.Run("movement status without driver is a precondition failure", func(t *testing.T) {
		aggregate, err := load.RestoreLoad(validParams(t), load.StatusScheduled, nil, 3)
		require.NoError(t, err)

		err = aggregate.TransitionTo(load.StatusEnRoute)
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Equal(t, load.StatusScheduled, aggregate.Status())
	})

	t.Run("illegal edge leaves status untouched", func(t *testing.T) {
		aggregate, err := load.NewLoad(validParams(t))
		require.NoError(t, err)

		err = aggregate.TransitionTo(load.StatusDelivered)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, load.StatusRequested, aggregate.Status())
	})

	t.Run("self transition is a no-op", func(t *testing.T) {
		aggregate, err := load.NewLoad(validParams(t))
		require.NoError(t, err)

		require.NoError(t, aggregate.TransitionTo(load.StatusRequested))
		assert.Equal(t, load.StatusRequested, aggregate.Status())
	})

	t.Run("terminal status has no outgoing edges", func(t *testing.T) {
		driverID := kernel.NewUUID()
		params := validParams(t)
		params.DriverID = &driverID
		aggregate, err := load.RestoreLoad(params, load.StatusDelivered, nil, 9)
		require.NoError(t, err)

		err = aggregate.TransitionTo(load.StatusInTransit)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestLoad_AssignDriver(t *testing.T) {
	t.Run("assignment and reassignment", func(t *testing.T) {
		aggregate, err := load.NewLoad(validParams(t))
		require.NoError(t, err)

		first := kernel.NewUUID()
		require.NoError(t, aggregate.AssignDriver(first))
		second := kernel.NewUUID()
		require.NoError(t, aggregate.AssignDriver(second))
		assert.True(t, second.IsEqual(*aggregate.DriverID()))
	})

	t.Run("rejected on terminal load", func(t *testing.T) {
		aggregate, err := load.RestoreLoad(validParams(t), load.StatusCancelled, nil, 1)
		require.NoError(t, err)

		err = aggregate.AssignDriver(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("invalid driver id", func(t *testing.T) {
		aggregate, err := load.NewLoad(validParams(t))
		require.NoError(t, err)
		require.Error(t, aggregate.AssignDriver(kernel.UUID{}))
	})
}

func TestLoad_AttachInvoice(t *testing.T) {
	driverID := kernel.NewUUID()
	params := validParams(t)
	params.DriverID = &driverID

	aggregate, err := load.RestoreLoad(params, load.StatusDelivered, nil, 5)
	require.NoError(t, err)

	invoiceID := kernel.NewUUID()
	require.NoError(t, aggregate.AttachInvoice(invoiceID))
	require.NotNil(t, aggregate.InvoiceID())
	assert.True(t, invoiceID.IsEqual(*aggregate.InvoiceID()))

	// Second attachment must fail no matter which invoice it references.
	err = aggregate.AttachInvoice(kernel.NewUUID())
	require.ErrorIs(t, err, load.ErrInvoiceAlreadyAttached)
	assert.True(t, invoiceID.IsEqual(*aggregate.InvoiceID()))
}

func TestRestoreLoad(t *testing.T) {
	t.Run("restores status, invoice and version", func(t *testing.T) {
		driverID := kernel.NewUUID()
		invoiceID := kernel.NewUUID()
		params := validParams(t)
		params.DriverID = &driverID

		aggregate, err := load.RestoreLoad(params, load.StatusDelivered, &invoiceID, 12)
		require.NoError(t, err)

		assert.Equal(t, load.StatusDelivered, aggregate.Status())
		assert.True(t, invoiceID.IsEqual(*aggregate.InvoiceID()))
		assert.Equal(t, int64(12), aggregate.Version())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := load.RestoreLoad(validParams(t), load.StatusUnknown, nil, 0)
		require.Error(t, err)
	})

	t.Run("rejects negative version", func(t *testing.T) {
		_, err := load.RestoreLoad(validParams(t), load.StatusRequested, nil, -1)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestLoad_SetQuote(t *testing.T) {
	aggregate, err := load.NewQuoteRequest(validParams(t))
	require.NoError(t, err)

	require.NoError(t, aggregate.SetQuote(12550))
	assert.Equal(t, int64(12550), aggregate.QuoteAmountCents())

	require.Error(t, aggregate.SetQuote(-1))
}
