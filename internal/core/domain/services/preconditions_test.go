package services_test

import (
	"testing"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/services"
	"meddrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignature(t *testing.T) {
	complete := services.SignatureInput{
		Signature:  "data:image/png;base64,iVBORw0KGgo=",
		SignerName: "R. Mercer",
	}

	t.Run("nothing supplied and not required passes", func(t *testing.T) {
		assert.NoError(t, services.ValidateSignature(services.SignatureInput{}, false))
	})

	t.Run("nothing supplied but required fails", func(t *testing.T) {
		err := services.ValidateSignature(services.SignatureInput{}, true)
		require.ErrorIs(t, err, errs.ErrSignatureIncomplete)
	})

	t.Run("complete capture passes", func(t *testing.T) {
		assert.NoError(t, services.ValidateSignature(complete, true))
		assert.NoError(t, services.ValidateSignature(complete, false))
	})

	t.Run("signature without signer name fails", func(t *testing.T) {
		input := complete
		input.SignerName = ""
		err := services.ValidateSignature(input, false)
		require.ErrorIs(t, err, errs.ErrSignatureIncomplete)
		assert.Contains(t, err.Error(), "signer name")
	})

	t.Run("signer name without signature data fails", func(t *testing.T) {
		input := complete
		input.Signature = ""
		err := services.ValidateSignature(input, true)
		require.ErrorIs(t, err, errs.ErrSignatureIncomplete)
		assert.Contains(t, err.Error(), "signature data")
	})

	t.Run("documented unavailable-reason stands in for a capture", func(t *testing.T) {
		input := services.SignatureInput{UnavailableReason: "recipient in sterile processing"}
		assert.NoError(t, services.ValidateSignature(input, true))
	})

	t.Run("unavailable-reason alongside signature fields fails", func(t *testing.T) {
		input := complete
		input.UnavailableReason = "left at front desk"
		err := services.ValidateSignature(input, true)
		require.ErrorIs(t, err, errs.ErrSignatureIncomplete)
	})
}

func TestValidateTemperature(t *testing.T) {
	reading := func(c float64) *float64 { return &c }

	t.Run("ambient accepts anything including no reading", func(t *testing.T) {
		assert.NoError(t, services.ValidateTemperature(load.TemperatureAmbient, nil))
		assert.NoError(t, services.ValidateTemperature(load.TemperatureAmbient, reading(40)))
		assert.NoError(t, services.ValidateTemperature(load.TemperatureOther, nil))
	})

	t.Run("refrigerated demands a reading", func(t *testing.T) {
		err := services.ValidateTemperature(load.TemperatureRefrigerated, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("in-band reading passes", func(t *testing.T) {
		assert.NoError(t, services.ValidateTemperature(load.TemperatureRefrigerated, reading(5)))
		assert.NoError(t, services.ValidateTemperature(load.TemperatureFrozen, reading(-18)))
	})

	t.Run("out-of-band reading fails", func(t *testing.T) {
		err := services.ValidateTemperature(load.TemperatureRefrigerated, reading(12.5))
		require.ErrorIs(t, err, errs.ErrTemperatureOutOfRange)

		err = services.ValidateTemperature(load.TemperatureFrozen, reading(-5))
		require.ErrorIs(t, err, errs.ErrTemperatureOutOfRange)
	})
}

func TestValidateTransitionTiming(t *testing.T) {
	ready := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	driverID := kernel.NewUUID()

	aggregate, err := load.NewLoad(load.NewLoadParams{
		ID:           kernel.NewUUID(),
		ShipperID:    kernel.NewUUID(),
		ServiceType:  load.ServiceRoutine,
		Pickup:       facilityFixture(t, "St. Vincent Lab"),
		Dropoff:      facilityFixture(t, "Harborview Clinic"),
		DriverID:     &driverID,
		ReadyTime:    &ready,
		Temperature:  load.TemperatureAmbient,
		TrackingCode: "MD-7F3K2Q",
	})
	require.NoError(t, err)

	t.Run("pickup before ready time fails", func(t *testing.T) {
		err := services.ValidateTransitionTiming(
			aggregate, load.StatusPickedUp, ready.Add(-15*time.Minute))
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("pickup at or after ready time passes", func(t *testing.T) {
		assert.NoError(t, services.ValidateTransitionTiming(
			aggregate, load.StatusPickedUp, ready))
		assert.NoError(t, services.ValidateTransitionTiming(
			aggregate, load.StatusPickedUp, ready.Add(time.Hour)))
	})

	t.Run("non-pickup transitions are not timed", func(t *testing.T) {
		assert.NoError(t, services.ValidateTransitionTiming(
			aggregate, load.StatusEnRoute, ready.Add(-2*time.Hour)))
	})
}

func facilityFixture(t *testing.T, name string) load.Facility {
	t.Helper()
	facility, err := load.NewFacility(kernel.NewUUID(), name, nil)
	require.NoError(t, err)
	return facility
}
