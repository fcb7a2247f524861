package load_test

import (
	"testing"

	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "SCHEDULED", load.StatusScheduled.String())
	assert.Equal(t, "PICKED_UP", load.StatusPickedUp.String())
	assert.Equal(t, "UNKNOWN", load.StatusUnknown.String())
	assert.Equal(t, "UNKNOWN", load.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips every defined status", func(t *testing.T) {
		all := []load.Status{
			load.StatusNew, load.StatusQuoteRequested, load.StatusQuoted,
			load.StatusQuoteAccepted, load.StatusRequested, load.StatusScheduled,
			load.StatusEnRoute, load.StatusPickedUp, load.StatusInTransit,
			load.StatusDelivered, load.StatusDenied, load.StatusCancelled,
		}
		for _, status := range all {
			parsed, err := load.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		_, err := load.StatusFromString("TELEPORTED")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = load.StatusFromString("UNKNOWN")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, load.StatusDelivered.IsTerminal())
	assert.True(t, load.StatusDenied.IsTerminal())
	assert.True(t, load.StatusCancelled.IsTerminal())
	assert.False(t, load.StatusScheduled.IsTerminal())
	assert.False(t, load.StatusInTransit.IsTerminal())
}

func TestStatus_RequiresDriver(t *testing.T) {
	assert.True(t, load.StatusEnRoute.RequiresDriver())
	assert.True(t, load.StatusPickedUp.RequiresDriver())
	assert.True(t, load.StatusInTransit.RequiresDriver())
	assert.True(t, load.StatusDelivered.RequiresDriver())
	assert.False(t, load.StatusScheduled.RequiresDriver())
	assert.False(t, load.StatusCancelled.RequiresDriver())
}

func TestStatus_CanTransitionTo_AllowedEdges(t *testing.T) {
	tests := []struct {
		from load.Status
		to   load.Status
	}{
		{load.StatusNew, load.StatusQuoteRequested},
		{load.StatusNew, load.StatusScheduled},
		{load.StatusQuoteRequested, load.StatusQuoted},
		{load.StatusQuoted, load.StatusQuoteAccepted},
		{load.StatusQuoteAccepted, load.StatusRequested},
		{load.StatusRequested, load.StatusScheduled},
		{load.StatusScheduled, load.StatusEnRoute},
		{load.StatusScheduled, load.StatusPickedUp},
		{load.StatusEnRoute, load.StatusPickedUp},
		{load.StatusPickedUp, load.StatusInTransit},
		{load.StatusPickedUp, load.StatusDelivered},
		{load.StatusInTransit, load.StatusDelivered},
		{load.StatusInTransit, load.StatusCancelled},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			require.NoError(t, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatus_CanTransitionTo_RejectedEdges(t *testing.T) {
	tests := []struct {
		from load.Status
		to   load.Status
	}{
		{load.StatusScheduled, load.StatusDelivered}, // cannot skip physical pickup
		{load.StatusEnRoute, load.StatusDelivered},
		{load.StatusNew, load.StatusDelivered},
		{load.StatusRequested, load.StatusPickedUp},
		{load.StatusDelivered, load.StatusInTransit}, // terminal
		{load.StatusCancelled, load.StatusScheduled}, // terminal
		{load.StatusDenied, load.StatusRequested},    // terminal
		{load.StatusQuoted, load.StatusScheduled},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			err := tc.from.CanTransitionTo(tc.to)
			require.ErrorIs(t, err, errs.ErrInvalidTransition)

			var invalidTransition *errs.InvalidTransitionError
			require.ErrorAs(t, err, &invalidTransition)
			assert.Equal(t, tc.from.String(), invalidTransition.From)
			assert.Equal(t, tc.to.String(), invalidTransition.To)
		})
	}
}

func TestStatus_CanTransitionTo_SelfIsAllowed(t *testing.T) {
	for _, status := range []load.Status{
		load.StatusScheduled, load.StatusPickedUp, load.StatusDelivered,
	} {
		require.NoError(t, status.CanTransitionTo(status))
	}
}

func TestStatus_CanTransitionTo_ErrorNamesAllowedSet(t *testing.T) {
	err := load.StatusScheduled.CanTransitionTo(load.StatusDelivered)

	var invalidTransition *errs.InvalidTransitionError
	require.ErrorAs(t, err, &invalidTransition)
	assert.ElementsMatch(t,
		[]string{"EN_ROUTE", "PICKED_UP", "CANCELLED"},
		invalidTransition.Allowed)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, load.StatusNew.Validate())
	require.NoError(t, load.StatusDelivered.Validate())
	require.Error(t, load.StatusUnknown.Validate())
	require.Error(t, load.Status(42).Validate())
}
