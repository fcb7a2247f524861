package commands_test

import (
	"testing"

	"meddrop/internal/core/application/usecases/commands"
	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/ports"
	"meddrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionLoadCommand(t *testing.T) {
	base := commands.TransitionLoadParams{
		LoadID:       kernel.NewUUID(),
		TargetStatus: load.StatusPickedUp,
		Actor:        adminPrincipal(),
	}

	t.Run("minimal request", func(t *testing.T) {
		command, err := commands.NewTransitionLoadCommand(base)
		require.NoError(t, err)
		require.NoError(t, command.Validate())
		assert.Nil(t, command.ReportedPosition())
	})

	t.Run("rejects the zero-value load id", func(t *testing.T) {
		params := base
		params.LoadID = kernel.UUID{}
		_, err := commands.NewTransitionLoadCommand(params)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects an unknown target status", func(t *testing.T) {
		params := base
		params.TargetStatus = load.StatusUnknown
		_, err := commands.NewTransitionLoadCommand(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a missing actor", func(t *testing.T) {
		params := base
		params.Actor = ports.Principal{}
		_, err := commands.NewTransitionLoadCommand(params)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("latitude and longitude come in pairs", func(t *testing.T) {
		params := base
		params.Latitude = floatPtr(40.7580)
		_, err := commands.NewTransitionLoadCommand(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("coordinates must be in range", func(t *testing.T) {
		params := base
		params.Latitude = floatPtr(91)
		params.Longitude = floatPtr(0)
		_, err := commands.NewTransitionLoadCommand(params)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("override demands a reason", func(t *testing.T) {
		params := base
		params.OverrideGpsValidation = true
		_, err := commands.NewTransitionLoadCommand(params)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative quote is rejected", func(t *testing.T) {
		params := base
		negative := int64(-100)
		params.QuoteAmountCents = &negative
		_, err := commands.NewTransitionLoadCommand(params)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var command commands.TransitionLoadCommand
		require.ErrorIs(t, command.Validate(), commands.ErrTransitionLoadCommandIsNotConstructed)
	})
}
