package services_test

import (
	"testing"
	"time"

	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestFormatETA(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		deadline := now.Add(d)
		return &deadline
	}

	t.Run("no deadline means no estimate", func(t *testing.T) {
		assert.Empty(t, services.FormatETA(load.StatusInTransit, nil, now))
	})

	t.Run("en route shows the deadline itself", func(t *testing.T) {
		got := services.FormatETA(load.StatusEnRoute, at(30*time.Hour), now)
		assert.Equal(t, "expected delivery by Mon, 31 Aug 2026 18:00 UTC", got)
	})

	t.Run("in custody under a day is a countdown in hours", func(t *testing.T) {
		assert.Equal(t, "within 6 hours",
			services.FormatETA(load.StatusPickedUp, at(6*time.Hour), now))
		assert.Equal(t, "within 23 hours",
			services.FormatETA(load.StatusInTransit, at(23*time.Hour+30*time.Minute), now))
	})

	t.Run("past-due deadlines floor at zero", func(t *testing.T) {
		assert.Equal(t, "within 0 hours",
			services.FormatETA(load.StatusInTransit, at(-2*time.Hour), now))
	})

	t.Run("a day or more renders days and hours", func(t *testing.T) {
		assert.Equal(t, "1 days and 6 hours",
			services.FormatETA(load.StatusPickedUp, at(30*time.Hour), now))
		assert.Equal(t, "2 days",
			services.FormatETA(load.StatusInTransit, at(48*time.Hour), now))
	})

	t.Run("statuses without an estimate render nothing", func(t *testing.T) {
		assert.Empty(t, services.FormatETA(load.StatusScheduled, at(6*time.Hour), now))
		assert.Empty(t, services.FormatETA(load.StatusDelivered, at(6*time.Hour), now))
	})
}
