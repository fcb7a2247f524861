package kernel_test

import (
	"testing"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint_ValidCoordinates(t *testing.T) {
	point, err := kernel.NewGeoPoint(40.7128, -74.0060)

	require.NoError(t, err)
	assert.InDelta(t, 40.7128, point.Latitude(), 1e-9)
	assert.InDelta(t, -74.0060, point.Longitude(), 1e-9)
	require.NoError(t, point.Validate())
}

func TestNewGeoPoint_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
	}{
		{"latitude above max", 90.5, 0},
		{"latitude below min", -91, 0},
		{"longitude above max", 0, 180.1},
		{"longitude below min", 0, -181},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kernel.NewGeoPoint(tc.latitude, tc.longitude)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}

func TestGeoPoint_ZeroValueIsInvalid(t *testing.T) {
	var point kernel.GeoPoint
	require.Error(t, point.Validate())

	_, err := point.DistanceTo(point)
	require.Error(t, err)
}

func TestGeoPoint_DistanceTo(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(51.5007, -0.1246)
		require.NoError(t, err)

		distance, err := point.DistanceTo(point)
		require.NoError(t, err)
		assert.InDelta(t, 0, distance, 0.001)
	})

	t.Run("known city pair", func(t *testing.T) {
		// Big Ben to the Eiffel Tower, roughly 340.5 km.
		bigBen, err := kernel.NewGeoPoint(51.5007, -0.1246)
		require.NoError(t, err)
		eiffel, err := kernel.NewGeoPoint(48.8584, 2.2945)
		require.NoError(t, err)

		distance, err := bigBen.DistanceTo(eiffel)
		require.NoError(t, err)
		assert.InDelta(t, 340500, distance, 1500)
	})

	t.Run("short hop is symmetric", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(40.712800, -74.006000)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(40.713200, -74.006400)
		require.NoError(t, err)

		ab, err := a.DistanceTo(b)
		require.NoError(t, err)
		ba, err := b.DistanceTo(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
		// ~55m apart; well within a 100m geofence.
		assert.Greater(t, ab, 40.0)
		assert.Less(t, ab, 80.0)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, err := kernel.NewGeoPoint(10, 20)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(10, 20)
	require.NoError(t, err)
	c, err := kernel.NewGeoPoint(10, 21)
	require.NoError(t, err)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)
}
