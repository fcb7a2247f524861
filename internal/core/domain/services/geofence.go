package services

import (
	"fmt"

	"meddrop/internal/core/domain/model/kernel"
)

// DefaultGeofenceToleranceMeters is the radius applied when no tolerance is
// configured.
const DefaultGeofenceToleranceMeters = 100.0

// ReportedPosition is a coordinate reported from the field along with the
// device's accuracy estimate in meters (0 when unknown).
type ReportedPosition struct {
	Point          kernel.GeoPoint
	AccuracyMeters float64
}

// GeofenceResult is the structured outcome of a proximity check.
//
// Skipped is set when the check could not run at all (no stored facility
// coordinate); a skipped check is logged by the caller and never blocks a
// transition; it is "validation skipped", not silent success.
type GeofenceResult struct {
	WithinRange    bool
	Skipped        bool
	DistanceMeters float64
	Tolerance      float64
	Message        string
}

// GeofenceValidator decides whether a reported position is close enough to a
// facility. The device accuracy widens the effective tolerance so a precise
// fix is held to a tighter standard than a coarse one.
type GeofenceValidator struct {
	toleranceMeters float64
}

// NewGeofenceValidator creates a validator with the given tolerance radius in
// meters. Non-positive tolerances fall back to the default of 100m.
func NewGeofenceValidator(toleranceMeters float64) GeofenceValidator {
	if toleranceMeters <= 0 {
		toleranceMeters = DefaultGeofenceToleranceMeters
	}
	return GeofenceValidator{toleranceMeters: toleranceMeters}
}

// ToleranceMeters returns the configured tolerance radius.
func (v GeofenceValidator) ToleranceMeters() float64 {
	return v.toleranceMeters
}

// Check compares a reported position against a facility coordinate.
// A nil facility coordinate produces a skipped result rather than an error.
func (v GeofenceValidator) Check(reported ReportedPosition, facility *kernel.GeoPoint) GeofenceResult {
	if facility == nil {
		return GeofenceResult{
			Skipped:   true,
			Tolerance: v.toleranceMeters,
			Message:   "facility has no stored coordinates, geofence validation skipped",
		}
	}

	distance, err := reported.Point.DistanceTo(*facility)
	if err != nil {
		return GeofenceResult{
			Skipped:   true,
			Tolerance: v.toleranceMeters,
			Message:   fmt.Sprintf("geofence validation skipped: %v", err),
		}
	}

	effectiveTolerance := v.toleranceMeters
	if reported.AccuracyMeters > 0 {
		effectiveTolerance += reported.AccuracyMeters
	}

	if distance <= effectiveTolerance {
		return GeofenceResult{
			WithinRange:    true,
			DistanceMeters: distance,
			Tolerance:      effectiveTolerance,
			Message:        fmt.Sprintf("reported position is %.0fm from the facility (within %.0fm)", distance, effectiveTolerance),
		}
	}

	return GeofenceResult{
		WithinRange:    false,
		DistanceMeters: distance,
		Tolerance:      effectiveTolerance,
		Message:        fmt.Sprintf("reported position is %.0fm from the facility (tolerance %.0fm)", distance, effectiveTolerance),
	}
}
