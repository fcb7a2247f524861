package load

import (
	"fmt"

	"meddrop/internal/pkg/errs"
)

// TemperatureRequirement describes the temperature band a shipment must stay
// within while in custody. Ambient and Other carry no band and readings are
// never validated against them.
type TemperatureRequirement int

const (
	// TemperatureUnknown is the invalid zero value.
	TemperatureUnknown TemperatureRequirement = iota

	// TemperatureAmbient means no temperature control is required.
	TemperatureAmbient

	// TemperatureRefrigerated means the standard cold-chain band of 2-8°C.
	TemperatureRefrigerated

	// TemperatureFrozen means the frozen band of -25 to -10°C.
	TemperatureFrozen

	// TemperatureOther means a control regime tracked outside this system.
	TemperatureOther
)

// temperatureBand holds the inclusive reading bounds for a requirement.
type temperatureBand struct {
	minC float64
	maxC float64
}

func temperatureStrings() map[TemperatureRequirement]string {
	return map[TemperatureRequirement]string{
		TemperatureUnknown:      "UNKNOWN",
		TemperatureAmbient:      "AMBIENT",
		TemperatureRefrigerated: "REFRIGERATED",
		TemperatureFrozen:       "FROZEN",
		TemperatureOther:        "OTHER",
	}
}

func temperatureBands() map[TemperatureRequirement]temperatureBand {
	return map[TemperatureRequirement]temperatureBand{
		TemperatureRefrigerated: {minC: 2, maxC: 8},
		TemperatureFrozen:       {minC: -25, maxC: -10},
	}
}

// TemperatureFromString parses the wire representation of a requirement.
func TemperatureFromString(s string) (TemperatureRequirement, error) {
	for requirement, str := range temperatureStrings() {
		if str == s && requirement != TemperatureUnknown {
			return requirement, nil
		}
	}
	return TemperatureUnknown, errs.NewValueIsInvalidErrorWithCause(
		"temperatureRequirement", fmt.Errorf("%q is not a known temperature requirement", s))
}

// String returns the wire representation of the requirement.
func (r TemperatureRequirement) String() string {
	if str, ok := temperatureStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate reports whether the requirement is one of the defined values.
func (r TemperatureRequirement) Validate() error {
	switch r {
	case TemperatureAmbient, TemperatureRefrigerated, TemperatureFrozen, TemperatureOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"temperatureRequirement", fmt.Errorf("%d is not a valid temperature requirement", r))
	}
}

// DemandsReading reports whether a pickup confirmation must carry a
// temperature reading for this requirement.
func (r TemperatureRequirement) DemandsReading() bool {
	_, ok := temperatureBands()[r]
	return ok
}

// ValidateReading checks a reading in °C against the requirement's band.
// Requirements without a band accept any reading.
func (r TemperatureRequirement) ValidateReading(readingC float64) error {
	band, ok := temperatureBands()[r]
	if !ok {
		return nil
	}

	if readingC < band.minC || readingC > band.maxC {
		return errs.NewTemperatureOutOfRangeError(readingC, band.minC, band.maxC, r.String())
	}
	return nil
}
