package services

import (
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
)

// MatchLevel classifies how similar a proposed load is to an existing one.
type MatchLevel int

const (
	// MatchNone means no meaningful similarity.
	MatchNone MatchLevel = iota

	// MatchNear means same shipper and lane with timing close enough to look
	// suspicious. Near matches are advisory by default.
	MatchNear

	// MatchExact means same shipper, same pickup and dropoff facilities, same
	// service type and an overlapping timing window. Exact matches block
	// creation unless explicitly overridden.
	MatchExact
)

// String returns the wire representation of the match level.
func (l MatchLevel) String() string {
	switch l {
	case MatchExact:
		return "EXACT"
	case MatchNear:
		return "NEAR"
	default:
		return "NONE"
	}
}

// LoadFingerprint is the subset of load attributes compared during duplicate
// detection.
type LoadFingerprint struct {
	LoadID      kernel.UUID
	ShipperID   kernel.UUID
	PickupID    kernel.UUID
	DropoffID   kernel.UUID
	ServiceType load.ServiceType
	ReadyTime   *time.Time
	Deadline    *time.Time
}

// FingerprintOf extracts the duplicate-detection fingerprint of a load.
func FingerprintOf(aggregate *load.Load) LoadFingerprint {
	return LoadFingerprint{
		LoadID:      aggregate.ID(),
		ShipperID:   aggregate.ShipperID(),
		PickupID:    aggregate.Pickup().ID(),
		DropoffID:   aggregate.Dropoff().ID(),
		ServiceType: aggregate.ServiceType(),
		ReadyTime:   aggregate.ReadyTime(),
		Deadline:    aggregate.DeliveryDeadline(),
	}
}

// DuplicateMatch is the outcome of classifying a proposed load against one
// existing load.
type DuplicateMatch struct {
	Level    MatchLevel
	Existing LoadFingerprint
}

// nearWindow is how close two ready times must be, on the same lane, for a
// near match.
const nearWindow = 2 * time.Hour

// DuplicateDetector classifies a proposed load against recent loads of the
// same shipper. It is pure: callers supply the candidate set.
type DuplicateDetector struct{}

// NewDuplicateDetector creates a DuplicateDetector.
func NewDuplicateDetector() DuplicateDetector {
	return DuplicateDetector{}
}

// Classify returns the strongest match between the proposal and the existing
// fingerprints. Exact wins over near; near wins over none.
func (d DuplicateDetector) Classify(proposed LoadFingerprint, existing []LoadFingerprint) DuplicateMatch {
	best := DuplicateMatch{Level: MatchNone}

	for _, candidate := range existing {
		level := d.compare(proposed, candidate)
		if level > best.Level {
			best = DuplicateMatch{Level: level, Existing: candidate}
		}
		if best.Level == MatchExact {
			break
		}
	}

	return best
}

func (d DuplicateDetector) compare(proposed, candidate LoadFingerprint) MatchLevel {
	if !proposed.ShipperID.IsEqual(candidate.ShipperID) {
		return MatchNone
	}

	sameLane := proposed.PickupID.IsEqual(candidate.PickupID) &&
		proposed.DropoffID.IsEqual(candidate.DropoffID)
	if !sameLane {
		return MatchNone
	}

	if proposed.ServiceType == candidate.ServiceType &&
		windowsOverlap(proposed, candidate) {
		return MatchExact
	}

	if readyTimesClose(proposed.ReadyTime, candidate.ReadyTime) {
		return MatchNear
	}

	return MatchNone
}

// windowsOverlap reports whether the [readyTime, deadline] windows of two
// fingerprints intersect. A missing bound is treated as open on that side, so
// two loads with no timing at all on the same lane overlap by definition.
func windowsOverlap(a, b LoadFingerprint) bool {
	aStart, aEnd := windowOf(a)
	bStart, bEnd := windowOf(b)

	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}

func windowOf(f LoadFingerprint) (start, end time.Time) {
	start = time.Time{}
	// Far-future sentinel for an open-ended window.
	end = time.Unix(1<<62-1, 0)

	if f.ReadyTime != nil {
		start = *f.ReadyTime
	}
	if f.Deadline != nil {
		end = *f.Deadline
	}
	return start, end
}

func readyTimesClose(a, b *time.Time) bool {
	if a == nil || b == nil {
		// Same lane with no comparable timing still deserves a warning.
		return a == nil && b == nil
	}

	delta := a.Sub(*b)
	if delta < 0 {
		delta = -delta
	}
	return delta <= nearWindow
}
