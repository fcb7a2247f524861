package services

import (
	"errors"
	"time"

	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/pkg/errs"
)

// SignatureInput carries the signature fields of a transition request. All
// fields are optional at the transport level; completeness rules only apply
// once any of them is supplied or the load demands a signature.
type SignatureInput struct {
	Signature         string
	SignerName        string
	UnavailableReason string
}

// Supplied reports whether the caller provided any signature field at all.
func (s SignatureInput) Supplied() bool {
	return s.Signature != "" || s.SignerName != "" || s.UnavailableReason != ""
}

// ValidateSignature checks signature completeness.
//
// A capture is complete when it has both the signature data and the signer
// name, or when a documented unavailable-reason stands in for both. required
// forces validation even when nothing was supplied (delivery confirmation on
// a signature-required load).
func ValidateSignature(input SignatureInput, required bool) error {
	if !required && !input.Supplied() {
		return nil
	}

	if input.UnavailableReason != "" {
		if input.Signature != "" || input.SignerName != "" {
			return errs.NewSignatureIncompleteError(
				"signature fields and an unavailable-reason are mutually exclusive")
		}
		return nil
	}

	if input.Signature == "" && input.SignerName == "" {
		return errs.NewSignatureIncompleteError("no signature was captured")
	}
	if input.Signature == "" {
		return errs.NewSignatureIncompleteError("signature data is missing")
	}
	if input.SignerName == "" {
		return errs.NewSignatureIncompleteError("signer name is missing")
	}
	return nil
}

// ValidateTemperature checks a pickup temperature reading against the load's
// requirement. Reading may be nil when the caller did not report one; a
// requirement with a band then fails the precondition.
func ValidateTemperature(requirement load.TemperatureRequirement, reading *float64) error {
	if !requirement.DemandsReading() {
		return nil
	}

	if reading == nil {
		return errs.NewValueIsRequiredErrorWithCause("temperature",
			errors.New(requirement.String()+" loads must report a temperature at pickup"))
	}

	return requirement.ValidateReading(*reading)
}

// ValidateTransitionTiming applies timing sanity to custody transitions:
// a pickup confirmed before the ready time or a delivery confirmed before the
// pickup-side events would corrupt the custody trail.
func ValidateTransitionTiming(aggregate *load.Load, target load.Status, now time.Time) error {
	if target != load.StatusPickedUp {
		return nil
	}

	if ready := aggregate.ReadyTime(); ready != nil && now.Before(*ready) {
		return errs.NewPreconditionFailedErrorWithCause("timing",
			errors.New("pickup confirmed before the shipment's ready time"))
	}
	return nil
}
