package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the transition-engine taxonomy.
var (
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrPreconditionFailed    = errors.New("precondition failed")
	ErrGeofenceViolation     = errors.New("geofence check failed")
	ErrSignatureIncomplete   = errors.New("signature is incomplete")
	ErrTemperatureOutOfRange = errors.New("temperature is out of range")
	ErrStateConflict         = errors.New("state conflict")
	ErrDuplicateLoad         = errors.New("duplicate load")
	ErrAuthorization         = errors.New("not authorized")
)

// InvalidTransitionError is returned when a target status is not reachable
// from the load's current status. Allowed carries the full allow-list of the
// current status so callers can see every legal destination.
type InvalidTransitionError struct {
	From    string
	To      string
	Allowed []string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// edge and the allow-list of the origin status.
func NewInvalidTransitionError(from, to string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Allowed: allowed}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s (allowed from %s: [%s])",
		ErrInvalidTransition, e.From, e.To, e.From, strings.Join(e.Allowed, ", "))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Code returns the stable machine-readable code for this error kind.
func (e *InvalidTransitionError) Code() string {
	return "INVALID_TRANSITION"
}

// PreconditionFailedError is returned when a business precondition blocks a
// transition, e.g. no driver is assigned to the load.
type PreconditionFailedError struct {
	ParamName string
	Cause     error
}

// NewPreconditionFailedError creates a PreconditionFailedError without a cause.
func NewPreconditionFailedError(paramName string) *PreconditionFailedError {
	return &PreconditionFailedError{ParamName: paramName}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError
// wrapping the underlying failure.
func NewPreconditionFailedErrorWithCause(paramName string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{ParamName: paramName, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrPreconditionFailed, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.ParamName)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// Code returns the stable machine-readable code for this error kind.
func (e *PreconditionFailedError) Code() string {
	return "PRECONDITION_FAILED"
}

// GeofenceViolationError is returned when a reported coordinate is farther
// from the target facility than the tolerance allows and no override was
// supplied. RequiresOverride tells the caller the transition can still be
// forced with an audited override reason.
type GeofenceViolationError struct {
	DistanceMeters   float64
	ToleranceMeters  float64
	RequiresOverride bool
}

// NewGeofenceViolationError creates a GeofenceViolationError for a reported
// position that landed outside the facility radius.
func NewGeofenceViolationError(distanceMeters, toleranceMeters float64) *GeofenceViolationError {
	return &GeofenceViolationError{
		DistanceMeters:   distanceMeters,
		ToleranceMeters:  toleranceMeters,
		RequiresOverride: true,
	}
}

func (e *GeofenceViolationError) Error() string {
	return fmt.Sprintf("%s: reported position is %.0fm from the facility (tolerance %.0fm), requires override",
		ErrGeofenceViolation, e.DistanceMeters, e.ToleranceMeters)
}

func (e *GeofenceViolationError) Unwrap() error {
	return ErrGeofenceViolation
}

// Code returns the stable machine-readable code for this error kind.
func (e *GeofenceViolationError) Code() string {
	return "GPS_OUT_OF_RANGE"
}

// SignatureIncompleteError is returned when signature fields were supplied but
// do not form a complete signature capture.
type SignatureIncompleteError struct {
	Reason string
}

// NewSignatureIncompleteError creates a SignatureIncompleteError with a
// human-readable reason.
func NewSignatureIncompleteError(reason string) *SignatureIncompleteError {
	return &SignatureIncompleteError{Reason: reason}
}

func (e *SignatureIncompleteError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSignatureIncomplete, e.Reason)
}

func (e *SignatureIncompleteError) Unwrap() error {
	return ErrSignatureIncomplete
}

// Code returns the stable machine-readable code for this error kind.
func (e *SignatureIncompleteError) Code() string {
	return "SIGNATURE_INCOMPLETE"
}

// TemperatureOutOfRangeError is returned when a temperature reading falls
// outside the band required by the load's temperature requirement.
type TemperatureOutOfRangeError struct {
	Reading     float64
	Min         float64
	Max         float64
	Requirement string
}

// NewTemperatureOutOfRangeError creates a TemperatureOutOfRangeError for a
// reading outside [minC, maxC] demanded by the named requirement.
func NewTemperatureOutOfRangeError(reading, minC, maxC float64, requirement string) *TemperatureOutOfRangeError {
	return &TemperatureOutOfRangeError{Reading: reading, Min: minC, Max: maxC, Requirement: requirement}
}

func (e *TemperatureOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %.1f°C is outside [%.1f°C, %.1f°C] required for %s",
		ErrTemperatureOutOfRange, e.Reading, e.Min, e.Max, e.Requirement)
}

func (e *TemperatureOutOfRangeError) Unwrap() error {
	return ErrTemperatureOutOfRange
}

// Code returns the stable machine-readable code for this error kind.
func (e *TemperatureOutOfRangeError) Code() string {
	return "TEMPERATURE_OUT_OF_RANGE"
}

// StateConflictError is returned when an optimistic commit loses to a
// concurrent writer. The caller contract is re-fetch and retry, never assume
// the write landed.
type StateConflictError struct {
	ParamName string
	ID        string
}

// NewStateConflictError creates a StateConflictError for the entity that was
// concurrently modified.
func NewStateConflictError(paramName, id string) *StateConflictError {
	return &StateConflictError{ParamName: paramName, ID: id}
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified concurrently, re-fetch and retry", ErrStateConflict, e.ParamName, e.ID)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// Code returns the stable machine-readable code for this error kind.
func (e *StateConflictError) Code() string {
	return "STATE_CONFLICT"
}

// DuplicateLoadError is returned at intake when a proposed load matches an
// existing one. MatchLevel is "EXACT" or "NEAR"; an exact match blocks
// creation unless overridden.
type DuplicateLoadError struct {
	MatchLevel     string
	ExistingLoadID string
}

// NewDuplicateLoadError creates a DuplicateLoadError pointing at the existing
// load the proposal collided with.
func NewDuplicateLoadError(matchLevel, existingLoadID string) *DuplicateLoadError {
	return &DuplicateLoadError{MatchLevel: matchLevel, ExistingLoadID: existingLoadID}
}

func (e *DuplicateLoadError) Error() string {
	return fmt.Sprintf("%s: %s match with existing load %s", ErrDuplicateLoad, e.MatchLevel, e.ExistingLoadID)
}

func (e *DuplicateLoadError) Unwrap() error {
	return ErrDuplicateLoad
}

// Code returns the stable machine-readable code for this error kind.
func (e *DuplicateLoadError) Code() string {
	return "DUPLICATE_LOAD"
}

// AuthorizationError is returned when the acting principal may not perform the
// requested operation. It short-circuits the whole engine before validation.
type AuthorizationError struct {
	Actor  string
	Action string
}

// NewAuthorizationError creates an AuthorizationError for the denied actor and
// action.
func NewAuthorizationError(actor, action string) *AuthorizationError {
	return &AuthorizationError{Actor: actor, Action: action}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrAuthorization, e.Actor, e.Action)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// Code returns the stable machine-readable code for this error kind.
func (e *AuthorizationError) Code() string {
	return "FORBIDDEN"
}

// Coder is implemented by every error type that carries a stable
// machine-readable code for the external API contract.
type Coder interface {
	Code() string
}

// CodeOf extracts the machine-readable code from err, walking the wrap chain.
// Returns "INTERNAL" for errors outside the taxonomy.
func CodeOf(err error) string {
	var coder Coder
	if errors.As(err, &coder) {
		return coder.Code()
	}
	return "INTERNAL"
}
