// Package errs provides the standardized error types used across the load
// lifecycle service.
//
// Two groups of errors live here:
//
//   - Value errors shared by every layer: ValueIsRequiredError,
//     ValueIsInvalidError, ValueIsOutOfRangeError, ObjectNotFoundError and
//     VersionIsInvalidError.
//   - Transition-engine errors that make up the caller-facing taxonomy:
//     InvalidTransitionError, PreconditionFailedError, GeofenceViolationError,
//     SignatureIncompleteError, TemperatureOutOfRangeError,
//     StateConflictError and AuthorizationError.
//
// Each type follows the same pattern: a sentinel error variable usable with
// errors.Is, a struct carrying the error details, constructor functions,
// an Error() formatting method and an Unwrap() method. Types that are part of
// the external API contract additionally expose a stable machine-readable
// Code() so transports can map them without string matching.
package errs
