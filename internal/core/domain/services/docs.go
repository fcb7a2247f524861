// Package services provides the domain services of the transition engine:
// pure business logic that spans entities without belonging to any single
// aggregate.
//
// The package includes:
//   - GeofenceValidator: proximity checks between reported positions and
//     facility coordinates
//   - DuplicateDetector: similarity classification of proposed loads against
//     recent ones
//   - Precondition validators for signature capture and transition timing
//   - ETA rendering for shipper-facing notifications
//
// Every service here is deterministic and free of I/O, so the transition
// engine can be tested without a live database.
package services
