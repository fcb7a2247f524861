// Package load contains the Load aggregate, the central entity of the
// dispatch domain. A load tracks a single shipment from intake to delivery.
//
// The aggregate enforces the lifecycle invariants:
//   - status moves only along the edges of the transition state machine
//   - movement statuses require an assigned driver
//   - an invoice is attached at most once over the load's lifetime
//   - the public tracking code is immutable after construction
//
// All mutation goes through validated methods; the struct cannot be built
// directly thanks to the construction flag checked by Validate.
package load
