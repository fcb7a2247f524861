// Package tracking contains the TrackingEvent entity: the immutable,
// append-only chain-of-custody record of a load. Exactly one event is
// appended per committed status transition, in commit order, and events are
// never updated or deleted.
package tracking
