// Package kernel contains the shared value objects of the domain model:
// validated identifiers and geographic coordinates. These types are immutable,
// safe for concurrent use, and can only be created through their constructor
// functions so that invalid values never enter the domain.
package kernel
