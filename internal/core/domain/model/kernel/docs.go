// Package kernel provides the shared value objects of the relay domain.
//
// The package includes:
//   - UUID: identifiers for entities and aggregates, totally ordered
//   - Date and DateRange: calendar days and inclusive day spans
//   - GeoPoint: longitude/latitude pairs with great circle distance
//
// All types are immutable values whose zero value fails Validate.
package kernel
