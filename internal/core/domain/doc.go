// Package domain defines the core business entities for metro.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Station: A named stop, referenced by StationID
//   - Section: A track segment between two stations of one line
//   - Sections: The ordered, unbranching chain of sections of a line
//   - Line: A named line owning its chain and a fare surcharge
//   - Route: The result of a path query with distance and fare
//   - FarePolicy: Distance-tiered fare with age discounts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
