// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - StationStore: Station persistence
//   - LineStore: Line and section chain persistence
//   - FavoriteStore: Favorite route persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - ConfigWatcher: Live reload of configuration edits. Only used by long-running servers.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
