// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements the store interfaces
// through a single database connection:
//
//   - StationStore: Station persistence
//   - LineStore: Lines and their section chains
//   - FavoriteStore: Members' favorite routes
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Sections carry their position in the chain; loading a line rebuilds and
// validates the chain from those rows.
//
// # Data Location
//
// By default, the database is stored at ~/.metro/data/metro.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Saving a line rewrites its sections in one transaction.
package sqlite
