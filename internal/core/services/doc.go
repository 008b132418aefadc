// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Line mutations and path queries are
// traced with OpenTelemetry; without a configured provider the spans are no-ops.
package services
