// Package internal contains the core implementation packages for taskweave.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the taskweave CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - buildgen: Toolchain, preset, and dependency metadata generation
//   - config: Configuration and build profile management
//   - errors: Structured errors with codes and exit-status mapping
//   - executor: Worker pool and dependency-ordered task execution
//   - formatter: Source collection and external formatter invocation
//   - logging: Structured logging with component scoping
//   - version: Build-time version information
//   - weave: Typed task graph with edges and reachability ordering
//
// # Inter-Package Communication
//
// Packages communicate through well-defined interfaces:
//
//   - cmd loads config and drives buildgen and formatter
//   - executor consumes weave tasks and schedules them by reachability
//   - formatter's watcher re-runs the runner on debounced file events
//   - errors carries exit-status decisions from any package to main
//
// For detailed documentation, see the individual package documentation.
package internal
