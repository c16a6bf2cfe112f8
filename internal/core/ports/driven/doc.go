// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Connector: Produces source snapshots (sites, quick links, users)
//   - DocumentStore: Documents table persistence
//   - SyncStateStore: Per-source cursor persistence
//   - SchedulerStore: Scheduled task state and run history
//   - LinkConfigProvider: Quick-links configuration
//   - UserDirectory: User roster
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
