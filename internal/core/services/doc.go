// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Reconciler makes the documents table match connector snapshots,
// the AccessEvaluator decides document visibility, and the
// SyncOrchestrator and Scheduler drive both on demand or on a schedule.
package services
