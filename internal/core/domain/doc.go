// Package domain defines the core business entities for sitesync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A record in the documents table
//   - Audience: The normalised token set a document is visible to
//   - Snapshot: The full set of documents a connector reports for a source
//   - Requester: The user a search is filtered for
//   - LinkConfig, DirectoryUser: Decoded inputs of the internal adapters
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
