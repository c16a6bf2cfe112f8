// Package connectors holds the snapshot sources reconciled into the
// documents table. Each subpackage implements driven.Connector:
//
//   - site: external site search endpoints (JSON over HTTP)
//   - quicklinks: the quick-links configuration file
//   - users: the local user directory
package connectors
