// Package html converts markup from external sites into plain text.
// Only bounded excerpts are ever persisted; full content is discarded.
package html
