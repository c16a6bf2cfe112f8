// Package memory provides in-memory implementations of the driven storage ports.
//
// The stores are safe for concurrent use and mirror the behaviour of the
// sqlite adapter closely enough to back service tests.
package memory
