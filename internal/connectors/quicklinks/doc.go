// Package quicklinks provides a connector that indexes the configured
// quick links as documents of source "ql".
package quicklinks
