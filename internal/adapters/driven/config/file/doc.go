// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to or read it from the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage with environment overrides
//   - LinkConfigFile: YAML quick-links configuration
package file
