// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - RuleStore: TOML-based rule-set profile storage, one file per profile
package file
