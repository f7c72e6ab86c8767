// Package services implements the driving port interfaces: the use cases
// of reportex. Services orchestrate the extraction engine and the driven
// ports (run store, rule store) without doing any I/O of their own beyond
// what those ports provide.
package services
