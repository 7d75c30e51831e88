// Package types defines the core types and interfaces shared across latte:
// the filesystem abstraction, package references, staged and installed
// packages, and the results returned by commands.
package types
