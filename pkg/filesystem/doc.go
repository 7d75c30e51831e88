// Package filesystem provides filesystem implementations for latte.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used at runtime and an afero-backed one used by tests
// that need an in-memory tree or injected failures.
package filesystem
