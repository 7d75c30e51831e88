// Package repos manages the repository registry: the file mapping
// repository nicknames to base URLs.
//
// The registry is read on every invocation. If the file does not exist it is
// created holding only the fallback repository, so the default nickname
// always resolves on a fresh install. Every change rewrites the whole file
// through a temporary file and a rename, so readers never observe a
// half-written registry.
package repos
