// Package resolver turns a package reference typed by the user into the
// repository URL and package name to fetch.
//
// A reference is either a bare package name, which is looked up in the
// default repository, or nickname/name.
package resolver
