// Package fetch downloads package files from a remote repository into a
// local staging directory.
//
// A repository is a plain HTTP tree:
//
//	<base>/init.latte
//	<base>/<package>/meta.latte
//	<base>/<package>/bin.py
//
// Fetch issues one GET per package file, in that order, and removes the
// staging directory again if any of them fails.
package fetch
