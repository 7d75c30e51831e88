// Package swconf reads and writes the flat key=value record format shared by
// the repository registry, repository init files and package metadata.
//
// A document is a sequence of lines. Empty lines are skipped; every other
// line is split once on its first '=' into a key and a value, so values may
// themselves contain '='. There is no quoting, escaping or comment syntax.
// A line without '=' or with an empty key is rejected.
//
// Records keep the order in which keys were first seen. Setting an existing
// key replaces its value in place.
package swconf
