// Package install moves staged packages into place and removes installed
// ones.
//
// An installed package is nothing more than two files: the metadata file in
// the metadata directory and the entry point in the binaries directory, both
// named after the package. There is no index; State reports what the
// filesystem holds.
//
// Install is two-phase. Any previous version is moved aside into the staging
// directory before the new file is moved in, and if the second move fails
// the first one is undone so the package is left as it was found.
package install
