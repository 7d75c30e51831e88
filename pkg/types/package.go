package types

// PackageState is the per-package state observed through the filesystem
type PackageState string

const (
	// StateAbsent means neither package file exists
	StateAbsent PackageState = "absent"
	// StateInstalled means both the metadata file and the entry point exist
	StateInstalled PackageState = "installed"
	// StateInconsistent means exactly one of the two files exists
	StateInconsistent PackageState = "inconsistent"
)

// Reference is a resolved package reference
type Reference struct {
	// Nickname of the repository the package comes from
	Nickname string `json:"nickname"`
	// URL is the repository base URL
	URL string `json:"url"`
	// Name of the package
	Name string `json:"name"`
	// Defaulted is true when the reference named no repository
	Defaulted bool `json:"defaulted"`
}

// String renders the reference in its fully qualified form
func (r Reference) String() string {
	return r.Nickname + "/" + r.Name
}

// StagedPackage is a freshly fetched package waiting to be installed
type StagedPackage struct {
	Name         string
	Dir          string
	MetadataPath string
	BinPath      string
}

// InstalledPackage describes the two files of an installed package
type InstalledPackage struct {
	Name         string            `json:"name"`
	MetadataPath string            `json:"metadataPath"`
	BinPath      string            `json:"binPath"`
	State        PackageState      `json:"state"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Version returns the version recorded in the package metadata, if any
func (p InstalledPackage) Version() string {
	return p.Metadata["version"]
}

// Repository is one registry record
type Repository struct {
	Nickname string `json:"nickname"`
	URL      string `json:"url"`
}
