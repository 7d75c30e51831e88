package types

// InstallResult holds the result of the 'install' and 'update' commands.
type InstallResult struct {
	Reference Reference        `json:"reference"`
	Package   InstalledPackage `json:"package"`
	// Updated is true when an installed version was replaced
	Updated bool `json:"updated"`
}

// RemoveResult holds the result of the 'remove' command.
type RemoveResult struct {
	Name    string   `json:"name"`
	Removed []string `json:"removed"`
}

// NewPackageResult holds the result of the 'new' command.
type NewPackageResult struct {
	Name  string   `json:"name"`
	Path  string   `json:"path"`
	Files []string `json:"files"`
}

// RepoResult holds the result of the 'add-repo' and 'del-repo' commands.
type RepoResult struct {
	Repository Repository `json:"repository"`
}

// ListReposResult holds the result of the 'list-repos' command.
type ListReposResult struct {
	Repositories []Repository `json:"repositories"`
}

// ListPackagesResult holds the result of the 'list' command.
type ListPackagesResult struct {
	Packages []InstalledPackage `json:"packages"`
}
