package report

const (
	msgInstalled     = "Installed %s from %s"
	msgUpdated       = "Updated %s from %s"
	msgVersionSuffix = " (version %s)"
	msgRemoved       = "Removed %s"
	msgNewPackage    = "Made new package template '%s' in %s"
	msgRepoAdded     = "'%s' added to repositories"
	msgRepoRemoved   = "'%s' removed from repositories"
	msgNoPackages    = "No packages installed"
)

// Status labels
const (
	LabelSuccess = "SUCCESS"
	LabelWarning = "WARNING"
	LabelError   = "ERROR"
)
