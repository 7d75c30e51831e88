// Package version holds the build information of the latte binary
package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/latte/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/latte/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/latte/internal/version.Date={{.Date}}
)

// String returns the version line printed by 'latte --version'
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
