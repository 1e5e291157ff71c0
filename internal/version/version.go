package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/scanwatch/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/scanwatch/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/scanwatch/internal/version.Date={{.Date}}
)

// String returns the version line printed by `scanwatch version`
func String() string {
	return fmt.Sprintf("scanwatch %s (commit %s, built %s)", Version, Commit, Date)
}
