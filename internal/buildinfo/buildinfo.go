// Package buildinfo carries values stamped in with -ldflags "-X bitday/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version, falling back to the commit, for window titles and log fields.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	default:
		return "dev"
	}
}

// String is the full one-line build description.
func String() string {
	return fmt.Sprintf("BitDay %s (commit %s, built %s)", Version, Commit, Date)
}
