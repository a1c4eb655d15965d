// Package version holds build information stamped in at link time.
package version

// Version and Commit are overridden with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "unknown"
)
