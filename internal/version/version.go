// Package version holds build identification, set at link time via
// -ldflags "-X github.com/eventcam/wheeltrack/internal/version.Version=...".
package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
)

// String returns the version with its commit identifier.
func String() string {
	return Version + " (" + GitSHA + ")"
}
