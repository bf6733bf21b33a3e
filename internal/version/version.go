// Package version provides build-time version information.
//
// Set at build time via:
//
//	go build -ldflags "-X shellward/internal/version.GitCommit=$(git rev-parse --short HEAD)"
package version

// Version is the release version.
var Version = "0.1.0"

// GitCommit is the short git commit hash, set at build time via ldflags.
var GitCommit = "dev"

// String returns "version (commit)".
func String() string {
	return Version + " (" + GitCommit + ")"
}
