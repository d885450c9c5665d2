package scrapegraph

import (
	"fmt"
	"runtime"
)

var (
	// Version is the SDK semantic version (injected at build time optionally).
	Version = "v1.0.0"
	// GitCommit is the git SHA (inject via -ldflags at build time).
	GitCommit = "unknown"
	// GoVersion records the Go toolchain version used.
	GoVersion = runtime.Version()
)

// defaultUserAgent identifies the SDK on every request.
func defaultUserAgent() string {
	return fmt.Sprintf("scrapegraph-sdk-go/%s (%s)", Version, GoVersion)
}

// GetVersionInfo returns version metadata as a map for logging.
func GetVersionInfo() map[string]string {
	return map[string]string{
		"version":    Version,
		"commit":     GitCommit,
		"go_version": GoVersion,
	}
}
