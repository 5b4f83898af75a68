// Package version reports build information for the subghz tools
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set with -ldflags "-X subghz-inspector/internal/version.Commit=..."
var (
	Version   = "0.3.0"
	Commit    = ""
	BuildDate = ""
)

// shortCommit is the first seven characters of Commit
func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// GetVersion returns the release, suffixed with the short commit when known
func GetVersion() string {
	if c := shortCommit(); c != "" {
		return Version + "+" + c
	}
	return Version
}

// GetVersionInfo returns the --version text printed by the binaries
func GetVersionInfo(appName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", appName, GetVersion())
	if BuildDate != "" {
		fmt.Fprintf(&b, " (built %s)", BuildDate)
	}
	fmt.Fprintf(&b, "\nReads and writes Flipper SubGHz RAW captures (.sub)")
	fmt.Fprintf(&b, "\n%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return b.String()
}
