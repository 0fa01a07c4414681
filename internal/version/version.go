// Package version reports the cpsort build version
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X bennypowers.dev/cpsort/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = "" // "dirty" for builds from a modified tree
)

// readBuildInfo is replaced in tests
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, the module version, or one derived from git
func GetVersion() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}

	v := GitTag
	short := GitCommit
	if len(short) > 7 {
		short = short[:7]
	}
	if short != "" && !strings.HasSuffix(v, short) {
		v += "-" + short
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

// GetFullVersion returns the version with its commit and build time, when known
func GetFullVersion() string {
	var details []string
	if GitCommit != "unknown" {
		details = append(details, "commit: "+GitCommit)
	}
	if BuildTime != "unknown" {
		details = append(details, "built: "+BuildTime)
	}
	if len(details) == 0 {
		return GetVersion()
	}
	return fmt.Sprintf("%s (%s)", GetVersion(), strings.Join(details, ", "))
}
