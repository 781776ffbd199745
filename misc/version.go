// Package misc keeps program identity, values may be overwritten at link time:
//
//	go build -ldflags "-X cssb/misc.version=1.2.3 -X cssb/misc.gitHash=abcdef"
package misc

import (
	"runtime/debug"
)

var (
	appName = "cssb"
	version = ""
	gitHash = ""
)

func GetAppName() string {
	return appName
}

// GetVersion returns version set at link time, module version from build
// information or "dev".
func GetVersion() string {
	if len(version) > 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "dev"
}

// GetGitHash returns commit hash set at link time or recorded by the Go
// toolchain, "unknown" otherwise.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}
	return "unknown"
}
