// Package misc keeps build time program information.
package misc

import "runtime/debug"

// Set at link time with -ldflags "-X onepaper/misc.version=... -X onepaper/misc.buildHash=...".
var (
	version   = "dev"
	buildHash = ""
	appName   = ""
)

// GetAppName returns program name without extension.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	return "onepaper"
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns revision program was built from, if known.
func GetGitHash() string {
	if len(buildHash) > 0 {
		return buildHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
