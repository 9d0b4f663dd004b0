// Package misc keeps build time information about the program.
package misc

import (
	"path/filepath"
	"runtime/debug"
	"strings"
)

// These are set by the linker: -ldflags "-X rgen/misc.version=... -X rgen/misc.githash=..."
var (
	version = "dev"
	githash = ""
	appname = "rgen"
)

func GetVersion() string {
	return version
}

// GetGitHash returns commit the binary was built from, falling back to VCS
// information embedded by the go tool.
func GetGitHash() string {
	if len(githash) > 0 {
		return githash
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

func GetAppName() string {
	return strings.TrimSuffix(filepath.Base(appname), filepath.Ext(appname))
}
