// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set by the linker: -ldflags "-X stylebridge/misc.version=... -X stylebridge/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "stylebridge"

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit the program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name, executable name is used when available.
func GetAppName() string {
	if exe, err := os.Executable(); err == nil {
		name := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
		if len(name) > 0 && !strings.HasSuffix(name, ".test") {
			return name
		}
	}
	return appName
}
