package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// APIVersion is reported by the welcome endpoint and never changes with the build.
const APIVersion = "1.0.0"

var (
	// Name of the application
	AppName = "devops-health"

	// Build version, overridable via ldflags
	Version = APIVersion

	// Git commit hash, set via ldflags or read from build info
	Revision = "HEAD"
)

func applyBuildInfo(settings map[string]string) {
	if Revision != "HEAD" && Revision != "" {
		return
	}
	if r := settings["vcs.revision"]; r != "" {
		if settings["vcs.modified"] == "true" {
			r += "-dirty"
		}
		Revision = r
	}
}

// Short returns `1.0.0 (5e23a4)`
func Short() string {
	return fmt.Sprintf("%s (%s)", Version, Revision)
}

// Detailed returns `1.0.0 (5e23a4; go1.24.2; linux/amd64)`
func Detailed() string {
	return fmt.Sprintf("%s (%s; %s; %s/%s)", Version, Revision, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return
	}
	settings := map[string]string{}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	applyBuildInfo(settings)
}
