// Package version provides version information for the twscan CLI.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// CUESDKVersion is the version of the CUE SDK used to evaluate config files.
const CUESDKVersion = "v0.15.4"

// ConfigMajor is the framework major version whose JS config format twscan reads.
const ConfigMajor = 3

// Info contains version information.
type Info struct {
	Version       string `json:"version" yaml:"version"`
	GitCommit     string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate     string `json:"buildDate" yaml:"buildDate"`
	GoVersion     string `json:"goVersion" yaml:"goVersion"`
	CUESDKVersion string `json:"cueSDKVersion" yaml:"cueSDKVersion"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: CUESDKVersion,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("twscan:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nCUE:\n  SDK Version: %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.CUESDKVersion)
}

// FullVersionString returns version information including the detected
// standalone framework binary.
func FullVersionString(info Info, bin BinaryInfo) string {
	return fmt.Sprintf("%s\n\nFramework CLI:\n%s", info.String(), bin.String())
}
