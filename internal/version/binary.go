package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BinaryName is the standalone framework CLI looked up in PATH.
const BinaryName = "tailwindcss"

// detectTimeout bounds how long the binary may take to print its version.
const detectTimeout = 5 * time.Second

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// BinaryInfo describes the standalone framework binary found in PATH.
type BinaryInfo struct {
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Found      bool   `json:"found" yaml:"found"`
	Compatible bool   `json:"compatible" yaml:"compatible"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
}

// DetectBinary finds the framework CLI and checks that it reads the same
// config format.
func DetectBinary(ctx context.Context) BinaryInfo {
	path, err := exec.LookPath(BinaryName)
	if err != nil {
		return BinaryInfo{Message: BinaryName + " not found in PATH"}
	}

	version, err := binaryVersion(ctx, path)
	if err != nil {
		return BinaryInfo{
			Path:    path,
			Found:   true,
			Message: "failed to get version: " + err.Error(),
		}
	}

	return BinaryInfo{
		Version:    version,
		Path:       path,
		Found:      true,
		Compatible: Compatible(version),
		Message:    CompatibilityMessage(version),
	}
}

// binaryVersion runs "<binary> --help", whose first line carries the version.
func binaryVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "--help")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	// The CLI exits non-zero for --help on some releases; the output still
	// carries the banner.
	runErr := cmd.Run()

	version, err := extractVersion(out.String())
	if err != nil && runErr != nil {
		return "", runErr
	}
	return version, err
}

func extractVersion(output string) (string, error) {
	match := semverRe.FindString(output)
	if match == "" {
		return "", fmt.Errorf("no version in output %q", strings.TrimSpace(output))
	}
	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}
	return match, nil
}

// Compatible reports whether a binary version reads JS config files the way
// twscan does.
func Compatible(version string) bool {
	return major(version) == ConfigMajor
}

// CompatibilityMessage explains the result of Compatible.
func CompatibilityMessage(version string) string {
	m := major(version)
	switch {
	case m < 0:
		return "incompatible - invalid version format"
	case m == ConfigMajor:
		return "compatible"
	case m > ConfigMajor:
		return fmt.Sprintf("config is loaded through the @config directive in v%d", m)
	default:
		return fmt.Sprintf("incompatible - v%d predates the config format", m)
	}
}

// major returns the major version number, or -1 when version is malformed.
func major(version string) int {
	parts := strings.Split(strings.TrimPrefix(version, "v"), ".")
	if len(parts) < 3 {
		return -1
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	return n
}

// String returns a human-readable binary info string.
func (b BinaryInfo) String() string {
	if !b.Found {
		return "  Binary Version: not found\n  Binary Path:    -"
	}
	status := b.Message
	if b.Version == "" {
		return fmt.Sprintf("  Binary Version: unknown (%s)\n  Binary Path:    %s", status, b.Path)
	}
	return fmt.Sprintf("  Binary Version: %s (%s)\n  Binary Path:    %s", b.Version, status, b.Path)
}
