// Package toolchain names the build executables driven by the preparation
// stage and locates the legacy build tool on the host.
package toolchain

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

const (
	EnvDotnet      = "BUILDPREP_DOTNET"
	EnvMSBuildPath = "BUILDPREP_MSBUILD_PATH"
)

// Tools names the executables used by the initial build and the reference
// resolver.
type Tools struct {
	// Locate finds an executable on PATH ("where.exe" on Windows, "which" elsewhere).
	Locate string
	// Restore is the legacy package-restore tool. Its name must appear in
	// the output of the locate probe.
	Restore string
	// Dotnet is the unified SDK command.
	Dotnet string
}

// DefaultTools returns the tool names for the current host, honouring the
// BUILDPREP_DOTNET override.
func DefaultTools() Tools {
	return DefaultToolsFor(runtime.GOOS, os.Getenv)
}

// DefaultToolsFor returns the tool names for goos, reading overrides through getenv.
func DefaultToolsFor(goos string, getenv func(string) string) Tools {
	tools := Tools{
		Locate:  "which",
		Restore: "nuget",
		Dotnet:  "dotnet",
	}
	if goos == "windows" {
		tools.Locate = "where.exe"
		tools.Restore = "nuget.exe"
	}
	if v := strings.TrimSpace(getenv(EnvDotnet)); v != "" {
		tools.Dotnet = v
	}
	return tools
}

// Locator resolves the absolute path of the legacy build tool. It always
// yields a path; whether that path works is discovered when it is started.
type Locator interface {
	LegacyBuildToolPath() string
}

// fallbackMSBuild is returned when nothing better is found, leaving PATH
// resolution to the process start.
const fallbackMSBuild = "MSBuild.exe"

// wellKnownMSBuild lists install locations probed after PATH, newest layout first.
var wellKnownMSBuild = []string{
	`C:\Program Files\Microsoft Visual Studio\*\*\MSBuild\Current\Bin\MSBuild.exe`,
	`C:\Program Files (x86)\Microsoft Visual Studio\*\*\MSBuild\Current\Bin\MSBuild.exe`,
	`C:\Program Files (x86)\Microsoft Visual Studio\*\*\MSBuild\15.0\Bin\MSBuild.exe`,
	`C:\Windows\Microsoft.NET\Framework64\v4.0.30319\MSBuild.exe`,
}

// MSBuildLocator finds MSBuild: explicit override first, then PATH, then
// well-known install locations.
type MSBuildLocator struct {
	Override string
	Patterns []string

	lookPath func(string) (string, error)
	glob     func(string) ([]string, error)
}

// NewMSBuildLocator creates a locator. An empty override falls back to the
// BUILDPREP_MSBUILD_PATH environment variable.
func NewMSBuildLocator(override string) *MSBuildLocator {
	if strings.TrimSpace(override) == "" {
		override = os.Getenv(EnvMSBuildPath)
	}
	return &MSBuildLocator{
		Override: strings.TrimSpace(override),
		Patterns: wellKnownMSBuild,
		lookPath: exec.LookPath,
		glob:     filepath.Glob,
	}
}

func (l *MSBuildLocator) LegacyBuildToolPath() string {
	if l.Override != "" {
		if abs, err := filepath.Abs(l.Override); err == nil {
			return abs
		}
		return l.Override
	}
	for _, name := range []string{"MSBuild.exe", "msbuild"} {
		if p, err := l.lookPath(name); err == nil && p != "" {
			return p
		}
	}
	for _, pattern := range l.Patterns {
		matches, err := l.glob(pattern)
		if err != nil || len(matches) == 0 {
			continue
		}
		// Versioned folder names sort so that the newest install is last.
		sort.Strings(matches)
		return matches[len(matches)-1]
	}
	return fallbackMSBuild
}
