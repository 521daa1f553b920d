package initialbuild

import (
	"context"
	"strings"

	"github.com/specialistvlad/buildprep/internal/ctxlog"
)

// Toolchain selects how the project under test is built. It is one of
// Legacy or Modern and is chosen once, when the run is configured.
type Toolchain interface {
	// Name describes the variant for logs and the workspace record.
	Name() string
	isToolchain()
}

// Legacy builds a solution with the full-framework build tool after an
// explicit package restore.
type Legacy struct {
	SolutionPath string
}

func (Legacy) Name() string { return "legacy" }
func (Legacy) isToolchain() {}

// Modern builds a single project with the unified SDK command.
type Modern struct {
	ProjectName string
}

func (Modern) Name() string { return "modern" }
func (Modern) isToolchain() {}

// SelectToolchain maps the legacy flag and its optional solution path onto a
// Toolchain variant. A solution path given without legacy mode is dropped
// with an advisory event.
func SelectToolchain(ctx context.Context, legacyMode bool, solutionPath, projectName string) Toolchain {
	if legacyMode {
		return Legacy{SolutionPath: solutionPath}
	}
	if strings.TrimSpace(solutionPath) != "" {
		ctxlog.FromContext(ctx).Warn(
			"A solution path was provided for a modern project. It is only needed for legacy projects and can be removed.",
			"solution_path", solutionPath,
		)
	}
	return Modern{ProjectName: projectName}
}
