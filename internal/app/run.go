package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/specialistvlad/buildprep/internal/config"
	"github.com/specialistvlad/buildprep/internal/ctxlog"
	"github.com/specialistvlad/buildprep/internal/fsutil"
	"github.com/specialistvlad/buildprep/internal/initialbuild"
	"github.com/specialistvlad/buildprep/internal/model"
	"github.com/specialistvlad/buildprep/internal/reference"
	"github.com/specialistvlad/buildprep/internal/resolver"
)

// Result is what the preparation stage hands to the mutation stage.
type Result struct {
	RunID      string
	Project    *model.ProjectInfo
	References []*reference.Reference
}

// Run executes the preparation pipeline: load the project file, scan the
// project under test, run the initial build, then resolve references. The
// initial build must succeed before any build output is scanned.
func (a *App) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx, logger := ctxlog.With(a.withLogger(ctx), "run_id", runID)
	logger.Debug("App.Run method started.")

	project, err := a.loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return nil, err
	}
	if a.config.Workers > 0 {
		project.References.Workers = a.config.Workers
	}
	info := project.Info

	tree, err := a.finder.ScanTree(ctx, info.ProjectUnderTestPath, project.SourceExtension, fsutil.DefaultSkipDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project under test: %w", err)
	}
	info.ProjectContents = tree
	logger.Info("Project under test scanned.", "path", info.ProjectUnderTestPath, "source_files", tree.Count())

	if err := a.initialBuild(ctx, project); err != nil {
		return nil, err
	}

	refs, err := a.resolveReferences(ctx, project)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: runID, Project: info, References: refs}
	if a.config.ManifestPath != "" {
		if err := WriteManifest(a.config.ManifestPath, NewManifest(result)); err != nil {
			return nil, err
		}
		logger.Info("Manifest written.", "path", a.config.ManifestPath)
	}

	logger.Debug("App.Run method finished.")
	return result, nil
}

func (a *App) initialBuild(ctx context.Context, project *config.Project) error {
	info := project.Info
	builder := initialbuild.New(a.runner, a.locator(project.MSBuildPath), a.tools)
	if err := builder.Build(ctx, info.ProjectUnderTestPath, project.Toolchain); err != nil {
		return err
	}

	dir := info.ProjectUnderTestPath
	if legacy, ok := project.Toolchain.(initialbuild.Legacy); ok {
		dir = filepath.Dir(legacy.SolutionPath)
	}
	return info.AttachWorkspace(model.NewWorkspace(dir, project.Toolchain.Name()))
}

func (a *App) resolveReferences(ctx context.Context, project *config.Project) ([]*reference.Reference, error) {
	loader, err := a.refs()
	if err != nil {
		return nil, err
	}
	res, err := resolver.New(a.runner, loader, a.finder, a.tools, project.References)
	if err != nil {
		return nil, err
	}
	info := project.Info
	return res.ResolveReferences(ctx,
		info.TestProjectPath,
		info.TestProjectFileName,
		info.ProjectUnderTestAssemblyName,
		project.DependentProjects,
	)
}
