// Package initialbuild proves that the project under test builds before any
// mutation is attempted, using either the legacy or the modern toolchain.
package initialbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/buildprep/internal/builderr"
	"github.com/specialistvlad/buildprep/internal/ctxlog"
	"github.com/specialistvlad/buildprep/internal/process"
	"github.com/specialistvlad/buildprep/internal/toolchain"
)

const buildFailedMessage = "initial build of the targeted project failed; make the targeted project buildable"

// Process runs the initial build.
type Process struct {
	runner  process.Runner
	locator toolchain.Locator
	tools   toolchain.Tools
}

// New creates a Process driving runner. locator is only consulted on the
// legacy path.
func New(runner process.Runner, locator toolchain.Locator, tools toolchain.Tools) *Process {
	return &Process{
		runner:  runner,
		locator: locator,
		tools:   tools,
	}
}

// InitialBuild selects the toolchain from legacyMode and builds. It is the
// flag-based entry point; Build takes an already selected Toolchain.
func (p *Process) InitialBuild(ctx context.Context, legacyMode bool, projectDirectory, solutionPath, projectName string) error {
	return p.Build(ctx, projectDirectory, SelectToolchain(ctx, legacyMode, solutionPath, projectName))
}

// Build runs the initial build with tc. Every failure is terminal and
// nothing is retried. A nonzero exit of the final build command yields a
// BuildFailureError carrying the raw output.
func (p *Process) Build(ctx context.Context, projectDirectory string, tc Toolchain) error {
	ctx, logger := ctxlog.With(ctx, "toolchain", tc.Name())
	logger.Info("Started initial build.")

	var (
		res process.Result
		err error
	)
	switch t := tc.(type) {
	case Legacy:
		res, err = p.buildLegacy(ctx, t)
	case Modern:
		res = p.buildModern(ctx, projectDirectory, t)
	default:
		return fmt.Errorf("unsupported toolchain %T", tc)
	}
	if err != nil {
		return err
	}

	logger.Debug("Initial build output.", "exit_code", res.ExitCode, "output", res.Output)
	if !res.Succeeded() {
		logger.Error("Initial build failed.", "exit_code", res.ExitCode)
		return builderr.NewBuildFailure(buildFailedMessage, res.Output)
	}
	logger.Info("Initial build successful.")
	return nil
}

func (p *Process) buildLegacy(ctx context.Context, t Legacy) (process.Result, error) {
	logger := ctxlog.FromContext(ctx)

	if strings.TrimSpace(t.SolutionPath) == "" {
		return process.Result{}, builderr.NewInput("a solution path is required for legacy projects; provide it in the toolchain \"legacy\" block")
	}
	solutionPath, err := filepath.Abs(t.SolutionPath)
	if err != nil {
		return process.Result{}, fmt.Errorf("failed to resolve solution path %s: %w", t.SolutionPath, err)
	}
	solutionDir := filepath.Dir(solutionPath)

	probe := p.runner.Start(ctx, solutionDir, p.tools.Locate, p.tools.Restore)
	if !strings.Contains(strings.ToLower(probe.Output), strings.ToLower(p.tools.Restore)) {
		return process.Result{}, builderr.NewInputWithOutput(
			p.tools.Restore+" must be installed and on PATH to restore legacy packages",
			probe.Output,
		)
	}

	restore := p.runner.Start(ctx, solutionDir, p.tools.Restore, "restore", solutionPath)
	if !restore.Succeeded() {
		return process.Result{}, builderr.NewInputWithOutput(
			p.tools.Restore+" failed to restore packages for the solution; review the package setup",
			restore.Output,
		)
	}

	msbuild := p.locator.LegacyBuildToolPath()
	logger.Debug("Located legacy build tool.", "path", msbuild)

	return p.runner.Start(ctx, solutionDir, msbuild, solutionPath), nil
}

func (p *Process) buildModern(ctx context.Context, projectDirectory string, t Modern) process.Result {
	return p.runner.Start(ctx, projectDirectory, p.tools.Dotnet, "build", t.ProjectName)
}
