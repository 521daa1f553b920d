// Package resolver builds every dependent project with the legacy toolchain
// and collects the compiled libraries a later in-memory compilation needs
// as references.
package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/buildprep/internal/builderr"
	"github.com/specialistvlad/buildprep/internal/ctxlog"
	"github.com/specialistvlad/buildprep/internal/fsutil"
	"github.com/specialistvlad/buildprep/internal/process"
	"github.com/specialistvlad/buildprep/internal/reference"
	"github.com/specialistvlad/buildprep/internal/toolchain"
)

// Resolver resolves the reference set of a test project.
type Resolver struct {
	runner process.Runner
	loader reference.Loader
	finder *fsutil.Finder
	tools  toolchain.Tools
	opts   Options
	parser OutputParser
}

// New creates a Resolver. opts is validated here so that a misconfigured
// run fails before any build tool starts.
func New(runner process.Runner, loader reference.Loader, finder *fsutil.Finder, tools toolchain.Tools, opts Options) (*Resolver, error) {
	if err := opts.Validate(); err != nil {
		return nil, builderr.NewInput(err.Error())
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Resolver{
		runner: runner,
		loader: loader,
		finder: finder,
		tools:  tools,
		opts:   opts,
		parser: OutputParser{Extension: opts.LibraryExtension},
	}, nil
}

// ResolveReferences returns the base runtime library followed by the
// libraries of every dependent project, in input order. The first project
// whose build fails aborts the call with an InputConfigurationError naming
// it, and no partial result is returned.
//
// projectUnderTestAssemblyName is only used when Options.ExcludeSelf is set.
func (r *Resolver) ResolveReferences(
	ctx context.Context,
	testProjectPath, testProjectFileName, projectUnderTestAssemblyName string,
	dependentProjectFiles []string,
) ([]*reference.Reference, error) {
	ctx, logger := ctxlog.With(ctx, "test_project", filepath.Join(testProjectPath, testProjectFileName))
	logger.Info("Resolving references.", "dependent_projects", len(dependentProjectFiles), "workers", r.opts.Workers)

	base, err := r.baseLibrary(ctx)
	if err != nil {
		return nil, err
	}
	references := []*reference.Reference{base}

	groups, err := r.resolveProjects(ctx, dependentProjectFiles)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		for _, ref := range group {
			if r.opts.ExcludeSelf && projectUnderTestAssemblyName != "" && ref.AssemblyName() == projectUnderTestAssemblyName {
				logger.Debug("Skipping self reference.", "reference", ref.Path())
				continue
			}
			references = append(references, ref)
		}
	}

	if r.opts.Deduplicate {
		references = reference.Distinct(references)
	}
	logger.Info("References resolved.", "references", len(references))
	return references, nil
}

func (r *Resolver) baseLibrary(ctx context.Context) (*reference.Reference, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving base runtime library.", "name", r.opts.BaseLibraryName, "dir", r.opts.BaseLibraryDir)

	path, err := r.finder.FindSingle(ctx, r.opts.BaseLibraryDir, r.opts.BaseLibraryName)
	if err != nil {
		return nil, builderr.NewInput("the base runtime library could not be resolved: " + err.Error())
	}
	logger.Info("Found base runtime library.", "path", path)
	return r.loader.CreateFromFile(path), nil
}

// resolveProjects returns one group of references per project, in input order.
func (r *Resolver) resolveProjects(ctx context.Context, projectFiles []string) ([][]*reference.Reference, error) {
	groups := make([][]*reference.Reference, len(projectFiles))

	if r.opts.Workers == 1 {
		for i, file := range projectFiles {
			refs, err := r.resolveProject(ctx, file)
			if err != nil {
				return nil, err
			}
			groups[i] = refs
		}
		return groups, nil
	}

	// Each project gets its own context so that a failure cancels only the
	// projects after it. Earlier projects run to completion, and the
	// reported failure is the one a sequential run would hit first.
	ctxs := make([]context.Context, len(projectFiles))
	cancels := make([]context.CancelFunc, len(projectFiles))
	for i := range projectFiles {
		ctxs[i], cancels[i] = context.WithCancel(ctx)
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	var (
		mu          sync.Mutex
		firstFailed = len(projectFiles)
	)
	failed := func(i int) {
		mu.Lock()
		defer mu.Unlock()
		if i >= firstFailed {
			return
		}
		firstFailed = i
		for _, cancel := range cancels[i+1:] {
			cancel()
		}
	}

	errs := make([]error, len(projectFiles))
	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for i, file := range projectFiles {
		g.Go(func() error {
			pctx := ctxs[i]
			if pctx.Err() != nil {
				return nil
			}
			refs, err := r.resolveProject(pctx, file)
			if err != nil {
				// A project cancelled because an earlier one failed is not to blame.
				if pctx.Err() == nil {
					errs[i] = err
					failed(i)
				}
				return nil
			}
			groups[i] = refs
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// resolveProject builds one dependent project and returns its libraries.
func (r *Resolver) resolveProject(ctx context.Context, projectFile string) ([]*reference.Reference, error) {
	ctx, logger := ctxlog.With(ctx, "project", projectFile)

	abs, err := filepath.Abs(filepath.FromSlash(projectFile))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path %s: %w", projectFile, err)
	}
	projectDir := filepath.Dir(abs)
	fileName := filepath.Base(abs)

	args := []string{"msbuild", fileName, "/nologo"}
	if r.opts.Strategy == PrintReferences {
		args = append(args, "/t:PrintReferences")
	}
	res := r.runner.Start(ctx, projectDir, r.tools.Dotnet, args...)
	logger.Debug("Dependent project build finished.", "dir", projectDir, "exit_code", res.ExitCode, "output", res.Output)

	if !res.Succeeded() {
		logger.Error("Dependent project build failed.", "exit_code", res.ExitCode)
		return nil, builderr.NewMissingBuildTask(projectFile, res.Output)
	}

	var paths []string
	switch r.opts.Strategy {
	case PrintReferences:
		paths = r.parser.PrintReferences(res.Output)
	default:
		outputDir := filepath.Join(projectDir, filepath.FromSlash(r.opts.OutputDir))
		exists, err := r.finder.Exists(ctx, outputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to check build output of %s: %w", projectFile, err)
		}
		if !exists {
			return nil, fmt.Errorf("build output folder %s of %s does not exist", outputDir, projectFile)
		}
		paths, err = r.finder.FindFilesByExtension(ctx, outputDir, r.opts.LibraryExtension, false)
		if err != nil {
			return nil, fmt.Errorf("failed to list build output of %s: %w", projectFile, err)
		}
	}
	logger.Info("Found project references.", "count", len(paths))

	refs := make([]*reference.Reference, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		logger.Debug("Resolved reference.", "reference", p)
		refs = append(refs, r.loader.CreateFromFile(p))
	}
	return refs, nil
}
