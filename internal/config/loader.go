package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/specialistvlad/buildprep/internal/builderr"
	"github.com/specialistvlad/buildprep/internal/ctxlog"
	"github.com/specialistvlad/buildprep/internal/initialbuild"
	"github.com/specialistvlad/buildprep/internal/model"
	"github.com/specialistvlad/buildprep/internal/resolver"
)

// DefaultSourceExtension is the extension of source files in the project tree.
const DefaultSourceExtension = ".cs"

// Project is the loaded, validated content of a project file.
type Project struct {
	// Path is the absolute path of the project file.
	Path string
	Info *model.ProjectInfo
	// SourceExtension selects the files of the project tree.
	SourceExtension string
	Toolchain       initialbuild.Toolchain
	// MSBuildPath overrides legacy build tool discovery when set.
	MSBuildPath string
	References  resolver.Options
	// DependentProjects are '/' separated project file paths, in build order.
	DependentProjects []string
}

// Loader reads HCL project files.
type Loader struct {
	environ func() []string
}

// NewLoader creates a loader exposing the process environment as env.*.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// Load parses, decodes and validates the project file at path.
func (l *Loader) Load(ctx context.Context, path string) (*Project, error) {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	root := filepath.Dir(abs)
	logger.Debug("Loading project file.", "path", abs)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(abs)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", abs, diags)
	}

	var parsed fileRoot
	diags = gohcl.DecodeBody(file.Body, l.evalContext(root), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", abs, diags)
	}

	project, err := l.translate(ctx, root, &parsed)
	if err != nil {
		return nil, err
	}
	project.Path = abs

	logger.Debug("Project file loaded.",
		"toolchain", project.Toolchain.Name(),
		"dependent_projects", len(project.DependentProjects),
		"strategy", project.References.Strategy,
	)
	return project, nil
}

// evalContext exposes path.root, path.cwd, env.* and a few string functions.
func (l *Loader) evalContext(root string) *hcl.EvalContext {
	cwd, _ := os.Getwd()

	env := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"path": cty.ObjectVal(map[string]cty.Value{
				"root": cty.StringVal(filepath.ToSlash(root)),
				"cwd":  cty.StringVal(filepath.ToSlash(cwd)),
			}),
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
		},
	}
}

// translate converts the decoded blocks into a Project, applying defaults
// and resolving relative paths against root.
func (l *Loader) translate(ctx context.Context, root string, parsed *fileRoot) (*Project, error) {
	if parsed.Project == nil {
		return nil, builderr.NewInput("the project file must contain a project block")
	}
	p := parsed.Project

	info := &model.ProjectInfo{
		TestProjectPath:              resolvePath(root, p.TestProjectPath),
		TestProjectFileName:          p.TestProjectFile,
		ProjectUnderTestPath:         resolvePath(root, p.UnderTestPath),
		ProjectUnderTestAssemblyName: p.AssemblyName,
		ProjectUnderTestProjectName:  p.ProjectName,
		TargetFramework:              p.TargetFramework,
	}
	if info.ProjectUnderTestAssemblyName == "" {
		name := filepath.Base(p.ProjectName)
		info.ProjectUnderTestAssemblyName = strings.TrimSuffix(name, filepath.Ext(name))
	}

	project := &Project{
		Info:            info,
		SourceExtension: p.SourceExtension,
	}
	if project.SourceExtension == "" {
		project.SourceExtension = DefaultSourceExtension
	}

	switch len(parsed.Toolchains) {
	case 0:
		project.Toolchain = initialbuild.Modern{ProjectName: p.ProjectName}
	case 1:
		tc := parsed.Toolchains[0]
		var legacy bool
		switch tc.Kind {
		case "legacy":
			legacy = true
		case "modern":
		default:
			return nil, builderr.NewInput(fmt.Sprintf("unknown toolchain %q; use \"legacy\" or \"modern\"", tc.Kind))
		}
		solution := tc.SolutionPath
		if legacy {
			solution = resolvePath(root, solution)
		}
		project.Toolchain = initialbuild.SelectToolchain(ctx, legacy, solution, p.ProjectName)
		project.MSBuildPath = tc.MSBuildPath
	default:
		return nil, builderr.NewInput("only one toolchain block may be declared")
	}

	opts := resolver.DefaultOptions()
	if r := parsed.References; r != nil {
		if r.BaseLibraryDir != "" {
			opts.BaseLibraryDir = resolvePath(root, r.BaseLibraryDir)
		}
		opts.BaseLibraryName = firstNonEmpty(r.BaseLibraryName, opts.BaseLibraryName)
		opts.OutputDir = firstNonEmpty(r.OutputDir, opts.OutputDir)
		opts.LibraryExtension = firstNonEmpty(r.LibraryExtension, opts.LibraryExtension)
		opts.Strategy = resolver.Strategy(firstNonEmpty(r.Strategy, string(opts.Strategy)))
		opts.ExcludeSelf = r.ExcludeSelf
		opts.Deduplicate = r.Deduplicate
		if r.Workers < 0 {
			return nil, builderr.NewInput("references.workers must not be negative")
		}
		if r.Workers > 0 {
			opts.Workers = r.Workers
		}
		for _, dep := range r.DependentProjects {
			project.DependentProjects = append(project.DependentProjects, filepath.ToSlash(resolvePath(root, dep)))
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, builderr.NewInput(err.Error())
	}
	project.References = opts

	return project, nil
}

// resolvePath makes p absolute relative to root. Empty stays empty.
func resolvePath(root, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) || isWindowsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// isWindowsAbs recognises drive-letter paths such as C:\Windows on any host,
// so a project file written for Windows keeps its system paths intact.
func isWindowsAbs(p string) bool {
	return len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/')
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
