package config

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a project file.
type fileRoot struct {
	Project    *projectBlock     `hcl:"project,block"`
	Toolchains []*toolchainBlock `hcl:"toolchain,block"`
	References *referencesBlock  `hcl:"references,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type projectBlock struct {
	TestProjectPath string `hcl:"test_project_path"`
	TestProjectFile string `hcl:"test_project_file"`
	UnderTestPath   string `hcl:"under_test_path"`
	ProjectName     string `hcl:"project_name"`
	AssemblyName    string `hcl:"assembly_name,optional"`
	TargetFramework string `hcl:"target_framework,optional"`
	SourceExtension string `hcl:"source_extension,optional"`
}

type toolchainBlock struct {
	Kind         string `hcl:"kind,label"`
	SolutionPath string `hcl:"solution_path,optional"`
	MSBuildPath  string `hcl:"msbuild_path,optional"`
}

type referencesBlock struct {
	BaseLibraryDir    string   `hcl:"base_library_dir,optional"`
	BaseLibraryName   string   `hcl:"base_library_name,optional"`
	OutputDir         string   `hcl:"output_dir,optional"`
	LibraryExtension  string   `hcl:"library_extension,optional"`
	Strategy          string   `hcl:"strategy,optional"`
	ExcludeSelf       bool     `hcl:"exclude_self,optional"`
	Deduplicate       bool     `hcl:"deduplicate,optional"`
	Workers           int      `hcl:"workers,optional"`
	DependentProjects []string `hcl:"dependent_projects,optional"`
}
