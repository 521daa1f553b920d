package resolver

import "fmt"

// Strategy selects how a dependent project's libraries are discovered.
type Strategy string

const (
	// ScanOutputDir builds the project and lists its output directory.
	ScanOutputDir Strategy = "scan"
	// PrintReferences runs the PrintReferences target and parses its output.
	PrintReferences Strategy = "print-references"
)

// Options carries the environment assumptions of the resolver.
type Options struct {
	// BaseLibraryDir is searched recursively for BaseLibraryName.
	BaseLibraryDir  string
	BaseLibraryName string
	// OutputDir is the build output directory relative to each project, '/' separated.
	OutputDir        string
	LibraryExtension string
	Strategy         Strategy
	// ExcludeSelf drops project libraries named after the project under test.
	ExcludeSelf bool
	// Deduplicate drops repeated paths, keeping the first occurrence.
	Deduplicate bool
	// Workers bounds concurrent project builds. 1 or less is sequential.
	Workers int
}

// DefaultOptions returns the settings of a stock full-framework Windows host.
func DefaultOptions() Options {
	return Options{
		BaseLibraryDir:   `C:\Windows\Microsoft.NET\assembly\GAC_64`,
		BaseLibraryName:  "mscorlib.dll",
		OutputDir:        "bin/Debug",
		LibraryExtension: DefaultLibraryExtension,
		Strategy:         ScanOutputDir,
		Workers:          1,
	}
}

// Validate reports options the resolver cannot work with.
func (o Options) Validate() error {
	switch {
	case o.BaseLibraryDir == "":
		return fmt.Errorf("base library directory must be set")
	case o.BaseLibraryName == "":
		return fmt.Errorf("base library name must be set")
	case o.OutputDir == "":
		return fmt.Errorf("output directory must be set")
	case o.LibraryExtension == "":
		return fmt.Errorf("library extension must be set")
	}
	switch o.Strategy {
	case ScanOutputDir, PrintReferences:
	default:
		return fmt.Errorf("unknown resolution strategy %q", o.Strategy)
	}
	return nil
}
