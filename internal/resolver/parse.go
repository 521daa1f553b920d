package resolver

import (
	"iter"
	"path/filepath"
	"strings"
)

// DefaultLibraryExtension is the extension of compiled library files.
const DefaultLibraryExtension = ".dll"

// OutputParser extracts library paths from build tool text output.
type OutputParser struct {
	Extension string
}

// AssemblyPaths splits a ';' separated path list and yields the entries
// whose extension is p.Extension, in order. Ranging over the result again
// restarts the split.
func (p OutputParser) AssemblyPaths(paths string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, path := range strings.Split(paths, ";") {
			if filepath.Ext(path) != p.Extension {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

// ReferencePaths yields the destination of every "source -> destination"
// line whose extension is p.Extension. A line without an arrow is treated as
// a bare destination.
func (p OutputParser) ReferencePaths(lines iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range lines {
			parts := strings.Split(line, " -> ")
			path := parts[len(parts)-1]
			if filepath.Ext(path) != p.Extension {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

// PrintReferences parses the output of the PrintReferences build target.
// Every non-blank row but the last is a project dependency line; the last
// row is the ';' separated package dependency list. Paths are trimmed and
// returned once each, first occurrence first.
func (p OutputParser) PrintReferences(output string) []string {
	var rows []string
	for _, row := range strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n") {
		if row = strings.TrimSpace(row); row != "" {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var paths []string
	add := func(path string) {
		path = strings.TrimSpace(path)
		if _, dup := seen[path]; dup || path == "" {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	dependencyRows := rows[:len(rows)-1]
	for path := range p.ReferencePaths(func(yield func(string) bool) {
		for i := len(dependencyRows) - 1; i >= 0; i-- {
			if !yield(dependencyRows[i]) {
				return
			}
		}
	}) {
		add(path)
	}
	for path := range p.AssemblyPaths(rows[len(rows)-1]) {
		add(path)
	}
	return paths
}

var defaultParser = OutputParser{Extension: DefaultLibraryExtension}

// AssemblyPathsFromOutput is AssemblyPaths for library files with the
// default extension.
func AssemblyPathsFromOutput(paths string) iter.Seq[string] {
	return defaultParser.AssemblyPaths(paths)
}

// ReferencePathsFromOutput is ReferencePaths for library files with the
// default extension.
func ReferencePathsFromOutput(lines iter.Seq[string]) iter.Seq[string] {
	return defaultParser.ReferencePaths(lines)
}
