package app

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/buildprep/internal/model"
	"github.com/specialistvlad/buildprep/internal/reference"
)

// Manifest is the YAML document describing a prepared project.
type Manifest struct {
	RunID       string             `yaml:"run_id"`
	Project     *model.ProjectInfo `yaml:"project"`
	Workspace   *model.Workspace   `yaml:"workspace,omitempty"`
	SourceFiles []string           `yaml:"source_files,omitempty"`
	References  []string           `yaml:"references"`
}

// NewManifest summarises a run result.
func NewManifest(r *Result) *Manifest {
	m := &Manifest{
		RunID:      r.RunID,
		Project:    r.Project,
		References: reference.Paths(r.References),
	}
	if ws, ok := r.Project.Workspace(); ok {
		m.Workspace = ws
	}
	if r.Project.ProjectContents != nil {
		for _, f := range r.Project.ProjectContents.Files() {
			m.SourceFiles = append(m.SourceFiles, f.FullPath())
		}
	}
	return m
}

// WriteManifest encodes m as YAML to path, creating parent directories.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}
