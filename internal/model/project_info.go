// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines ProjectInfo, the aggregate describing the project under
// test and its test project for a single run.
package model

import (
	"errors"
	"sync"
)

// ErrWorkspaceAttached is returned when a workspace is attached twice.
var ErrWorkspaceAttached = errors.New("workspace already attached")

// ProjectInfo describes the test project and the project under test.
type ProjectInfo struct {
	// TestProjectPath is the directory of the test project the run was invoked in.
	TestProjectPath string `yaml:"test_project_path"`
	// TestProjectFileName is the file name of the test project file.
	TestProjectFileName string `yaml:"test_project_file"`
	// ProjectUnderTestPath is the directory of the project being mutated.
	ProjectUnderTestPath string `yaml:"project_under_test_path"`
	// ProjectUnderTestAssemblyName is usually the same as the project name.
	ProjectUnderTestAssemblyName string `yaml:"project_under_test_assembly"`
	ProjectUnderTestProjectName  string `yaml:"project_under_test_project"`
	TargetFramework              string `yaml:"target_framework"`

	// ProjectContents is the folder/file structure of the project under test.
	ProjectContents *FolderComposite `yaml:"-"`

	mu        sync.RWMutex
	workspace *Workspace
}

// AttachWorkspace records the workspace produced by a successful initial
// build. It may be called once; later calls return ErrWorkspaceAttached and
// leave the first workspace in place.
func (p *ProjectInfo) AttachWorkspace(ws *Workspace) error {
	if ws == nil {
		return errors.New("workspace must not be nil")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.workspace != nil {
		return ErrWorkspaceAttached
	}
	p.workspace = ws
	return nil
}

// Workspace returns the attached workspace, if any.
func (p *ProjectInfo) Workspace() (*Workspace, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.workspace, p.workspace != nil
}
