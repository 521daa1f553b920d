// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Workspace attached to a ProjectInfo once the initial
// build has proven the project under test compiles.
package model

import "time"

// Workspace records where and how the project under test was built.
type Workspace struct {
	// Directory is the directory the build ran in.
	Directory string `yaml:"directory"`
	// Toolchain describes the toolchain variant that built the project.
	Toolchain string `yaml:"toolchain"`
	// BuiltAt is when the initial build finished.
	BuiltAt time.Time `yaml:"built_at"`
}

// NewWorkspace creates a Workspace stamped with the current time.
func NewWorkspace(directory, toolchain string) *Workspace {
	return &Workspace{
		Directory: directory,
		Toolchain: toolchain,
		BuiltAt:   time.Now(),
	}
}
