// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the composite tree mirroring the folders and source
// files of the project under test.
//
// Why a composite?
//
// Later stages walk the tree to decide which files to mutate and to report
// results per folder. Folders and files share one interface so a walker does
// not need to care which it is looking at.
package model

// ProjectComponent is a node of the project tree.
type ProjectComponent interface {
	Name() string
	FullPath() string
	Children() []ProjectComponent
}

// FolderComposite is a folder with ordered children.
type FolderComposite struct {
	name     string
	fullPath string
	children []ProjectComponent
}

// NewFolder creates an empty folder node.
func NewFolder(name, fullPath string) *FolderComposite {
	return &FolderComposite{name: name, fullPath: fullPath}
}

func (f *FolderComposite) Name() string     { return f.name }
func (f *FolderComposite) FullPath() string { return f.fullPath }

func (f *FolderComposite) Children() []ProjectComponent {
	return f.children
}

// Add appends a child node.
func (f *FolderComposite) Add(child ProjectComponent) {
	f.children = append(f.children, child)
}

// Folder returns the direct child folder called name, creating it when missing.
func (f *FolderComposite) Folder(name, fullPath string) *FolderComposite {
	for _, c := range f.children {
		if sub, ok := c.(*FolderComposite); ok && sub.name == name {
			return sub
		}
	}
	sub := NewFolder(name, fullPath)
	f.Add(sub)
	return sub
}

// Files returns every file below the folder, depth first.
func (f *FolderComposite) Files() []*FileLeaf {
	var files []*FileLeaf
	for _, c := range f.children {
		switch n := c.(type) {
		case *FileLeaf:
			files = append(files, n)
		case *FolderComposite:
			files = append(files, n.Files()...)
		}
	}
	return files
}

// Count returns the number of files below the folder.
func (f *FolderComposite) Count() int {
	return len(f.Files())
}

// FileLeaf is a source file.
type FileLeaf struct {
	name     string
	fullPath string
}

// NewFile creates a file node.
func NewFile(name, fullPath string) *FileLeaf {
	return &FileLeaf{name: name, fullPath: fullPath}
}

func (f *FileLeaf) Name() string                 { return f.name }
func (f *FileLeaf) FullPath() string             { return f.fullPath }
func (f *FileLeaf) Children() []ProjectComponent { return nil }
