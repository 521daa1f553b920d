// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the data describing the project a mutation run
// prepares. It has no behaviour beyond small invariants; the initialisation
// pipeline fills it in and later stages read it.
//
// # Core Concepts
//
//   - ProjectInfo: the aggregate for one run. It names the test project and
//     the project under test, and carries the compilation workspace once the
//     initial build has succeeded.
//
//   - Workspace: proof that the project under test built, recorded with the
//     toolchain that built it. It is attached at most once.
//
//   - ProjectComponent: the folder/file tree of the project under test.
//     FolderComposite nodes hold ordered children; FileLeaf nodes are source
//     files.
//
// Ownership
//
// ProjectInfo is owned by the initialisation pipeline until the workspace is
// attached. After that it is handed, read-only, to the compilation and
// reporting stages. Nothing enforces the read-only hand-off structurally.
package model
