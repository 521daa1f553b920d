// Package config loads the HCL project file describing a preparation run:
// the project under test, the toolchain variant that builds it, and the
// environment assumptions of reference resolution.
//
// Paths in the file may use ${path.root} (the directory of the file) and
// ${env.NAME}. Relative paths are resolved against the file's directory.
package config
