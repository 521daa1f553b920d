// Package app contains the preparation pipeline. It loads the project file,
// scans the project under test, runs the initial build, resolves references
// and writes the manifest, decoupled from any specific entrypoint like a CLI.
package app
