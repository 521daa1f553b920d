// Package integrationtests runs the whole preparation pipeline from an HCL
// project file against a scripted process runner.
package integrationtests
