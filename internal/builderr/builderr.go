// Package builderr defines the two user-facing failures of the preparation
// stage. Both are terminal: the user fixes configuration or tooling and
// re-runs from the start.
package builderr

import (
	"errors"
	"fmt"
)

// InputConfigurationError reports a problem the user must fix in their
// options or environment: a missing solution path, a missing restore tool,
// or a dependent project without the required build task.
type InputConfigurationError struct {
	Message string
	// Project names the project file the error is attributed to, if any.
	Project string
	// Output is the captured process output, if a process was involved.
	Output string
}

func (e *InputConfigurationError) Error() string {
	if e.Project != "" {
		return fmt.Sprintf("input configuration: %s (project %s)", e.Message, e.Project)
	}
	return "input configuration: " + e.Message
}

// BuildFailureError reports a nonzero exit from a build command.
type BuildFailureError struct {
	Message string
	Output  string
}

func (e *BuildFailureError) Error() string {
	return "build failure: " + e.Message
}

// NewInput creates an InputConfigurationError without process output.
func NewInput(message string) error {
	return &InputConfigurationError{Message: message}
}

// NewInputWithOutput creates an InputConfigurationError carrying captured output.
func NewInputWithOutput(message, output string) error {
	return &InputConfigurationError{Message: message, Output: output}
}

// NewMissingBuildTask creates the error for a dependent project whose build
// invocation failed.
func NewMissingBuildTask(project, output string) error {
	return &InputConfigurationError{
		Message: "the required build task was not found in the project file; add the task to " + project,
		Project: project,
		Output:  output,
	}
}

// NewBuildFailure creates a BuildFailureError carrying the raw build output.
func NewBuildFailure(message, output string) error {
	return &BuildFailureError{Message: message, Output: output}
}

// IsInputConfiguration reports whether err wraps an InputConfigurationError.
func IsInputConfiguration(err error) bool {
	var ie *InputConfigurationError
	return errors.As(err, &ie)
}

// IsBuildFailure reports whether err wraps a BuildFailureError.
func IsBuildFailure(err error) bool {
	var be *BuildFailureError
	return errors.As(err, &be)
}

// Output returns the captured process output carried by err, or "".
func Output(err error) string {
	var ie *InputConfigurationError
	if errors.As(err, &ie) {
		return ie.Output
	}
	var be *BuildFailureError
	if errors.As(err, &be) {
		return be.Output
	}
	return ""
}
