// Package process launches external build tools and captures their combined
// output. It never retries and applies no timeout of its own; a caller that
// needs to stop a tool cancels the context.
package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/specialistvlad/buildprep/internal/ctxlog"
)

// Result is the outcome of a single process invocation.
type Result struct {
	ExitCode int
	Output   string
}

// Succeeded reports whether the process exited with code zero.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Runner starts an executable in a working directory and waits for it to exit.
type Runner interface {
	Start(ctx context.Context, workingDirectory, executable string, args ...string) Result
}

// Exec is the os/exec backed Runner.
type Exec struct{}

// NewExec creates a Runner that starts real processes.
func NewExec() *Exec {
	return &Exec{}
}

// Start runs executable with args in workingDirectory. Standard output and
// standard error are merged into Result.Output in write order. A process
// that cannot be started yields ExitCode -1 with the start error as output.
func (*Exec) Start(ctx context.Context, workingDirectory, executable string, args ...string) Result {
	logger := ctxlog.FromContext(ctx)

	cmd := exec.CommandContext(ctx, executable, args...)
	if strings.TrimSpace(workingDirectory) != "" {
		cmd.Dir = workingDirectory
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	logger.Debug("Starting process.", "dir", workingDirectory, "executable", executable, "args", args)
	started := time.Now()

	if err := cmd.Start(); err != nil {
		logger.Debug("Process failed to start.", "executable", executable, "error", err)
		return Result{
			ExitCode: -1,
			Output:   "failed to start " + executable + ": " + err.Error(),
		}
	}

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ProcessState != nil {
			exitCode = exitErr.ProcessState.ExitCode()
		} else {
			exitCode = 1
		}
		// Killed by context cancellation reports -1 from ProcessState.
		if exitCode == -1 && ctx.Err() != nil {
			out.WriteString("\n" + ctx.Err().Error())
		}
	}

	logger.Debug("Process exited.", "executable", executable, "exit_code", exitCode, "duration", time.Since(started))
	return Result{
		ExitCode: exitCode,
		Output:   out.String(),
	}
}
