// Package processtest provides a scripted process.Runner for tests.
package processtest

import (
	"context"
	"strings"
	"sync"

	"github.com/specialistvlad/buildprep/internal/process"
)

// Call records a single Start invocation.
type Call struct {
	Dir        string
	Executable string
	Args       []string
}

// CommandLine renders the call as "executable arg1 arg2".
func (c Call) CommandLine() string {
	return strings.TrimSpace(c.Executable + " " + strings.Join(c.Args, " "))
}

// Fake is a process.Runner that records calls and answers from a script.
// Calls without a scripted answer succeed with empty output.
type Fake struct {
	mu    sync.Mutex
	calls []Call

	// Responses maps a rendered command line to its result.
	Responses map[string]process.Result
	// Respond, when set, takes precedence over Responses.
	Respond func(Call) process.Result
}

// New creates a Fake with an empty script.
func New() *Fake {
	return &Fake{Responses: make(map[string]process.Result)}
}

// On scripts the result for a command line and returns the Fake for chaining.
func (f *Fake) On(commandLine string, res process.Result) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[commandLine] = res
	return f
}

func (f *Fake) Start(_ context.Context, workingDirectory, executable string, args ...string) process.Result {
	call := Call{Dir: workingDirectory, Executable: executable, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	respond := f.Respond
	res, ok := f.Responses[call.CommandLine()]
	f.mu.Unlock()

	if respond != nil {
		return respond(call)
	}
	if ok {
		return res
	}
	return process.Result{}
}

// Calls returns a copy of every recorded call in invocation order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CommandLines returns the rendered command line of every recorded call.
func (f *Fake) CommandLines() []string {
	calls := f.Calls()
	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		lines = append(lines, c.CommandLine())
	}
	return lines
}
