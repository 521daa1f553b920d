package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
}

func TestExecStart_MergesOutputAndExitCode(t *testing.T) {
	skipOnWindows(t)

	res := NewExec().Start(context.Background(), t.TempDir(), "sh", "-c", "echo out; echo err 1>&2; exit 3")

	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Succeeded())
	assert.Contains(t, res.Output, "out")
	assert.Contains(t, res.Output, "err")
}

func TestExecStart_RunsInWorkingDirectory(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "App.sln"), nil, 0o644))

	res := NewExec().Start(context.Background(), dir, "ls")

	assert.True(t, res.Succeeded())
	assert.Contains(t, res.Output, "App.sln")
}

func TestExecStart_MissingExecutable(t *testing.T) {
	res := NewExec().Start(context.Background(), "", "definitely-not-a-real-build-tool-xyz")

	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, res.Output, "failed to start definitely-not-a-real-build-tool-xyz")
}
