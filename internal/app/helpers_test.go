package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/buildprep/internal/process/processtest"
	"github.com/specialistvlad/buildprep/internal/toolchain"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

type staticLocator string

func (s staticLocator) LegacyBuildToolPath() string { return string(s) }

var testTools = toolchain.Tools{Locate: "which", Restore: "nuget", Dotnet: "dotnet"}

// workspaceFixture lays out a project under test, one dependent library
// with build output, and a fake runtime library folder.
type workspaceFixture struct {
	root string
}

func newWorkspaceFixture(t *testing.T) *workspaceFixture {
	t.Helper()
	f := &workspaceFixture{root: t.TempDir()}
	for _, rel := range []string{
		"src/App.csproj",
		"src/Program.cs",
		"src/Models/User.cs",
		"src/obj/Generated.cs",
		"src/bin/Debug/App.dll",
		"lib/Lib.csproj",
		"lib/bin/Debug/Lib.dll",
		"lib/bin/Debug/Lib.pdb",
		"tests/App.Tests.csproj",
		"gac/mscorlib/mscorlib.dll",
	} {
		f.write(t, rel, "x")
	}
	return f
}

func (f *workspaceFixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	p := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// setupAppTest creates an App driving a fake runner, with logs captured.
func setupAppTest(t *testing.T, cfg *Config, fake *processtest.Fake) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(logBuffer, cfg, WithRunner(fake), WithTools(testTools), WithLocator(staticLocator("/vs/MSBuild.exe")))

	t.Cleanup(func() {
		if os.Getenv("BUILDPREP_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}
