// Package testutil provides a harness that lays out a workspace on disk and
// runs the preparation pipeline against a scripted process runner.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/buildprep/internal/app"
	"github.com/specialistvlad/buildprep/internal/process/processtest"
	"github.com/specialistvlad/buildprep/internal/toolchain"
	"github.com/stretchr/testify/require"
)

// ProjectFile is the name the harness gives the HCL project file.
const ProjectFile = "buildprep.hcl"

// Tools are the tool names used by harness runs.
var Tools = toolchain.Tools{Locate: "which", Restore: "nuget", Dotnet: "dotnet"}

// LegacyBuildTool is what the harness locator returns for the legacy path.
const LegacyBuildTool = "/opt/msbuild/MSBuild.exe"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

type fixedLocator string

func (l fixedLocator) LegacyBuildToolPath() string { return string(l) }

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Root      string
	LogOutput string
	Result    *app.Result
	Err       error
	Calls     []processtest.Call
}

// Path joins a '/' separated path onto the harness root.
func (r *HarnessResult) Path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context. files maps '/' separated paths
// to contents; the project file must be among them under ProjectFile.
func RunIntegrationTest(t *testing.T, files map[string]string, fake *processtest.Fake) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, fake, app.Config{})
}

// RunIntegrationTestWithContext runs the pipeline with ctx and cfg. The
// harness fills in ConfigPath and the log level.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, fake *processtest.Fake, cfg app.Config) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	if fake == nil {
		fake = processtest.New()
	}
	cfg.ConfigPath = filepath.Join(root, ProjectFile)
	cfg.LogLevel = "debug"
	logBuffer := &SafeBuffer{}

	a := app.NewApp(logBuffer, &cfg,
		app.WithRunner(fake),
		app.WithTools(Tools),
		app.WithLocator(fixedLocator(LegacyBuildTool)),
	)
	result, err := a.Run(ctx)

	t.Cleanup(func() {
		if os.Getenv("BUILDPREP_TEST_LOGS") == "true" || t.Failed() {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return &HarnessResult{
		Root:      root,
		LogOutput: logBuffer.String(),
		Result:    result,
		Err:       err,
		Calls:     fake.Calls(),
	}
}
