package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/buildprep/internal/builderr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		wantPath   string
		wantExit   bool
		wantCode   int
		wantOutput string
	}{
		{name: "positional path", args: []string{"-env-file", "", "project.hcl"}, wantPath: "project.hcl"},
		{name: "long flag wins over positional", args: []string{"-env-file", "", "-config", "a.hcl", "b.hcl"}, wantPath: "a.hcl"},
		{name: "shorthand", args: []string{"-env-file", "", "-c", "c.hcl"}, wantPath: "c.hcl"},
		{name: "no path prints usage", args: []string{"-env-file", ""}, wantExit: true, wantOutput: "Usage:"},
		{name: "help", args: []string{"-h"}, wantExit: true, wantOutput: "Usage:"},
		{name: "unknown flag", args: []string{"-nope"}, wantCode: ExitUsage},
		{name: "bad log format", args: []string{"-env-file", "", "-log-format", "xml", "p.hcl"}, wantCode: ExitUsage},
		{name: "bad log level", args: []string{"-env-file", "", "-log-level", "loud", "p.hcl"}, wantCode: ExitUsage},
		{name: "negative workers", args: []string{"-env-file", "", "-workers", "-1", "p.hcl"}, wantCode: ExitUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, shouldExit)
			if tc.wantOutput != "" {
				assert.Contains(t, out.String(), tc.wantOutput)
			}
			if tc.wantPath != "" {
				require.NotNil(t, cfg)
				assert.Equal(t, tc.wantPath, cfg.ConfigPath)
			}
		})
	}
}

func TestParse_Options(t *testing.T) {
	cfg, _, err := Parse([]string{"-env-file", "", "-log-format", "JSON", "-log-level", "debug", "-workers", "4", "-manifest", "out.yaml", "p.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "out.yaml", cfg.ManifestPath)
}

func TestParse_LoadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BUILDPREP_CLI_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("BUILDPREP_CLI_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("BUILDPREP_CLI_TEST_VALUE"))

	_, _, err := Parse([]string{"-env-file", envFile, "p.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv("BUILDPREP_CLI_TEST_VALUE"))
}

func TestToExitError(t *testing.T) {
	assert.Nil(t, ToExitError(nil))

	exitErr := ToExitError(fmt.Errorf("resolve: %w", builderr.NewMissingBuildTask("Lib.csproj", "MSB4057")))
	assert.Equal(t, ExitInputConfig, exitErr.Code)
	assert.Equal(t, "MSB4057", exitErr.Output)
	assert.Contains(t, exitErr.Message, "Lib.csproj")

	exitErr = ToExitError(builderr.NewBuildFailure("initial build failed", "error CS1002"))
	assert.Equal(t, ExitBuildFailure, exitErr.Code)
	assert.Equal(t, "error CS1002", exitErr.Output)

	assert.Equal(t, ExitFailure, ToExitError(errors.New("boom")).Code)

	usage := &ExitError{Code: ExitUsage, Message: "bad flag"}
	assert.Same(t, usage, ToExitError(usage))
}
