package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"

	"github.com/specialistvlad/buildprep/internal/app"
	"github.com/specialistvlad/buildprep/internal/builderr"
)

// Exit codes reported by the buildprep binary.
const (
	ExitFailure      = 1
	ExitUsage        = 2
	ExitInputConfig  = 3
	ExitBuildFailure = 4
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	// Output is captured tool output to show alongside the message.
	Output string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ToExitError maps a pipeline error to the exit code the user sees.
// Errors that already are an ExitError pass through unchanged.
func ToExitError(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	switch {
	case builderr.IsInputConfiguration(err):
		return &ExitError{Code: ExitInputConfig, Message: err.Error(), Output: builderr.Output(err)}
	case builderr.IsBuildFailure(err):
		return &ExitError{Code: ExitBuildFailure, Message: err.Error(), Output: builderr.Output(err)}
	default:
		return &ExitError{Code: ExitFailure, Message: err.Error()}
	}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("buildprep", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
buildprep - Builds a .NET project under test and resolves its references.

Usage:
  buildprep [options] [PROJECT_FILE]

Arguments:
  PROJECT_FILE
    Path to the .hcl project file describing the projects to prepare.

Exit codes:
  1 unexpected failure, 2 usage, 3 input configuration, 4 build failure

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the project file.")
	cFlag := flagSet.String("c", "", "Path to the project file (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Concurrent reference resolutions. 0 keeps the project file setting.")
	manifestFlag := flagSet.String("manifest", "", "Write a YAML manifest of the prepared project to this path.")
	envFileFlag := flagSet.String("env-file", ".env", "Load environment variables from this file if it exists.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *envFileFlag != "" {
		// A missing env file is normal.
		if err := godotenv.Load(*envFileFlag); err != nil {
			slog.Debug("No env file loaded.", "path", *envFileFlag, "error", err)
		}
	}

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Project file path determined.", "path", path)

	if path == "" {
		slog.Debug("No project file provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:   path,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		Workers:      *workersFlag,
		ManifestPath: *manifestFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
