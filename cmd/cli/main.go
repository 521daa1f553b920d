package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/buildprep/internal/app"
	"github.com/specialistvlad/buildprep/internal/cli"
)

// main is the entrypoint for the buildprep application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Args[1:])
	stop()

	// The real main function handles errors and exit codes.
	if exitErr := cli.ToExitError(err); exitErr != nil {
		fmt.Fprintln(os.Stderr, exitErr.Message)
		if exitErr.Output != "" {
			fmt.Fprintln(os.Stderr, exitErr.Output)
		}
		os.Exit(exitErr.Code)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	// A panic anywhere in the pipeline becomes a clean error instead of a
	// stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application panicked: %v", r)
		}
	}()

	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	result, err := app.NewApp(outW, appConfig).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(outW, "Prepared %s: %d references (run %s)\n",
		result.Project.ProjectUnderTestProjectName, len(result.References), result.RunID)
	return nil
}
