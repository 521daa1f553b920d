package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/buildprep/internal/config"
	"github.com/specialistvlad/buildprep/internal/ctxlog"
	"github.com/specialistvlad/buildprep/internal/fsutil"
	"github.com/specialistvlad/buildprep/internal/process"
	"github.com/specialistvlad/buildprep/internal/reference"
	"github.com/specialistvlad/buildprep/internal/toolchain"
)

// App encapsulates the pipeline's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	loader  *config.Loader
	runner  process.Runner
	finder  *fsutil.Finder
	tools   toolchain.Tools
	locator func(override string) toolchain.Locator
	refs    func() (reference.Loader, error)
}

// Option customises an App, mostly to replace collaborators in tests.
type Option func(*App)

// WithRunner replaces the process runner.
func WithRunner(r process.Runner) Option {
	return func(a *App) { a.runner = r }
}

// WithTools replaces the tool names.
func WithTools(t toolchain.Tools) Option {
	return func(a *App) { a.tools = t }
}

// WithLocator replaces the legacy build tool locator.
func WithLocator(l toolchain.Locator) Option {
	return func(a *App) {
		a.locator = func(string) toolchain.Locator { return l }
	}
}

// NewApp is the constructor for the pipeline. It returns a fully initialised
// App with its own isolated logger writing to outW.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: config.NewLoader(),
		runner: process.NewExec(),
		finder: fsutil.New(),
		tools:  toolchain.DefaultTools(),
		locator: func(override string) toolchain.Locator {
			return toolchain.NewMSBuildLocator(override)
		},
		refs: func() (reference.Loader, error) {
			return reference.NewCachingLoader(reference.DefaultCacheSize)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// withLogger returns ctx carrying the App's logger.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
