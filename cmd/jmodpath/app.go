// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/jmodpath/jmodpath/internal/config"
	"github.com/jmodpath/jmodpath/internal/descriptor"
	"github.com/jmodpath/jmodpath/internal/workspace"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives an App and reaches configuration and workspaces through it.
	App struct {
		Config     ConfigProvider
		Workspaces WorkspaceOpener
		stdout     io.Writer
		stderr     io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		Workspaces WorkspaceOpener
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// WorkspaceOpener opens the project descriptor at path.
	WorkspaceOpener interface {
		Open(path string, opts ...workspace.Option) (*workspace.Workspace, error)
	}

	// WorkspaceOpenerFunc adapts a function to the WorkspaceOpener interface.
	WorkspaceOpenerFunc func(path string, opts ...workspace.Option) (*workspace.Workspace, error)

	// rootFlagValues holds the persistent flags of the root command.
	rootFlagValues struct {
		verbose    bool
		configPath string
		descriptor string
		separator  string
	}

	// session is the per-invocation state shared by command handlers.
	session struct {
		cfg    *config.Config
		ws     *workspace.Workspace
		logger *log.Logger
	}
)

// Open calls f(path, opts...).
func (f WorkspaceOpenerFunc) Open(path string, opts ...workspace.Option) (*workspace.Workspace, error) {
	return f(path, opts...)
}

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Workspaces == nil {
		deps.Workspaces = WorkspaceOpenerFunc(workspace.Open)
	}
	return &App{
		Config:     deps.Config,
		Workspaces: deps.Workspaces,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
}

// newLogger creates the stderr logger at the configured level. --verbose
// forces debug.
func (a *App) newLogger(cfg *config.Config, verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "jmodpath"})
	level := cfg.Log.Level.Level()
	if verbose || cfg.UI.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the configuration, falling back to defaults with a
// warning when the file cannot be read.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		return config.DefaultConfig()
	}
	return cfg
}

// descriptorPath picks the descriptor: the --descriptor flag, then a
// configured non-default path, then the first descriptor file found in the
// working directory.
func descriptorPath(cfg *config.Config, flags *rootFlagValues) (string, error) {
	if flags.descriptor != "" {
		return flags.descriptor, nil
	}
	if cfg.Descriptor != "" && cfg.Descriptor != config.DefaultDescriptor {
		return cfg.Descriptor.String(), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return descriptor.Find(wd)
}

// openSession loads config and opens the workspace for one command.
func (a *App) openSession(ctx context.Context, flags *rootFlagValues) (*session, error) {
	cfg := a.loadConfig(ctx, flags)
	logger := a.newLogger(cfg, flags.verbose)

	path, err := descriptorPath(cfg, flags)
	if err != nil {
		return nil, err
	}
	sep := flags.separator
	if sep == "" {
		sep = cfg.PathSeparator.Resolve()
	}
	logger.Debug("opening workspace", "descriptor", path, "separator", sep)
	ws, err := a.Workspaces.Open(path, workspace.WithLogger(logger), workspace.WithPathSeparator(sep))
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, ws: ws, logger: logger}, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.stdout, args...)
}

func (a *App) warnf(format string, args ...any) {
	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+fmt.Sprintf(format, args...))
}
