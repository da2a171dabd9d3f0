package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/blueprintgo/internal/compiler"
	"github.com/vk/blueprintgo/internal/ctxlog"
	"github.com/vk/blueprintgo/internal/nodedef"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	defs     *nodedef.Registry
	compiler *compiler.Compiler
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded node
// definition table.
func NewApp(logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	defs, err := nodedef.LoadDir(ctx, cfg.NodesPath)
	if err != nil {
		// A failure to load the definition table is a fatal startup error.
		panic(fmt.Errorf("failed to load node definitions: %w", err))
	}
	logger.Debug("Node definition table loaded.", "node_types", defs.Len())

	return &App{
		logger:   logger,
		defs:     defs,
		compiler: compiler.New(ctx, defs),
		config:   cfg,
	}
}

// Definitions returns the loaded node definition table. This is primarily
// for testing.
func (a *App) Definitions() *nodedef.Registry {
	return a.defs
}
