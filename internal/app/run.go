package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/blueprintgo/internal/ctxlog"
	"github.com/vk/blueprintgo/internal/graph"
)

// Run executes the main application logic: read the graph, compile it, and
// write the generated source to the configured destination.
func (a *App) Run(ctx context.Context, outW io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	data, err := os.ReadFile(a.config.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to read graph file: %w", err)
	}

	g, err := graph.DecodeJSON(data)
	if err != nil {
		return fmt.Errorf("failed to decode graph: %w", err)
	}
	a.logger.Debug("Graph decoded.", "graph", g.Metadata.Name,
		"nodes", len(g.Nodes), "connections", len(g.Connections))

	code, err := a.compiler.CompileGraph(ctx, g)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	a.logger.Info("Compilation finished.", "graph", g.Metadata.Name, "bytes", len(code))

	if a.config.OutPath != "" {
		if err := os.WriteFile(a.config.OutPath, []byte(code), 0o644); err != nil {
			return fmt.Errorf("failed to write generated source: %w", err)
		}
		a.logger.Debug("Generated source written.", "path", a.config.OutPath)
		return nil
	}

	if _, err := io.WriteString(outW, code); err != nil {
		return fmt.Errorf("failed to write generated source: %w", err)
	}
	return nil
}
