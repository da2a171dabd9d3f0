package compiler

import (
	"context"
	"strings"

	"github.com/vk/blueprintgo/internal/ctxlog"
	"github.com/vk/blueprintgo/internal/graph"
	"github.com/vk/blueprintgo/internal/nodedef"
	"github.com/vk/blueprintgo/internal/template"
)

// Template placeholder names the compiler binds when rendering a node
// type's template.
const (
	// placeholderFnID labels the generated function with its node type.
	placeholderFnID = "pulsar_node_fn_id"
	// placeholderInputPrefix starts input bindings: in_<pin>_<datatype>.
	placeholderInputPrefix = "in_"
	// placeholderExecPrefix starts execution bindings: pulsar_exec_<pin>.
	// Function definitions never inline downstream calls, so these are
	// always bound to the empty string; chaining happens at call sites.
	placeholderExecPrefix = "pulsar_exec_"
)

// Compiler holds the immutable node definition table and the compiled
// template for every node type that has one.
type Compiler struct {
	defs      *nodedef.Registry
	templates map[string]*template.Template
}

// New builds a compiler over the given definition table, compiling each
// definition's template once. A definition whose template is missing or
// fails to parse is left out of the template table with a warning; such a
// type only becomes an error if a compiled graph actually reaches it.
func New(ctx context.Context, defs *nodedef.Registry) *Compiler {
	logger := ctxlog.FromContext(ctx)

	c := &Compiler{
		defs:      defs,
		templates: make(map[string]*template.Template),
	}

	for _, nodeType := range defs.Types() {
		def, _ := defs.Get(nodeType)
		if def.Template == "" {
			continue
		}
		tpl, err := template.New(def.Template)
		if err != nil {
			logger.Warn("Failed to parse node template; type will be unusable",
				"node_type", nodeType, "error", err)
			continue
		}
		c.templates[nodeType] = tpl
	}

	logger.Debug("Compiler ready.", "node_types", defs.Len(), "templates", len(c.templates))
	return c
}

// CompileGraph generates source code for the graph: one function
// definition per distinct reachable non-entry node type, followed by one
// driver function per entry point. The first error aborts the compile; a
// graph with no entry points yields empty output and no error.
func (c *Compiler) CompileGraph(ctx context.Context, g *graph.GraphDescription) (string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting graph compilation.",
		"graph", g.Metadata.Name, "nodes", len(g.Nodes), "connections", len(g.Connections))

	routing := buildRouting(g)
	entryPoints := findEntryPoints(g)
	logger.Debug("Entry points located.", "count", len(entryPoints))

	var out strings.Builder

	functions, err := c.synthesizeFunctions(g, entryPoints)
	if err != nil {
		return "", err
	}
	if functions != "" {
		out.WriteString("// ============================================================================\n")
		out.WriteString("// Function Definitions (one per reachable node type)\n")
		out.WriteString("// ============================================================================\n\n")
		out.WriteString(functions)
	}

	if len(entryPoints) > 0 {
		out.WriteString("// ============================================================================\n")
		out.WriteString("// Entry Points (Begin Play, On Tick, etc.)\n")
		out.WriteString("// ============================================================================\n\n")

		for _, entryID := range entryPoints {
			entry, ok := g.Nodes[entryID]
			if !ok {
				continue
			}
			entryFn, err := c.compileEntryPoint(entry, g, routing)
			if err != nil {
				return "", err
			}
			out.WriteString(entryFn)
			out.WriteString("\n\n")
		}
	}

	logger.Debug("Graph compilation complete.", "bytes", out.Len())
	return out.String(), nil
}
