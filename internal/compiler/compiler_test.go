package compiler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blueprintgo/internal/graph"
	"github.com/vk/blueprintgo/internal/nodedef"
)

func strDefault(s string) *cty.Value {
	v := cty.StringVal(s)
	return &v
}

// testDefinitions mirrors the shipped built-in node set, constructed
// directly so the tests do not depend on manifest files.
func testDefinitions() *nodedef.Registry {
	return nodedef.NewRegistry(
		&nodedef.Definition{
			Type:    "begin_play",
			Outputs: []nodedef.PinDefinition{{Name: "exec_out", DataType: graph.DataTypeExecution}},
		},
		&nodedef.Definition{
			Type:    "on_tick",
			Outputs: []nodedef.PinDefinition{{Name: "exec_out", DataType: graph.DataTypeExecution}},
		},
		&nodedef.Definition{
			Type: "println",
			Inputs: []nodedef.PinDefinition{
				{Name: "exec_in", DataType: graph.DataTypeExecution},
				{Name: "message", DataType: "string", Default: strDefault("Hello, World!")},
			},
			Outputs: []nodedef.PinDefinition{{Name: "exec_out", DataType: graph.DataTypeExecution}},
			Template: "fn @[pulsar_node_fn_id]@(@[in_message_string]@: String) {\n" +
				"    println!(\"{}\", @[in_message_string]@);\n" +
				"}@[pulsar_exec_exec_out]@",
		},
		&nodedef.Definition{
			Type: "add",
			Inputs: []nodedef.PinDefinition{
				{Name: "exec_in", DataType: graph.DataTypeExecution},
				{Name: "a", DataType: "number"},
				{Name: "b", DataType: "number"},
			},
			Outputs: []nodedef.PinDefinition{
				{Name: "exec_out", DataType: graph.DataTypeExecution},
				{Name: "result", DataType: "number"},
			},
			Template: "fn @[pulsar_node_fn_id]@(@[in_a_number]@: Number, @[in_b_number]@: Number) -> Number {\n" +
				"    return @[in_a_number]@ + @[in_b_number]@;\n" +
				"}@[pulsar_exec_exec_out]@",
		},
		&nodedef.Definition{
			Type: "bare",
			Inputs: []nodedef.PinDefinition{
				{Name: "exec_in", DataType: graph.DataTypeExecution},
			},
			Outputs: []nodedef.PinDefinition{{Name: "exec_out", DataType: graph.DataTypeExecution}},
		},
	)
}

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	return New(context.Background(), testDefinitions())
}

func addEventNode(g *graph.GraphDescription, id, nodeType string) *graph.NodeInstance {
	n := graph.NewNode(id, nodeType, graph.Position{})
	n.AddOutputPin("exec_out", graph.DataTypeExecution)
	g.AddNode(n)
	return n
}

func addPrintlnNode(g *graph.GraphDescription, id string) *graph.NodeInstance {
	n := graph.NewNode(id, "println", graph.Position{})
	n.AddInputPin("exec_in", graph.DataTypeExecution)
	n.AddInputPin("message", "string")
	n.AddOutputPin("exec_out", graph.DataTypeExecution)
	g.AddNode(n)
	return n
}

func addAddNode(g *graph.GraphDescription, id string) *graph.NodeInstance {
	n := graph.NewNode(id, "add", graph.Position{})
	n.AddInputPin("exec_in", graph.DataTypeExecution)
	n.AddInputPin("a", "number")
	n.AddInputPin("b", "number")
	n.AddOutputPin("exec_out", graph.DataTypeExecution)
	n.AddOutputPin("result", "number")
	g.AddNode(n)
	return n
}

func connectExec(g *graph.GraphDescription, id, from, to string) {
	g.AddConnection(&graph.Connection{
		ID:         id,
		SourceNode: from,
		SourcePin:  "exec_out",
		TargetNode: to,
		TargetPin:  "exec_in",
		Type:       graph.ConnectionExecution,
	})
}

const banner = "// ============================================================================\n"

func TestCompileGraphHelloWorld(t *testing.T) {
	g := graph.New("Hello World")
	addEventNode(g, "start", "begin_play")
	p := addPrintlnNode(g, "print")
	p.SetProperty("message", graph.StringProperty("Hello, World!"))
	connectExec(g, "c1", "start", "print")

	out, err := newTestCompiler(t).CompileGraph(context.Background(), g)
	require.NoError(t, err)

	expected := banner +
		"// Function Definitions (one per reachable node type)\n" +
		banner + "\n" +
		"fn println(message: String) {\n" +
		"    println!(\"{}\", message);\n" +
		"}\n\n" +
		banner +
		"// Entry Points (Begin Play, On Tick, etc.)\n" +
		banner + "\n" +
		"fn main() {\n" +
		"    println(\"Hello, World!\");\n" +
		"}\n\n"
	assert.Equal(t, expected, out)
}

func TestCompileGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("no entry points yields empty output", func(t *testing.T) {
		g := graph.New("empty")
		addPrintlnNode(g, "orphan")

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.Equal(t, "", out)
	})

	t.Run("entry with no downstream emits an empty body", func(t *testing.T) {
		g := graph.New("bare entry")
		addEventNode(g, "start", "begin_play")

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.NotContains(t, out, "Function Definitions")
		assert.Contains(t, out, "fn main() {\n}")
	})

	t.Run("default fills an unset input", func(t *testing.T) {
		g := graph.New("defaults")
		addEventNode(g, "start", "begin_play")
		addPrintlnNode(g, "print")
		connectExec(g, "c1", "start", "print")

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.Contains(t, out, `    println("Hello, World!");`)
	})

	t.Run("properties become call arguments", func(t *testing.T) {
		g := graph.New("add")
		addEventNode(g, "start", "begin_play")
		n := addAddNode(g, "sum")
		n.SetProperty("a", graph.NumberProperty(2))
		n.SetProperty("b", graph.NumberProperty(3))
		connectExec(g, "c1", "start", "sum")

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.Contains(t, out, "fn main() {\n    add(2, 3);\n}")
	})

	t.Run("data connection emits a producer reference", func(t *testing.T) {
		g := graph.New("wired")
		addEventNode(g, "start", "begin_play")
		n := addAddNode(g, "sum")
		n.SetProperty("a", graph.NumberProperty(1))
		n.SetProperty("b", graph.NumberProperty(2))
		addPrintlnNode(g, "print")
		connectExec(g, "c1", "start", "sum")
		connectExec(g, "c2", "sum", "print")
		g.AddConnection(&graph.Connection{
			ID:         "c3",
			SourceNode: "sum",
			SourcePin:  "result",
			TargetNode: "print",
			TargetPin:  "message",
			Type:       graph.ConnectionData,
		})

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.Contains(t, out, "    println(node_sum_result);\n")
	})

	t.Run("instances of one type share a single definition", func(t *testing.T) {
		g := graph.New("shared")
		addEventNode(g, "start", "begin_play")
		addEventNode(g, "tick", "on_tick")
		addPrintlnNode(g, "p1")
		addPrintlnNode(g, "p2")
		connectExec(g, "c1", "start", "p1")
		connectExec(g, "c2", "tick", "p2")

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)

		assert.Equal(t, 1, strings.Count(out, "fn println(message: String)"))
		assert.Contains(t, out, "fn main() {")
		assert.Contains(t, out, "fn on_tick() {")
	})

	t.Run("entry functions are ordered by node id", func(t *testing.T) {
		g := graph.New("ordering")
		addEventNode(g, "b-tick", "on_tick")
		addEventNode(g, "a-start", "begin_play")

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.Less(t, strings.Index(out, "fn main()"), strings.Index(out, "fn on_tick()"))
	})

	t.Run("branch targets follow connection order", func(t *testing.T) {
		g := graph.New("fanout")
		addEventNode(g, "start", "begin_play")
		p1 := addPrintlnNode(g, "p1")
		p1.SetProperty("message", graph.StringProperty("first"))
		p2 := addPrintlnNode(g, "p2")
		p2.SetProperty("message", graph.StringProperty("second"))
		connectExec(g, "c1", "start", "p1")
		connectExec(g, "c2", "start", "p2")

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.Contains(t, out, "fn main() {\n    println(\"first\");\n    println(\"second\");\n}")
	})

	t.Run("execution cycle terminates with one call per node", func(t *testing.T) {
		g := graph.New("cycle")
		addEventNode(g, "start", "begin_play")
		p1 := addPrintlnNode(g, "p1")
		p1.SetProperty("message", graph.StringProperty("one"))
		p2 := addPrintlnNode(g, "p2")
		p2.SetProperty("message", graph.StringProperty("two"))
		connectExec(g, "c1", "start", "p1")
		connectExec(g, "c2", "p1", "p2")
		connectExec(g, "c3", "p2", "p1") // back-edge

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.Contains(t, out, "fn main() {\n    println(\"one\");\n    println(\"two\");\n}")
	})

	t.Run("unreachable nodes are ignored", func(t *testing.T) {
		g := graph.New("orphans")
		addEventNode(g, "start", "begin_play")
		addPrintlnNode(g, "print")
		connectExec(g, "c1", "start", "print")

		orphan := addAddNode(g, "island")
		orphan.SetProperty("a", graph.NumberProperty(1))
		orphan.SetProperty("b", graph.NumberProperty(2))

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.NoError(t, err)
		assert.NotContains(t, out, "fn add")
		assert.NotContains(t, out, "add(1, 2);")
	})

	t.Run("recompilation is byte identical", func(t *testing.T) {
		g := graph.New("stable")
		addEventNode(g, "tick", "on_tick")
		addEventNode(g, "start", "begin_play")
		n := addAddNode(g, "sum")
		n.SetProperty("a", graph.NumberProperty(2))
		n.SetProperty("b", graph.NumberProperty(3))
		addPrintlnNode(g, "print")
		connectExec(g, "c1", "start", "print")
		connectExec(g, "c2", "tick", "sum")

		c := newTestCompiler(t)
		first, err := c.CompileGraph(ctx, g)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := c.CompileGraph(ctx, g)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})
}

func TestCompileGraphErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown node type", func(t *testing.T) {
		g := graph.New("bad")
		addEventNode(g, "start", "begin_play")
		mystery := graph.NewNode("m", "mystery", graph.Position{})
		mystery.AddInputPin("exec_in", graph.DataTypeExecution)
		g.AddNode(mystery)
		connectExec(g, "c1", "start", "m")

		_, err := newTestCompiler(t).CompileGraph(ctx, g)
		var defErr *NodeDefinitionNotFoundError
		require.ErrorAs(t, err, &defErr)
		assert.Equal(t, "mystery", defErr.NodeType)
	})

	t.Run("definition without template", func(t *testing.T) {
		g := graph.New("bad")
		addEventNode(g, "start", "begin_play")
		b := graph.NewNode("b", "bare", graph.Position{})
		b.AddInputPin("exec_in", graph.DataTypeExecution)
		g.AddNode(b)
		connectExec(g, "c1", "start", "b")

		_, err := newTestCompiler(t).CompileGraph(ctx, g)
		var tplErr *NodeTemplateNotFoundError
		require.ErrorAs(t, err, &tplErr)
		assert.Equal(t, "bare", tplErr.NodeType)
	})

	t.Run("input with no value source", func(t *testing.T) {
		g := graph.New("bad")
		addEventNode(g, "start", "begin_play")
		addAddNode(g, "sum") // no properties, no data connections, no defaults
		connectExec(g, "c1", "start", "sum")

		_, err := newTestCompiler(t).CompileGraph(ctx, g)
		var missingErr *MissingInputValueError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "sum", missingErr.NodeID)
		assert.Equal(t, "a", missingErr.PinName)
	})

	t.Run("instance missing a declared pin", func(t *testing.T) {
		g := graph.New("bad")
		addEventNode(g, "start", "begin_play")
		n := graph.NewNode("sum", "add", graph.Position{})
		n.AddInputPin("exec_in", graph.DataTypeExecution)
		g.AddNode(n) // the 'a' and 'b' pins were never instantiated
		connectExec(g, "c1", "start", "sum")

		_, err := newTestCompiler(t).CompileGraph(ctx, g)
		var pinErr *InputPinNotFoundError
		require.ErrorAs(t, err, &pinErr)
		assert.Equal(t, "sum", pinErr.NodeID)
		assert.Equal(t, "a", pinErr.PinName)
	})

	t.Run("first error aborts with no partial output", func(t *testing.T) {
		g := graph.New("bad")
		addEventNode(g, "start", "begin_play")
		addPrintlnNode(g, "print")
		b := graph.NewNode("b", "bare", graph.Position{})
		b.AddInputPin("exec_in", graph.DataTypeExecution)
		g.AddNode(b)
		connectExec(g, "c1", "start", "print")
		connectExec(g, "c2", "print", "b")

		out, err := newTestCompiler(t).CompileGraph(ctx, g)
		require.Error(t, err)
		assert.Equal(t, "", out)
	})
}

func TestTemplateRenderErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &TemplateRenderError{NodeType: "println", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.ErrorContains(t, err, "template render error for println")
}
