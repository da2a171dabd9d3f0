package compiler

import (
	"fmt"
	"strings"

	"github.com/vk/blueprintgo/internal/graph"
)

// callIndent is the indentation of a statement inside a generated entry
// function body.
const callIndent = "    "

// compileEntryPoint emits the driver function for one entry node: a
// pre-order walk of its execution chain, one call statement per visited
// non-entry node. The entry node itself is the function, not a call
// inside it.
func (c *Compiler) compileEntryPoint(entry *graph.NodeInstance, g *graph.GraphDescription, routing *executionRouting) (string, error) {
	var body strings.Builder
	visited := make(map[string]bool)

	if err := c.emitCalls(entry, g, routing, &body, visited); err != nil {
		return "", err
	}

	return fmt.Sprintf("fn %s() {\n%s}", entryFunctionName(entry.NodeType), body.String()), nil
}

// emitCalls appends this node's call statement (unless it is an entry
// node) and then follows its execution output pins in the definition's
// declared order. The visited guard caps each node at one call per
// entry-point traversal, at the position of its first visit, so back-edges
// terminate cleanly.
func (c *Compiler) emitCalls(node *graph.NodeInstance, g *graph.GraphDescription, routing *executionRouting, out *strings.Builder, visited map[string]bool) error {
	if visited[node.ID] {
		return nil
	}
	visited[node.ID] = true

	if !IsEntryPointType(node.NodeType) {
		args, err := c.argumentList(node, g)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%s(%s);\n", callIndent, node.NodeType, args)
	}

	def, ok := c.defs.Get(node.NodeType)
	if !ok {
		return &NodeDefinitionNotFoundError{NodeType: node.NodeType}
	}

	for _, pin := range def.ExecutionOutputs() {
		for _, targetID := range routing.connectedTo(node.ID, pin.Name) {
			next, ok := g.Nodes[targetID]
			if !ok {
				continue
			}
			if err := c.emitCalls(next, g, routing, out, visited); err != nil {
				return err
			}
		}
	}

	return nil
}
