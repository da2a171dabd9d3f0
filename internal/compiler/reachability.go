package compiler

import (
	"sort"

	"github.com/vk/blueprintgo/internal/graph"
)

// entryPointTypes is the closed set of reserved node types that start a
// generated function. Any other node with no incoming connections is an
// orphan and takes no part in code generation.
var entryPointTypes = map[string]struct{}{
	"begin_play": {},
	"on_tick":    {},
	"on_input":   {},
	"on_event":   {},
}

// IsEntryPointType reports whether a node type marks a program entry.
func IsEntryPointType(nodeType string) bool {
	_, ok := entryPointTypes[nodeType]
	return ok
}

// entryFunctionName maps an entry node type to its generated function
// name. The designated program-start entry becomes the process entry
// function; the rest keep their type name.
func entryFunctionName(nodeType string) string {
	if nodeType == "begin_play" {
		return "main"
	}
	return nodeType
}

// findEntryPoints returns the IDs of all entry-point nodes, sorted so that
// repeated compilations emit entry functions in a stable order.
func findEntryPoints(g *graph.GraphDescription) []string {
	var ids []string
	for id, node := range g.Nodes {
		if IsEntryPointType(node.NodeType) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// findReachable collects every node reachable from the entry points via
// execution connections leaving execution-typed output pins. A node is
// marked before its successors are visited, so execution cycles terminate
// the traversal instead of looping.
func findReachable(g *graph.GraphDescription, entryPoints []string) map[string]struct{} {
	reachable := make(map[string]struct{})
	connections := indexConnections(g)

	var visit func(node *graph.NodeInstance)
	visit = func(node *graph.NodeInstance) {
		if _, seen := reachable[node.ID]; seen {
			return
		}
		reachable[node.ID] = struct{}{}

		for _, pin := range node.Outputs {
			if pin.DataType != graph.DataTypeExecution {
				continue
			}
			for _, connID := range pin.ConnectedTo {
				conn, ok := connections[connID]
				if !ok || conn.Type != graph.ConnectionExecution {
					continue
				}
				if next, ok := g.Nodes[conn.TargetNode]; ok {
					visit(next)
				}
			}
		}
	}

	for _, entryID := range entryPoints {
		if entry, ok := g.Nodes[entryID]; ok {
			visit(entry)
		}
	}

	return reachable
}

// indexConnections builds an ID lookup for the graph's connection list.
func indexConnections(g *graph.GraphDescription) map[string]*graph.Connection {
	index := make(map[string]*graph.Connection, len(g.Connections))
	for _, conn := range g.Connections {
		index[conn.ID] = conn
	}
	return index
}
