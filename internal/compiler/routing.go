package compiler

import "github.com/vk/blueprintgo/internal/graph"

// routeKey identifies one execution output pin on one node instance.
type routeKey struct {
	nodeID string
	pin    string
}

// executionRouting maps each execution output pin to the node IDs its
// connections lead to. Targets keep the graph's connection-list order, so
// the chain walk is deterministic.
type executionRouting struct {
	routes map[routeKey][]string
}

// buildRouting scans every Execution-typed connection in the graph.
func buildRouting(g *graph.GraphDescription) *executionRouting {
	routes := make(map[routeKey][]string)
	for _, conn := range g.Connections {
		if conn.Type != graph.ConnectionExecution {
			continue
		}
		key := routeKey{nodeID: conn.SourceNode, pin: conn.SourcePin}
		routes[key] = append(routes[key], conn.TargetNode)
	}
	return &executionRouting{routes: routes}
}

// connectedTo returns the IDs of all nodes wired to the given execution
// output pin, or nil if the pin has no outgoing execution connections.
func (r *executionRouting) connectedTo(nodeID, outputPin string) []string {
	return r.routes[routeKey{nodeID: nodeID, pin: outputPin}]
}
