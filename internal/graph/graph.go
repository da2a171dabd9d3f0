package graph

import (
	"time"

	"github.com/zclconf/go-cty/cty"
)

// DataTypeExecution is the sentinel pin data type marking a control-flow
// pin. Every other data type name describes a value-carrying pin.
const DataTypeExecution = "execution"

// ConnectionType distinguishes control-flow edges from data-flow edges.
type ConnectionType string

const (
	// ConnectionExecution sequences two execution pins.
	ConnectionExecution ConnectionType = "Execution"
	// ConnectionData carries a value from an output pin to an input pin.
	ConnectionData ConnectionType = "Data"
)

// GraphDescription is a complete blueprint graph: all placed nodes, the
// edges between their pins, and editor metadata.
type GraphDescription struct {
	Nodes       map[string]*NodeInstance `json:"nodes"`
	Connections []*Connection            `json:"connections"`
	Metadata    Metadata                 `json:"metadata"`
}

// NodeInstance is one placed node. NodeType keys into the node definition
// table; Properties holds literal overrides for input pins that have no
// incoming data connection.
type NodeInstance struct {
	ID         string               `json:"id"`
	NodeType   string               `json:"node_type"`
	Position   Position             `json:"position"`
	Properties map[string]cty.Value `json:"-"`
	Inputs     map[string]*Pin      `json:"inputs"`
	Outputs    map[string]*Pin      `json:"outputs"`
}

// Pin is the per-instance state of a named input or output slot.
// ConnectedTo lists the IDs of connections attached to this pin.
type Pin struct {
	Name        string   `json:"name"`
	DataType    string   `json:"data_type"`
	ConnectedTo []string `json:"connected_to"`
}

// Connection is a directed edge between a source node's output pin and a
// target node's input pin.
type Connection struct {
	ID         string         `json:"id"`
	SourceNode string         `json:"source_node"`
	SourcePin  string         `json:"source_pin"`
	TargetNode string         `json:"target_node"`
	TargetPin  string         `json:"target_pin"`
	Type       ConnectionType `json:"connection_type"`
}

// Position is editor layout information. It has no effect on compilation.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Metadata describes the graph document itself.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	CreatedAt   string `json:"created_at"`
	ModifiedAt  string `json:"modified_at"`
}

// New creates an empty graph with the given name.
func New(name string) *GraphDescription {
	now := time.Now().UTC().Format(time.RFC3339)
	return &GraphDescription{
		Nodes: make(map[string]*NodeInstance),
		Metadata: Metadata{
			Name:       name,
			Version:    "1.0.0",
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

// AddNode inserts a node into the graph, replacing any node with the same ID.
func (g *GraphDescription) AddNode(node *NodeInstance) {
	g.Nodes[node.ID] = node
	g.touch()
}

// AddConnection appends a connection and records its ID on both endpoint
// pins, mirroring the bookkeeping the editor performs.
func (g *GraphDescription) AddConnection(conn *Connection) {
	if source, ok := g.Nodes[conn.SourceNode]; ok {
		if pin, ok := source.Outputs[conn.SourcePin]; ok {
			pin.ConnectedTo = append(pin.ConnectedTo, conn.ID)
		}
	}
	if target, ok := g.Nodes[conn.TargetNode]; ok {
		if pin, ok := target.Inputs[conn.TargetPin]; ok {
			pin.ConnectedTo = append(pin.ConnectedTo, conn.ID)
		}
	}
	g.Connections = append(g.Connections, conn)
	g.touch()
}

// RemoveNode deletes a node and every connection that touches it.
func (g *GraphDescription) RemoveNode(nodeID string) {
	kept := g.Connections[:0]
	for _, conn := range g.Connections {
		if conn.SourceNode == nodeID || conn.TargetNode == nodeID {
			g.detachPins(conn)
			continue
		}
		kept = append(kept, conn)
	}
	g.Connections = kept
	delete(g.Nodes, nodeID)
	g.touch()
}

// RemoveConnection deletes a connection by ID and clears it from both pins.
func (g *GraphDescription) RemoveConnection(connectionID string) {
	for i, conn := range g.Connections {
		if conn.ID != connectionID {
			continue
		}
		g.detachPins(conn)
		g.Connections = append(g.Connections[:i], g.Connections[i+1:]...)
		g.touch()
		return
	}
}

// Connection returns the connection with the given ID, if present.
func (g *GraphDescription) Connection(id string) (*Connection, bool) {
	for _, conn := range g.Connections {
		if conn.ID == id {
			return conn, true
		}
	}
	return nil, false
}

func (g *GraphDescription) detachPins(conn *Connection) {
	if source, ok := g.Nodes[conn.SourceNode]; ok {
		if pin, ok := source.Outputs[conn.SourcePin]; ok {
			pin.ConnectedTo = removeString(pin.ConnectedTo, conn.ID)
		}
	}
	if target, ok := g.Nodes[conn.TargetNode]; ok {
		if pin, ok := target.Inputs[conn.TargetPin]; ok {
			pin.ConnectedTo = removeString(pin.ConnectedTo, conn.ID)
		}
	}
}

func (g *GraphDescription) touch() {
	g.Metadata.ModifiedAt = time.Now().UTC().Format(time.RFC3339)
}

func removeString(list []string, s string) []string {
	kept := list[:0]
	for _, v := range list {
		if v != s {
			kept = append(kept, v)
		}
	}
	return kept
}

// NewNode creates a node instance with empty pin and property maps.
func NewNode(id, nodeType string, pos Position) *NodeInstance {
	return &NodeInstance{
		ID:         id,
		NodeType:   nodeType,
		Position:   pos,
		Properties: make(map[string]cty.Value),
		Inputs:     make(map[string]*Pin),
		Outputs:    make(map[string]*Pin),
	}
}

// AddInputPin declares an input pin on the instance.
func (n *NodeInstance) AddInputPin(name, dataType string) {
	n.Inputs[name] = &Pin{Name: name, DataType: dataType}
}

// AddOutputPin declares an output pin on the instance.
func (n *NodeInstance) AddOutputPin(name, dataType string) {
	n.Outputs[name] = &Pin{Name: name, DataType: dataType}
}

// SetProperty records a literal value override for the named input pin.
func (n *NodeInstance) SetProperty(name string, value cty.Value) {
	n.Properties[name] = value
}
