package graph

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// DecodeJSON parses a graph exported by the editor. Node property values
// arrive either as plain JSON scalars, as arrays of 2/3/4 numbers
// (vector2, vector3, color), or in the editor's tagged form, e.g.
// {"String": "hello"} or {"Vector2": [1, 2]}.
func DecodeJSON(data []byte) (*GraphDescription, error) {
	var raw struct {
		Nodes       map[string]*jsonNode `json:"nodes"`
		Connections []*Connection        `json:"connections"`
		Metadata    Metadata             `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
	}

	g := &GraphDescription{
		Nodes:       make(map[string]*NodeInstance, len(raw.Nodes)),
		Connections: raw.Connections,
		Metadata:    raw.Metadata,
	}

	for id, rn := range raw.Nodes {
		node := &NodeInstance{
			ID:         rn.ID,
			NodeType:   rn.NodeType,
			Position:   rn.Position,
			Properties: make(map[string]cty.Value, len(rn.Properties)),
			Inputs:     rn.Inputs,
			Outputs:    rn.Outputs,
		}
		if node.ID == "" {
			node.ID = id
		}
		if node.Inputs == nil {
			node.Inputs = make(map[string]*Pin)
		}
		if node.Outputs == nil {
			node.Outputs = make(map[string]*Pin)
		}
		for name, rawVal := range rn.Properties {
			val, err := decodeProperty(rawVal)
			if err != nil {
				return nil, fmt.Errorf("node %q property %q: %w", node.ID, name, err)
			}
			node.Properties[name] = val
		}
		g.Nodes[id] = node
	}

	return g, nil
}

type jsonNode struct {
	ID         string          `json:"id"`
	NodeType   string          `json:"node_type"`
	Position   Position        `json:"position"`
	Properties map[string]any  `json:"properties"`
	Inputs     map[string]*Pin `json:"inputs"`
	Outputs    map[string]*Pin `json:"outputs"`
}

func decodeProperty(v any) (cty.Value, error) {
	switch val := v.(type) {
	case string:
		return StringProperty(val), nil
	case float64:
		return NumberProperty(val), nil
	case bool:
		return BoolProperty(val), nil
	case []any:
		return decodeComponents(val)
	case map[string]any:
		// Tagged form: exactly one key naming the kind.
		if len(val) != 1 {
			return cty.NilVal, fmt.Errorf("tagged property value must have exactly one key, got %d", len(val))
		}
		for tag, inner := range val {
			return decodeTagged(tag, inner)
		}
	}
	return cty.NilVal, fmt.Errorf("unsupported property value %v (%T)", v, v)
}

func decodeTagged(tag string, inner any) (cty.Value, error) {
	switch tag {
	case "String":
		s, ok := inner.(string)
		if !ok {
			return cty.NilVal, fmt.Errorf("String property holds %T", inner)
		}
		return StringProperty(s), nil
	case "Number":
		f, ok := inner.(float64)
		if !ok {
			return cty.NilVal, fmt.Errorf("Number property holds %T", inner)
		}
		return NumberProperty(f), nil
	case "Boolean":
		b, ok := inner.(bool)
		if !ok {
			return cty.NilVal, fmt.Errorf("Boolean property holds %T", inner)
		}
		return BoolProperty(b), nil
	case "Vector2", "Vector3", "Color":
		list, ok := inner.([]any)
		if !ok {
			return cty.NilVal, fmt.Errorf("%s property holds %T", tag, inner)
		}
		want := map[string]int{"Vector2": 2, "Vector3": 3, "Color": 4}[tag]
		if len(list) != want {
			return cty.NilVal, fmt.Errorf("%s property needs %d components, got %d", tag, want, len(list))
		}
		return decodeComponents(list)
	}
	return cty.NilVal, fmt.Errorf("unknown property tag %q", tag)
}

func decodeComponents(list []any) (cty.Value, error) {
	if len(list) < 2 || len(list) > 4 {
		return cty.NilVal, fmt.Errorf("component list must have 2 to 4 elements, got %d", len(list))
	}
	parts := make([]cty.Value, len(list))
	for i, elem := range list {
		f, ok := elem.(float64)
		if !ok {
			return cty.NilVal, fmt.Errorf("component %d is %T, want number", i, elem)
		}
		parts[i] = cty.NumberFloatVal(f)
	}
	return cty.TupleVal(parts), nil
}
