package compiler

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blueprintgo/internal/graph"
	"github.com/vk/blueprintgo/internal/nodedef"
)

// argumentList resolves every data input of a node instance into the
// comma-separated argument string for its call statement. Execution
// inputs carry no value and are skipped.
func (c *Compiler) argumentList(node *graph.NodeInstance, g *graph.GraphDescription) (string, error) {
	def, ok := c.defs.Get(node.NodeType)
	if !ok {
		return "", &NodeDefinitionNotFoundError{NodeType: node.NodeType}
	}

	var args []string
	for _, pin := range def.DataInputs() {
		value, err := c.resolveInputValue(node, pin, g)
		if err != nil {
			return "", err
		}
		args = append(args, value)
	}
	return strings.Join(args, ", "), nil
}

// resolveInputValue finds the value to emit for one input pin, in priority
// order: connected producer output, explicit property override, declared
// default. A pin none of those satisfy is a hard compile error, never a
// silent zero value.
func (c *Compiler) resolveInputValue(node *graph.NodeInstance, pin nodedef.PinDefinition, g *graph.GraphDescription) (string, error) {
	pinState, hasPin := node.Inputs[pin.Name]
	if hasPin {
		for _, connID := range pinState.ConnectedTo {
			conn, ok := g.Connection(connID)
			if !ok || conn.Type != graph.ConnectionData {
				continue
			}
			// A textual reference to the producer's output; defining that
			// value is the responsibility of whatever lowers the generated
			// source further.
			return "node_" + conn.SourceNode + "_" + conn.SourcePin, nil
		}
	}

	if value, ok := node.Properties[pin.Name]; ok {
		return formatLiteral(value), nil
	}

	if pin.Default != nil {
		return formatLiteral(*pin.Default), nil
	}

	if !hasPin {
		return "", &InputPinNotFoundError{NodeID: node.ID, PinName: pin.Name}
	}
	return "", &MissingInputValueError{NodeID: node.ID, PinName: pin.Name}
}

// formatLiteral renders a property or default value as source text:
// strings quoted with embedded quotes escaped, numbers and booleans
// verbatim, vectors and colors as parenthesized component tuples.
func formatLiteral(value cty.Value) string {
	ty := value.Type()
	switch {
	case ty == cty.String:
		return strconv.Quote(value.AsString())
	case ty == cty.Number:
		return value.AsBigFloat().Text('f', -1)
	case ty == cty.Bool:
		if value.True() {
			return "true"
		}
		return "false"
	case ty.IsTupleType() || ty.IsListType():
		elems := value.AsValueSlice()
		parts := make([]string, len(elems))
		for i, elem := range elems {
			parts[i] = formatLiteral(elem)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		// Unrepresentable values degrade to their string form rather than
		// failing the compile; type agreement is the graph producer's job.
		return value.GoString()
	}
}
