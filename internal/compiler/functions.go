package compiler

import (
	"sort"
	"strings"

	"github.com/vk/blueprintgo/internal/graph"
)

// synthesizeFunctions renders one function definition per distinct node
// type reachable from any entry point. All instances of a type share the
// generated function, so each type is rendered exactly once no matter how
// many instances exist or how many entry points reach it. Entry-point
// types emit no definition; they become the driver functions instead.
func (c *Compiler) synthesizeFunctions(g *graph.GraphDescription, entryPoints []string) (string, error) {
	reachable := findReachable(g, entryPoints)

	types := make(map[string]struct{})
	for nodeID := range reachable {
		node, ok := g.Nodes[nodeID]
		if !ok || IsEntryPointType(node.NodeType) {
			continue
		}
		types[node.NodeType] = struct{}{}
	}

	sorted := make([]string, 0, len(types))
	for nodeType := range types {
		sorted = append(sorted, nodeType)
	}
	sort.Strings(sorted)

	var out strings.Builder
	for _, nodeType := range sorted {
		rendered, err := c.synthesizeFunction(nodeType)
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
		out.WriteString("\n\n")
	}
	return out.String(), nil
}

// synthesizeFunction renders the function definition for one node type.
// Input placeholders are bound to parameter names rather than literal
// values so the signature is generic across every instance of the type.
func (c *Compiler) synthesizeFunction(nodeType string) (string, error) {
	def, ok := c.defs.Get(nodeType)
	if !ok {
		return "", &NodeDefinitionNotFoundError{NodeType: nodeType}
	}

	tpl, ok := c.templates[nodeType]
	if !ok {
		return "", &NodeTemplateNotFoundError{NodeType: nodeType}
	}

	bindings := map[string]string{
		placeholderFnID: nodeType,
	}
	for _, pin := range def.DataInputs() {
		bindings[placeholderInputPrefix+pin.Name+"_"+pin.DataType] = pin.Name
	}
	for _, pin := range def.ExecutionOutputs() {
		bindings[placeholderExecPrefix+pin.Name] = ""
	}

	rendered, err := tpl.Render(bindings)
	if err != nil {
		return "", &TemplateRenderError{NodeType: nodeType, Err: err}
	}
	return strings.TrimRight(rendered, "\n"), nil
}
