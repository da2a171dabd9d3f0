package compiler

import "fmt"

// NodeDefinitionNotFoundError reports a graph referencing a node type that
// is absent from the definition table.
type NodeDefinitionNotFoundError struct {
	NodeType string
}

func (e *NodeDefinitionNotFoundError) Error() string {
	return fmt.Sprintf("node definition not found: %s", e.NodeType)
}

// NodeTemplateNotFoundError reports a node type that has a definition but
// no loadable template.
type NodeTemplateNotFoundError struct {
	NodeType string
}

func (e *NodeTemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found for node type: %s", e.NodeType)
}

// TemplateRenderError reports a placeholder mismatch or an engine-internal
// failure while rendering a node type's template.
type TemplateRenderError struct {
	NodeType string
	Err      error
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("template render error for %s: %v", e.NodeType, e.Err)
}

func (e *TemplateRenderError) Unwrap() error { return e.Err }

// MissingInputValueError reports an input pin with no connection, no
// property override, and no declared default.
type MissingInputValueError struct {
	NodeID  string
	PinName string
}

func (e *MissingInputValueError) Error() string {
	return fmt.Sprintf("no value for input '%s' on node '%s'", e.PinName, e.NodeID)
}

// InputPinNotFoundError reports a node instance whose inputs map lacks an
// entry the definition requires, with nothing else to satisfy the pin.
type InputPinNotFoundError struct {
	NodeID  string
	PinName string
}

func (e *InputPinNotFoundError) Error() string {
	return fmt.Sprintf("input pin '%s' not found on node '%s'", e.PinName, e.NodeID)
}
