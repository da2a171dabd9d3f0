package nodedef

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blueprintgo/internal/graph"
)

// PinDefinition declares a single named pin on a node type. DataType is
// either graph.DataTypeExecution or a data type name ("string", "number",
// "boolean", "vector2", "vector3", "color", or engine-defined). Default is
// nil when the pin has no declared default value.
type PinDefinition struct {
	Name        string
	DataType    string
	Description string
	Default     *cty.Value
}

// IsExecution reports whether the pin is a control-flow pin.
func (p PinDefinition) IsExecution() bool {
	return p.DataType == graph.DataTypeExecution
}

// Definition describes a node type: its pin interface and its code
// template. Pin slices preserve manifest declaration order.
type Definition struct {
	Type        string
	Description string
	Category    string
	Inputs      []PinDefinition
	Outputs     []PinDefinition

	// Template is the raw template content for this node type. Empty when
	// the manifest had no template and no sidecar file was found; the
	// compiler reports NodeTemplateNotFound if such a type is reachable.
	Template string
}

// Input returns the input pin definition with the given name.
func (d *Definition) Input(name string) (PinDefinition, bool) {
	for _, pin := range d.Inputs {
		if pin.Name == name {
			return pin, true
		}
	}
	return PinDefinition{}, false
}

// DataInputs returns the non-execution input pins in declaration order.
func (d *Definition) DataInputs() []PinDefinition {
	var pins []PinDefinition
	for _, pin := range d.Inputs {
		if !pin.IsExecution() {
			pins = append(pins, pin)
		}
	}
	return pins
}

// ExecutionOutputs returns the execution output pins in declaration order.
func (d *Definition) ExecutionOutputs() []PinDefinition {
	var pins []PinDefinition
	for _, pin := range d.Outputs {
		if pin.IsExecution() {
			pins = append(pins, pin)
		}
	}
	return pins
}
