package nodedef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blueprintgo/internal/graph"
)

func sampleDefinition() *Definition {
	return &Definition{
		Type: "add",
		Inputs: []PinDefinition{
			{Name: "exec_in", DataType: graph.DataTypeExecution},
			{Name: "a", DataType: "number"},
			{Name: "b", DataType: "number"},
		},
		Outputs: []PinDefinition{
			{Name: "exec_out", DataType: graph.DataTypeExecution},
			{Name: "result", DataType: "number"},
		},
	}
}

func TestDefinitionAccessors(t *testing.T) {
	def := sampleDefinition()

	t.Run("Input finds pins by name", func(t *testing.T) {
		pin, ok := def.Input("b")
		require.True(t, ok)
		assert.Equal(t, "number", pin.DataType)

		_, ok = def.Input("dne")
		assert.False(t, ok)
	})

	t.Run("DataInputs preserves declaration order", func(t *testing.T) {
		pins := def.DataInputs()
		require.Len(t, pins, 2)
		assert.Equal(t, "a", pins[0].Name)
		assert.Equal(t, "b", pins[1].Name)
	})

	t.Run("ExecutionOutputs filters data pins", func(t *testing.T) {
		pins := def.ExecutionOutputs()
		require.Len(t, pins, 1)
		assert.Equal(t, "exec_out", pins[0].Name)
	})
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(sampleDefinition(), &Definition{Type: "println"})

	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, []string{"add", "println"}, registry.Types())

	def, ok := registry.Get("add")
	require.True(t, ok)
	assert.Equal(t, "add", def.Type)

	_, ok = registry.Get("dne")
	assert.False(t, ok)
}
