package graph

import "github.com/zclconf/go-cty/cty"

// Property constructors for the value kinds the editor can attach to an
// input pin. Scalars map straight onto cty; the geometric kinds are tuples
// of numbers so their arity is carried by the type itself.

// StringProperty wraps a string literal.
func StringProperty(s string) cty.Value { return cty.StringVal(s) }

// NumberProperty wraps a numeric literal.
func NumberProperty(f float64) cty.Value { return cty.NumberFloatVal(f) }

// BoolProperty wraps a boolean literal.
func BoolProperty(b bool) cty.Value { return cty.BoolVal(b) }

// Vector2Property wraps a 2-component vector.
func Vector2Property(x, y float64) cty.Value {
	return cty.TupleVal([]cty.Value{cty.NumberFloatVal(x), cty.NumberFloatVal(y)})
}

// Vector3Property wraps a 3-component vector.
func Vector3Property(x, y, z float64) cty.Value {
	return cty.TupleVal([]cty.Value{
		cty.NumberFloatVal(x), cty.NumberFloatVal(y), cty.NumberFloatVal(z),
	})
}

// ColorProperty wraps an RGBA color.
func ColorProperty(r, g, b, a float64) cty.Value {
	return cty.TupleVal([]cty.Value{
		cty.NumberFloatVal(r), cty.NumberFloatVal(g),
		cty.NumberFloatVal(b), cty.NumberFloatVal(a),
	})
}
