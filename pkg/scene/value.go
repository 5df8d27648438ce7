package scene

import (
	"strconv"
	"strings"
)

// ValueKind discriminates socket default values.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueFloat
	ValueVector
	ValueInt
	ValueBool
	ValueString
)

// Value is a socket's default value.
// The zero value is ValueNone, used by sockets such as shader inputs that
// carry no default.
type Value struct {
	Kind   ValueKind
	Floats []float64 // one element for ValueFloat, components for ValueVector
	Int    int64
	Bool   bool
	Str    string
}

// Float returns a scalar float value.
func Float(f float64) Value { return Value{Kind: ValueFloat, Floats: []float64{f}} }

// Vector returns a vector value (colors, vectors, points).
func Vector(c ...float64) Value { return Value{Kind: ValueVector, Floats: c} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: ValueInt, Int: i} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// String returns a string value.
func String(s string) Value { return Value{Kind: ValueString, Str: s} }

// Scalar returns the value as a single float. Vectors yield their first
// component; non-numeric values yield 0.
func (v Value) Scalar() float64 {
	switch v.Kind {
	case ValueFloat, ValueVector:
		if len(v.Floats) > 0 {
			return v.Floats[0]
		}
	case ValueInt:
		return float64(v.Int)
	case ValueBool:
		if v.Bool {
			return 1
		}
	}
	return 0
}

// Components returns the value as a float slice. Scalars yield a single
// component; non-numeric values yield nil.
func (v Value) Components() []float64 {
	switch v.Kind {
	case ValueFloat, ValueVector:
		return v.Floats
	case ValueInt, ValueBool:
		return []float64{v.Scalar()}
	}
	return nil
}

// RGB returns the first three components, padding missing ones with 0.
func (v Value) RGB() [3]float64 {
	var rgb [3]float64
	copy(rgb[:], v.Components())
	return rgb
}

// IsNone reports whether the value is unset.
func (v Value) IsNone() bool { return v.Kind == ValueNone }

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case ValueFloat:
		return strconv.FormatFloat(v.Scalar(), 'g', -1, 64)
	case ValueVector:
		parts := make([]string, len(v.Floats))
		for i, f := range v.Floats {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueString:
		return strconv.Quote(v.Str)
	}
	return "none"
}
