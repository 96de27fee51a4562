package value

import (
	"encoding/json"
	"fmt"
	"math"
)

// Time is a document time in seconds.
type Time float64

// Type tags the static type of a value. A node's type is fixed at construction.
type Type int

const (
	TypeNil Type = iota
	TypeBool
	TypeInteger
	TypeReal
	TypeAngle
	TypeTime
	TypeVector
	TypeColor
	TypeString
)

var typeNames = map[Type]string{
	TypeNil:     "nil",
	TypeBool:    "bool",
	TypeInteger: "integer",
	TypeReal:    "real",
	TypeAngle:   "angle",
	TypeTime:    "time",
	TypeVector:  "vector",
	TypeColor:   "color",
	TypeString:  "string",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseType returns the Type for a name produced by Type.String.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeNil, fmt.Errorf("unknown value type %q", name)
}

// Numeric reports whether values of t support addition and scaling.
func (t Type) Numeric() bool {
	switch t {
	case TypeInteger, TypeReal, TypeAngle, TypeTime, TypeVector, TypeColor:
		return true
	}
	return false
}

// Vector is a 2D vector.
type Vector struct {
	X, Y float64
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float64
}

// Value is an opaque, comparable, copyable value. Two values are equal when
// both their type and their representation are identical.
type Value struct {
	typ  Type
	data any
}

// Nil is the zero Value.
var Nil = Value{}

func Bool(b bool) Value { return Value{TypeBool, b} }
func Integer(i int) Value { return Value{TypeInteger, i} }
func Real(f float64) Value { return Value{TypeReal, f} }
func Angle(degrees float64) Value { return Value{TypeAngle, degrees} }
func TimeValue(t Time) Value { return Value{TypeTime, float64(t)} }
func Vec(x, y float64) Value { return Value{TypeVector, Vector{x, y}} }
func RGBA(r, g, b, a float64) Value { return Value{TypeColor, Color{r, g, b, a}} }
func String(s string) Value { return Value{TypeString, s} }

// Type returns the type tag of v.
func (v Value) Type() Type { return v.typ }

// IsNil reports whether v carries no value.
func (v Value) IsNil() bool { return v.typ == TypeNil }

// Equal reports exact equality of type and representation.
func (v Value) Equal(o Value) bool {
	return v == o
}

// Float returns the scalar payload of a real, angle, time or integer value.
func (v Value) Float() float64 {
	switch d := v.data.(type) {
	case float64:
		return d
	case int:
		return float64(d)
	case bool:
		if d {
			return 1
		}
	}
	return 0
}

// Int returns the integer payload, rounding scalar values.
func (v Value) Int() int {
	switch d := v.data.(type) {
	case int:
		return d
	case float64:
		return int(math.Round(d))
	}
	return 0
}

// BoolValue returns the boolean payload. Numeric values are true when non-zero.
func (v Value) BoolValue() bool {
	switch d := v.data.(type) {
	case bool:
		return d
	case int:
		return d != 0
	case float64:
		return d != 0
	}
	return false
}

// Vector returns the vector payload.
func (v Value) Vector() Vector {
	d, _ := v.data.(Vector)
	return d
}

// Color returns the color payload.
func (v Value) Color() Color {
	d, _ := v.data.(Color)
	return d
}

// Text returns the string payload.
func (v Value) Text() string {
	d, _ := v.data.(string)
	return d
}

// MarshalJSON encodes v as {"type": ..., "value": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{v.typ.String(), v.data})
}

// Interface returns the raw payload, for encoders.
func (v Value) Interface() any { return v.data }

func (v Value) String() string {
	switch d := v.data.(type) {
	case nil:
		return "nil"
	case float64:
		return fmt.Sprintf("%g", d)
	case Vector:
		return fmt.Sprintf("(%g, %g)", d.X, d.Y)
	case Color:
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", d.R, d.G, d.B, d.A)
	case string:
		return fmt.Sprintf("%q", d)
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Zero returns the additive identity of t.
func Zero(t Type) Value {
	switch t {
	case TypeBool:
		return Bool(false)
	case TypeInteger:
		return Integer(0)
	case TypeReal:
		return Real(0)
	case TypeAngle:
		return Angle(0)
	case TypeTime:
		return TimeValue(0)
	case TypeVector:
		return Vec(0, 0)
	case TypeColor:
		return RGBA(0, 0, 0, 0)
	case TypeString:
		return String("")
	}
	return Nil
}
