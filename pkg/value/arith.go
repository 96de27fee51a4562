package value

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned when an operation is given values of incompatible types.
var ErrTypeMismatch = errors.New("type mismatch")

// Add returns a+b. Both operands must share a numeric type.
func Add(a, b Value) (Value, error) {
	if a.typ != b.typ {
		return Nil, fmt.Errorf("add %s + %s: %w", a.typ, b.typ, ErrTypeMismatch)
	}
	switch a.typ {
	case TypeInteger:
		return Integer(a.Int() + b.Int()), nil
	case TypeReal, TypeAngle, TypeTime:
		return Value{a.typ, a.Float() + b.Float()}, nil
	case TypeVector:
		x, y := a.Vector(), b.Vector()
		return Vec(x.X+y.X, x.Y+y.Y), nil
	case TypeColor:
		x, y := a.Color(), b.Color()
		return RGBA(x.R+y.R, x.G+y.G, x.B+y.B, x.A+y.A), nil
	}
	return Nil, fmt.Errorf("add on %s: %w", a.typ, ErrTypeMismatch)
}

// Scale returns a*k.
func Scale(a Value, k float64) (Value, error) {
	switch a.typ {
	case TypeInteger:
		return Integer(int(float64(a.Int()) * k)), nil
	case TypeReal, TypeAngle, TypeTime:
		return Value{a.typ, a.Float() * k}, nil
	case TypeVector:
		x := a.Vector()
		return Vec(x.X*k, x.Y*k), nil
	case TypeColor:
		x := a.Color()
		return RGBA(x.R*k, x.G*k, x.B*k, x.A*k), nil
	}
	return Nil, fmt.Errorf("scale on %s: %w", a.typ, ErrTypeMismatch)
}

// Sub returns a-b.
func Sub(a, b Value) (Value, error) {
	nb, err := Scale(b, -1)
	if err != nil {
		return Nil, err
	}
	return Add(a, nb)
}

// Lerp interpolates between a and b by k in [0, 1]. Non-numeric types step:
// a is returned while k < 1.
func Lerp(a, b Value, k float64) (Value, error) {
	if a.typ != b.typ {
		return Nil, fmt.Errorf("lerp %s -> %s: %w", a.typ, b.typ, ErrTypeMismatch)
	}
	if !a.typ.Numeric() {
		if k >= 1 {
			return b, nil
		}
		return a, nil
	}
	if k <= 0 {
		return a, nil
	}
	if k >= 1 {
		return b, nil
	}
	d, err := Sub(b, a)
	if err != nil {
		return Nil, err
	}
	d, err = Scale(d, k)
	if err != nil {
		return Nil, err
	}
	return Add(a, d)
}
