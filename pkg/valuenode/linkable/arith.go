package linkable

import (
	"fmt"
	"math"

	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

const (
	addLHS = iota
	addRHS
	addScalar
)

// Add computes (lhs + rhs) * scalar.
type Add struct{}

func (Add) Name() string { return NameAdd }
func (Add) LocalName() string { return "Add" }
func (Add) CheckType(t value.Type) bool { return t.Numeric() }

func (Add) Vocab(t value.Type) valuenode.Vocab {
	return valuenode.Vocab{
		param("lhs", "LHS", t, "Left hand side of the addition"),
		param("rhs", "RHS", t, "Right hand side of the addition"),
		param("scalar", "Scalar", value.TypeReal, "Value that multiplies the sum"),
	}
}

func (Add) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	lhs := at(links, addLHS, t)
	sum, err := value.Add(lhs, at(links, addRHS, t))
	if err != nil {
		return lhs
	}
	return scaled(sum, at(links, addScalar, t).Float())
}

// IsInvertible reports that lhs can be solved for while the scalar is not zero.
func (Add) IsInvertible(t value.Time, _ value.Value, links []*valuenode.Node) (valuenode.InvertibleStatus, int) {
	if nearZero(at(links, addScalar, t).Float()) {
		return valuenode.InverseNotInvertible, addLHS
	}
	return valuenode.InverseInvertible, addLHS
}

// Inverse returns the lhs giving target: target / scalar - rhs.
func (Add) Inverse(t value.Time, target value.Value, links []*valuenode.Node) (value.Value, error) {
	scalar := at(links, addScalar, t).Float()
	if nearZero(scalar) {
		return value.Nil, fmt.Errorf("add: zero scalar: %w", valuenode.ErrNotInvertible)
	}
	unscaled, err := value.Scale(target, 1/scalar)
	if err != nil {
		return value.Nil, err
	}
	return value.Sub(unscaled, at(links, addRHS, t))
}

// Subtract computes (lhs - rhs) * scalar.
type Subtract struct{}

func (Subtract) Name() string { return NameSubtract }
func (Subtract) LocalName() string { return "Subtract" }
func (Subtract) CheckType(t value.Type) bool { return t.Numeric() }

func (Subtract) Vocab(t value.Type) valuenode.Vocab {
	return valuenode.Vocab{
		param("lhs", "LHS", t, "Value to subtract from"),
		param("rhs", "RHS", t, "Value to subtract"),
		param("scalar", "Scalar", value.TypeReal, "Value that multiplies the difference"),
	}
}

func (Subtract) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	lhs := at(links, addLHS, t)
	diff, err := value.Sub(lhs, at(links, addRHS, t))
	if err != nil {
		return lhs
	}
	return scaled(diff, at(links, addScalar, t).Float())
}

func (Subtract) IsInvertible(t value.Time, _ value.Value, links []*valuenode.Node) (valuenode.InvertibleStatus, int) {
	if nearZero(at(links, addScalar, t).Float()) {
		return valuenode.InverseNotInvertible, addLHS
	}
	return valuenode.InverseInvertible, addLHS
}

// Inverse returns the lhs giving target: target / scalar + rhs.
func (Subtract) Inverse(t value.Time, target value.Value, links []*valuenode.Node) (value.Value, error) {
	scalar := at(links, addScalar, t).Float()
	if nearZero(scalar) {
		return value.Nil, fmt.Errorf("subtract: zero scalar: %w", valuenode.ErrNotInvertible)
	}
	unscaled, err := value.Scale(target, 1/scalar)
	if err != nil {
		return value.Nil, err
	}
	return value.Add(unscaled, at(links, addRHS, t))
}

const (
	scaleLink = iota
	scaleScalar
)

// Scale computes link * scalar.
type Scale struct{}

func (Scale) Name() string { return NameScale }
func (Scale) LocalName() string { return "Scale" }
func (Scale) CheckType(t value.Type) bool { return t.Numeric() }

func (Scale) Vocab(t value.Type) valuenode.Vocab {
	return valuenode.Vocab{
		param("link", "Link", t, "Value to scale"),
		param("scalar", "Scalar", value.TypeReal, "Factor applied to the link"),
	}
}

func (Scale) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	return scaled(at(links, scaleLink, t), at(links, scaleScalar, t).Float())
}

func (Scale) IsInvertible(t value.Time, _ value.Value, links []*valuenode.Node) (valuenode.InvertibleStatus, int) {
	if nearZero(at(links, scaleScalar, t).Float()) {
		return valuenode.InverseNotInvertible, scaleLink
	}
	return valuenode.InverseInvertible, scaleLink
}

// Inverse returns the link value giving target: target / scalar.
func (Scale) Inverse(t value.Time, target value.Value, links []*valuenode.Node) (value.Value, error) {
	scalar := at(links, scaleScalar, t).Float()
	if nearZero(scalar) {
		return value.Nil, fmt.Errorf("scale: zero scalar: %w", valuenode.ErrNotInvertible)
	}
	return value.Scale(target, 1/scalar)
}

func nearZero(f float64) bool {
	return math.Abs(f) < 1e-8
}
