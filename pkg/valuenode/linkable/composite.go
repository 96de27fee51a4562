package linkable

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

// Composite assembles a vector or a color from real components.
type Composite struct{}

func (Composite) Name() string { return NameComposite }
func (Composite) LocalName() string { return "Composite" }

func (Composite) CheckType(t value.Type) bool {
	return t == value.TypeVector || t == value.TypeColor
}

func (Composite) Vocab(t value.Type) valuenode.Vocab {
	switch t {
	case value.TypeVector:
		return valuenode.Vocab{
			param("x", "X-Axis", value.TypeReal, "The X-Axis component of the vector"),
			param("y", "Y-Axis", value.TypeReal, "The Y-Axis component of the vector"),
		}
	case value.TypeColor:
		return valuenode.Vocab{
			param("red", "Red", value.TypeReal, "The red component of the color"),
			param("green", "Green", value.TypeReal, "The green component of the color"),
			param("blue", "Blue", value.TypeReal, "The blue component of the color"),
			param("alpha", "Alpha", value.TypeReal, "The alpha of the color"),
		}
	}
	return nil
}

func (Composite) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	c := make([]float64, len(links))
	for i := range links {
		c[i] = at(links, i, t).Float()
	}
	switch len(c) {
	case 2:
		return value.Vec(c[0], c[1])
	case 4:
		return value.RGBA(c[0], c[1], c[2], c[3])
	}
	return value.Nil
}

// IsInvertible reports that the components can always be recovered. Only the
// first component is named; Inverse returns the whole decomposition.
func (Composite) IsInvertible(value.Time, value.Value, []*valuenode.Node) (valuenode.InvertibleStatus, int) {
	return valuenode.InverseInvertible, 0
}

// Inverse returns the first component of target. Use Components for all of them.
func (Composite) Inverse(_ value.Time, target value.Value, _ []*valuenode.Node) (value.Value, error) {
	parts, err := Components(target)
	if err != nil {
		return value.Nil, err
	}
	return parts[0], nil
}

// Components splits a vector or color into its real components, in
// vocabulary order.
func Components(v value.Value) ([]value.Value, error) {
	switch v.Type() {
	case value.TypeVector:
		x := v.Vector()
		return []value.Value{value.Real(x.X), value.Real(x.Y)}, nil
	case value.TypeColor:
		c := v.Color()
		return []value.Value{value.Real(c.R), value.Real(c.G), value.Real(c.B), value.Real(c.A)}, nil
	}
	return nil, fmt.Errorf("composite: cannot split %s: %w", v.Type(), valuenode.ErrNotInvertible)
}
