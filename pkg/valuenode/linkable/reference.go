package linkable

import (
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

// Reference forwards the value of its single link.
type Reference struct{}

func (Reference) Name() string { return NameReference }
func (Reference) LocalName() string { return "Reference" }
func (Reference) CheckType(t value.Type) bool { return t != value.TypeNil }

func (Reference) Vocab(t value.Type) valuenode.Vocab {
	return valuenode.Vocab{
		param("link", "Link", t, "The referenced value"),
	}
}

func (Reference) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	return at(links, 0, t)
}

func (Reference) IsInvertible(value.Time, value.Value, []*valuenode.Node) (valuenode.InvertibleStatus, int) {
	return valuenode.InverseInvertible, 0
}

func (Reference) Inverse(_ value.Time, target value.Value, _ []*valuenode.Node) (value.Value, error) {
	return target, nil
}
