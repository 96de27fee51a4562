package linkable

import (
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

const (
	switchOff = iota
	switchOn
	switchFlag
)

// Switch yields link_on while its switch link is true and link_off otherwise.
type Switch struct{}

func (Switch) Name() string { return NameSwitch }
func (Switch) LocalName() string { return "Switch" }
func (Switch) CheckType(t value.Type) bool { return t != value.TypeNil }

func (Switch) Vocab(t value.Type) valuenode.Vocab {
	return valuenode.Vocab{
		param("link_off", "Link Off", t, "Value used while the switch is off"),
		param("link_on", "Link On", t, "Value used while the switch is on"),
		param("switch", "Switch", value.TypeBool, "Selects the active link"),
	}
}

func (Switch) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	if at(links, switchFlag, t).BoolValue() {
		return at(links, switchOn, t)
	}
	return at(links, switchOff, t)
}

// IsInvertible reports the link that is active at t.
func (Switch) IsInvertible(t value.Time, _ value.Value, links []*valuenode.Node) (valuenode.InvertibleStatus, int) {
	if at(links, switchFlag, t).BoolValue() {
		return valuenode.InverseInvertible, switchOn
	}
	return valuenode.InverseInvertible, switchOff
}

// Inverse returns target: the active link must take the output value.
func (Switch) Inverse(_ value.Time, target value.Value, _ []*valuenode.Node) (value.Value, error) {
	return target, nil
}
