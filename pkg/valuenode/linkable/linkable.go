package linkable

import (
	"github.com/aretw0/tendril/pkg/registry"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

// Variant names.
const (
	NameAdd       = "add"
	NameSubtract  = "subtract"
	NameScale     = "scale"
	NameSwitch    = "switch"
	NameComposite = "composite"
	NameReference = "reference"
	NameEase      = "ease"
	NameLinear    = "linear"
	NameTimeLoop  = "timeloop"
)

// Register adds every variant of this package to r.
func Register(r *registry.Registry) {
	r.Register(NameAdd, func() valuenode.Linkable { return Add{} })
	r.Register(NameSubtract, func() valuenode.Linkable { return Subtract{} })
	r.Register(NameScale, func() valuenode.Linkable { return Scale{} })
	r.Register(NameSwitch, func() valuenode.Linkable { return Switch{} })
	r.Register(NameComposite, func() valuenode.Linkable { return Composite{} })
	r.Register(NameReference, func() valuenode.Linkable { return Reference{} })
	r.Register(NameEase, func() valuenode.Linkable { return Ease{Curve: "in-out-quad"} })
	r.Register(NameLinear, func() valuenode.Linkable { return Linear{} })
	r.Register(NameTimeLoop, func() valuenode.Linkable { return TimeLoop{} })
}

func param(name, local string, t value.Type, desc string) valuenode.Param {
	return valuenode.Param{Name: name, LocalName: local, Type: t, Description: desc}
}

// at evaluates links[i] at t. Unlinked slots yield the nil value.
func at(links []*valuenode.Node, i int, t value.Time) value.Value {
	if i >= len(links) || links[i] == nil {
		return value.Nil
	}
	return links[i].Evaluate(t)
}

// scaled returns v*k, or v unchanged when v cannot be scaled.
func scaled(v value.Value, k float64) value.Value {
	s, err := value.Scale(v, k)
	if err != nil {
		return v
	}
	return s
}
