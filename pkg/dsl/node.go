package dsl

import (
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

type declKind int

const (
	declNone declKind = iota
	declConst
	declAnimated
	declLinkable
	declPlaceholder
)

// slot is one link of a linkable declaration: either another declaration by
// name or an inline constant.
type slot struct {
	name  string
	ref   string
	value value.Value
}

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	name    string
	builder *Builder

	kind      declKind
	typ       value.Type
	constant  value.Value
	waypoints []valuenode.Waypoint
	variant   string
	slots     []slot
	export    bool
}

func (n *NodeBuilder) setKind(k declKind) {
	if n.kind != declNone && n.kind != k {
		n.builder.errorf("%s: declared twice", n.name)
	}
	n.kind = k
}

// Const declares a constant node holding v.
func (n *NodeBuilder) Const(v value.Value) *NodeBuilder {
	n.setKind(declConst)
	n.typ = v.Type()
	n.constant = v
	return n
}

// Animated declares an animated node of type t. Waypoints are added with
// Step, Linear and Ease.
func (n *NodeBuilder) Animated(t value.Type) *NodeBuilder {
	n.setKind(declAnimated)
	n.typ = t
	return n
}

// Step adds a waypoint holding v from at until the next waypoint.
func (n *NodeBuilder) Step(at value.Time, v value.Value) *NodeBuilder {
	return n.waypoint(valuenode.Waypoint{Time: at, Value: v, Interp: valuenode.InterpolationConstant})
}

// Linear adds a waypoint interpolated linearly towards the next one.
func (n *NodeBuilder) Linear(at value.Time, v value.Value) *NodeBuilder {
	return n.waypoint(valuenode.Waypoint{Time: at, Value: v, Interp: valuenode.InterpolationLinear})
}

// Ease adds a waypoint moving towards the next one along the named curve.
func (n *NodeBuilder) Ease(at value.Time, v value.Value, curve string) *NodeBuilder {
	return n.waypoint(valuenode.Waypoint{Time: at, Value: v, Interp: valuenode.InterpolationEase, Ease: curve})
}

func (n *NodeBuilder) waypoint(w valuenode.Waypoint) *NodeBuilder {
	if n.kind != declAnimated {
		n.builder.errorf("%s: waypoint on a non-animated node", n.name)
		return n
	}
	n.waypoints = append(n.waypoints, w)
	return n
}

// Linkable declares a node computed by the registered variant of type t.
func (n *NodeBuilder) Linkable(variant string, t value.Type) *NodeBuilder {
	n.setKind(declLinkable)
	n.variant = variant
	n.typ = t
	return n
}

// Link connects slot to the node declared as ref.
func (n *NodeBuilder) Link(slotName, ref string) *NodeBuilder {
	if n.kind != declLinkable {
		n.builder.errorf("%s: link on a non-linkable node", n.name)
		return n
	}
	n.slots = append(n.slots, slot{name: slotName, ref: ref})
	return n
}

// Set connects slot to a new constant holding v.
func (n *NodeBuilder) Set(slotName string, v value.Value) *NodeBuilder {
	if n.kind != declLinkable {
		n.builder.errorf("%s: link on a non-linkable node", n.name)
		return n
	}
	n.slots = append(n.slots, slot{name: slotName, value: v})
	return n
}

// Placeholder declares an unresolved reference of type t.
func (n *NodeBuilder) Placeholder(t value.Type) *NodeBuilder {
	n.setKind(declPlaceholder)
	n.typ = t
	return n
}

// Export gives the built node its declaration name as id.
func (n *NodeBuilder) Export() *NodeBuilder {
	n.export = true
	return n
}
