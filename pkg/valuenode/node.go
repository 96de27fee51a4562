package valuenode

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/canvas"
	"github.com/aretw0/tendril/pkg/guid"
	"github.com/aretw0/tendril/pkg/value"
)

// Kind is the closed set of node variants.
type Kind int

const (
	KindConst Kind = iota
	KindAnimated
	KindLinkable
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindAnimated:
		return "animated"
	case KindLinkable:
		return "linkable"
	case KindPlaceholder:
		return "placeholder"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is a value node: a typed function of time.
type Node struct {
	graph *Graph
	guid  guid.GUID
	typ   value.Type
	kind  Kind
	id    string

	// scope is the nearest enclosing scope referencing the node. It does not
	// own the node.
	scope canvas.Scope
	root  canvas.Scope

	// parents holds each referrer once, in attachment order.
	parents []Parent
	retains int
	removed bool

	constant  value.Value
	waypoints []Waypoint

	impl  Linkable
	vocab Vocab
	links []*Node
}

// GUID returns the node's identity.
func (n *Node) GUID() guid.GUID { return n.guid }

// Type returns the static value type of the node.
func (n *Node) Type() value.Type { return n.typ }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Graph returns the arena owning n.
func (n *Node) Graph() *Graph { return n.graph }

// IsPlaceholder reports whether n stands in for an unresolved reference.
func (n *Node) IsPlaceholder() bool { return n.kind == KindPlaceholder }

// IsLinkable reports whether n is computed from child links.
func (n *Node) IsLinkable() bool { return n.kind == KindLinkable }

// Removed reports whether the graph has destroyed n.
func (n *Node) Removed() bool { return n.removed }

// ID returns the exported name, empty when not exported.
func (n *Node) ID() string { return n.id }

// IsExported reports whether n has an id.
func (n *Node) IsExported() bool { return n.id != "" }

// SetID renames n. An id-changed event fires only when the name differs.
func (n *Node) SetID(id string) {
	if n.id == id {
		return
	}
	old := n.id
	n.id = id
	n.graph.dispatch(Event{Type: EventIDChanged, Scope: n.scope, Node: n, OldID: old, NewID: id})
}

// Scope returns the owning scope, or nil.
func (n *Node) Scope() canvas.Scope { return n.scope }

// RootScope returns the top-level scope of the document, or nil.
func (n *Node) RootScope() canvas.Scope { return n.root }

// SetScope sets the owning scope and, when non-nil, the root scope derived
// from it.
func (n *Node) SetScope(s canvas.Scope) {
	n.scope = s
	if s != nil {
		n.SetRootScope(s.Root())
	}
}

// SetRootScope sets the root scope of n and, for linkables, of every node
// below it.
func (n *Node) SetRootScope(root canvas.Scope) {
	n.setRootScope(root, make(map[*Node]bool))
}

func (n *Node) setRootScope(root canvas.Scope, seen map[*Node]bool) {
	if seen[n] {
		return
	}
	seen[n] = true
	n.root = root
	for _, l := range n.links {
		if l != nil {
			l.setRootScope(root, seen)
		}
	}
}

// Value returns the value of a constant node.
func (n *Node) Value() value.Value { return n.constant }

// SetValue replaces the value of a constant node.
func (n *Node) SetValue(v value.Value) error {
	if n.kind != KindConst {
		return fmt.Errorf("set value on %s node: %w", n.kind, ErrLinkRejected)
	}
	if v.Type() != n.typ {
		return fmt.Errorf("set %s value on %s node: %w", v.Type(), n.typ, value.ErrTypeMismatch)
	}
	if v.Equal(n.constant) {
		return nil
	}
	n.constant = v
	n.Changed()
	return nil
}

// Evaluate returns the value of n at time t. It has no side effects.
// Evaluating a placeholder is a contract violation and panics.
func (n *Node) Evaluate(t value.Time) value.Value {
	switch n.kind {
	case KindConst:
		return n.constant
	case KindAnimated:
		return n.interpolate(t)
	case KindLinkable:
		return n.impl.Evaluate(t, n.links)
	case KindPlaceholder:
		panic(fmt.Sprintf("valuenode: evaluating unresolved placeholder %q (%s)", n.id, n.guid))
	}
	panic(fmt.Sprintf("valuenode: unknown kind %v", n.kind))
}

// Changed notifies observers that the value of n may have changed. One
// value-changed event is dispatched per scope in the owning scope chain (or to
// the root scope alone when no owning scope is set), then the notification
// moves up to every parent. Each node is notified at most once per call.
func (n *Node) Changed() {
	n.changed(make(map[*Node]bool))
}

func (n *Node) changed(seen map[*Node]bool) {
	if seen[n] {
		return
	}
	seen[n] = true

	var scopes []canvas.Scope
	if n.scope != nil {
		scopes = canvas.Chain(n.scope)
	} else if n.root != nil {
		scopes = []canvas.Scope{n.root}
	}
	for _, p := range n.parents {
		if p.ParentKind() != ParentLayer {
			continue
		}
		if l, ok := p.(Layer); ok && l.Canvas() != nil {
			for _, s := range canvas.Chain(l.Canvas()) {
				if !containsScope(scopes, s) {
					scopes = append(scopes, s)
				}
			}
		}
	}
	for _, s := range scopes {
		n.graph.dispatch(Event{Type: EventValueNodeChanged, Scope: s, Node: n})
	}

	for _, p := range n.parents {
		if pn, ok := p.(*Node); ok {
			pn.changed(seen)
		}
	}
}

func containsScope(scopes []canvas.Scope, s canvas.Scope) bool {
	for _, x := range scopes {
		if x == s {
			return true
		}
	}
	return false
}

// Replace rewires every parent of n to other, then notifies observers of
// other. It returns the number of rewired edges. Replacing a node with itself,
// or with a node CheckReplace refuses, does nothing and returns 0.
func (n *Node) Replace(other *Node) int {
	if other == n || CheckReplace(n, other) != nil {
		return 0
	}
	count := Replace(n, other)
	other.Changed()
	return count
}

// RelativeID returns the colon-delimited path from ancestor down to the id of
// n. n must be exported and have a scope; anything else is a contract
// violation and panics.
func (n *Node) RelativeID(ancestor canvas.Scope) string {
	if !n.IsExported() {
		panic(fmt.Sprintf("valuenode: relative id of non-exported node %s", n.guid))
	}
	if n.scope == nil {
		panic(fmt.Sprintf("valuenode: relative id of node %q without scope", n.id))
	}
	if n.scope == ancestor {
		return n.id
	}
	prefix := canvas.RelativeID(n.scope, ancestor)
	if prefix == "" {
		return n.id
	}
	return prefix + ":" + n.id
}

// IsAncestorOf reports whether dest is n or lies below n.
func (n *Node) IsAncestorOf(dest *Node) bool {
	return n.isAncestorOf(dest, make(map[*Node]bool))
}

func (n *Node) isAncestorOf(dest *Node, seen map[*Node]bool) bool {
	if dest == nil {
		return false
	}
	if n == dest {
		return true
	}
	if seen[dest] {
		return false
	}
	seen[dest] = true
	for _, p := range dest.parents {
		if pn, ok := p.(*Node); ok && n.isAncestorOf(pn, seen) {
			return true
		}
	}
	return false
}

// Name returns the variant name: the linkable's name, or the leaf kind.
func (n *Node) Name() string {
	if n.kind == KindLinkable {
		return n.impl.Name()
	}
	return n.kind.String()
}

// LocalName returns the display name of the variant.
func (n *Node) LocalName() string {
	switch n.kind {
	case KindLinkable:
		return n.impl.LocalName()
	case KindConst:
		return "Constant"
	case KindAnimated:
		return "Animated"
	case KindPlaceholder:
		return "Placeholder"
	}
	return n.kind.String()
}

func (n *Node) String() string {
	if n.kind == KindPlaceholder {
		return "PlaceholderValueNode: " + n.guid.String()
	}
	return "ValueNode: " + n.Description(true)
}
