package valuenode

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/canvas"
)

// ParentKind classifies referrers of a node.
type ParentKind int

const (
	// ParentValueNode is a linkable node referencing the child through a slot.
	ParentValueNode ParentKind = iota
	// ParentLayer is a layer-like container; it bounds description walks.
	ParentLayer
	// ParentHolder is any other owner, such as a List.
	ParentHolder
)

// Parent is anything that references value nodes and can be rewired.
type Parent interface {
	ParentKind() ParentKind
	// ReplaceChild makes every reference the parent holds to old point to
	// replacement instead, keeping parent tracking consistent. It returns the
	// number of rewired references.
	ReplaceChild(old, replacement *Node) int
}

// Layer is the boundary container collaborator: the owner of a set of named
// parameters inside a scope.
type Layer interface {
	Parent
	// Description is a non-empty human readable label of the layer.
	Description() string
	// Canvas is the scope the layer lives in, or nil.
	Canvas() canvas.Scope
	// ParamLocalName returns the display name of the parameter n is connected
	// to, or "" when n is not a parameter of the layer.
	ParamLocalName(n *Node) string
}

// AddChild registers p as a parent of child. A parent is recorded once no
// matter how many references it holds.
func AddChild(p Parent, child *Node) {
	if child == nil || child.HasParent(p) {
		return
	}
	child.parents = append(child.parents, p)
}

// RemoveChild deregisters p as a parent of child.
func RemoveChild(p Parent, child *Node) {
	if child == nil {
		return
	}
	for i, x := range child.parents {
		if x == p {
			child.parents = append(child.parents[:i], child.parents[i+1:]...)
			return
		}
	}
}

// CheckReplace reports whether every parent of n can reference replacement
// instead: each slot holding n must accept the type of replacement, and no
// value-node parent may lie below replacement.
func CheckReplace(n, replacement *Node) error {
	if replacement == nil {
		return fmt.Errorf("nil replacement: %w", ErrLinkRejected)
	}
	for _, p := range n.parents {
		pn, ok := p.(*Node)
		if !ok {
			continue
		}
		if replacement.IsAncestorOf(pn) {
			return fmt.Errorf("%s links %s: replacing would create a cycle: %w", pn, n, ErrLinkRejected)
		}
		if replacement.IsPlaceholder() {
			continue
		}
		for i, l := range pn.links {
			if l != n || i >= len(pn.vocab) {
				continue
			}
			if slot := pn.vocab[i]; !slot.Accepts(replacement.typ) {
				return fmt.Errorf("%s: slot %q wants %s, got %s: %w", pn, slot.Name, slot.Type, replacement.typ, ErrLinkRejected)
			}
		}
	}
	return nil
}

// Replace rewires every parent of n so it references replacement instead and
// returns the number of rewired edges. Afterwards n has no parents. Replacing a
// node with itself returns 0, as does a replacement CheckReplace refuses; the
// graph is then left untouched.
func Replace(n, replacement *Node) int {
	if n == replacement || replacement == nil {
		return 0
	}
	if err := CheckReplace(n, replacement); err != nil {
		n.graph.logger.Debug("replace rejected", "node", n.guid.Short(), "err", err)
		return 0
	}
	count := 0
	for len(n.parents) > 0 {
		p := n.parents[0]
		rewired := p.ReplaceChild(n, replacement)
		count += rewired
		if len(n.parents) > 0 && n.parents[0] == p {
			// the parent held no reference; drop the stale edge
			RemoveChild(p, n)
			AddChild(p, replacement)
		}
	}
	return count
}

// ParentKind implements Parent.
func (n *Node) ParentKind() ParentKind { return ParentValueNode }

// ReplaceChild implements Parent by rewriting every slot linked to old.
func (n *Node) ReplaceChild(old, replacement *Node) int {
	count := 0
	for i, l := range n.links {
		if l == old {
			n.links[i] = replacement
			count++
		}
	}
	if count == 0 {
		return 0
	}
	RemoveChild(n, old)
	AddChild(n, replacement)
	if !replacement.IsExported() && n.scope != nil {
		replacement.SetScope(n.scope)
	}
	return count
}

// HasParent reports whether p is a registered parent of n.
func (n *Node) HasParent(p Parent) bool {
	for _, x := range n.parents {
		if x == p {
			return true
		}
	}
	return false
}

// ParentCount returns the number of distinct referrers.
func (n *Node) ParentCount() int { return len(n.parents) }

// Parents returns the referrers in attachment order.
func (n *Node) Parents() []Parent {
	out := make([]Parent, len(n.parents))
	copy(out, n.parents)
	return out
}

// FirstParent returns the earliest attached referrer that is a node or a
// layer, or nil. It is the deterministic tie-break used when a single upward
// path is needed.
func (n *Node) FirstParent() Parent {
	for _, p := range n.parents {
		if p.ParentKind() != ParentHolder {
			return p
		}
	}
	return nil
}

// Retain records an external reference that keeps n alive through Collect.
func (n *Node) Retain() { n.retains++ }

// Release drops a reference taken with Retain.
func (n *Node) Release() {
	if n.retains > 0 {
		n.retains--
	}
}

// RefCount returns the number of parents plus external references.
func (n *Node) RefCount() int { return len(n.parents) + n.retains }
