package valuenode

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/value"
)

// List is an insertion-ordered registry of exported nodes, such as the
// exports of one scope. It registers itself as a holder parent of every
// member, so replacing a member rewrites its slot in place.
type List struct {
	graph        *Graph
	nodes        []*Node
	placeholders int
}

// NewList creates an empty list whose placeholders are allocated in g.
func NewList(g *Graph) *List {
	return &List{graph: g}
}

// ParentKind implements Parent.
func (l *List) ParentKind() ParentKind { return ParentHolder }

// ReplaceChild implements Parent, rewriting matching entries in place.
func (l *List) ReplaceChild(old, replacement *Node) int {
	count := 0
	for i, n := range l.nodes {
		if n == old {
			l.nodes[i] = replacement
			count++
		}
	}
	if count > 0 {
		RemoveChild(l, old)
		AddChild(l, replacement)
	}
	return count
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.nodes) }

// Nodes returns the entries in insertion order.
func (l *List) Nodes() []*Node {
	out := make([]*Node, len(l.nodes))
	copy(out, l.nodes)
	return out
}

// PlaceholderCount returns the number of unresolved placeholders.
func (l *List) PlaceholderCount() int { return l.placeholders }

// Count reports whether an entry has the given id.
func (l *List) Count(id string) bool {
	_, err := l.Find(id)
	return err == nil
}

// Find returns the entry with the given id. It fails with ErrNotFound when
// id is empty or absent.
func (l *List) Find(id string) (*Node, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, ErrEmptyID)
	}
	for _, n := range l.nodes {
		if n.id == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// SureFind is Find, except that an absent id yields a new placeholder bound
// to it, appended to the list. Forward references are satisfied this way and
// resolved when the real node is added.
func (l *List) SureFind(id string) (*Node, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, ErrEmptyID)
	}
	if n, err := l.Find(id); err == nil {
		return n, nil
	}
	ph := l.graph.NewPlaceholder(value.TypeNil)
	ph.SetID(id)
	l.nodes = append(l.nodes, ph)
	AddChild(l, ph)
	l.placeholders++
	l.graph.logger.Debug("forward reference", "id", id)
	return ph, nil
}

// Add inserts n. It fails when n has no id or when a non-placeholder entry
// already uses that id. A placeholder with the same id is resolved: every
// referrer of the placeholder, including this list, is rewired to n. When a
// referrer cannot take n (see CheckReplace) nothing changes and Add fails.
func (l *List) Add(n *Node) bool {
	if n == nil || n.id == "" {
		return false
	}
	existing, err := l.Find(n.id)
	if err != nil {
		l.nodes = append(l.nodes, n)
		AddChild(l, n)
		return true
	}
	if !existing.IsPlaceholder() {
		return false
	}
	if err := CheckReplace(existing, n); err != nil {
		l.graph.logger.Debug("placeholder not resolved", "id", n.id, "err", err)
		return false
	}
	edges := existing.Replace(n)
	l.placeholders--
	l.graph.logger.Debug("placeholder resolved", "id", n.id, "edges", edges)
	l.graph.dispatch(Event{Type: EventPlaceholderResolved, Scope: n.scope, Node: n, OldID: existing.id, NewID: n.id})
	return true
}

// Erase removes n by identity.
func (l *List) Erase(n *Node) bool {
	for i, x := range l.nodes {
		if x != n {
			continue
		}
		l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
		if !l.holds(n) {
			RemoveChild(l, n)
		}
		if n.IsPlaceholder() {
			l.placeholders--
		}
		return true
	}
	return false
}

func (l *List) holds(n *Node) bool {
	for _, x := range l.nodes {
		if x == n {
			return true
		}
	}
	return false
}

// Audit removes every entry the list alone keeps alive and returns how many
// were removed.
func (l *List) Audit() int {
	kept := l.nodes[:0]
	var dropped []*Node
	for _, n := range l.nodes {
		if n.RefCount() == 1 && n.HasParent(l) {
			dropped = append(dropped, n)
			continue
		}
		kept = append(kept, n)
	}
	l.nodes = kept
	for _, n := range dropped {
		RemoveChild(l, n)
		if n.IsPlaceholder() {
			l.placeholders--
		}
	}
	if len(dropped) > 0 {
		l.graph.logger.Debug("audit dropped exports", "count", len(dropped))
	}
	return len(dropped)
}
