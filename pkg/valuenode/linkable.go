package valuenode

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/value"
)

// ParamFlags annotate vocabulary slots.
type ParamFlags uint8

const (
	// ParamStatic marks a slot whose link is not expected to animate.
	ParamStatic ParamFlags = 1 << iota
	// ParamHidden marks a slot editors should not show.
	ParamHidden
)

// Param describes one slot of a linkable's vocabulary.
type Param struct {
	Name        string
	LocalName   string
	Type        value.Type // TypeNil accepts any type
	Flags       ParamFlags
	Description string
}

// Accepts reports whether a node of type t may be linked to the slot.
func (p Param) Accepts(t value.Type) bool {
	return p.Type == value.TypeNil || p.Type == t
}

// Vocab is the ordered list of slots of a linkable.
type Vocab []Param

// Linkable is implemented by each concrete composite variant. Implementations
// hold no links themselves; the node passes them in.
type Linkable interface {
	// Name is the stable identifier of the variant.
	Name() string
	LocalName() string
	// CheckType reports whether the variant can produce values of type t.
	CheckType(t value.Type) bool
	// Vocab returns the slots of a node of type t.
	Vocab(t value.Type) Vocab
	// Evaluate computes the node's value at t from its links.
	Evaluate(t value.Time, links []*Node) value.Value
}

// LinkChecker is implemented by variants that refuse some links beyond the
// slot type check.
type LinkChecker interface {
	CheckLink(i int, link *Node, slot Param) error
}

// TimeDependent is implemented by variants whose value changes with time even
// when their links are constant. Their sample tables are built by dense
// sampling instead of from the change points of their links.
type TimeDependent interface {
	TimeDependent() bool
}

// InvertibleStatus reports whether a linkable can solve for one of its inputs.
type InvertibleStatus int

const (
	InverseNotSupported InvertibleStatus = iota
	InverseInvertible
	InverseNotInvertible
)

func (s InvertibleStatus) String() string {
	switch s {
	case InverseInvertible:
		return "invertible"
	case InverseNotInvertible:
		return "not invertible"
	}
	return "not supported"
}

// Inverter is implemented by variants that can solve for one input given a
// target output.
type Inverter interface {
	IsInvertible(t value.Time, target value.Value, links []*Node) (InvertibleStatus, int)
	Inverse(t value.Time, target value.Value, links []*Node) (value.Value, error)
}

// Impl returns the variant of a linkable node, or nil.
func (n *Node) Impl() Linkable { return n.impl }

// Vocab returns a copy of the node's vocabulary.
func (n *Node) Vocab() Vocab {
	out := make(Vocab, len(n.vocab))
	copy(out, n.vocab)
	return out
}

// SetVocab redefines the vocabulary. Links of dropped slots are released; new
// slots start unlinked.
func (n *Node) SetVocab(v Vocab) {
	if len(v) < len(n.links) {
		for i := len(v); i < len(n.links); i++ {
			if l := n.links[i]; l != nil && !n.linksToWithin(l, len(v)) {
				RemoveChild(n, l)
			}
		}
		n.links = n.links[:len(v)]
	}
	for len(n.links) < len(v) {
		n.links = append(n.links, nil)
	}
	n.vocab = append(Vocab(nil), v...)
	n.Changed()
}

// LinkCount returns the number of vocabulary slots.
func (n *Node) LinkCount() int { return len(n.vocab) }

// Link returns the node linked at slot i, or nil.
func (n *Node) Link(i int) *Node {
	if i < 0 || i >= len(n.links) {
		return nil
	}
	return n.links[i]
}

// Links returns a copy of the slot links.
func (n *Node) Links() []*Node {
	out := make([]*Node, len(n.links))
	copy(out, n.links)
	return out
}

// LinkName returns the name of slot i, or "".
func (n *Node) LinkName(i int) string {
	if i < 0 || i >= len(n.vocab) {
		return ""
	}
	return n.vocab[i].Name
}

// LinkLocalName returns the display name of slot i, or "".
func (n *Node) LinkLocalName(i int) string {
	if i < 0 || i >= len(n.vocab) {
		return ""
	}
	return n.vocab[i].LocalName
}

// LinkIndex returns the slot index of name.
func (n *Node) LinkIndex(name string) (int, error) {
	for i, p := range n.vocab {
		if p.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s has no link %q: %w", n.Name(), name, ErrBadLinkName)
}

// SetLinkByName links x to the slot called name.
func (n *Node) SetLinkByName(name string, x *Node) error {
	i, err := n.LinkIndex(name)
	if err != nil {
		return err
	}
	return n.SetLink(i, x)
}

// SetLink links x to slot i. The edit is rejected, leaving the graph
// untouched, when i is out of range, x does not fit the slot type, linking
// would create a cycle, or the variant refuses it.
//
// The previous link is released only when no other slot still references it,
// so slots aliasing one child keep it attached. A non-exported x inherits the
// scope of n.
func (n *Node) SetLink(i int, x *Node) error {
	if err := n.checkLink(i, x); err != nil {
		n.graph.logger.Debug("link rejected", "node", n.guid.Short(), "slot", i, "err", err)
		return err
	}

	previous := n.links[i]
	n.links[i] = x
	if previous != nil && previous != x && !n.linksTo(previous, i) {
		RemoveChild(n, previous)
	}
	AddChild(n, x)

	if !x.IsExported() && n.scope != nil {
		x.SetScope(n.scope)
	}
	n.Changed()
	return nil
}

func (n *Node) checkLink(i int, x *Node) error {
	if n.kind != KindLinkable {
		return fmt.Errorf("%s node has no links: %w", n.kind, ErrLinkRejected)
	}
	if x == nil {
		return fmt.Errorf("nil link: %w", ErrLinkRejected)
	}
	if i < 0 || i >= len(n.vocab) {
		return fmt.Errorf("slot %d out of range [0, %d): %w", i, len(n.vocab), ErrLinkRejected)
	}
	slot := n.vocab[i]
	if !x.IsPlaceholder() && !slot.Accepts(x.typ) {
		return fmt.Errorf("slot %q wants %s, got %s: %w", slot.Name, slot.Type, x.typ, ErrLinkRejected)
	}
	if x.IsAncestorOf(n) {
		return fmt.Errorf("slot %q: linking %s would create a cycle: %w", slot.Name, x.guid.Short(), ErrLinkRejected)
	}
	if c, ok := n.impl.(LinkChecker); ok {
		if err := c.CheckLink(i, x, slot); err != nil {
			return fmt.Errorf("slot %q: %v: %w", slot.Name, err, ErrLinkRejected)
		}
	}
	return nil
}

// linksTo reports whether any slot other than except references x.
func (n *Node) linksTo(x *Node, except int) bool {
	for i, l := range n.links {
		if i != except && l == x {
			return true
		}
	}
	return false
}

func (n *Node) linksToWithin(x *Node, limit int) bool {
	for i := 0; i < limit && i < len(n.links); i++ {
		if n.links[i] == x {
			return true
		}
	}
	return false
}

// UnlinkAll releases every child from parent tracking and clears the slots.
// The vocabulary is left unchanged.
func (n *Node) UnlinkAll() {
	for i, l := range n.links {
		if l != nil {
			RemoveChild(n, l)
			n.links[i] = nil
		}
	}
}

// IsInvertible reports whether n can solve for one of its links given a
// target output at t, and which link.
func (n *Node) IsInvertible(t value.Time, target value.Value) (InvertibleStatus, int) {
	inv, ok := n.impl.(Inverter)
	if n.kind != KindLinkable || !ok {
		return InverseNotSupported, -1
	}
	return inv.IsInvertible(t, target, n.links)
}

// Inverse returns the value the invertible link must take for n to evaluate
// to target at t.
func (n *Node) Inverse(t value.Time, target value.Value) (value.Value, error) {
	inv, ok := n.impl.(Inverter)
	if n.kind != KindLinkable || !ok {
		return value.Nil, fmt.Errorf("%s: %w", n.Name(), ErrNotInvertible)
	}
	return inv.Inverse(t, target, n.links)
}
