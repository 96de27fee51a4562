package valuenode

import (
	"github.com/aretw0/tendril/pkg/canvas"
	"github.com/aretw0/tendril/pkg/guid"
)

// Clone returns a copy of n owned by target whose identity is n's GUID
// combined with key.
//
// Cloning is memoized by derived identity: if a node with that GUID is already
// live it is returned as is, so cloning the same source twice with one key
// yields one node, and subgraphs reachable through several slots are copied
// once. Exported links are shared by the clone; every other link is cloned
// recursively with the same key. Placeholders are never shared and always
// yield a fresh placeholder.
func (n *Node) Clone(target canvas.Scope, key guid.GUID) *Node {
	derived := n.guid.Xor(key)
	g := n.graph

	if n.kind != KindPlaceholder {
		if existing := g.Find(derived); existing != nil {
			g.logger.Debug("clone memo hit", "source", n.guid.Short(), "clone", derived.Short())
			return existing
		}
	}

	var c *Node
	switch n.kind {
	case KindConst:
		c = g.newNode(KindConst, n.typ, derived)
		c.constant = n.constant
	case KindAnimated:
		c = g.newNode(KindAnimated, n.typ, derived)
		c.waypoints = n.Waypoints()
	case KindPlaceholder:
		// an earlier clone may hold the derived guid; keep its index entry
		id := derived
		if g.Find(id) != nil {
			id = guid.New()
		}
		c = g.newNode(KindPlaceholder, n.typ, id)
	case KindLinkable:
		c = g.newLinkable(n.impl, n.typ, derived)
		c.vocab = n.Vocab()
		c.links = make([]*Node, len(n.links))
		for i, link := range n.links {
			if link == nil {
				continue
			}
			if !link.IsExported() {
				cl := g.Find(link.guid.Xor(key))
				if cl == nil || link.kind == KindPlaceholder {
					cl = link.Clone(target, key)
				}
				link = cl
			}
			if err := c.SetLink(i, link); err != nil {
				g.logger.Warn("clone could not relink slot", "source", n.guid.Short(), "slot", n.LinkName(i), "err", err)
			}
		}
	}

	c.SetScope(target)
	return c
}
