package valuenode

import "fmt"

// Description returns a human readable label of n. For linkables it is the
// path description of the node itself; for leaves it is "ValueNode", followed
// by the exported id when showExported is set.
func (n *Node) Description(showExported bool) string {
	if n.kind == KindLinkable {
		return n.LinkDescription(-1, showExported)
	}
	desc := "ValueNode"
	if showExported && n.IsExported() {
		desc += fmt.Sprintf(" (%s)", n.id)
	}
	return desc
}

// LinkDescription describes where slot index of n sits in the document, or n
// itself when index is -1. The walk climbs from n through first parents
// (earliest attached, see FirstParent), prefixing each linkable's local name
// and the slot it was reached through, until a layer or a node without
// parents is reached. A layer contributes "(description):param>".
//
// When a node has several parents only the first is followed, so the result is
// a diagnostic aid rather than a unique path.
func (n *Node) LinkDescription(index int, showExported bool) string {
	var desc string
	if index == -1 {
		if showExported && n.IsExported() {
			desc = fmt.Sprintf(" (%s)", n.id)
		}
	} else {
		desc = ":" + n.LinkLocalName(index)
		if l := n.Link(index); showExported && l != nil && l.IsExported() {
			desc += fmt.Sprintf(" (%s)", l.id)
		}
	}

	var below *Node
	var layer Layer
	for cur := n; cur != nil; {
		if cur.kind == KindLinkable {
			link := ""
			if below != nil {
				for i, l := range cur.links {
					if l == below {
						link = ":" + cur.LinkLocalName(i)
						break
					}
				}
			}
			sep := ""
			if below != nil {
				sep = ">"
			}
			desc = cur.LocalName() + link + sep + desc
			below = cur
		} else {
			below = nil
		}

		p := cur.FirstParent()
		if p == nil {
			break
		}
		if p.ParentKind() == ParentLayer {
			layer, _ = p.(Layer)
			break
		}
		cur, _ = p.(*Node)
	}

	if layer != nil {
		param := ""
		if below != nil {
			if name := layer.ParamLocalName(below); name != "" {
				param = ":" + name
			}
		}
		desc = fmt.Sprintf("(%s)%s>%s", layer.Description(), param, desc)
	}
	return desc
}
