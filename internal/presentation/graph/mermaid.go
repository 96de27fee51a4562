package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tendril/pkg/valuenode"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	ChangedNodes []*valuenode.Node
	CurrentNode  *valuenode.Node
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a list of
// value nodes. Edges go from a linkable to each of its links, labelled with
// the slot name. It applies semantic styling:
// - Linkable: [[Subroutine]]
// - Animated: ([Stadium])
// - Placeholder: {{Hexagon}}
// - Default (constant): [Rectangle]
// Links to exported nodes are dotted, since they are shared by reference.
// It also applies overlay styles (Changed/Current) if provided.
func GenerateMermaid(nodes []*valuenode.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := mermaidID(node)

		// Node Shape based on Kind
		opener, closer := "[", "]"
		switch node.Kind() {
		case valuenode.KindLinkable:
			opener, closer = "[[", "]]"
		case valuenode.KindAnimated:
			opener, closer = "([", "])"
		case valuenode.KindPlaceholder:
			opener, closer = "{{", "}}"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label(node), closer))

		// Links
		for i, link := range node.Links() {
			if link == nil {
				continue
			}
			slot := escape(node.LinkLocalName(i))
			arrow := fmt.Sprintf("-- \"%s\" -->", slot)
			if link.IsExported() {
				arrow = fmt.Sprintf("-. \"%s\" .->", slot)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, mermaidID(link)))
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef changed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, n := range overlay.ChangedNodes {
			if n == nil {
				continue
			}
			safeID := mermaidID(n)
			if !seen[safeID] {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s changed;\n", safeID))
			}
		}

		if overlay.CurrentNode != nil {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", mermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

// label is the exported id with the variant, or the variant alone.
func label(n *valuenode.Node) string {
	name := n.LocalName()
	if n.IsExported() {
		name = fmt.Sprintf("%s <br/> %s", n.ID(), name)
	}
	if n.Kind() == valuenode.KindConst {
		name = fmt.Sprintf("%s = %s", name, n.Value())
	}
	return escape(name)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func mermaidID(n *valuenode.Node) string {
	return "n" + n.GUID().Short()
}
