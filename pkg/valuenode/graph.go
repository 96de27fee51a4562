package valuenode

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/aretw0/tendril/pkg/guid"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultFrameRate is used by time sampling when no enclosing scope is found.
	DefaultFrameRate = 24.0
	// DefaultWindow is the sampling window, in seconds, used when no enclosing scope is found.
	DefaultWindow value.Time = 10 * 60
)

// Graph is the arena every node belongs to. It indexes nodes by GUID, routes
// change events and collects nodes whose reference count dropped to zero.
type Graph struct {
	nodes      map[guid.GUID]*Node
	dispatcher Dispatcher
	logger     *slog.Logger

	defaultFPS    float64
	defaultWindow value.Time
}

// Option defines a functional option for configuring a Graph.
type Option func(*Graph)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// WithDispatcher adds a destination for change events. It may be given more
// than once.
func WithDispatcher(d Dispatcher) Option {
	return func(g *Graph) {
		switch cur := g.dispatcher.(type) {
		case nopDispatcher:
			g.dispatcher = d
		case multiDispatcher:
			g.dispatcher = append(cur, d)
		default:
			g.dispatcher = multiDispatcher{cur, d}
		}
	}
}

// WithSamplingDefaults overrides the frame rate and window used when a node
// has no enclosing scope.
func WithSamplingDefaults(fps float64, window value.Time) Option {
	return func(g *Graph) {
		if fps > 0 {
			g.defaultFPS = fps
		}
		if window > 0 {
			g.defaultWindow = window
		}
	}
}

// NewGraph creates an empty graph.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		nodes:         make(map[guid.GUID]*Node),
		dispatcher:    nopDispatcher{},
		defaultFPS:    DefaultFrameRate,
		defaultWindow: DefaultWindow,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// Logger returns the graph's logger.
func (g *Graph) Logger() *slog.Logger { return g.logger }

// Find returns the live node with the given identity, or nil.
func (g *Graph) Find(id guid.GUID) *Node {
	return g.nodes[id]
}

// Len returns the number of live nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns the live nodes ordered by GUID.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].guid[:], out[j].guid[:]) < 0
	})
	return out
}

func (g *Graph) newNode(kind Kind, typ value.Type, id guid.GUID) *Node {
	n := &Node{
		graph: g,
		guid:  id,
		typ:   typ,
		kind:  kind,
	}
	if prev, ok := g.nodes[id]; ok && prev != n {
		g.logger.Debug("guid reassigned", "guid", id.Short(), "kind", kind)
	}
	g.nodes[id] = n
	return n
}

// NewConst creates a constant node holding v.
func (g *Graph) NewConst(v value.Value) *Node {
	n := g.newNode(KindConst, v.Type(), guid.New())
	n.constant = v
	return n
}

// NewAnimated creates an animated node of type t with the given waypoints.
func (g *Graph) NewAnimated(t value.Type, waypoints ...Waypoint) (*Node, error) {
	n := g.newNode(KindAnimated, t, guid.New())
	for _, w := range waypoints {
		if err := n.checkWaypoint(w); err != nil {
			delete(g.nodes, n.guid)
			return nil, err
		}
		n.insertWaypoint(w)
	}
	return n, nil
}

// NewPlaceholder creates a placeholder of type t.
func (g *Graph) NewPlaceholder(t value.Type) *Node {
	return g.newNode(KindPlaceholder, t, guid.New())
}

// NewLinkable creates a linkable node of type t computed by impl. Every slot is
// initially linked to a constant holding the zero value of the slot type.
func (g *Graph) NewLinkable(impl Linkable, t value.Type) (*Node, error) {
	if !impl.CheckType(t) {
		return nil, fmt.Errorf("%s does not produce %s: %w", impl.Name(), t, value.ErrTypeMismatch)
	}
	n := g.newLinkable(impl, t, guid.New())
	for i, p := range n.vocab {
		if err := n.SetLink(i, g.NewConst(value.Zero(p.Type))); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// newLinkable creates a linkable with every slot unlinked.
func (g *Graph) newLinkable(impl Linkable, t value.Type, id guid.GUID) *Node {
	n := g.newNode(KindLinkable, t, id)
	n.impl = impl
	n.vocab = impl.Vocab(t)
	n.links = make([]*Node, len(n.vocab))
	return n
}

func (g *Graph) dispatch(ev Event) {
	g.dispatcher.Dispatch(ev)
}

// Collect destroys every node nothing references any more. Destroying a
// linkable releases its links, so collection repeats until no node qualifies.
// It returns the number of nodes destroyed.
func (g *Graph) Collect() int {
	total := 0
	for {
		var dead []*Node
		for _, n := range g.nodes {
			if n.RefCount() == 0 {
				dead = append(dead, n)
			}
		}
		if len(dead) == 0 {
			break
		}
		for _, n := range dead {
			g.destroy(n)
		}
		total += len(dead)
	}
	if total > 0 {
		g.logger.Debug("collected value nodes", "count", total, "live", len(g.nodes))
	}
	return total
}

// destroy runs the removal bookkeeping of n: its links are released so its
// children no longer count it as a parent, then it leaves the index.
func (g *Graph) destroy(n *Node) {
	if n.removed {
		return
	}
	n.removed = true
	n.UnlinkAll()
	if g.nodes[n.guid] == n {
		delete(g.nodes, n.guid)
	}
	g.dispatch(Event{Type: EventNodeCollected, Node: n})
}

// Check verifies the structural invariants of every live node: each linkable
// has one link per vocabulary slot whose type the slot accepts, every link is
// tracked as a child, and every value-node parent actually links the node. All violations are
// reported together.
func (g *Graph) Check() error {
	var result *multierror.Error
	for _, n := range g.Nodes() {
		if n.kind == KindLinkable {
			if len(n.links) != len(n.vocab) {
				result = multierror.Append(result, fmt.Errorf("%s: %d links for %d vocabulary slots", n, len(n.links), len(n.vocab)))
			}
			for i, l := range n.links {
				switch {
				case l == nil:
					result = multierror.Append(result, fmt.Errorf("%s: slot %q is unlinked", n, n.LinkName(i)))
				case !l.HasParent(n):
					result = multierror.Append(result, fmt.Errorf("%s: slot %q child %s does not track its parent", n, n.LinkName(i), l))
				case i < len(n.vocab) && !l.IsPlaceholder() && !n.vocab[i].Accepts(l.typ):
					result = multierror.Append(result, fmt.Errorf("%s: slot %q wants %s, linked to %s", n, n.LinkName(i), n.vocab[i].Type, l.typ))
				}
			}
		}
		for _, p := range n.parents {
			if pn, ok := p.(*Node); ok && !pn.linksTo(n, -1) {
				result = multierror.Append(result, fmt.Errorf("%s: parent %s holds no link to it", n, pn))
			}
		}
	}
	return result.ErrorOrNil()
}
