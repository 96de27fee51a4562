package dsl

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/registry"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/hashicorp/go-multierror"
)

// Builder manages the graph construction.
type Builder struct {
	graph    *valuenode.Graph
	registry *registry.Registry
	order    []string
	nodes    map[string]*NodeBuilder
	errs     *multierror.Error
}

// New creates a new graph builder adding nodes to g. Linkable variants are
// looked up in r.
func New(g *valuenode.Graph, r *registry.Registry) *Builder {
	return &Builder{
		graph:    g,
		registry: r,
		nodes:    make(map[string]*NodeBuilder),
	}
}

// Add declares a node.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(name string) *NodeBuilder {
	if nb, ok := b.nodes[name]; ok {
		return nb
	}
	nb := &NodeBuilder{
		name:    name,
		builder: b,
	}
	b.nodes[name] = nb
	b.order = append(b.order, name)
	return nb
}

func (b *Builder) errorf(format string, args ...any) {
	b.errs = multierror.Append(b.errs, fmt.Errorf(format, args...))
}

// Build creates every declared node in g and returns them by name. Each
// returned node is retained so it survives Graph.Collect.
func (b *Builder) Build() (map[string]*valuenode.Node, error) {
	st := &buildState{
		built:    make(map[string]*valuenode.Node, len(b.nodes)),
		failed:   make(map[string]bool),
		visiting: make(map[string]bool),
	}
	for _, name := range b.order {
		if st.failed[name] {
			continue
		}
		if _, err := b.build(name, st); err != nil {
			b.errs = multierror.Append(b.errs, err)
		}
	}
	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("failed to build value graph: %w", err)
	}
	for _, n := range st.built {
		n.Retain()
	}
	return st.built, nil
}

type buildState struct {
	built    map[string]*valuenode.Node
	failed   map[string]bool
	visiting map[string]bool
}

func (b *Builder) build(name string, st *buildState) (n *valuenode.Node, err error) {
	if n, ok := st.built[name]; ok {
		return n, nil
	}
	if st.failed[name] {
		return nil, fmt.Errorf("%s: dependency failed to build", name)
	}
	nb, ok := b.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", valuenode.ErrNotFound, name)
	}
	if st.visiting[name] {
		return nil, fmt.Errorf("%s: cyclic reference: %w", name, valuenode.ErrLinkRejected)
	}
	st.visiting[name] = true
	defer func() {
		delete(st.visiting, name)
		if err != nil {
			st.failed[name] = true
		}
	}()

	switch nb.kind {
	case declConst:
		n = b.graph.NewConst(nb.constant)
	case declAnimated:
		if n, err = b.graph.NewAnimated(nb.typ, nb.waypoints...); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	case declPlaceholder:
		n = b.graph.NewPlaceholder(nb.typ)
	case declLinkable:
		if n, err = b.registry.Create(b.graph, nb.variant, nb.typ); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, s := range nb.slots {
			var link *valuenode.Node
			if s.ref != "" {
				if link, err = b.build(s.ref, st); err != nil {
					return nil, fmt.Errorf("%s.%s: %w", name, s.name, err)
				}
			} else {
				link = b.graph.NewConst(s.value)
			}
			if err := n.SetLinkByName(s.name, link); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		}
	default:
		return nil, fmt.Errorf("%s: declared without a kind", name)
	}

	if nb.export {
		n.SetID(name)
	}
	st.built[name] = n
	return n, nil
}
