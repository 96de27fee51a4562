package valuenode_test

import (
	"testing"

	"github.com/aretw0/tendril/pkg/canvas"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/aretw0/tendril/pkg/valuenode/linkable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLink_TracksParents(t *testing.T) {
	g := valuenode.NewGraph()
	a := g.NewConst(value.Real(1))
	b := g.NewConst(value.Real(2))
	sum := newSum(t, g, a, b)

	assert.True(t, a.HasParent(sum))
	assert.True(t, b.HasParent(sum))
	assert.Equal(t, value.Real(3), sum.Evaluate(0))

	c := g.NewConst(value.Real(5))
	require.NoError(t, sum.SetLink(0, c))
	assert.False(t, a.HasParent(sum))
	assert.True(t, c.HasParent(sum))
	assert.Equal(t, value.Real(7), sum.Evaluate(0))
	assert.NoError(t, g.Check())
}

func TestSetLink_Aliasing(t *testing.T) {
	g := valuenode.NewGraph()
	x := g.NewConst(value.Real(2))
	sum := newSum(t, g, x, x)

	assert.Equal(t, 1, x.ParentCount())
	assert.Equal(t, value.Real(4), sum.Evaluate(0))

	z := g.NewConst(value.Real(0))
	require.NoError(t, sum.SetLink(0, z))
	assert.True(t, x.HasParent(sum), "rhs still references x")

	require.NoError(t, sum.SetLink(1, z))
	assert.False(t, x.HasParent(sum))
	assert.Equal(t, 1, z.ParentCount())
}

func TestSetLink_Rejected(t *testing.T) {
	g := valuenode.NewGraph()
	a := g.NewConst(value.Real(1))
	sum := newSum(t, g, a, g.NewConst(value.Real(2)))
	ref := newRef(t, g, value.TypeReal, sum)

	tests := []struct {
		name string
		node *valuenode.Node
		slot int
		link *valuenode.Node
	}{
		{name: "self", node: sum, slot: 0, link: sum},
		{name: "cycle through parent", node: sum, slot: 0, link: ref},
		{name: "slot type", node: sum, slot: 2, link: g.NewConst(value.Bool(true))},
		{name: "out of range", node: sum, slot: 3, link: a},
		{name: "negative slot", node: sum, slot: -1, link: a},
		{name: "nil link", node: sum, slot: 0, link: nil},
		{name: "leaf has no links", node: a, slot: 0, link: g.NewConst(value.Real(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.node.Links()
			err := tt.node.SetLink(tt.slot, tt.link)
			assert.ErrorIs(t, err, valuenode.ErrLinkRejected)
			assert.Equal(t, before, tt.node.Links())
		})
	}
	assert.NoError(t, g.Check())
}

func TestSetLink_PlaceholderAcceptsAnySlot(t *testing.T) {
	g := valuenode.NewGraph()
	sum := newSum(t, g, g.NewConst(value.Real(1)), g.NewConst(value.Real(2)))
	ph := g.NewPlaceholder(value.TypeNil)

	assert.NoError(t, sum.SetLink(0, ph))
	assert.True(t, ph.HasParent(sum))
}

func TestSetLink_ByName(t *testing.T) {
	g := valuenode.NewGraph()
	sum := newSum(t, g, g.NewConst(value.Real(1)), g.NewConst(value.Real(2)))

	idx, err := sum.LinkIndex("rhs")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "rhs", sum.LinkName(idx))
	assert.Equal(t, "RHS", sum.LinkLocalName(idx))

	_, err = sum.LinkIndex("middle")
	assert.ErrorIs(t, err, valuenode.ErrBadLinkName)
	assert.ErrorIs(t, sum.SetLinkByName("middle", g.NewConst(value.Real(1))), valuenode.ErrBadLinkName)
}

func TestSetLink_InheritsScope(t *testing.T) {
	g := valuenode.NewGraph()
	root := canvas.New()
	inner := root.NewChild("inner")

	sum := newSum(t, g, g.NewConst(value.Real(1)), g.NewConst(value.Real(2)))
	sum.SetScope(inner)

	local := g.NewConst(value.Real(3))
	require.NoError(t, sum.SetLink(0, local))
	assert.Equal(t, canvas.Scope(inner), local.Scope())
	assert.Equal(t, canvas.Scope(root), local.RootScope())

	exported := g.NewConst(value.Real(4))
	exported.SetID("shared")
	require.NoError(t, sum.SetLink(1, exported))
	assert.Nil(t, exported.Scope())
}

func TestReplace(t *testing.T) {
	g := valuenode.NewGraph()
	x := g.NewConst(value.Real(1))
	sum := newSum(t, g, x, x)
	ref := newRef(t, g, value.TypeReal, x)

	y := g.NewConst(value.Real(10))
	assert.Equal(t, 3, x.Replace(y))

	assert.Equal(t, 0, x.ParentCount())
	assert.Equal(t, 2, y.ParentCount())
	assert.Same(t, y, sum.Link(0))
	assert.Same(t, y, sum.Link(1))
	assert.Same(t, y, ref.Link(0))
	assert.Equal(t, value.Real(20), sum.Evaluate(0))
	assert.NoError(t, g.Check())

	assert.Equal(t, 0, y.Replace(y))
	assert.Equal(t, 2, y.ParentCount())
}

func TestReplace_Layer(t *testing.T) {
	g := valuenode.NewGraph()
	layer := &testLayer{desc: "Circle"}
	x := g.NewConst(value.Real(1))
	layer.connect("Radius", x)

	y := g.NewConst(value.Real(2))
	assert.Equal(t, 1, valuenode.Replace(x, y))
	assert.Same(t, y, layer.params[0])
	assert.True(t, y.HasParent(layer))
	assert.False(t, x.HasParent(layer))
}

func TestAddChild_SetSemantics(t *testing.T) {
	g := valuenode.NewGraph()
	layer := &testLayer{desc: "Circle"}
	x := g.NewConst(value.Real(1))

	valuenode.AddChild(layer, x)
	valuenode.AddChild(layer, x)
	assert.Equal(t, 1, x.ParentCount())
	assert.Equal(t, 1, x.RefCount())

	x.Retain()
	assert.Equal(t, 2, x.RefCount())

	valuenode.RemoveChild(layer, x)
	valuenode.RemoveChild(layer, x)
	assert.Equal(t, 0, x.ParentCount())
	assert.Equal(t, 1, x.RefCount())
}

func TestFirstParent_SkipsHolders(t *testing.T) {
	g := valuenode.NewGraph()
	list := valuenode.NewList(g)
	x := g.NewConst(value.Real(1))
	x.SetID("x")
	require.True(t, list.Add(x))
	assert.Nil(t, x.FirstParent())

	ref := newRef(t, g, value.TypeReal, x)
	assert.Equal(t, valuenode.Parent(ref), x.FirstParent())
}

func TestIsAncestorOf(t *testing.T) {
	g := valuenode.NewGraph()
	leaf := g.NewConst(value.Real(1))
	mid := newRef(t, g, value.TypeReal, leaf)
	top := newSum(t, g, mid, g.NewConst(value.Real(0)))

	assert.True(t, top.IsAncestorOf(leaf))
	assert.True(t, mid.IsAncestorOf(leaf))
	assert.True(t, leaf.IsAncestorOf(leaf))
	assert.False(t, leaf.IsAncestorOf(top))
	assert.False(t, mid.IsAncestorOf(top))
}

func TestSetVocab_ReleasesDroppedSlots(t *testing.T) {
	g := valuenode.NewGraph()
	a := g.NewConst(value.Real(1))
	b := g.NewConst(value.Real(2))
	sum := newSum(t, g, a, b)
	scalar := sum.Link(2)

	sum.SetVocab(sum.Vocab()[:1])
	assert.Equal(t, 1, sum.LinkCount())
	assert.True(t, a.HasParent(sum))
	assert.False(t, b.HasParent(sum))
	assert.False(t, scalar.HasParent(sum))
}

func TestUnlinkAll(t *testing.T) {
	g := valuenode.NewGraph()
	a := g.NewConst(value.Real(1))
	sum := newSum(t, g, a, a)

	sum.UnlinkAll()
	assert.Equal(t, 0, a.ParentCount())
	assert.Nil(t, sum.Link(0))
	assert.Equal(t, 3, sum.LinkCount())
}

func TestIsInvertible_Leaf(t *testing.T) {
	g := valuenode.NewGraph()
	k := g.NewConst(value.Real(1))

	status, idx := k.IsInvertible(0, value.Real(1))
	assert.Equal(t, valuenode.InverseNotSupported, status)
	assert.Equal(t, -1, idx)

	_, err := k.Inverse(0, value.Real(1))
	assert.ErrorIs(t, err, valuenode.ErrNotInvertible)

	sw, err := g.NewLinkable(linkable.Switch{}, value.TypeReal)
	require.NoError(t, err)
	status, idx = sw.IsInvertible(0, value.Real(1))
	assert.Equal(t, valuenode.InverseInvertible, status)
	assert.Equal(t, 0, idx)
}

func TestReplace_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, g *valuenode.Graph) (old, replacement, parent *valuenode.Node)
	}{
		{
			name: "replacement above the parent",
			setup: func(t *testing.T, g *valuenode.Graph) (*valuenode.Node, *valuenode.Node, *valuenode.Node) {
				c := g.NewConst(value.Real(1))
				sum := newSum(t, g, c, g.NewConst(value.Real(2)))
				return c, sum, sum
			},
		},
		{
			name: "replacement above a grandparent",
			setup: func(t *testing.T, g *valuenode.Graph) (*valuenode.Node, *valuenode.Node, *valuenode.Node) {
				c := g.NewConst(value.Real(1))
				ref := newRef(t, g, value.TypeReal, c)
				top := newSum(t, g, ref, g.NewConst(value.Real(2)))
				return c, top, ref
			},
		},
		{
			name: "slot type mismatch",
			setup: func(t *testing.T, g *valuenode.Graph) (*valuenode.Node, *valuenode.Node, *valuenode.Node) {
				x := g.NewConst(value.Real(1))
				sum := newSum(t, g, x, g.NewConst(value.Real(2)))
				return x, g.NewConst(value.RGBA(1, 0, 0, 1)), sum
			},
		},
		{
			name: "placeholder slot does not take any type",
			setup: func(t *testing.T, g *valuenode.Graph) (*valuenode.Node, *valuenode.Node, *valuenode.Node) {
				ph := g.NewPlaceholder(value.TypeNil)
				sum := newSum(t, g, ph, g.NewConst(value.Real(2)))
				return ph, g.NewConst(value.RGBA(1, 0, 0, 1)), sum
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valuenode.NewGraph()
			old, replacement, parent := tt.setup(t, g)
			before := parent.Links()

			assert.ErrorIs(t, valuenode.CheckReplace(old, replacement), valuenode.ErrLinkRejected)
			assert.Equal(t, 0, old.Replace(replacement))
			assert.Equal(t, 0, valuenode.Replace(old, replacement))

			assert.Equal(t, before, parent.Links())
			assert.True(t, old.HasParent(parent))
			assert.False(t, replacement.HasParent(parent))
			assert.NoError(t, g.Check())
		})
	}
}
