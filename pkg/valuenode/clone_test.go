package valuenode_test

import (
	"testing"

	"github.com/aretw0/tendril/pkg/canvas"
	"github.com/aretw0/tendril/pkg/guid"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_SharesExportsAndCopiesTheRest(t *testing.T) {
	g := valuenode.NewGraph()
	target := canvas.New()

	shared := g.NewConst(value.Real(1))
	shared.SetID("shared")
	local := g.NewConst(value.Real(2))
	sum := newSum(t, g, shared, local)

	key := guid.New()
	c := sum.Clone(target, key)

	require.NotSame(t, sum, c)
	assert.Equal(t, sum.GUID().Xor(key), c.GUID())
	assert.Equal(t, canvas.Scope(target), c.Scope())

	assert.Same(t, shared, c.Link(0))
	assert.Equal(t, 2, shared.ParentCount())

	require.NotSame(t, local, c.Link(1))
	assert.Equal(t, local.GUID().Xor(key), c.Link(1).GUID())
	assert.Equal(t, value.Real(3), c.Evaluate(0))
	assert.NoError(t, g.Check())
}

func TestClone_Memoized(t *testing.T) {
	g := valuenode.NewGraph()
	target := canvas.New()
	x := g.NewConst(value.Real(2))
	sum := newSum(t, g, x, x)

	key := guid.New()
	c := sum.Clone(target, key)
	assert.Same(t, c, sum.Clone(target, key))

	// a subgraph reached through two slots is copied once
	assert.Same(t, c.Link(0), c.Link(1))
	assert.NotSame(t, x, c.Link(0))

	other := sum.Clone(target, guid.New())
	assert.NotSame(t, c, other)
}

func TestClone_ZeroKeyReturnsSource(t *testing.T) {
	g := valuenode.NewGraph()
	sum := newSum(t, g, g.NewConst(value.Real(1)), g.NewConst(value.Real(2)))

	assert.Same(t, sum, sum.Clone(canvas.New(), guid.Zero))
}

func TestClone_Leaves(t *testing.T) {
	g := valuenode.NewGraph()
	target := canvas.New()
	key := guid.New()

	k := g.NewConst(value.Real(4))
	kc := k.Clone(target, key)
	assert.Equal(t, valuenode.KindConst, kc.Kind())
	assert.Equal(t, value.Real(4), kc.Evaluate(0))

	step := newStep(t, g, 2, 1)
	sc := step.Clone(target, key)
	assert.Equal(t, step.Waypoints(), sc.Waypoints())
	require.NoError(t, sc.AddWaypoint(valuenode.Waypoint{Time: 2, Value: value.Real(9)}))
	assert.Len(t, step.Waypoints(), 2)

	ph := g.NewPlaceholder(value.TypeReal)
	first := ph.Clone(target, key)
	second := ph.Clone(target, key)
	assert.True(t, first.IsPlaceholder())
	assert.NotSame(t, ph, first)
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.GUID(), second.GUID())
	assert.Same(t, first, g.Find(first.GUID()), "a later clone keeps the earlier one indexed")
	assert.Same(t, second, g.Find(second.GUID()))
}

func TestClone_PlaceholderLinkIsFresh(t *testing.T) {
	g := valuenode.NewGraph()
	ph := g.NewPlaceholder(value.TypeNil)
	ref := newRef(t, g, value.TypeReal, ph)

	c := ref.Clone(canvas.New(), guid.New())
	require.NotNil(t, c.Link(0))
	assert.True(t, c.Link(0).IsPlaceholder())
	assert.NotSame(t, ph, c.Link(0))
	assert.Equal(t, 1, ph.ParentCount())
}
