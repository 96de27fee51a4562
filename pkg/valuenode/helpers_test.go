package valuenode_test

import (
	"testing"

	"github.com/aretw0/tendril/pkg/canvas"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/aretw0/tendril/pkg/valuenode/linkable"
	"github.com/stretchr/testify/require"
)

// testLayer is a minimal layer holding named parameters.
type testLayer struct {
	desc   string
	canvas canvas.Scope
	names  []string
	params []*valuenode.Node
}

func (l *testLayer) ParentKind() valuenode.ParentKind { return valuenode.ParentLayer }
func (l *testLayer) Description() string { return l.desc }
func (l *testLayer) Canvas() canvas.Scope { return l.canvas }

func (l *testLayer) ParamLocalName(n *valuenode.Node) string {
	for i, p := range l.params {
		if p == n {
			return l.names[i]
		}
	}
	return ""
}

func (l *testLayer) ReplaceChild(old, replacement *valuenode.Node) int {
	count := 0
	for i, p := range l.params {
		if p == old {
			l.params[i] = replacement
			count++
		}
	}
	if count > 0 {
		valuenode.RemoveChild(l, old)
		valuenode.AddChild(l, replacement)
	}
	return count
}

func (l *testLayer) connect(name string, n *valuenode.Node) {
	l.names = append(l.names, name)
	l.params = append(l.params, n)
	valuenode.AddChild(l, n)
}

// newSum builds lhs + rhs with a unit scalar.
func newSum(t *testing.T, g *valuenode.Graph, lhs, rhs *valuenode.Node) *valuenode.Node {
	t.Helper()
	n, err := g.NewLinkable(linkable.Add{}, value.TypeReal)
	require.NoError(t, err)
	require.NoError(t, n.SetLinkByName("lhs", lhs))
	require.NoError(t, n.SetLinkByName("rhs", rhs))
	require.NoError(t, n.SetLinkByName("scalar", g.NewConst(value.Real(1))))
	return n
}

func newRef(t *testing.T, g *valuenode.Graph, typ value.Type, link *valuenode.Node) *valuenode.Node {
	t.Helper()
	n, err := g.NewLinkable(linkable.Reference{}, typ)
	require.NoError(t, err)
	require.NoError(t, n.SetLink(0, link))
	return n
}

// newStep animates a real from 0 to to, jumping at time at.
func newStep(t *testing.T, g *valuenode.Graph, to float64, at value.Time) *valuenode.Node {
	t.Helper()
	n, err := g.NewAnimated(value.TypeReal,
		valuenode.Waypoint{Time: 0, Value: value.Real(0)},
		valuenode.Waypoint{Time: at, Value: value.Real(to)},
	)
	require.NoError(t, err)
	return n
}
