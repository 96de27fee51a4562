package linkable_test

import (
	"errors"
	"testing"

	"github.com/aretw0/tendril/pkg/registry"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/aretw0/tendril/pkg/valuenode/linkable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNode(t *testing.T, g *valuenode.Graph, name string, typ value.Type, links map[string]value.Value) *valuenode.Node {
	t.Helper()
	r := registry.NewRegistry()
	linkable.Register(r)

	n, err := r.Create(g, name, typ)
	require.NoError(t, err)
	for slot, v := range links {
		require.NoError(t, n.SetLinkByName(slot, g.NewConst(v)))
	}
	return n
}

func TestRegister(t *testing.T) {
	r := registry.NewRegistry()
	linkable.Register(r)

	assert.Equal(t, []string{"add", "composite", "ease", "linear", "reference", "scale", "subtract", "switch", "timeloop"}, r.Names())

	_, err := r.Create(valuenode.NewGraph(), "nope", value.TypeReal)
	assert.Error(t, err)

	_, err = r.Create(valuenode.NewGraph(), linkable.NameComposite, value.TypeReal)
	assert.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		typ    value.Type
		links  map[string]value.Value
		at     value.Time
		expect value.Value
	}{
		{
			name:   "add reals",
			kind:   linkable.NameAdd,
			typ:    value.TypeReal,
			links:  map[string]value.Value{"lhs": value.Real(1), "rhs": value.Real(2), "scalar": value.Real(1)},
			expect: value.Real(3),
		},
		{
			name:   "add scaled vectors",
			kind:   linkable.NameAdd,
			typ:    value.TypeVector,
			links:  map[string]value.Value{"lhs": value.Vec(1, 2), "rhs": value.Vec(3, 4), "scalar": value.Real(0.5)},
			expect: value.Vec(2, 3),
		},
		{
			name:   "subtract",
			kind:   linkable.NameSubtract,
			typ:    value.TypeReal,
			links:  map[string]value.Value{"lhs": value.Real(5), "rhs": value.Real(2), "scalar": value.Real(2)},
			expect: value.Real(6),
		},
		{
			name:   "scale angle",
			kind:   linkable.NameScale,
			typ:    value.TypeAngle,
			links:  map[string]value.Value{"link": value.Angle(90), "scalar": value.Real(2)},
			expect: value.Angle(180),
		},
		{
			name:   "switch off",
			kind:   linkable.NameSwitch,
			typ:    value.TypeString,
			links:  map[string]value.Value{"link_off": value.String("off"), "link_on": value.String("on"), "switch": value.Bool(false)},
			expect: value.String("off"),
		},
		{
			name:   "switch on",
			kind:   linkable.NameSwitch,
			typ:    value.TypeString,
			links:  map[string]value.Value{"link_off": value.String("off"), "link_on": value.String("on"), "switch": value.Bool(true)},
			expect: value.String("on"),
		},
		{
			name:   "composite vector",
			kind:   linkable.NameComposite,
			typ:    value.TypeVector,
			links:  map[string]value.Value{"x": value.Real(3), "y": value.Real(-1)},
			expect: value.Vec(3, -1),
		},
		{
			name:   "composite color",
			kind:   linkable.NameComposite,
			typ:    value.TypeColor,
			links:  map[string]value.Value{"red": value.Real(1), "green": value.Real(0.5), "blue": value.Real(0), "alpha": value.Real(1)},
			expect: value.RGBA(1, 0.5, 0, 1),
		},
		{
			name:   "reference",
			kind:   linkable.NameReference,
			typ:    value.TypeBool,
			links:  map[string]value.Value{"link": value.Bool(true)},
			expect: value.Bool(true),
		},
		{
			name:   "ease clamps progress",
			kind:   linkable.NameEase,
			typ:    value.TypeReal,
			links:  map[string]value.Value{"from": value.Real(0), "to": value.Real(10), "progress": value.Real(4)},
			expect: value.Real(10),
		},
		{
			name:   "ease midpoint",
			kind:   linkable.NameEase,
			typ:    value.TypeReal,
			links:  map[string]value.Value{"from": value.Real(0), "to": value.Real(10), "progress": value.Real(0.5)},
			expect: value.Real(5),
		},
		{
			name:   "linear",
			kind:   linkable.NameLinear,
			typ:    value.TypeReal,
			links:  map[string]value.Value{"slope": value.Real(2), "offset": value.Real(1)},
			at:     3,
			expect: value.Real(7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valuenode.NewGraph()
			n := newNode(t, g, tt.kind, tt.typ, tt.links)
			got := n.Evaluate(tt.at)
			assert.Equal(t, tt.expect.Type(), got.Type())
			assert.InDelta(t, tt.expect.Float(), got.Float(), 1e-6)
			assert.Equal(t, tt.expect.Vector(), got.Vector())
			assert.Equal(t, tt.expect.Color(), got.Color())
			assert.Equal(t, tt.expect.Text(), got.Text())
			assert.Equal(t, tt.expect.BoolValue(), got.BoolValue())
		})
	}
}

func TestCompositeVocabDependsOnType(t *testing.T) {
	g := valuenode.NewGraph()
	vec := newNode(t, g, linkable.NameComposite, value.TypeVector, nil)
	col := newNode(t, g, linkable.NameComposite, value.TypeColor, nil)

	assert.Equal(t, 2, vec.LinkCount())
	assert.Equal(t, 4, col.LinkCount())
	assert.Equal(t, "Alpha", col.LinkLocalName(3))

	parts, err := linkable.Components(value.RGBA(0.1, 0.2, 0.3, 0.4))
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Real(0.1), value.Real(0.2), value.Real(0.3), value.Real(0.4)}, parts)

	_, err = linkable.Components(value.Real(1))
	assert.ErrorIs(t, err, valuenode.ErrNotInvertible)
}

func TestSlotTypes(t *testing.T) {
	g := valuenode.NewGraph()
	sw := newNode(t, g, linkable.NameSwitch, value.TypeReal, nil)

	err := sw.SetLinkByName("switch", g.NewConst(value.Real(1)))
	assert.ErrorIs(t, err, valuenode.ErrLinkRejected)

	err = sw.SetLinkByName("link_on", g.NewConst(value.Angle(1)))
	assert.ErrorIs(t, err, valuenode.ErrLinkRejected)

	assert.NoError(t, sw.SetLinkByName("switch", g.NewConst(value.Bool(true))))
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		links  map[string]value.Value
		target value.Value
		status valuenode.InvertibleStatus
		expect float64
	}{
		{
			name:   "add solves lhs",
			kind:   linkable.NameAdd,
			links:  map[string]value.Value{"lhs": value.Real(1), "rhs": value.Real(2), "scalar": value.Real(2)},
			target: value.Real(10),
			status: valuenode.InverseInvertible,
			expect: 3,
		},
		{
			name:   "subtract solves lhs",
			kind:   linkable.NameSubtract,
			links:  map[string]value.Value{"lhs": value.Real(1), "rhs": value.Real(2), "scalar": value.Real(1)},
			target: value.Real(4),
			status: valuenode.InverseInvertible,
			expect: 6,
		},
		{
			name:   "scale solves link",
			kind:   linkable.NameScale,
			links:  map[string]value.Value{"link": value.Real(1), "scalar": value.Real(4)},
			target: value.Real(2),
			status: valuenode.InverseInvertible,
			expect: 0.5,
		},
		{
			name:   "reference passes through",
			kind:   linkable.NameReference,
			links:  map[string]value.Value{"link": value.Real(1)},
			target: value.Real(9),
			status: valuenode.InverseInvertible,
			expect: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valuenode.NewGraph()
			n := newNode(t, g, tt.kind, value.TypeReal, tt.links)

			status, idx := n.IsInvertible(0, tt.target)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, 0, idx)

			got, err := n.Inverse(0, tt.target)
			require.NoError(t, err)
			assert.InDelta(t, tt.expect, got.Float(), 1e-9)

			// feeding the solution back reproduces the target
			require.NoError(t, n.SetLink(idx, g.NewConst(got)))
			assert.InDelta(t, tt.target.Float(), n.Evaluate(0).Float(), 1e-9)
		})
	}
}

func TestInverseZeroScalar(t *testing.T) {
	g := valuenode.NewGraph()
	n := newNode(t, g, linkable.NameScale, value.TypeReal, map[string]value.Value{"scalar": value.Real(0)})

	status, _ := n.IsInvertible(0, value.Real(1))
	assert.Equal(t, valuenode.InverseNotInvertible, status)

	_, err := n.Inverse(0, value.Real(1))
	assert.True(t, errors.Is(err, valuenode.ErrNotInvertible))
}

func TestEaseUnknownCurve(t *testing.T) {
	g := valuenode.NewGraph()
	_, err := g.NewLinkable(linkable.Ease{Curve: "wobble"}, value.TypeReal)
	assert.ErrorIs(t, err, valuenode.ErrLinkRejected)
}

func TestTimeLoop(t *testing.T) {
	g := valuenode.NewGraph()
	ramp, err := g.NewAnimated(value.TypeReal,
		valuenode.Waypoint{Time: 0, Value: value.Real(0), Interp: valuenode.InterpolationLinear},
		valuenode.Waypoint{Time: 10, Value: value.Real(10)},
	)
	require.NoError(t, err)

	loop := newNode(t, g, linkable.NameTimeLoop, value.TypeReal, map[string]value.Value{
		"link_time":  value.TimeValue(2),
		"local_time": value.TimeValue(0),
		"duration":   value.TimeValue(3),
	})
	require.NoError(t, loop.SetLinkByName("link", ramp))

	assert.InDelta(t, 2, loop.Evaluate(0).Float(), 1e-9)
	assert.InDelta(t, 4, loop.Evaluate(2).Float(), 1e-9)
	assert.InDelta(t, 2, loop.Evaluate(3).Float(), 1e-9)
	assert.InDelta(t, 3, loop.Evaluate(-2).Float(), 1e-9)
}

func TestTimeDependentSampling(t *testing.T) {
	g := valuenode.NewGraph(valuenode.WithSamplingDefaults(1, 3))
	n := newNode(t, g, linkable.NameLinear, value.TypeReal, map[string]value.Value{
		"slope":  value.Real(1),
		"offset": value.Real(0),
	})

	var tb value.Table
	n.Values(&tb)
	assert.Equal(t, []value.Time{0, 1, 2, 3}, tb.Times())
}
