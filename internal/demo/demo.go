// Package demo holds small ready-made documents used by the tendril CLI.
package demo

import (
	"fmt"
	"sort"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/aretw0/tendril/pkg/valuenode/linkable"
)

// Scene builds a document whose interesting node is returned as Output.
type Scene struct {
	Name    string
	Summary string
	build   func(doc *tendril.Document) (*valuenode.Node, error)
}

// Result is a built scene.
type Result struct {
	Doc    *tendril.Document
	Output *valuenode.Node
}

var scenes = map[string]Scene{
	"sum": {
		Name:    "sum",
		Summary: "A constant plus a stepped track, feeding a circle radius",
		build:   buildSum,
	},
	"toggle": {
		Name:    "toggle",
		Summary: "A switch flipping between two colors once per second",
		build:   buildToggle,
	},
	"bounce": {
		Name:    "bounce",
		Summary: "An eased rise looped every second by a time loop",
		build:   buildBounce,
	},
	"forward": {
		Name:    "forward",
		Summary: "A scale whose speed is referenced before it is exported",
		build:   buildForward,
	},
}

// Names returns the available scene names, sorted.
func Names() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the scene registered as name.
func Get(name string) (Scene, error) {
	s, ok := scenes[name]
	if !ok {
		return Scene{}, fmt.Errorf("scene not found: %s", name)
	}
	return s, nil
}

// Build creates a fresh document for the scene.
func (s Scene) Build(opts ...tendril.Option) (*Result, error) {
	doc, err := tendril.New(s.Name, opts...)
	if err != nil {
		return nil, err
	}
	out, err := s.build(doc)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return &Result{Doc: doc, Output: out}, nil
}

func buildSum(doc *tendril.Document) (*valuenode.Node, error) {
	b := doc.Builder()
	b.Add("radius").
		Linkable(linkable.NameAdd, value.TypeReal).
		Link("lhs", "base").
		Link("rhs", "bump").
		Set("scalar", value.Real(1))
	b.Add("base").Const(value.Real(1))
	b.Add("bump").
		Animated(value.TypeReal).
		Step(0, value.Real(0)).
		Step(value.Time(10.0/24), value.Real(2))

	nodes, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := doc.Export(nil, nodes["base"], "base"); err != nil {
		return nil, err
	}
	circle := doc.NewLayer("Circle", nil)
	if err := circle.Connect("radius", nodes["radius"]); err != nil {
		return nil, err
	}
	return nodes["radius"], nil
}

func buildToggle(doc *tendril.Document) (*valuenode.Node, error) {
	b := doc.Builder()
	b.Add("color").
		Linkable(linkable.NameSwitch, value.TypeColor).
		Set("link_off", value.RGBA(0, 0, 0, 1)).
		Set("link_on", value.RGBA(1, 1, 1, 1)).
		Link("switch", "flag")
	b.Add("flag").
		Animated(value.TypeBool).
		Step(0, value.Bool(false)).
		Step(1, value.Bool(true)).
		Step(2, value.Bool(false)).
		Step(3, value.Bool(true))

	nodes, err := b.Build()
	if err != nil {
		return nil, err
	}
	rect := doc.NewLayer("Rectangle", nil)
	if err := rect.Connect("color", nodes["color"]); err != nil {
		return nil, err
	}
	return nodes["color"], nil
}

func buildBounce(doc *tendril.Document) (*valuenode.Node, error) {
	scene, err := doc.NewScope(nil, "bounce")
	if err != nil {
		return nil, err
	}

	b := doc.Builder()
	b.Add("height").
		Linkable(linkable.NameTimeLoop, value.TypeReal).
		Link("link", "rise").
		Set("link_time", value.TimeValue(0)).
		Set("local_time", value.TimeValue(0)).
		Set("duration", value.TimeValue(1))
	b.Add("rise").
		Animated(value.TypeReal).
		Ease(0, value.Real(0), "out-quad").
		Step(1, value.Real(10))

	nodes, err := b.Build()
	if err != nil {
		return nil, err
	}
	ball := doc.NewLayer("Ball", scene)
	if err := ball.Connect("height", nodes["height"]); err != nil {
		return nil, err
	}
	return nodes["height"], nil
}

func buildForward(doc *tendril.Document) (*valuenode.Node, error) {
	speed, err := doc.Forward(nil, "speed")
	if err != nil {
		return nil, err
	}
	scale, err := doc.Create(linkable.NameScale, value.TypeReal)
	if err != nil {
		return nil, err
	}
	if err := scale.SetLinkByName("link", speed); err != nil {
		return nil, err
	}
	if err := scale.SetLinkByName("scalar", doc.Graph().NewConst(value.Real(0.5))); err != nil {
		return nil, err
	}
	spin := doc.NewLayer("Rotate", nil)
	if err := spin.Connect("amount", scale); err != nil {
		return nil, err
	}

	track, err := doc.Graph().NewAnimated(value.TypeReal,
		valuenode.Waypoint{Time: 0, Value: value.Real(0), Interp: valuenode.InterpolationLinear},
		valuenode.Waypoint{Time: 2, Value: value.Real(8), Interp: valuenode.InterpolationLinear},
	)
	if err != nil {
		return nil, err
	}
	if err := doc.Export(nil, track, "speed"); err != nil {
		return nil, err
	}
	return scale, nil
}
