package valuenode

import (
	"fmt"
	"sort"

	"github.com/aretw0/tendril/pkg/value"
	"github.com/tanema/gween/ease"
)

// Interpolation selects how an animated node moves from a waypoint to the next.
type Interpolation int

const (
	// InterpolationConstant holds the waypoint value until the next waypoint.
	InterpolationConstant Interpolation = iota
	InterpolationLinear
	// InterpolationEase follows the easing curve named by Waypoint.Ease.
	InterpolationEase
)

// Waypoint is a keyed value of an animated node.
type Waypoint struct {
	Time   value.Time
	Value  value.Value
	Interp Interpolation
	Ease   string
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"in-expo":      ease.InExpo,
	"out-expo":     ease.OutExpo,
	"in-back":      ease.InBack,
	"out-back":     ease.OutBack,
	"in-bounce":    ease.InBounce,
	"out-bounce":   ease.OutBounce,
}

// EaseFunc returns the easing curve registered under name.
func EaseFunc(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// EaseNames returns the registered easing curve names, sorted.
func EaseNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ease maps progress k in [0, 1] through the named curve.
func Ease(name string, k float64) float64 {
	fn, ok := easings[name]
	if !ok {
		return k
	}
	return float64(fn(float32(k), 0, 1, 1))
}

// Waypoints returns a copy of the waypoints of an animated node.
func (n *Node) Waypoints() []Waypoint {
	out := make([]Waypoint, len(n.waypoints))
	copy(out, n.waypoints)
	return out
}

// AddWaypoint inserts w, replacing any waypoint at the same time.
func (n *Node) AddWaypoint(w Waypoint) error {
	if n.kind != KindAnimated {
		return fmt.Errorf("add waypoint to %s node: %w", n.kind, ErrLinkRejected)
	}
	if err := n.checkWaypoint(w); err != nil {
		return err
	}
	n.insertWaypoint(w)
	n.Changed()
	return nil
}

// RemoveWaypoint deletes the waypoint at time t, reporting whether one existed.
func (n *Node) RemoveWaypoint(t value.Time) bool {
	for i, w := range n.waypoints {
		if w.Time == t {
			n.waypoints = append(n.waypoints[:i], n.waypoints[i+1:]...)
			n.Changed()
			return true
		}
	}
	return false
}

func (n *Node) checkWaypoint(w Waypoint) error {
	if w.Value.Type() != n.typ {
		return fmt.Errorf("waypoint at %g holds %s, node is %s: %w", float64(w.Time), w.Value.Type(), n.typ, value.ErrTypeMismatch)
	}
	if w.Interp == InterpolationEase {
		if _, ok := easings[w.Ease]; !ok {
			return fmt.Errorf("unknown easing %q", w.Ease)
		}
	}
	return nil
}

func (n *Node) insertWaypoint(w Waypoint) {
	i := sort.Search(len(n.waypoints), func(i int) bool { return n.waypoints[i].Time >= w.Time })
	if i < len(n.waypoints) && n.waypoints[i].Time == w.Time {
		n.waypoints[i] = w
		return
	}
	n.waypoints = append(n.waypoints, Waypoint{})
	copy(n.waypoints[i+1:], n.waypoints[i:])
	n.waypoints[i] = w
}

func (n *Node) interpolate(t value.Time) value.Value {
	wps := n.waypoints
	if len(wps) == 0 {
		return value.Zero(n.typ)
	}
	// last waypoint at or before t
	i := sort.Search(len(wps), func(i int) bool { return wps[i].Time > t }) - 1
	if i < 0 {
		return wps[0].Value
	}
	if i == len(wps)-1 {
		return wps[i].Value
	}
	from, to := wps[i], wps[i+1]
	k := float64(t-from.Time) / float64(to.Time-from.Time)
	switch from.Interp {
	case InterpolationConstant:
		return from.Value
	case InterpolationEase:
		k = Ease(from.Ease, k)
	}
	v, err := value.Lerp(from.Value, to.Value, k)
	if err != nil {
		return from.Value
	}
	return v
}
