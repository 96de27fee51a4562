package valuenode

import (
	"math"

	"github.com/aretw0/tendril/pkg/canvas"
	"github.com/aretw0/tendril/pkg/value"
)

// Bounds is a sampling window expressed in frames.
type Bounds struct {
	Begin int
	End   int
	FPS   float64
}

// TimeToFrame converts a time to the frame containing it.
func TimeToFrame(t value.Time, fps float64) int {
	return int(math.Floor(float64(t)*fps + 1e-10))
}

// TimeToFrame converts t to a frame using the frame rate of the owning scope.
// It returns 0 when n has no scope.
func (n *Node) TimeToFrame(t value.Time) int {
	if n.scope == nil {
		return 0
	}
	return TimeToFrame(t, n.scope.FrameRate())
}

type boundsAcc struct {
	found bool
	begin value.Time
	end   value.Time
	fps   float64
}

// add folds a scope into the window: earliest start, earliest end, largest
// frame rate.
func (b *boundsAcc) add(s canvas.Scope) {
	if !b.found {
		b.found = true
		b.begin = s.TimeStart()
		b.end = s.TimeEnd()
		b.fps = s.FrameRate()
		return
	}
	b.begin = min(b.begin, s.TimeStart())
	b.end = min(b.end, s.TimeEnd())
	b.fps = max(b.fps, s.FrameRate())
}

// TimeBounds derives the sampling window of n from every scope reachable
// through its parents (layers contribute the root of their canvas), its owning
// scope and its root scope. Without any scope the graph defaults apply.
func (n *Node) TimeBounds() Bounds {
	acc := boundsAcc{
		begin: 0,
		end:   n.graph.defaultWindow,
		fps:   n.graph.defaultFPS,
	}
	n.findTimeBounds(&acc, make(map[*Node]bool))
	if n.scope != nil {
		acc.add(n.scope)
	}
	if n.root != nil {
		acc.add(n.root)
	}
	return Bounds{
		Begin: int(math.Floor(float64(acc.begin) * acc.fps)),
		End:   int(math.Ceil(float64(acc.end) * acc.fps)),
		FPS:   acc.fps,
	}
}

func (n *Node) findTimeBounds(acc *boundsAcc, seen map[*Node]bool) {
	if seen[n] {
		return
	}
	seen[n] = true
	for _, p := range n.parents {
		switch p.ParentKind() {
		case ParentLayer:
			if l, ok := p.(Layer); ok && l.Canvas() != nil {
				acc.add(l.Canvas().Root())
			}
		case ParentValueNode:
			if pn, ok := p.(*Node); ok {
				pn.findTimeBounds(acc, seen)
			}
		}
	}
}

// CalcValues samples n at every frame in [begin, end] and adds each value to
// out. Only change points are kept.
func (n *Node) CalcValues(out *value.Table, begin, end int, fps float64) {
	if math.Abs(fps) <= 1e-10 {
		return
	}
	if begin > end {
		begin, end = end, begin
	}
	for i := begin; i <= end; i++ {
		t := value.Time(float64(i) / fps)
		out.Add(t, n.Evaluate(t))
	}
}

// Values fills out with the change points of n over its sampling window.
//
// Linkables are not sampled densely: their value can only change where one of
// their links changes, so they are evaluated at the union of their links'
// change times. Variants implementing TimeDependent are sampled densely.
func (n *Node) Values(out *value.Table) {
	n.values(out, make(map[*Node]*value.Table))
}

func (n *Node) values(out *value.Table, memo map[*Node]*value.Table) {
	if cached, ok := memo[n]; ok {
		for _, s := range cached.Samples() {
			out.Add(s.Time, s.Value)
		}
		return
	}

	var tb value.Table
	switch n.kind {
	case KindConst:
		var start value.Time
		if b := n.TimeBounds(); math.Abs(b.FPS) > 1e-10 {
			start = value.Time(float64(b.Begin) / b.FPS)
		}
		tb.Add(start, n.constant)
	case KindLinkable:
		if td, ok := n.impl.(TimeDependent); ok && td.TimeDependent() {
			b := n.TimeBounds()
			n.CalcValues(&tb, b.Begin, b.End, b.FPS)
			break
		}
		var times value.TimeSet
		for _, l := range n.links {
			if l != nil {
				l.changeTimes(&times, memo)
			}
		}
		for _, t := range times.Slice() {
			tb.Add(t, n.Evaluate(t))
		}
	default:
		b := n.TimeBounds()
		n.CalcValues(&tb, b.Begin, b.End, b.FPS)
	}
	memo[n] = &tb

	for _, s := range tb.Samples() {
		out.Add(s.Time, s.Value)
	}
}

// ChangeTimes adds the change times of n to set.
func (n *Node) ChangeTimes(set *value.TimeSet) {
	n.changeTimes(set, make(map[*Node]*value.Table))
}

func (n *Node) changeTimes(set *value.TimeSet, memo map[*Node]*value.Table) {
	var tb value.Table
	n.values(&tb, memo)
	set.Insert(tb.Times()...)
}

// ValueSet returns the distinct values n takes over its sampling window, in
// order of first appearance.
func (n *Node) ValueSet() []value.Value {
	var tb value.Table
	n.Values(&tb)
	var out []value.Value
	for _, s := range tb.Samples() {
		dup := false
		for _, v := range out {
			if v.Equal(s.Value) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s.Value)
		}
	}
	return out
}

// Times returns the keyed times of n: the waypoint times of animated nodes,
// unioned over every link for linkables.
func (n *Node) Times() []value.Time {
	var set value.TimeSet
	n.collectTimes(&set, make(map[*Node]bool))
	return set.Slice()
}

func (n *Node) collectTimes(set *value.TimeSet, seen map[*Node]bool) {
	if seen[n] {
		return
	}
	seen[n] = true
	switch n.kind {
	case KindAnimated:
		for _, w := range n.waypoints {
			set.Insert(w.Time)
		}
	case KindLinkable:
		for _, l := range n.links {
			if l != nil {
				l.collectTimes(set, seen)
			}
		}
	}
}
