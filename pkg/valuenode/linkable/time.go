package linkable

import (
	"math"

	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

const (
	linearRate = iota
	linearOffset
)

// Linear computes offset + rate * t. Its value changes with time even when
// both links are constant.
type Linear struct{}

func (Linear) Name() string { return NameLinear }
func (Linear) LocalName() string { return "Linear" }
func (Linear) TimeDependent() bool { return true }

func (Linear) CheckType(t value.Type) bool {
	return t.Numeric() && t != value.TypeInteger
}

func (Linear) Vocab(t value.Type) valuenode.Vocab {
	return valuenode.Vocab{
		param("slope", "Rate", t, "Change per second"),
		param("offset", "Offset", t, "Value at time zero"),
	}
}

func (Linear) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	offset := at(links, linearOffset, t)
	v, err := value.Add(offset, scaled(at(links, linearRate, t), float64(t)))
	if err != nil {
		return offset
	}
	return v
}

// IsInvertible reports that the offset can always be solved for.
func (Linear) IsInvertible(value.Time, value.Value, []*valuenode.Node) (valuenode.InvertibleStatus, int) {
	return valuenode.InverseInvertible, linearOffset
}

// Inverse returns the offset giving target at t.
func (Linear) Inverse(t value.Time, target value.Value, links []*valuenode.Node) (value.Value, error) {
	return value.Sub(target, scaled(at(links, linearRate, t), float64(t)))
}

const (
	loopLink = iota
	loopLinkTime
	loopLocalTime
	loopDuration
)

// TimeLoop replays a window of its link: from local_time on, the link is
// evaluated at link_time plus the time elapsed modulo duration.
type TimeLoop struct{}

func (TimeLoop) Name() string { return NameTimeLoop }
func (TimeLoop) LocalName() string { return "Time Loop" }
func (TimeLoop) TimeDependent() bool { return true }
func (TimeLoop) CheckType(t value.Type) bool { return t != value.TypeNil }

func (TimeLoop) Vocab(t value.Type) valuenode.Vocab {
	return valuenode.Vocab{
		param("link", "Link", t, "The value to loop"),
		param("link_time", "Link Time", value.TypeTime, "Start of the looped window in the link's timeline"),
		param("local_time", "Local Time", value.TypeTime, "Time at which the loop starts"),
		param("duration", "Duration", value.TypeTime, "Length of the looped window"),
	}
}

func (TimeLoop) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	linkTime := at(links, loopLinkTime, t).Float()
	local := at(links, loopLocalTime, t).Float()
	duration := at(links, loopDuration, t).Float()
	if math.Abs(duration) < 1e-8 || links[loopLink] == nil {
		return at(links, loopLink, value.Time(linkTime))
	}
	elapsed := math.Mod(float64(t)-local, duration)
	if elapsed < 0 {
		elapsed += duration
	}
	return links[loopLink].Evaluate(value.Time(linkTime + elapsed))
}
