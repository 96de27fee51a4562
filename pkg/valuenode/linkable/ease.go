package linkable

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

const (
	easeFrom = iota
	easeTo
	easeProgress
)

// Ease interpolates from one link to another along a named easing curve.
// Progress is clamped to [0, 1].
type Ease struct {
	Curve string
}

func (Ease) Name() string { return NameEase }
func (Ease) LocalName() string { return "Ease" }
func (Ease) CheckType(t value.Type) bool { return t.Numeric() }

func (Ease) Vocab(t value.Type) valuenode.Vocab {
	return valuenode.Vocab{
		param("from", "From", t, "Value at progress 0"),
		param("to", "To", t, "Value at progress 1"),
		param("progress", "Progress", value.TypeReal, "Position along the curve, from 0 to 1"),
	}
}

func (e Ease) Evaluate(t value.Time, links []*valuenode.Node) value.Value {
	from := at(links, easeFrom, t)
	k := min(max(at(links, easeProgress, t).Float(), 0), 1)
	if fn, ok := valuenode.EaseFunc(e.Curve); ok {
		k = float64(fn(float32(k), 0, 1, 1))
	}
	v, err := value.Lerp(from, at(links, easeTo, t), k)
	if err != nil {
		return from
	}
	return v
}

// CheckLink refuses every link while the curve is unknown.
func (e Ease) CheckLink(int, *valuenode.Node, valuenode.Param) error {
	if _, ok := valuenode.EaseFunc(e.Curve); !ok {
		return fmt.Errorf("unknown easing curve %q", e.Curve)
	}
	return nil
}
