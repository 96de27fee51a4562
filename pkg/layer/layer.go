// Package layer provides a concrete parameter container that value nodes can
// be connected to. A layer bounds description walks and contributes its
// canvas to change notification and time sampling.
package layer

import (
	"fmt"
	"strings"

	"github.com/aretw0/tendril/pkg/canvas"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
)

type param struct {
	name  string
	local string
	node  *valuenode.Node
}

// Layer is a named set of dynamic parameters living in a canvas.
type Layer struct {
	desc   string
	canvas canvas.Scope
	params []param
}

// New creates an empty layer described by desc in c.
func New(desc string, c canvas.Scope) *Layer {
	return &Layer{desc: desc, canvas: c}
}

// ParentKind implements valuenode.Parent.
func (l *Layer) ParentKind() valuenode.ParentKind { return valuenode.ParentLayer }

// Description implements valuenode.Layer.
func (l *Layer) Description() string { return l.desc }

// Canvas implements valuenode.Layer.
func (l *Layer) Canvas() canvas.Scope { return l.canvas }

// ParamLocalName implements valuenode.Layer.
func (l *Layer) ParamLocalName(n *valuenode.Node) string {
	for _, p := range l.params {
		if p.node == n {
			return p.local
		}
	}
	return ""
}

// ReplaceChild implements valuenode.Parent.
func (l *Layer) ReplaceChild(old, replacement *valuenode.Node) int {
	count := 0
	for i := range l.params {
		if l.params[i].node == old {
			l.params[i].node = replacement
			count++
		}
	}
	if count > 0 {
		valuenode.RemoveChild(l, old)
		valuenode.AddChild(l, replacement)
	}
	return count
}

// Params returns the parameter names in connection order.
func (l *Layer) Params() []string {
	names := make([]string, len(l.params))
	for i, p := range l.params {
		names[i] = p.name
	}
	return names
}

// Param returns the node connected to name, or nil.
func (l *Layer) Param(name string) *valuenode.Node {
	if i := l.index(name); i >= 0 {
		return l.params[i].node
	}
	return nil
}

// Connect attaches n to the parameter name, creating the parameter when
// needed. A non-exported n moves into the layer's canvas.
func (l *Layer) Connect(name string, n *valuenode.Node) error {
	if name == "" {
		return fmt.Errorf("connect to %s: %w", l.desc, valuenode.ErrBadLinkName)
	}
	if n == nil {
		return fmt.Errorf("connect %s.%s: nil node: %w", l.desc, name, valuenode.ErrLinkRejected)
	}
	i := l.index(name)
	if i < 0 {
		l.params = append(l.params, param{name: name, local: displayName(name)})
		i = len(l.params) - 1
	}
	previous := l.params[i].node
	l.params[i].node = n
	if previous != nil && previous != n && !l.holds(previous) {
		valuenode.RemoveChild(l, previous)
	}
	valuenode.AddChild(l, n)
	if !n.IsExported() && l.canvas != nil {
		n.SetScope(l.canvas)
	}
	n.Changed()
	return nil
}

// Disconnect detaches the node connected to name and drops the parameter.
// Observers of the layer's canvas are notified.
func (l *Layer) Disconnect(name string) error {
	i := l.index(name)
	if i < 0 {
		return fmt.Errorf("%s has no parameter %q: %w", l.desc, name, valuenode.ErrNotFound)
	}
	n := l.params[i].node
	// notify while the layer is still a parent, so its canvas hears it
	n.Changed()
	l.params = append(l.params[:i], l.params[i+1:]...)
	if !l.holds(n) {
		valuenode.RemoveChild(l, n)
	}
	return nil
}

// Evaluate returns the value of every parameter at t.
func (l *Layer) Evaluate(t value.Time) map[string]value.Value {
	out := make(map[string]value.Value, len(l.params))
	for _, p := range l.params {
		out[p.name] = p.node.Evaluate(t)
	}
	return out
}

func (l *Layer) index(name string) int {
	for i, p := range l.params {
		if p.name == name {
			return i
		}
	}
	return -1
}

func (l *Layer) holds(n *valuenode.Node) bool {
	for _, p := range l.params {
		if p.node == n {
			return true
		}
	}
	return false
}

// displayName turns "line_width" into "Line Width".
func displayName(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
