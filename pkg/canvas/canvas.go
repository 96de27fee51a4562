// Package canvas provides the scope collaborator of the value graph: an
// enclosing scene that carries timing metadata and acts as an export namespace.
//
// The graph core depends only on the Scope interface. Canvas is a small
// concrete implementation used by the document facade, the CLI and tests.
package canvas

import (
	"strings"

	"github.com/aretw0/tendril/pkg/value"
)

// Scope is the contract the value graph needs from an enclosing scene.
type Scope interface {
	// ID is the scope's name inside its parent. Root and inline scopes have none.
	ID() string
	TimeStart() value.Time
	TimeEnd() value.Time
	FrameRate() float64
	// Parent returns the enclosing scope, or nil at the root.
	Parent() Scope
	// Root returns the top-level scope of the document tree.
	Root() Scope
	// Inline scopes share their parent's namespace.
	Inline() bool
}

// Canvas is a concrete Scope.
type Canvas struct {
	id       string
	parent   *Canvas
	children []*Canvas
	inline   bool
	start    value.Time
	end      value.Time
	fps      float64
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithTime sets the time window of the canvas.
func WithTime(start, end value.Time) Option {
	return func(c *Canvas) {
		c.start = start
		c.end = end
	}
}

// WithFrameRate sets the canvas frame rate.
func WithFrameRate(fps float64) Option {
	return func(c *Canvas) {
		c.fps = fps
	}
}

// WithInline marks the canvas as inline (no namespace of its own).
func WithInline() Option {
	return func(c *Canvas) {
		c.inline = true
	}
}

// New creates a root canvas. Defaults: 0..5s at 24 fps.
func New(opts ...Option) *Canvas {
	c := &Canvas{start: 0, end: 5, fps: 24}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewChild creates a canvas nested in c. Timing is inherited unless overridden.
func (c *Canvas) NewChild(id string, opts ...Option) *Canvas {
	child := &Canvas{
		id:     id,
		parent: c,
		start:  c.start,
		end:    c.end,
		fps:    c.fps,
	}
	for _, opt := range opts {
		opt(child)
	}
	if child.inline {
		child.id = ""
	}
	c.children = append(c.children, child)
	return child
}

func (c *Canvas) ID() string { return c.id }
func (c *Canvas) TimeStart() value.Time { return c.start }
func (c *Canvas) TimeEnd() value.Time { return c.end }
func (c *Canvas) FrameRate() float64 { return c.fps }
func (c *Canvas) Inline() bool { return c.inline }

// Parent returns the enclosing canvas, or nil.
func (c *Canvas) Parent() Scope {
	if c.parent == nil {
		return nil
	}
	return c.parent
}

// Root returns the top-level canvas.
func (c *Canvas) Root() Scope {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the canvases nested directly in c.
func (c *Canvas) Children() []*Canvas {
	out := make([]*Canvas, len(c.children))
	copy(out, c.children)
	return out
}

// Remove detaches child from c, reporting whether it was nested in c.
func (c *Canvas) Remove(child *Canvas) bool {
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Child returns the child canvas named id. Inline children are searched
// through, since they share this canvas's namespace.
func (c *Canvas) Child(id string) *Canvas {
	for _, ch := range c.children {
		if ch.inline {
			if found := ch.Child(id); found != nil {
				return found
			}
			continue
		}
		if ch.id == id {
			return ch
		}
	}
	return nil
}

// RelativeID returns the colon-delimited path of scope ids leading from
// ancestor down to s. Inline scopes contribute no segment. If ancestor is not
// on the parent chain the path starts at the root.
func RelativeID(s, ancestor Scope) string {
	var parts []string
	for cur := s; cur != nil && cur != ancestor; cur = cur.Parent() {
		if cur.Inline() || cur.ID() == "" {
			continue
		}
		parts = append(parts, cur.ID())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ":")
}

// NonInlineAncestor returns s itself, or the nearest enclosing scope that is
// not inline.
func NonInlineAncestor(s Scope) Scope {
	for s != nil && s.Inline() && s.Parent() != nil {
		s = s.Parent()
	}
	return s
}

// Chain returns s followed by each of its ancestors up to the root.
func Chain(s Scope) []Scope {
	var out []Scope
	for cur := s; cur != nil; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}
