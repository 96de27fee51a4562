package tendril

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/tendril/pkg/canvas"
	"github.com/aretw0/tendril/pkg/config"
	"github.com/aretw0/tendril/pkg/dsl"
	"github.com/aretw0/tendril/pkg/layer"
	"github.com/aretw0/tendril/pkg/observability"
	"github.com/aretw0/tendril/pkg/registry"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/aretw0/tendril/pkg/valuenode/linkable"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrDuplicateID is returned when an id is already exported in a scope.
var ErrDuplicateID = errors.New("id already exported")

// Document is the high-level entry point for the tendril library.
// It owns a root canvas, the value graph, the export list of every scope and
// the layers connected to it.
type Document struct {
	Name string

	root     *canvas.Canvas
	graph    *valuenode.Graph
	registry *registry.Registry
	bus      *valuenode.Bus
	metrics  *observability.Metrics
	exports  map[canvas.Scope]*valuenode.List
	layers   []*layer.Layer
	logger   *slog.Logger

	canvasOpts []canvas.Option
	cfg        *config.Config
	reg        prometheus.Registerer
	withMetric bool
}

// Option defines a functional option for configuring the Document.
type Option func(*Document)

// WithLogger sets a custom structured logger for the document and its graph.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithCanvas configures the root canvas (time bounds, frame rate).
func WithCanvas(opts ...canvas.Option) Option {
	return func(d *Document) {
		d.canvasOpts = append(d.canvasOpts, opts...)
	}
}

// WithConfig applies loaded settings: the sampling defaults used for nodes
// outside any scope.
func WithConfig(cfg config.Config) Option {
	return func(d *Document) {
		d.cfg = &cfg
	}
}

// WithRegistry replaces the default registry of linkable variants.
func WithRegistry(r *registry.Registry) Option {
	return func(d *Document) {
		d.registry = r
	}
}

// WithMetrics records graph events on reg. A nil reg keeps the collectors
// unregistered but still available through Metrics.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(d *Document) {
		d.withMetric = true
		d.reg = reg
	}
}

// New initializes an empty document.
func New(name string, opts ...Option) (*Document, error) {
	d := &Document{
		Name:    name,
		bus:     valuenode.NewBus(),
		exports: make(map[canvas.Scope]*valuenode.List),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.registry == nil {
		d.registry = registry.NewRegistry()
		linkable.Register(d.registry)
	}

	graphOpts := []valuenode.Option{
		valuenode.WithLogger(d.logger),
		valuenode.WithDispatcher(d.bus),
	}
	if d.cfg != nil {
		if err := d.cfg.Validate(); err != nil {
			return nil, err
		}
		graphOpts = append(graphOpts, valuenode.WithSamplingDefaults(d.cfg.Sampling.FPS, value.Time(d.cfg.Sampling.Window)))
	}
	if d.withMetric {
		d.metrics = observability.NewMetrics(d.reg)
		d.metrics.Track(d.bus)
	}

	d.graph = valuenode.NewGraph(graphOpts...)
	d.root = canvas.New(d.canvasOpts...)
	return d, nil
}

// Root returns the root canvas.
func (d *Document) Root() *canvas.Canvas { return d.root }

// Graph returns the value graph.
func (d *Document) Graph() *valuenode.Graph { return d.graph }

// Registry returns the linkable variants available to Create.
func (d *Document) Registry() *registry.Registry { return d.registry }

// Bus returns the event bus observers can subscribe to.
func (d *Document) Bus() *valuenode.Bus { return d.bus }

// Metrics returns the collectors installed by WithMetrics, or nil.
func (d *Document) Metrics() *observability.Metrics { return d.metrics }

// Logger returns the document logger.
func (d *Document) Logger() *slog.Logger { return d.logger }

// Builder returns a DSL builder adding nodes to the document graph.
func (d *Document) Builder() *dsl.Builder {
	return dsl.New(d.graph, d.registry)
}

// NewScope creates a canvas named id inside parent. Inline canvases share the
// namespace of their parent and take no id.
func (d *Document) NewScope(parent *canvas.Canvas, id string, opts ...canvas.Option) (*canvas.Canvas, error) {
	if parent == nil {
		parent = d.root
	}
	existing := parent.Child(id)
	c := parent.NewChild(id, opts...)
	if c.Inline() {
		return c, nil
	}
	if id == "" || strings.Contains(id, ":") {
		parent.Remove(c)
		return nil, fmt.Errorf("invalid scope id %q", id)
	}
	if existing != nil {
		parent.Remove(c)
		return nil, fmt.Errorf("scope %q: %w", id, ErrDuplicateID)
	}
	return c, nil
}

// Create builds a linkable node of the registered variant.
func (d *Document) Create(variant string, t value.Type) (*valuenode.Node, error) {
	return d.registry.Create(d.graph, variant, t)
}

// NewLayer creates a layer in scope. The document keeps it, so nodes
// connected to it stay alive.
func (d *Document) NewLayer(desc string, scope canvas.Scope) *layer.Layer {
	if scope == nil {
		scope = d.root
	}
	l := layer.New(desc, scope)
	d.layers = append(d.layers, l)
	return l
}

// Layers returns the document layers in creation order.
func (d *Document) Layers() []*layer.Layer {
	out := make([]*layer.Layer, len(d.layers))
	copy(out, d.layers)
	return out
}

// Exports returns the export list of scope, creating it on first use. Inline
// scopes share the list of their nearest non-inline ancestor.
func (d *Document) Exports(scope canvas.Scope) *valuenode.List {
	if scope == nil {
		scope = d.root
	}
	scope = canvas.NonInlineAncestor(scope)
	l, ok := d.exports[scope]
	if !ok {
		l = valuenode.NewList(d.graph)
		d.exports[scope] = l
	}
	return l
}

// Export publishes n as id in scope. A placeholder waiting for id is
// resolved to n. Exporting a node that is already exported moves it: it
// leaves its previous list and takes the new id.
func (d *Document) Export(scope canvas.Scope, n *valuenode.Node, id string) error {
	if id == "" {
		return valuenode.ErrEmptyID
	}
	if scope == nil {
		scope = d.root
	}
	list := d.Exports(scope)
	if existing, err := list.Find(id); err == nil {
		if existing == n {
			return nil
		}
		if !existing.IsPlaceholder() {
			return fmt.Errorf("%q: %w", id, ErrDuplicateID)
		}
		if err := valuenode.CheckReplace(existing, n); err != nil {
			return fmt.Errorf("export %q: %w", id, err)
		}
	}

	oldID, oldScope := n.ID(), n.Scope()
	var oldList *valuenode.List
	if n.IsExported() {
		oldList = d.Exports(oldScope)
		oldList.Erase(n)
	}
	n.SetID(id)
	n.SetScope(canvas.NonInlineAncestor(scope))
	if !list.Add(n) {
		n.SetID(oldID)
		n.SetScope(oldScope)
		if oldList != nil {
			oldList.Add(n)
		}
		return fmt.Errorf("%q: %w", id, ErrDuplicateID)
	}
	d.logger.Debug("exported value node", "id", id, "scope", scope.ID(), "previous", oldID)
	return nil
}

// Unexport removes n from its scope's export list and clears its id.
func (d *Document) Unexport(n *valuenode.Node) error {
	if !n.IsExported() {
		return fmt.Errorf("unexport: %w", valuenode.ErrEmptyID)
	}
	if !d.Exports(n.Scope()).Erase(n) {
		return fmt.Errorf("%q: %w", n.ID(), valuenode.ErrNotFound)
	}
	n.SetID("")
	return nil
}

// Forward returns the node exported as id in scope, or a placeholder that
// Export will later resolve.
func (d *Document) Forward(scope canvas.Scope, id string) (*valuenode.Node, error) {
	return d.Exports(scope).SureFind(id)
}

// Lookup resolves a colon-delimited path such as "shapes:radius": every
// segment but the last names a child canvas of the root, the last is an
// exported id.
func (d *Document) Lookup(path string) (*valuenode.Node, error) {
	parts := strings.Split(path, ":")
	c := d.root
	for _, seg := range parts[:len(parts)-1] {
		next := c.Child(seg)
		if next == nil {
			return nil, fmt.Errorf("scope %q in %q: %w", seg, path, valuenode.ErrNotFound)
		}
		c = next
	}
	return d.Exports(c).Find(parts[len(parts)-1])
}

// Sample returns the change points of n over its sampling window.
func (d *Document) Sample(n *valuenode.Node) *value.Table {
	var tb value.Table
	n.Values(&tb)
	if d.metrics != nil {
		d.metrics.ObserveTable(&tb)
	}
	return &tb
}

// PlaceholderCount returns the number of unresolved forward references in
// every scope.
func (d *Document) PlaceholderCount() int {
	total := 0
	for _, l := range d.exports {
		total += l.PlaceholderCount()
	}
	return total
}

// Audit drops exports nothing else references, then destroys every node left
// unreferenced. It returns the number of dropped exports and destroyed nodes.
func (d *Document) Audit() (dropped, collected int) {
	for _, l := range d.exports {
		dropped += l.Audit()
	}
	collected = d.graph.Collect()
	d.logger.Info("audit complete", "dropped_exports", dropped, "collected", collected, "live", d.graph.Len())
	return dropped, collected
}

// Check reports structural problems of the graph and every unresolved
// forward reference.
func (d *Document) Check() error {
	var result *multierror.Error
	if err := d.graph.Check(); err != nil {
		result = multierror.Append(result, err)
	}
	for scope, l := range d.exports {
		for _, n := range l.Nodes() {
			if n.IsPlaceholder() {
				result = multierror.Append(result, fmt.Errorf("scope %q: unresolved reference %q", scope.ID(), n.ID()))
			}
		}
	}
	return result.ErrorOrNil()
}
