package valuenode

import "github.com/aretw0/tendril/pkg/canvas"

// EventType defines the category of the event.
type EventType string

const (
	EventValueNodeChanged    EventType = "value_node_changed"
	EventIDChanged           EventType = "id_changed"
	EventPlaceholderResolved EventType = "placeholder_resolved"
	EventNodeCollected       EventType = "node_collected"
)

// Event describes a mutation of the graph.
type Event struct {
	Type EventType

	// Scope is the scope being notified. Nil for graph-wide events.
	Scope canvas.Scope
	Node  *Node

	// OldID and NewID are set for EventIDChanged and EventPlaceholderResolved.
	OldID string
	NewID string
}

// Dispatcher routes graph events to observers.
type Dispatcher interface {
	Dispatch(ev Event)
}

// Observer receives events from a Bus.
type Observer func(Event)

type subscription struct {
	id    int
	scope canvas.Scope
	fn    Observer
}

// Bus is the default Dispatcher. Observers subscribe either to every event or
// to the events addressed to one scope. Delivery is synchronous, in
// subscription order.
type Bus struct {
	subs   []subscription
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for every event. The returned func cancels it.
func (b *Bus) Subscribe(fn Observer) func() {
	return b.add(nil, fn)
}

// SubscribeScope registers fn for events addressed to scope.
func (b *Bus) SubscribeScope(scope canvas.Scope, fn Observer) func() {
	return b.add(scope, fn)
}

func (b *Bus) add(scope canvas.Scope, fn Observer) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, scope: scope, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to matching observers.
func (b *Bus) Dispatch(ev Event) {
	// observers may unsubscribe while being notified
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		if s.scope == nil || s.scope == ev.Scope {
			s.fn(ev)
		}
	}
}

// Recorder is a Dispatcher that keeps every event, for callers that prefer to
// route events themselves after a mutation returns.
type Recorder struct {
	Events []Event
}

// Dispatch appends ev.
func (r *Recorder) Dispatch(ev Event) {
	r.Events = append(r.Events, ev)
}

// Drain returns the recorded events and resets the recorder.
func (r *Recorder) Drain() []Event {
	out := r.Events
	r.Events = nil
	return out
}

// OfType returns the recorded events of type t.
func (r *Recorder) OfType(t EventType) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type multiDispatcher []Dispatcher

func (m multiDispatcher) Dispatch(ev Event) {
	for _, d := range m {
		d.Dispatch(ev)
	}
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(Event) {}
