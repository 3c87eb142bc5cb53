package pose

import (
	"reflect"

	"github.com/google/uuid"
)

// Notification is published after every applied document change.
type Notification interface {
	notification()
}

// Sink receives notifications. Implementations must not mutate the document.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) { f(n) }

type nopSink struct{}

func (nopSink) Notify(Notification) {}

// --- Notification kinds ---

// NodeAddedNotice is published when a node enters the document.
type NodeAddedNotice struct{ Node ID }

// NodeRemovedNotice is published when a node leaves the document.
type NodeRemovedNotice struct{ Node ID }

// NodeChanged is published when a node's name changes.
type NodeChanged struct{ Node ID }

// HierarchyChanged is published when a node is reparented or reordered.
type HierarchyChanged struct {
	Node   ID
	Parent ID
}

// PropertyChanged is published when a node's design value or preview
// increment changes.
type PropertyChanged struct {
	Node     ID
	Property PropertyType
}

// DrawOrderChanged is published when the draw order changes.
type DrawOrderChanged struct{}

// AnimationChanged is published when an animation is added, removed,
// selected or edited.
type AnimationChanged struct {
	Animation ID
	Removed   bool
}

// KeyChanged is published when a key is added, removed or edited.
type KeyChanged struct {
	Animation ID
	Node      ID
	Property  PropertyType
	Key       ID
	Removed   bool
}

// CollectionChanged is published when a node gains or loses its keyframe
// collection in an animation.
type CollectionChanged struct {
	Animation ID
	Node      ID
	Removed   bool
}

// CurveChanged is published when a property curve is created or removed.
type CurveChanged struct {
	Animation ID
	Node      ID
	Property  PropertyType
	Removed   bool
}

// DocumentChanged is published when a document-level attribute such as the
// asset folder changes.
type DocumentChanged struct{}

// FrameChanged is published when an animation's current frame changes.
type FrameChanged struct {
	Animation ID
	Frame     int
}

// ModeChanged is published when the document switches mode.
type ModeChanged struct{ Mode Mode }

// HistoryChanged is published after commit, undo and redo.
type HistoryChanged struct {
	Version int
	Count   int
	Unit    uuid.UUID
}

func (NodeAddedNotice) notification()   {}
func (NodeRemovedNotice) notification() {}
func (NodeChanged) notification()       {}
func (HierarchyChanged) notification()  {}
func (PropertyChanged) notification()   {}
func (DrawOrderChanged) notification()  {}
func (AnimationChanged) notification()  {}
func (KeyChanged) notification()        {}
func (CollectionChanged) notification() {}
func (CurveChanged) notification()      {}
func (DocumentChanged) notification()   {}
func (FrameChanged) notification()      {}
func (ModeChanged) notification()       {}
func (HistoryChanged) notification()    {}

// --- Bus ---

// Bus is a typed publish/subscribe Sink. Handlers run synchronously on the
// goroutine that mutates the document: handlers for the concrete type first,
// in subscription order, then handlers subscribed to an interface type.
type Bus struct {
	handlers map[reflect.Type][]func(Notification)
	matchers []func(Notification)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]func(Notification))}
}

// Subscribe registers fn for notifications of type T. When T is an
// interface, such as Notification itself, fn receives every notification
// whose type implements it.
func Subscribe[T Notification](b *Bus, fn func(T)) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Interface {
		b.matchers = append(b.matchers, func(n Notification) {
			if v, ok := n.(T); ok {
				fn(v)
			}
		})
		return
	}
	b.handlers[t] = append(b.handlers[t], func(n Notification) { fn(n.(T)) })
}

// Notify dispatches n to the handlers subscribed to its type.
func (b *Bus) Notify(n Notification) {
	for _, h := range b.handlers[reflect.TypeOf(n)] {
		h(n)
	}
	for _, h := range b.matchers {
		h(n)
	}
}
