// Package events implements the engine's lifecycle/change notification
// surface. The Subscribe(listener)→func() unsubscribe shape is the pack's
// own idiom for this (compare wayneeseguin-graft's
// ThreadSafeEvaluator.Subscribe), adapted here to a named-event bus since
// the engine emits many distinct event kinds rather than one
// evaluation-progress stream.
package events

import "sync"

// Event is one emitted notification: Name identifies it and Payload carries
// its fields.
type Event struct {
	Name    string
	Payload map[string]interface{}
}

// Listener receives emitted events.
type Listener func(Event)

// Bus is a simple named-event pub/sub: On registers a listener and returns
// an unsubscribe function, Emit delivers to every listener currently
// registered for that name.
type Bus struct {
	mu        sync.Mutex
	listeners map[string]map[int]Listener
	nextID    int
}

// NewBus builds an empty Bus.
func NewBus() *Bus {
	return &Bus{listeners: map[string]map[int]Listener{}}
}

// On subscribes l to events named name, returning a function that removes
// it.
func (b *Bus) On(name string, l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listeners[name] == nil {
		b.listeners[name] = map[int]Listener{}
	}
	id := b.nextID
	b.nextID++
	b.listeners[name][id] = l
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners[name], id)
	}
}

// Emit delivers an event named name with the given payload to every
// currently-registered listener, in registration order isn't guaranteed
// (map iteration) since listeners must not depend on firing order.
func (b *Bus) Emit(name string, payload map[string]interface{}) {
	b.mu.Lock()
	ls := make([]Listener, 0, len(b.listeners[name]))
	for _, l := range b.listeners[name] {
		ls = append(ls, l)
	}
	b.mu.Unlock()
	ev := Event{Name: name, Payload: payload}
	for _, l := range ls {
		l(ev)
	}
}
