package websocket

import (
	"sync"

	"github.com/techcrush-lms/chatwire/pkg/logger"
)

// Handler receives the first argument of a dispatched socket event, typically
// a map[string]any decoded by the socket layer.
type Handler func(data any)

// dispatcherBinder binds a per-event dispatcher onto the live socket. The
// Client implements it; tests substitute a fake.
type dispatcherBinder interface {
	bindDispatcher(event string)
}

type subscription struct {
	id uint64
	fn Handler
}

// Registry maps event names to ordered callback lists, decoupling "interested
// in event X" from "currently connected".
//
// The registry never detaches anything from the socket: a single dispatcher
// per event name is bound to the live socket and consults the current
// callback list at dispatch time. On every (re)connect all dispatchers are
// bound again onto the new socket, so subscriptions survive reconnect cycles.
type Registry struct {
	mu     sync.RWMutex
	subs   map[string][]subscription
	nextID uint64
	binder dispatcherBinder
}

func newRegistry(binder dispatcherBinder) *Registry {
	return &Registry{
		subs:   make(map[string][]subscription),
		binder: binder,
	}
}

// On appends cb to the callback list for event and returns an unsubscribe
// function that removes exactly this registration. Each registration is
// tracked by its own identity, so the same function value (or two closures
// sharing a code pointer) can be registered multiple times and removed
// individually. If a connection currently exists the event's dispatcher is
// bound to the live socket immediately, so cb starts receiving dispatches
// without waiting for a reconnect.
//
// The unsubscribe function is idempotent.
func (r *Registry) On(event string, cb Handler) func() {
	if cb == nil {
		return func() {}
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs[event] = append(r.subs[event], subscription{id: id, fn: cb})
	r.mu.Unlock()

	if r.binder != nil {
		r.binder.bindDispatcher(event)
	}

	return func() {
		r.remove(event, id)
	}
}

// Off removes every callback registered for event.
func (r *Registry) Off(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, event)
}

func (r *Registry) remove(event string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[event]
	for i, sub := range subs {
		if sub.id == id {
			r.subs[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// events returns the event names with at least one registered callback.
func (r *Registry) events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.subs))
	for name := range r.subs {
		names = append(names, name)
	}
	return names
}

// attachAll binds dispatchers for every registered event name onto the live
// socket. Called after each successful (re)connect.
func (r *Registry) attachAll() {
	if r.binder == nil {
		return
	}
	for _, event := range r.events() {
		r.binder.bindDispatcher(event)
	}
}

// Dispatch invokes every callback registered for event, in registration
// order, with the event's payload.
func (r *Registry) Dispatch(event string, data any) {
	r.mu.RLock()
	subs := make([]subscription, len(r.subs[event]))
	copy(subs, r.subs[event])
	r.mu.RUnlock()

	if logger.Enabled(logger.LevelTrace) {
		logger.Tracef("dispatching %q to %d callback(s)", event, len(subs))
	}
	for _, sub := range subs {
		sub.fn(data)
	}
}
