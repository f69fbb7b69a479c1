package bus

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/outbox/pkg/logger"
)

// Handler receives published events of the kind it subscribed to.
// Handlers run synchronously on the publisher's goroutine; one that needs
// a particular execution context (a UI loop) must hop there itself.
type Handler func(Event)

// Bus is an in-process publish/subscribe broadcaster over the closed Event
// union. Dispatch is synchronous and in registration order. A handler panic
// is recovered and logged so the remaining handlers still run and nothing
// propagates to the publisher.
type Bus struct {
	subs   map[Kind][]*Subscription
	nextID uint64
	log    *slog.Logger
	mu     sync.RWMutex
}

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	bus     *Bus
	handler Handler
	kind    Kind
	id      uint64
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the bus logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		subs: make(map[Kind][]*Subscription),
		log:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for one event kind and returns its
// subscription. Handlers for the same kind are invoked in registration
// order.
func (b *Bus) Subscribe(kind Kind, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &Subscription{bus: b, handler: handler, kind: kind, id: b.nextID}
	b.subs[kind] = append(b.subs[kind], sub)
	return sub
}

// Unsubscribe removes the handler. Unsubscribing twice is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[s.kind] = slices.DeleteFunc(b.subs[s.kind], func(cand *Subscription) bool {
		return cand.id == s.id
	})
}

// Publish delivers the event to every handler registered for its kind at
// the moment of publish, on the caller's goroutine. Handlers added during
// dispatch do not see the in-flight event.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	// snapshot so handler-side subscribe/unsubscribe cannot mutate the
	// slice mid-dispatch
	subs := slices.Clone(b.subs[event.Kind()])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.dispatch(sub, event)
	}
}

func (b *Bus) dispatch(sub *Subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				slog.String("kind", event.Kind().String()),
				slog.Any("panic", r))
		}
	}()
	sub.handler(event)
}
