package reporting

import (
	"fmt"
	"sync"
)

// EventHandler is a function that processes events.
type EventHandler func(Event)

// EventFilter decides whether a subscription should see an event. A nil
// filter matches everything.
type EventFilter func(Event) bool

// FilterByType returns a filter matching only the given event types.
func FilterByType(types ...EventType) EventFilter {
	set := make(map[EventType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(e Event) bool {
		_, ok := set[e.Type]
		return ok
	}
}

// Subscription represents an active subscription on a bus.
type Subscription struct {
	id      string
	filter  EventFilter
	handler EventHandler
}

// EventBus provides publish/subscribe delivery of diagnostic events.
// Delivery is synchronous on the publisher's goroutine; handlers are
// expected to be fast and must not call back into the bus.
type EventBus struct {
	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	nextID        int64
	published     int64
	delivered     int64
	closed        bool
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		subscriptions: make(map[string]*Subscription),
	}
}

// Publish delivers the event to every matching subscription. Publishing on
// a closed bus is a no-op.
func (b *EventBus) Publish(event Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]*Subscription, 0, len(b.subscriptions))
	for _, s := range b.subscriptions {
		subs = append(subs, s)
	}
	b.mu.RUnlock()

	delivered := int64(0)
	for _, s := range subs {
		if s.filter != nil && !s.filter(event) {
			continue
		}
		s.handler(event)
		delivered++
	}

	b.mu.Lock()
	b.published++
	b.delivered += delivered
	b.mu.Unlock()
}

// Subscribe registers a handler for events matching the filter and returns
// the subscription handle. Returns nil on a closed bus.
func (b *EventBus) Subscribe(filter EventFilter, handler EventHandler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.nextID++
	sub := &Subscription{
		id:      fmt.Sprintf("sub-%d", b.nextID),
		filter:  filter,
		handler: handler,
	}
	b.subscriptions[sub.id] = sub
	return sub
}

// Unsubscribe removes a subscription. Unknown or nil subscriptions are
// ignored.
func (b *EventBus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscriptions, sub.id)
}

// Stats reports how many events were published and delivered so far.
func (b *EventBus) Stats() (published, delivered int64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.published, b.delivered
}

// Close drops all subscriptions; subsequent publishes are no-ops.
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subscriptions = make(map[string]*Subscription)
}
