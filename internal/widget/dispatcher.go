package widget

import "sync"

// Dispatcher delivers widget events to subscribers synchronously, in
// subscription order. The first handler error stops delivery and is returned.
type Dispatcher struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string][]subscriber
}

type subscriber struct {
	id      int
	handler Handler
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]subscriber),
	}
}

// Subscribe registers handler for event and returns an unsubscribe function
func (d *Dispatcher) Subscribe(event string, handler Handler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.handlers[event] = append(d.handlers[event], subscriber{id: id, handler: handler})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		subs := d.handlers[event]
		for i, s := range subs {
			if s.id == id {
				d.handlers[event] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Publish sends the event to its subscribers
func (d *Dispatcher) Publish(e Event) error {
	d.mu.RLock()
	// Copy so handlers may subscribe or unsubscribe while running
	subs := make([]subscriber, len(d.handlers[e.Name]))
	copy(subs, d.handlers[e.Name])
	d.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler(e); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops every subscription
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = make(map[string][]subscriber)
}
