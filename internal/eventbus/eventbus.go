package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"selectsync/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventError         = domain.EventError
	EventConfigLoaded  = domain.EventConfigLoaded
	EventConfigSaved   = domain.EventConfigSaved
	EventConfigChanged = domain.EventConfigChanged
	EventAppReady      = domain.EventAppReady
)

// Re-export domain event types
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent
type AppReadyEvent = domain.AppReadyEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	// Close delivers queued events, waits for running handlers and stops
	// the dispatcher. Events published afterwards are dropped.
	Close()
}

type subscriber struct {
	id      int
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	nextID    int
	handlers  map[EventType][]subscriber
	eventChan chan DomainEvent
	wg        sync.WaitGroup // dispatcher
	running   sync.WaitGroup // handlers
	quit      chan struct{}
	closeOnce sync.Once
	closed    bool
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscriber),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		log.Printf("EventBus: closed, dropping event %s", event.Type())
		return
	}

	log.Printf("EventBus: Publishing event %s", event.Type())

	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

func (b *bus) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()

		close(b.quit)
		b.wg.Wait()
		b.running.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			// Deliver what is still queued
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	// Make a copy to avoid holding lock during handler execution
	subs := make([]subscriber, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		// Call handler in a goroutine to avoid blocking
		b.running.Add(1)
		go func(h EventHandler, eventType EventType) {
			defer b.running.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
				}
			}()
			h(event)
		}(s.handler, event.Type())
	}
}
