package config

import (
	"log"
	"sync"

	"selectsync/internal/eventbus"
)

// SelectionSaver persists selection changes published on the bus. Bus
// handlers run concurrently, so a change older than the last saved one is
// skipped instead of overwriting it.
type SelectionSaver struct {
	mu      sync.Mutex
	service ConfigService
	config  *Config
	lastSeq uint64
}

// NewSelectionSaver creates a saver writing cfg through service
func NewSelectionSaver(service ConfigService, cfg *Config) *SelectionSaver {
	return &SelectionSaver{service: service, config: cfg}
}

// Subscribe registers the saver for ConfigChanged events
func (s *SelectionSaver) Subscribe(bus eventbus.EventBus) func() {
	return bus.Subscribe(eventbus.EventConfigChanged, s.Handle)
}

// Handle saves a ConfigChangedEvent unless a newer one was already saved
func (s *SelectionSaver) Handle(e eventbus.DomainEvent) {
	event, ok := e.(eventbus.ConfigChangedEvent)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Seq <= s.lastSeq {
		log.Printf("config: skipping stale selection #%d (saved #%d)", event.Seq, s.lastSeq)
		return
	}
	s.config.SetSelected(event.Selected)
	if err := s.service.Save(s.config); err != nil {
		log.Printf("Failed to save config: %v", err)
		return
	}
	s.lastSeq = event.Seq
	log.Printf("Selection %v saved to %s", event.Selected, s.service.Path())
}
