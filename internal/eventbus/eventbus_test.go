package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectsync/internal/domain"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan ConfigChangedEvent, 1)
	b.Subscribe(EventConfigChanged, func(e DomainEvent) {
		if ev, ok := e.(ConfigChangedEvent); ok {
			got <- ev
		}
	})

	b.Publish(ConfigChangedEvent{Selected: []domain.ID{domain.NumberID(1)}})

	select {
	case ev := <-got:
		assert.Equal(t, []domain.ID{domain.NumberID(1)}, ev.Selected)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	var mu sync.Mutex
	var first, second int
	unsubscribe := b.Subscribe(EventConfigSaved, func(DomainEvent) {
		mu.Lock()
		first++
		mu.Unlock()
	})
	b.Subscribe(EventConfigSaved, func(DomainEvent) {
		mu.Lock()
		second++
		mu.Unlock()
	})

	unsubscribe()
	b.Publish(ConfigSavedEvent{Path: "a.toml"})
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestCloseWaitsForQueuedEvents(t *testing.T) {
	b := New()

	var mu sync.Mutex
	var seen []string
	b.Subscribe(EventConfigSaved, func(e DomainEvent) {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		seen = append(seen, e.(ConfigSavedEvent).Path)
		mu.Unlock()
	})

	for _, p := range []string{"a", "b", "c"} {
		b.Publish(ConfigSavedEvent{Path: p})
	}
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, seen)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	called := false
	b.Subscribe(EventError, func(DomainEvent) { called = true })

	b.Close()
	b.Close()
	b.Publish(ErrorEvent{Message: "late"})

	require.False(t, called)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()
	done := make(chan struct{})
	b.Subscribe(EventAppReady, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventAppReady, func(DomainEvent) { close(done) })

	b.Publish(AppReadyEvent{})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second handler not called")
	}
	b.Close()
}
