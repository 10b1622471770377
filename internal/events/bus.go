// Package events provides an in-process publish/subscribe bus used to tell
// every category engine instance that the backing store changed. The bus is
// dependency-injected at construction instead of being a process-wide
// ambient signal, so tests and multiple engine instances can each carry
// their own.
package events

import "sync"

// CategoriesUpdated is published after any category-affecting write.
const CategoriesUpdated = "categories.updated"

// Bus is a minimal topic-based notification bus. Notifications carry no
// payload; subscribers are expected to re-read authoritative state.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]chan struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]chan struct{})}
}

// Subscribe registers interest in a topic. The returned channel receives a
// signal per publish (coalesced if the subscriber is slow). The cancel
// function removes the subscription and closes the channel.
func (b *Bus) Subscribe(topic string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, sub := range subs {
			if sub == ch {
				b.subs[topic] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Publish notifies all subscribers of a topic. Publish never blocks: a
// subscriber that already has a pending signal is skipped, which coalesces
// bursts of writes into a single notification.
func (b *Bus) Publish(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
