package handlers

import (
	"log"
	"sync"
)

// RefreshSignal tells status-scoped views that a transition moved a record
// between lists. Source identifies the view that triggered it.
type RefreshSignal struct {
	Source string `json:"source"`
	Action string `json:"action"`
}

// RefreshBus fans transition signals out to subscribed views. A view never
// receives its own signals, so the list that performed the action does not
// refresh twice.
type RefreshBus struct {
	mu   sync.RWMutex
	subs map[string]chan RefreshSignal
}

// Bus is the process-wide refresh bus.
var Bus = NewRefreshBus()

// NewRefreshBus creates an empty bus.
func NewRefreshBus() *RefreshBus {
	return &RefreshBus{subs: make(map[string]chan RefreshSignal)}
}

// Subscribe registers a view by its source identifier. Re-subscribing the
// same source replaces the old channel.
func (b *RefreshBus) Subscribe(source string) <-chan RefreshSignal {
	b.mu.Lock()
	defer b.mu.Unlock()
	if old, ok := b.subs[source]; ok {
		close(old)
	}
	ch := make(chan RefreshSignal, 8)
	b.subs[source] = ch
	return ch
}

// Unsubscribe removes a view and closes its channel.
func (b *RefreshBus) Unsubscribe(source string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[source]; ok {
		close(ch)
		delete(b.subs, source)
	}
}

// Publish delivers the signal to every subscriber except the originating
// source. Slow subscribers are skipped rather than blocked on.
func (b *RefreshBus) Publish(sig RefreshSignal) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for source, ch := range b.subs {
		if source == sig.Source {
			continue
		}
		select {
		case ch <- sig:
		default:
			log.Printf("⚠️  refresh signal dropped for slow subscriber %s", source)
		}
	}
}
