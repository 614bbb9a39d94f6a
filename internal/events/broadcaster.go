// Package events provides a change broadcaster so that readers (SSE
// clients, the presentation layer) can react to registry and index
// mutations without polling.
package events

import (
	"sync"
	"time"

	"github.com/hversten/bookmirror/internal/metrics"
)

const (
	EventFolderUpdated = "folder-updated"
	EventFolderRemoved = "folder-removed"
	EventFilterChanged = "filter-changed"
	EventVisitsChanged = "visits-changed"
	EventTreeReloaded  = "tree-reloaded"

	// Commands relayed to the companion extension over the stream.
	EventOpenTabs       = "open-tabs"
	EventShowProperties = "show-properties"
)

// Event is one change notification. NodeID is empty for events that
// concern the whole tree or index.
type Event struct {
	Type      string `json:"type"`
	NodeID    string `json:"nodeId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Broadcaster manages subscribers and publishes change events.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe adds a subscriber and returns its event channel. The
// caller must call Unsubscribe when done.
func (b *Broadcaster) Subscribe() chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	metrics.SetStreamSubscribers(b.Count())
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	close(ch)
	b.mu.Unlock()
	metrics.SetStreamSubscribers(b.Count())
}

// Publish sends an event to all subscribers. Non-blocking: events are
// dropped for slow consumers.
func (b *Broadcaster) Publish(event Event) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// slow consumer, drop
		}
	}
	metrics.RecordStreamEvent(event.Type)
}

// Count returns the current number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
