package nitro

import "sync"

// Handler receives the payload of an emission.
type Handler func(payload any)

type busEntry struct {
	seq     uint64
	handler Handler
}

// EventBus is a synchronous in-process publish/subscribe bus keyed by topic.
type EventBus struct {
	mu     sync.RWMutex
	seq    uint64
	topics map[Topic][]busEntry
}

// NewEventBus returns a bus with no subscriptions.
func NewEventBus() *EventBus {
	return &EventBus{
		topics: map[Topic][]busEntry{},
	}
}

// Subscribe appends handler to the topic's handler list.
func (b *EventBus) Subscribe(topic Topic, handler Handler) Unsubscribe {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.topics[topic] = append(b.topics[topic], busEntry{seq: seq, handler: handler})
	b.mu.Unlock()

	return func() {
		b.remove(topic, seq)
	}
}

func (b *EventBus) remove(topic Topic, seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.topics[topic]
	for i, entry := range entries {
		if entry.seq != seq {
			continue
		}
		// copy so that snapshots taken by in-progress emissions stay intact
		revised := make([]busEntry, 0, len(entries)-1)
		revised = append(revised, entries[:i]...)
		revised = append(revised, entries[i+1:]...)
		if len(revised) == 0 {
			delete(b.topics, topic)
		} else {
			b.topics[topic] = revised
		}
		return
	}
}

// Emit runs every handler registered on topic at the time of the call, in
// registration order, and returns once all of them returned.
func (b *EventBus) Emit(topic Topic, payload any) {
	b.mu.RLock()
	entries := b.topics[topic]
	b.mu.RUnlock()

	for _, entry := range entries {
		entry.handler(payload)
	}
}

// Len reports how many handlers listen to topic.
func (b *EventBus) Len(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
