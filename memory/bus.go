package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/colonyai/colony/logging"
)

// Entry is the internal representation persisted by the Bus: the stored value
// plus the write timestamp and a tag describing the value's runtime type.
// Re-storing a key overwrites the whole triple, entries are never merged.
type Entry struct {
	Value     any
	Timestamp time.Time
	Type      string
}

// Handler receives messages published to a subscribed topic.
type Handler func(topic string, message any)

// Bus is a process-local key/value store doubling as a synchronous
// publish/subscribe hub. It is the shared blackboard for the system: liveness
// metrics, the system start time and status snapshots all live here.
//
// Concurrency: Store and Retrieve share a single writer lock so the
// value/timestamp/type triple is never observed half-written. Publish does not
// take that lock; the subscriber registry has its own RWMutex. There is no
// delete operation.
type Bus struct {
	mu      sync.Mutex
	entries map[string]Entry

	subMu  sync.RWMutex
	subs   map[string][]Handler
	logger logging.Logger
}

// BusOptions configures construction of a Bus.
type BusOptions struct {
	Logger logging.Logger
}

// NewBus creates an empty memory bus.
func NewBus(optFns ...func(o *BusOptions)) *Bus {
	opts := BusOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Bus{
		entries: make(map[string]Entry),
		subs:    make(map[string][]Handler),
		logger:  opts.Logger,
	}
}

// Store writes the value under key, overwriting any existing entry and
// attaching the current time plus the value's runtime type tag.
func (b *Bus) Store(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = Entry{
		Value:     value,
		Timestamp: time.Now(),
		Type:      fmt.Sprintf("%T", value),
	}
}

// Retrieve returns the stored value for key and whether it was present.
func (b *Bus) Retrieve(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[key]
	if !ok {
		return nil, false
	}
	return e.Value, true
}

// Lookup returns the full entry (value, timestamp, type tag) for key.
func (b *Bus) Lookup(key string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[key]
	return e, ok
}

// Subscribe registers a handler for a topic. Handlers are invoked
// synchronously, in registration order, on the publisher's goroutine.
func (b *Bus) Subscribe(topic string, fn Handler) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.subs[topic] = append(b.subs[topic], fn)
}

// Publish delivers message to every subscriber of topic. Each handler runs
// independently: a panicking handler is recovered and logged so the remaining
// subscribers still receive the message.
func (b *Bus) Publish(topic string, message any) {
	b.subMu.RLock()
	handlers := make([]Handler, len(b.subs[topic]))
	copy(handlers, b.subs[topic])
	b.subMu.RUnlock()

	for _, fn := range handlers {
		b.deliver(topic, message, fn)
	}
}

func (b *Bus) deliver(topic string, message any, fn Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("subscriber failed", "topic", topic, "panic", fmt.Sprintf("%v", r))
		}
	}()
	fn(topic, message)
}
