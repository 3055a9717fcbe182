package workout

import (
	"sync"
)

// StoreName identifies one of the four independently persisted stores.
type StoreName string

const (
	StoreWorkout  StoreName = "workout"
	StoreProgram  StoreName = "program"
	StoreBadges   StoreName = "badges"
	StoreSettings StoreName = "settings"
)

// StoreNames lists every store.
//
//nolint:gochecknoglobals // static list.
var StoreNames = []StoreName{StoreWorkout, StoreProgram, StoreBadges, StoreSettings}

// Bus notifies subscribers when a store has been mutated.
type Bus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func(StoreName)
}

// NewBus creates a Bus without subscribers.
func NewBus() *Bus {
	return &Bus{
		mu:          sync.RWMutex{},
		nextID:      0,
		subscribers: make(map[int]func(StoreName)),
	}
}

// Subscribe registers fn for every mutation and returns a function that removes it.
// fn runs synchronously on the publishing goroutine and must not block.
func (b *Bus) Subscribe(fn func(StoreName)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// Publish notifies every subscriber that store changed.
func (b *Bus) Publish(store StoreName) {
	b.mu.RLock()
	subscribers := make([]func(StoreName), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		subscribers = append(subscribers, fn)
	}
	b.mu.RUnlock()
	for _, fn := range subscribers {
		fn(store)
	}
}
