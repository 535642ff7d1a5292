package engine

import (
	"iter"
	"sync"
)

// Compile-time check to ensure MapStore satisfies the Store interface.
var _ Store[string, int] = (*MapStore[string, int])(nil)

// MapStore is an in-memory store keyed by the collection's own native key,
// which doubles as the position type. It's suitable for datasets that fit in
// memory and provides fast O(1) access.
type MapStore[NK comparable, T any] struct {
	mu   sync.RWMutex
	data map[NK]T
}

// NewMapStore creates a new in-memory map-based store.
func NewMapStore[NK comparable, T any]() *MapStore[NK, T] {
	return &MapStore[NK, T]{
		data: make(map[NK]T),
	}
}

// Get retrieves the element associated with the given native key.
func (m *MapStore[NK, T]) Get(key NK) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	return v, ok
}

// Set stores an element under the given native key.
// If the key already exists, it replaces the element.
func (m *MapStore[NK, T]) Set(key NK, item T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = item
	return nil
}

// Delete removes the element associated with the given native key.
// Returns ErrNotFound if the key doesn't exist.
func (m *MapStore[NK, T]) Delete(key NK) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok {
		return ErrNotFound
	}

	delete(m.data, key)
	return nil
}

// Len returns the number of elements currently stored.
func (m *MapStore[NK, T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

// All returns an iterator over the stored elements in map order.
// The read lock is held for the duration of one iteration; callers must not
// mutate the store from inside the loop body.
func (m *MapStore[NK, T]) All() iter.Seq2[NK, T] {
	return func(yield func(NK, T) bool) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		for key, item := range m.data {
			if !yield(key, item) {
				return
			}
		}
	}
}
