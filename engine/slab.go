package engine

import (
	"iter"
	"sync"
)

// Compile-time check to ensure Slab satisfies the Store interface.
var _ Store[int, string] = (*Slab[string])(nil)

// Slab is a slot-stable in-memory store for list-like collections. An element
// keeps its slot for its whole lifetime; removed slots go on a free list and
// are reused by later inserts. Positions held by indices and views therefore
// never shift, and a vacated slot reads as not found until reused.
type Slab[T any] struct {
	mu    sync.RWMutex
	slots []slot[T]
	free  []int
	count int
}

type slot[T any] struct {
	value T
	live  bool
}

// NewSlab creates a new empty slab store.
func NewSlab[T any]() *Slab[T] {
	return &Slab[T]{}
}

// Insert stores item in a free slot, extending the slab if none is available,
// and returns the slot position.
func (s *Slab[T]) Insert(item T) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++

	if n := len(s.free); n > 0 {
		pos := s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[pos] = slot[T]{value: item, live: true}

		return pos
	}

	s.slots = append(s.slots, slot[T]{value: item, live: true})

	return len(s.slots) - 1
}

// Get retrieves the element at the given position.
func (s *Slab[T]) Get(pos int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if pos < 0 || pos >= len(s.slots) || !s.slots[pos].live {
		var zero T
		return zero, false
	}

	return s.slots[pos].value, true
}

// Set replaces the element at the given position.
// Returns ErrNotFound if the slot is vacant.
func (s *Slab[T]) Set(pos int, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.slots) || !s.slots[pos].live {
		return ErrNotFound
	}

	s.slots[pos].value = item
	return nil
}

// Delete vacates the slot at the given position and queues it for reuse.
// Returns ErrNotFound if the slot is already vacant.
func (s *Slab[T]) Delete(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.slots) || !s.slots[pos].live {
		return ErrNotFound
	}

	s.slots[pos] = slot[T]{}
	s.free = append(s.free, pos)
	s.count--

	return nil
}

// Len returns the number of live elements.
func (s *Slab[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count
}

// All returns an iterator over the live slots in ascending position order.
// The read lock is held for the duration of one iteration; callers must not
// mutate the slab from inside the loop body.
func (s *Slab[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		for pos, sl := range s.slots {
			if !sl.live {
				continue
			}

			if !yield(pos, sl.value) {
				return
			}
		}
	}
}
