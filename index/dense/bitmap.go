package dense

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// keySet tracks the occupied keys of a dense index.
// It wraps a 32-bit roaring bitmap, which bounds the admissible key space.
type keySet struct {
	rb *roaring.Bitmap
}

// newKeySet creates a new empty key set.
func newKeySet() *keySet {
	return &keySet{
		rb: roaring.New(),
	}
}

// Add marks a key as occupied.
func (s *keySet) Add(key uint32) {
	s.rb.Add(key)
}

// Remove marks a key as vacant.
func (s *keySet) Remove(key uint32) {
	s.rb.Remove(key)
}

// Contains checks if a key is occupied.
func (s *keySet) Contains(key uint32) bool {
	return s.rb.Contains(key)
}

// IsEmpty returns true if no key is occupied.
func (s *keySet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of occupied keys.
func (s *keySet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Min returns the smallest occupied key. The set must not be empty.
func (s *keySet) Min() uint32 {
	return s.rb.Minimum()
}

// Max returns the largest occupied key. The set must not be empty.
func (s *keySet) Max() uint32 {
	return s.rb.Maximum()
}

// Clone returns a deep copy of the key set.
func (s *keySet) Clone() *keySet {
	return &keySet{
		rb: s.rb.Clone(),
	}
}

// Iterator returns an iterator over the occupied keys in ascending order.
func (s *keySet) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// And computes the intersection with another key set.
func (s *keySet) And(other *keySet) {
	s.rb.And(other.rb)
}

// Or computes the union with another key set.
func (s *keySet) Or(other *keySet) {
	s.rb.Or(other.rb)
}

// AndNot computes the difference with another key set.
func (s *keySet) AndNot(other *keySet) {
	s.rb.AndNot(other.rb)
}
