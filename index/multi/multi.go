// Package multi provides the multi-valued hash index strategy: every key maps
// to an insertion-ordered set of positions.
package multi

import (
	"iter"
	"maps"
	"slices"

	"github.com/lima1909/lookups/index"
)

// Compile-time checks to ensure Index satisfies required interfaces.
var _ index.Index[string, int] = (*Index[string, int])(nil)

// Index is a hash index mapping each key to the positions inserted under it,
// retrievable in insertion order. It is not synchronized; callers serialize
// writers.
type Index[K comparable, P comparable] struct {
	m map[K][]P
}

// New creates an empty multi-valued hash index.
func New[K comparable, P comparable]() *Index[K, P] {
	return &Index[K, P]{
		m: make(map[K][]P),
	}
}

// Insert appends pos to the key's position set. Re-inserting a position that
// is already a member of the set is a no-op; Insert never fails.
func (i *Index[K, P]) Insert(key K, pos P) error {
	positions := i.m[key]
	if slices.Contains(positions, pos) {
		return nil
	}

	i.m[key] = append(positions, pos)
	return nil
}

// Validate always succeeds; a multi-valued index has no insert constraints.
func (i *Index[K, P]) Validate(K) error {
	return nil
}

// Remove deletes pos from the key's position set, preserving the relative
// order of the remaining positions and dropping the key entry when the set
// empties. It reports whether anything was removed.
func (i *Index[K, P]) Remove(key K, pos P) bool {
	positions, ok := i.m[key]
	if !ok {
		return false
	}

	at := slices.Index(positions, pos)
	if at < 0 {
		return false
	}

	positions = slices.Delete(positions, at, at+1)
	if len(positions) == 0 {
		delete(i.m, key)
		return true
	}

	i.m[key] = positions
	return true
}

// Update moves pos from oldKey's set to the end of newKey's set.
func (i *Index[K, P]) Update(oldKey, newKey K, pos P) error {
	i.Remove(oldKey, pos)
	return i.Insert(newKey, pos)
}

// Contains reports whether key is indexed.
func (i *Index[K, P]) Contains(key K) bool {
	_, ok := i.m[key]
	return ok
}

// Positions yields the positions under key in insertion order.
func (i *Index[K, P]) Positions(key K) iter.Seq[P] {
	return func(yield func(P) bool) {
		for _, pos := range i.m[key] {
			if !yield(pos) {
				return
			}
		}
	}
}

// Keys yields all indexed keys in no particular order.
func (i *Index[K, P]) Keys() iter.Seq[K] {
	return maps.Keys(i.m)
}

// Len returns the number of indexed keys.
func (i *Index[K, P]) Len() int {
	return len(i.m)
}

// View copies the position sets for the given keys into a new multi index.
func (i *Index[K, P]) View(keys []K) index.Index[K, P] {
	v := New[K, P]()
	for _, key := range keys {
		if positions, ok := i.m[key]; ok {
			v.m[key] = slices.Clone(positions)
		}
	}

	return v
}

// Kind identifies the strategy variant.
func (i *Index[K, P]) Kind() index.Kind {
	return index.KindMultiHash
}
