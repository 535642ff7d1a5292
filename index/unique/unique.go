// Package unique provides the unique hash index strategy: every key maps to
// at most one position.
package unique

import (
	"iter"
	"maps"

	"github.com/lima1909/lookups/index"
)

// Compile-time checks to ensure Index satisfies required interfaces.
var _ index.Index[string, int] = (*Index[string, int])(nil)

// Index is a hash index holding exactly one position per key.
// It is not synchronized; callers serialize writers.
type Index[K comparable, P comparable] struct {
	m map[K]P
}

// New creates an empty unique hash index.
func New[K comparable, P comparable]() *Index[K, P] {
	return &Index[K, P]{
		m: make(map[K]P),
	}
}

// Insert registers pos under key. It fails with DuplicateKeyError if the key
// is already present and leaves the index unchanged.
func (i *Index[K, P]) Insert(key K, pos P) error {
	if _, ok := i.m[key]; ok {
		return &index.DuplicateKeyError{Key: key}
	}

	i.m[key] = pos
	return nil
}

// Validate reports DuplicateKeyError if key is already present, without
// mutating state.
func (i *Index[K, P]) Validate(key K) error {
	if _, ok := i.m[key]; ok {
		return &index.DuplicateKeyError{Key: key}
	}

	return nil
}

// Remove drops the key entry if it currently holds pos. Removing a pair that
// was never indexed reports false, not an error.
func (i *Index[K, P]) Remove(key K, pos P) bool {
	cur, ok := i.m[key]
	if !ok || cur != pos {
		return false
	}

	delete(i.m, key)
	return true
}

// Update rekeys pos from oldKey to newKey in place, equivalent to Remove
// followed by Insert. It fails with DuplicateKeyError if newKey remains held
// after the remove step, leaving the index unchanged.
func (i *Index[K, P]) Update(oldKey, newKey K, pos P) error {
	if oldKey == newKey {
		if cur, ok := i.m[oldKey]; ok && cur != pos {
			return &index.DuplicateKeyError{Key: newKey}
		}

		i.m[newKey] = pos
		return nil
	}

	if _, ok := i.m[newKey]; ok {
		return &index.DuplicateKeyError{Key: newKey}
	}

	if cur, ok := i.m[oldKey]; ok && cur == pos {
		delete(i.m, oldKey)
	}

	i.m[newKey] = pos
	return nil
}

// Contains reports whether key is indexed.
func (i *Index[K, P]) Contains(key K) bool {
	_, ok := i.m[key]
	return ok
}

// Positions yields the single position held under key, if any.
func (i *Index[K, P]) Positions(key K) iter.Seq[P] {
	return func(yield func(P) bool) {
		if pos, ok := i.m[key]; ok {
			yield(pos)
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

// View copies the entries for the given keys into a new unique index.
func (i *Index[K, P]) View(keys []K) index.Index[K, P] {
	v := New[K, P]()
	for _, key := range keys {
		if pos, ok := i.m[key]; ok {
			v.m[key] = pos
		}
	}

	return v
}

// Kind identifies the strategy variant.
func (i *Index[K, P]) Kind() index.Kind {
	return index.KindUniqueHash
}
