// Package dense provides the direct-position index strategy: small unsigned
// integer keys address a slot array directly instead of hashing, with a
// roaring occupancy bitmap supplying min/max, ascending iteration and key-set
// algebra.
package dense

import (
	"iter"
	"math"
	"slices"

	"github.com/lima1909/lookups/index"
)

// Compile-time checks to ensure Index satisfies required interfaces.
var _ index.Index[uint32, int] = (*Index[uint32, int])(nil)
var _ index.Ordered[uint32] = (*Index[uint32, int])(nil)

// Options contains configuration options for the dense index.
type Options struct {
	// Bound is the largest admissible key, inclusive. Inserting beyond it
	// fails with KeyOutOfRangeError. Values of zero or beyond the 32-bit key
	// space fall back to the default.
	Bound uint64

	// UniqueKeys restricts every key to a single position, so a second insert
	// under an occupied key fails with DuplicateKeyError.
	UniqueKeys bool
}

// DefaultOptions contains the default configuration options for the dense index.
var DefaultOptions = Options{
	Bound: math.MaxUint32,
}

// Index is a direct-position index: the key itself is the offset into a slot
// array, so lookups never hash and min/max reduce to bitmap bounds. Memory
// grows with the largest inserted key; callers pick this strategy only for
// key domains known to be dense and bounded.
//
// It is not synchronized; callers serialize writers.
type Index[K index.Unsigned, P comparable] struct {
	slots [][]P
	keys  *keySet
	opts  Options
}

// New creates an empty dense index.
func New[K index.Unsigned, P comparable](optFns ...func(o *Options)) *Index[K, P] {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Bound == 0 || opts.Bound > math.MaxUint32 {
		opts.Bound = math.MaxUint32
	}

	return &Index[K, P]{
		keys: newKeySet(),
		opts: opts,
	}
}

// Insert registers pos under key, growing the slot array on demand. It fails
// with KeyOutOfRangeError beyond the configured bound, and in unique mode
// with DuplicateKeyError when the key is already occupied.
func (i *Index[K, P]) Insert(key K, pos P) error {
	k := uint64(key)
	if k > i.opts.Bound {
		return &index.KeyOutOfRangeError{Key: k, Bound: i.opts.Bound}
	}

	if i.opts.UniqueKeys && i.keys.Contains(uint32(k)) {
		return &index.DuplicateKeyError{Key: key}
	}

	i.grow(int(k))

	slot := i.slots[k]
	if slices.Contains(slot, pos) {
		return nil
	}

	i.slots[k] = append(slot, pos)
	i.keys.Add(uint32(k))

	return nil
}

// Validate reports KeyOutOfRangeError for keys beyond the bound and, in
// unique mode, DuplicateKeyError for occupied keys, without mutating state.
func (i *Index[K, P]) Validate(key K) error {
	k := uint64(key)
	if k > i.opts.Bound {
		return &index.KeyOutOfRangeError{Key: k, Bound: i.opts.Bound}
	}

	if i.opts.UniqueKeys && i.keys.Contains(uint32(k)) {
		return &index.DuplicateKeyError{Key: key}
	}

	return nil
}

// Remove deletes pos from the key's slot, preserving the order of the
// remaining positions and clearing the occupancy bit when the slot empties.
// It reports whether anything was removed.
func (i *Index[K, P]) Remove(key K, pos P) bool {
	k := uint64(key)
	if k >= uint64(len(i.slots)) {
		return false
	}

	slot := i.slots[k]

	at := slices.Index(slot, pos)
	if at < 0 {
		return false
	}

	slot = slices.Delete(slot, at, at+1)
	if len(slot) == 0 {
		i.slots[k] = nil
		i.keys.Remove(uint32(k))
		return true
	}

	i.slots[k] = slot
	return true
}

// Update moves pos from oldKey's slot to newKey's slot as one operation,
// validating bound and uniqueness before touching any state.
func (i *Index[K, P]) Update(oldKey, newKey K, pos P) error {
	nk := uint64(newKey)
	if nk > i.opts.Bound {
		return &index.KeyOutOfRangeError{Key: nk, Bound: i.opts.Bound}
	}

	if i.opts.UniqueKeys && i.keys.Contains(uint32(nk)) {
		// The insert step only succeeds if the remove step vacates the slot.
		if oldKey != newKey || !slices.Contains(i.slots[nk], pos) {
			return &index.DuplicateKeyError{Key: newKey}
		}
	}

	i.Remove(oldKey, pos)
	return i.Insert(newKey, pos)
}

// Contains reports whether key is occupied.
func (i *Index[K, P]) Contains(key K) bool {
	k := uint64(key)
	if k > i.opts.Bound {
		return false
	}

	return i.keys.Contains(uint32(k))
}

// Positions yields the positions in the key's slot in insertion order.
func (i *Index[K, P]) Positions(key K) iter.Seq[P] {
	return func(yield func(P) bool) {
		k := uint64(key)
		if k >= uint64(len(i.slots)) {
			return
		}

		for _, pos := range i.slots[k] {
			if !yield(pos) {
				return
			}
		}
	}
}

// Keys yields the occupied keys in ascending order.
func (i *Index[K, P]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range i.keys.Iterator() {
			if !yield(K(k)) {
				return
			}
		}
	}
}

// Len returns the number of occupied keys.
func (i *Index[K, P]) Len() int {
	return int(i.keys.Cardinality())
}

// MinKey returns the smallest occupied key, or false when the index is empty.
func (i *Index[K, P]) MinKey() (K, bool) {
	if i.keys.IsEmpty() {
		var zero K
		return zero, false
	}

	return K(i.keys.Min()), true
}

// MaxKey returns the largest occupied key, or false when the index is empty.
func (i *Index[K, P]) MaxKey() (K, bool) {
	if i.keys.IsEmpty() {
		var zero K
		return zero, false
	}

	return K(i.keys.Max()), true
}

// View copies the slots for the given keys into a new dense index with the
// same configuration.
func (i *Index[K, P]) View(keys []K) index.Index[K, P] {
	v := &Index[K, P]{
		keys: newKeySet(),
		opts: i.opts,
	}

	for _, key := range keys {
		k := uint64(key)
		if k >= uint64(len(i.slots)) || !i.keys.Contains(uint32(k)) {
			continue
		}

		v.grow(int(k))
		v.slots[k] = slices.Clone(i.slots[k])
		v.keys.Add(uint32(k))
	}

	return v
}

// Kind identifies the strategy variant.
func (i *Index[K, P]) Kind() index.Kind {
	return index.KindDense
}

// Union yields every key occupied in either index in ascending order together
// with its positions; for keys occupied in both, the receiver's positions win.
func (i *Index[K, P]) Union(other *Index[K, P]) iter.Seq2[K, []P] {
	return func(yield func(K, []P) bool) {
		ks := i.keys.Clone()
		ks.Or(other.keys)

		for k := range ks.Iterator() {
			if !yield(K(k), i.slotOr(other, k)) {
				return
			}
		}
	}
}

// Intersect yields every key occupied in both indices in ascending order
// together with the receiver's positions.
func (i *Index[K, P]) Intersect(other *Index[K, P]) iter.Seq2[K, []P] {
	return func(yield func(K, []P) bool) {
		ks := i.keys.Clone()
		ks.And(other.keys)

		for k := range ks.Iterator() {
			if !yield(K(k), slices.Clone(i.slots[k])) {
				return
			}
		}
	}
}

// Difference yields every key occupied in the receiver but not in other, in
// ascending order together with the receiver's positions.
func (i *Index[K, P]) Difference(other *Index[K, P]) iter.Seq2[K, []P] {
	return func(yield func(K, []P) bool) {
		ks := i.keys.Clone()
		ks.AndNot(other.keys)

		for k := range ks.Iterator() {
			if !yield(K(k), slices.Clone(i.slots[k])) {
				return
			}
		}
	}
}

func (i *Index[K, P]) grow(k int) {
	if k < len(i.slots) {
		return
	}

	i.slots = append(i.slots, make([][]P, k+1-len(i.slots))...)
}

func (i *Index[K, P]) slotOr(other *Index[K, P], k uint32) []P {
	if i.keys.Contains(k) {
		return slices.Clone(i.slots[k])
	}

	return slices.Clone(other.slots[k])
}
