// Package index provides the contract and shared types for lookup index strategies.
package index

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrDuplicateKey is returned when a unique-keyed strategy would map a
	// second position to an already-present key.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrKeyOutOfRange is returned when a direct-position strategy receives a
	// key beyond its configured bound.
	ErrKeyOutOfRange = errors.New("key out of range")
)

// DuplicateKeyError is a named error type carrying the offending key.
//
// It unwraps to ErrDuplicateKey, so errors.Is works against the sentinel.
type DuplicateKeyError struct {
	Key any
}

// Error returns the error message for a duplicate key.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %v", e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// KeyOutOfRangeError is a named error type for keys beyond the configured
// bound of a direct-position strategy.
//
// It unwraps to ErrKeyOutOfRange, so errors.Is works against the sentinel.
type KeyOutOfRangeError struct {
	Key   uint64 // Rejected key
	Bound uint64 // Configured upper bound
}

// Error returns the error message for an out-of-range key.
func (e *KeyOutOfRangeError) Error() string {
	return fmt.Sprintf("key out of range: %d exceeds bound %d", e.Key, e.Bound)
}

func (e *KeyOutOfRangeError) Unwrap() error { return ErrKeyOutOfRange }

// KeyExtractor derives the index key from an element.
// It must be pure: the same element always yields the same key.
type KeyExtractor[T any, K comparable] func(T) K

// KeysExtractor derives a set of index keys from an element, for indices
// where one element is reachable under several keys.
type KeysExtractor[T any, K comparable] func(T) []K

// Unsigned constrains the key types usable as direct array offsets.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Kind identifies an index strategy variant.
type Kind int

// Constants representing the index strategy variants.
const (
	KindUniqueHash Kind = iota
	KindMultiHash
	KindDense
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindUniqueHash:
		return "UniqueHash"
	case KindMultiHash:
		return "MultiHash"
	case KindDense:
		return "Dense"
	default:
		return "Unknown"
	}
}

// Index maps keys to positions in a backing store. K is the key type derived
// by an extractor, P the position type of the store (a slot for list-backed
// stores, the native key for map-backed stores).
//
// Implementations are not synchronized; callers serialize writers.
type Index[K comparable, P comparable] interface {
	// Insert registers pos under key. Unique-keyed strategies fail with
	// DuplicateKeyError and leave the index unchanged; direct-position
	// strategies fail with KeyOutOfRangeError beyond their bound.
	Insert(key K, pos P) error

	// Validate reports whether key could be inserted without violating the
	// strategy's constraints. It must not mutate state; wrappers use it to
	// dry-run a mutation against all strategies before committing.
	Validate(key K) error

	// Remove deletes pos from the key's position set, dropping the key entry
	// when the set empties. It reports whether anything was removed; removing
	// a never-indexed pair is not an error.
	Remove(key K, pos P) bool

	// Update moves pos from oldKey to newKey as one operation.
	Update(oldKey, newKey K, pos P) error

	// Contains reports whether key is indexed.
	Contains(key K) bool

	// Positions returns a lazy, restartable sequence of the positions indexed
	// under key: empty for an absent key, a single position for unique
	// strategies, insertion-ordered positions for multi-valued strategies.
	Positions(key K) iter.Seq[P]

	// Keys returns a sequence over all indexed keys. Hash-backed strategies
	// yield in no particular order; the dense strategy yields ascending.
	Keys() iter.Seq[K]

	// Len returns the number of distinct keys.
	Len() int

	// View returns a new index of the same kind holding copies of the entries
	// for the given keys; absent keys contribute nothing.
	View(keys []K) Index[K, P]

	// Kind identifies the strategy variant.
	Kind() Kind
}

// Ordered is implemented by strategies with a total order on keys.
type Ordered[K comparable] interface {
	// MinKey returns the smallest indexed key, or false when empty.
	MinKey() (K, bool)

	// MaxKey returns the largest indexed key, or false when empty.
	MaxKey() (K, bool)
}
