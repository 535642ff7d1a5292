package lookups

import (
	"iter"
	"slices"
	"time"

	"github.com/lima1909/lookups/engine"
	"github.com/lima1909/lookups/index"
)

// Lookup is the read facade over one index strategy and the store it
// addresses. Lookups resolve positions through the store when the returned
// sequence is consumed; a position whose slot has been vacated since is
// skipped rather than surfaced as an error.
//
// Absent keys are not errors either: they yield empty sequences and false
// answers.
type Lookup[K comparable, P comparable, T any] struct {
	idx     index.Index[K, P]
	store   engine.Store[P, T]
	metrics MetricsCollector
	logger  *Logger
}

// NewLookup creates a read facade over an index and the store it addresses.
// The collection wrappers construct one per indexed collection; standalone
// construction is for callers managing index and store by hand.
func NewLookup[K comparable, P comparable, T any](idx index.Index[K, P], store engine.Store[P, T], optFns ...Option) *Lookup[K, P, T] {
	o := applyOptions(optFns)

	return &Lookup[K, P, T]{
		idx:     idx,
		store:   store,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}
}

// ContainsKey reports whether at least one element is indexed under key.
func (l *Lookup[K, P, T]) ContainsKey(key K) bool {
	start := time.Now()
	ok := l.idx.Contains(key)
	l.metrics.RecordLookup(time.Since(start))

	return ok
}

// GetByKey returns a lazy, restartable sequence over the elements indexed
// under key: empty for an absent key, a single element for unique strategies,
// insertion-ordered elements for multi-valued strategies.
//
// The position set is fixed when GetByKey is called; elements are read from
// the store per yield, so a slot vacated between call and consumption is
// skipped.
func (l *Lookup[K, P, T]) GetByKey(key K) iter.Seq[T] {
	start := time.Now()
	positions := slices.Collect(l.idx.Positions(key))
	l.metrics.RecordLookup(time.Since(start))

	return l.resolve(positions)
}

// GetByManyKeys returns the concatenation of GetByKey for each key, in
// argument order. Keys may repeat and positions reachable under several keys
// are yielded once per key; absent keys contribute nothing.
func (l *Lookup[K, P, T]) GetByManyKeys(keys ...K) iter.Seq[T] {
	start := time.Now()

	var positions []P
	for _, key := range keys {
		positions = slices.AppendSeq(positions, l.idx.Positions(key))
	}

	l.metrics.RecordLookup(time.Since(start))

	return l.resolve(positions)
}

// PositionsByKey returns the store positions indexed under key, resolved at
// call time. Most callers want GetByKey; raw positions are for feeding a
// component that addresses the store directly.
func (l *Lookup[K, P, T]) PositionsByKey(key K) []P {
	return slices.Collect(l.idx.Positions(key))
}

// MinKey returns the smallest indexed key. It reports false when the index is
// empty or the strategy has no key order (hash-backed strategies do not).
func (l *Lookup[K, P, T]) MinKey() (K, bool) {
	if ord, ok := l.idx.(index.Ordered[K]); ok {
		return ord.MinKey()
	}

	var zero K
	return zero, false
}

// MaxKey returns the largest indexed key. It reports false when the index is
// empty or the strategy has no key order.
func (l *Lookup[K, P, T]) MaxKey() (K, bool) {
	if ord, ok := l.idx.(index.Ordered[K]); ok {
		return ord.MaxKey()
	}

	var zero K
	return zero, false
}

// Keys returns a sequence over all indexed keys. Hash-backed strategies yield
// in no particular order; the dense strategy yields ascending.
func (l *Lookup[K, P, T]) Keys() iter.Seq[K] {
	return l.idx.Keys()
}

// Len returns the number of distinct indexed keys.
func (l *Lookup[K, P, T]) Len() int {
	return l.idx.Len()
}

// Kind identifies the index strategy behind the facade.
func (l *Lookup[K, P, T]) Kind() index.Kind {
	return l.idx.Kind()
}

// CreateView copies the entries for the given keys into an independent view:
// the key-to-position mapping and the elements those positions resolve to at
// creation time. Absent keys contribute nothing, and positions whose slot is
// vacant at creation time are dropped from the snapshot.
//
// The cost is proportional to the number of resolved positions, not to the
// size of the source collection.
func (l *Lookup[K, P, T]) CreateView(keys ...K) *View[K, P, T] {
	start := time.Now()

	vidx := l.idx.View(keys)

	snap := make(snapshotStore[P, T])
	for key := range vidx.Keys() {
		for pos := range vidx.Positions(key) {
			if _, ok := snap[pos]; ok {
				continue
			}

			if item, ok := l.store.Get(pos); ok {
				snap[pos] = item
			}
		}
	}

	l.metrics.RecordCreateView(time.Since(start))
	l.logger.LogCreateView(vidx.Kind(), vidx.Len(), len(snap))

	return &View[K, P, T]{
		Lookup: Lookup[K, P, T]{
			idx:     vidx,
			store:   snap,
			metrics: l.metrics,
			logger:  l.logger,
		},
	}
}

// resolve derefs a fixed position set through the store, lazily and
// restartably, skipping vacated slots.
func (l *Lookup[K, P, T]) resolve(positions []P) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, pos := range positions {
			item, ok := l.store.Get(pos)
			if !ok {
				continue
			}

			if !yield(item) {
				return
			}
		}
	}
}

// View is a self-contained lookup over a subset of keys. It owns copies of
// its entries, so later mutations of the source collection are not reflected
// and the view stays valid after the source is gone.
type View[K comparable, P comparable, T any] struct {
	Lookup[K, P, T]
}

// snapshotStore backs a view with the element copies taken at creation time.
type snapshotStore[P comparable, T any] map[P]T

// Compile-time check to ensure snapshotStore satisfies the Store interface.
var _ engine.Store[int, string] = (snapshotStore[int, string])(nil)

// Get retrieves the element copied for the given position.
func (s snapshotStore[P, T]) Get(pos P) (T, bool) {
	item, ok := s[pos]
	return item, ok
}

// Len returns the number of copied elements.
func (s snapshotStore[P, T]) Len() int {
	return len(s)
}
