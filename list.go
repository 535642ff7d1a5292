package lookups

import (
	"iter"
	"time"

	"github.com/lima1909/lookups/engine"
	"github.com/lima1909/lookups/index"
	"github.com/lima1909/lookups/index/dense"
	"github.com/lima1909/lookups/index/multi"
	"github.com/lima1909/lookups/index/unique"
)

// List couples a slot-stable store with a primary index strategy and any
// number of attached secondary ones. All mutations go through the wrapper:
// each one is validated against every index first and committed only when all
// of them admit it, so a constraint violation leaves store and indices
// untouched and no rollback path exists.
//
// A List is not synchronized for writers; callers serialize mutations. Reads
// through the facade may run concurrently while no mutation is in flight.
type List[K comparable, T any] struct {
	store   *engine.Slab[T]
	idx     index.Index[K, int]
	events  *engine.Dispatcher[int, T]
	lookup  *Lookup[K, int, T]
	metrics MetricsCollector
	logger  *Logger
}

// NewList indexes items with the given strategy, deriving each element's keys
// with extract. Elements keep the slot position assigned here for their whole
// lifetime. Under the default OnConflictReject policy a duplicate key in
// items fails the construction with ErrDuplicateKey.
func NewList[K comparable, T any](idx index.Index[K, int], extract index.KeysExtractor[T, K], items []T, optFns ...Option) (*List[K, T], error) {
	o := applyOptions(optFns)

	store := engine.NewSlab[T]()
	for _, item := range items {
		store.Insert(item)
	}

	events := engine.NewDispatcher(BindWithConflict(extract, idx, o.conflict))

	start := time.Now()
	err := events.OnBulkLoad(store.All())
	o.metricsCollector.RecordBulkLoad(len(items), time.Since(start), err)
	o.logger.LogBulkLoad(idx.Kind(), len(items), err)

	if err != nil {
		return nil, translateError(err)
	}

	l := &List[K, T]{
		store:   store,
		idx:     idx,
		events:  events,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}

	l.lookup = &Lookup[K, int, T]{
		idx:     idx,
		store:   store,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}

	return l, nil
}

// NewUniqueList indexes items by one unique key each: a duplicate key rejects
// the mutation that introduces it.
func NewUniqueList[K comparable, T any](extract index.KeyExtractor[T, K], items []T, optFns ...Option) (*List[K, T], error) {
	return NewList(unique.New[K, int](), singleKey(extract), items, optFns...)
}

// NewMultiList indexes items by one key each, with any number of elements per
// key. Retrieval per key follows insertion order.
func NewMultiList[K comparable, T any](extract index.KeyExtractor[T, K], items []T, optFns ...Option) (*List[K, T], error) {
	return NewList(multi.New[K, int](), singleKey(extract), items, optFns...)
}

// NewDenseList indexes items by a small unsigned integer key used as a direct
// array offset. WithBound caps the admissible keys; WithUniqueKeys makes it
// behave like a unique index. Key order is available through MinKey/MaxKey.
func NewDenseList[K index.Unsigned, T any](extract index.KeyExtractor[T, K], items []T, optFns ...Option) (*List[K, T], error) {
	o := applyOptions(optFns)

	idx := dense.New[K, int](func(do *dense.Options) {
		do.Bound = o.bound
		do.UniqueKeys = o.uniqueKeys
	})

	return NewList(idx, singleKey(extract), items, optFns...)
}

// singleKey adapts a one-key extractor to the key-set form the event protocol
// works on.
func singleKey[T any, K comparable](extract index.KeyExtractor[T, K]) index.KeysExtractor[T, K] {
	return func(item T) []K {
		return []K{extract(item)}
	}
}

// Push appends item and indexes it, returning its slot position. On a
// constraint violation nothing is stored or indexed.
func (l *List[K, T]) Push(item T) (int, error) {
	start := time.Now()

	pos, err := l.push(item)

	l.metrics.RecordInsert(time.Since(start), err)
	l.logger.LogInsert(l.idx.Kind(), pos, err)

	return pos, err
}

func (l *List[K, T]) push(item T) (int, error) {
	if err := l.events.ValidateInsert(item); err != nil {
		return 0, translateError(err)
	}

	pos := l.store.Insert(item)
	l.events.OnInsert(pos, item)

	return pos, nil
}

// Get retrieves the element at the given slot position. Native pass-through;
// the indices are not consulted.
func (l *List[K, T]) Get(pos int) (T, bool) {
	return l.store.Get(pos)
}

// Update applies fn to the element at pos and commits the result, rekeying
// every index from the old element's keys to the new ones. The updated
// element is returned. A vacant slot fails with ErrNotFound, an inadmissible
// key change with the index's error; either way nothing changes.
func (l *List[K, T]) Update(pos int, fn func(T) T) (T, error) {
	start := time.Now()

	item, err := l.update(pos, fn)

	l.metrics.RecordUpdate(time.Since(start), err)
	l.logger.LogUpdate(l.idx.Kind(), pos, err)

	return item, err
}

func (l *List[K, T]) update(pos int, fn func(T) T) (T, error) {
	var zero T

	old, ok := l.store.Get(pos)
	if !ok {
		return zero, translateError(engine.ErrNotFound)
	}

	item := fn(old)

	if err := l.events.ValidateUpdate(old, item); err != nil {
		return zero, translateError(err)
	}

	if err := l.store.Set(pos, item); err != nil {
		return zero, translateError(err)
	}

	l.events.OnUpdate(pos, old, item)

	return item, nil
}

// Remove deletes the element at pos from store and indices and returns it.
// The slot goes back to the free list for reuse by a later Push. Removing a
// vacant slot fails with ErrNotFound.
func (l *List[K, T]) Remove(pos int) (T, error) {
	start := time.Now()

	item, err := l.remove(pos)

	l.metrics.RecordRemove(time.Since(start), err)
	l.logger.LogRemove(l.idx.Kind(), pos, err)

	return item, err
}

func (l *List[K, T]) remove(pos int) (T, error) {
	var zero T

	item, ok := l.store.Get(pos)
	if !ok {
		return zero, translateError(engine.ErrNotFound)
	}

	if err := l.store.Delete(pos); err != nil {
		return zero, translateError(err)
	}

	l.events.OnRemove(pos, item)

	return item, nil
}

// Len returns the number of elements.
func (l *List[K, T]) Len() int {
	return l.store.Len()
}

// Lookup returns the read facade over the primary index.
func (l *List[K, T]) Lookup() *Lookup[K, int, T] {
	return l.lookup
}

// CreateView copies the entries for the given keys into an independent view.
// Shorthand for Lookup().CreateView.
func (l *List[K, T]) CreateView(keys ...K) *View[K, int, T] {
	return l.lookup.CreateView(keys...)
}

// Attach registers an additional index sink over the same store, replaying
// the current contents into it first so it answers as if registered at
// construction. The sink observes all subsequent mutations. Use Bind to turn
// an extractor and an index of any key type into a sink, and NewLookup with
// Store to query it.
func (l *List[K, T]) Attach(sink engine.Sink[int, T]) error {
	if err := sink.OnBulkLoad(l.store.All()); err != nil {
		return translateError(err)
	}

	l.events.Register(sink)

	return nil
}

// Store exposes the backing store read-only, for wiring facades over attached
// indices.
func (l *List[K, T]) Store() engine.Store[int, T] {
	return l.store
}

// All returns an iterator over position/element pairs in ascending position
// order. The store is read-locked for the duration of one iteration; do not
// mutate from inside the loop body.
func (l *List[K, T]) All() iter.Seq2[int, T] {
	return l.store.All()
}
