package lookups

import (
	"iter"
	"slices"
	"time"

	"github.com/lima1909/lookups/engine"
	"github.com/lima1909/lookups/index"
	"github.com/lima1909/lookups/index/dense"
	"github.com/lima1909/lookups/index/multi"
	"github.com/lima1909/lookups/index/unique"
)

// HashMap couples a native-key store with a primary index strategy and any
// number of attached secondary ones. The native key doubles as the position
// type, so indices map derived keys straight to native keys. Mutations are
// validated against every index before committing, like List.
type HashMap[NK comparable, K comparable, T any] struct {
	store   *engine.MapStore[NK, T]
	idx     index.Index[K, NK]
	events  *engine.Dispatcher[NK, T]
	lookup  *Lookup[K, NK, T]
	metrics MetricsCollector
	logger  *Logger
}

// NewHashMap indexes items with the given strategy, deriving each element's
// keys with extract. The bulk load visits items in map order; under a
// KeepFirst or KeepLast conflict policy the surviving element is therefore
// not deterministic when the initial items conflict.
func NewHashMap[NK comparable, K comparable, T any](idx index.Index[K, NK], extract index.KeysExtractor[T, K], items map[NK]T, optFns ...Option) (*HashMap[NK, K, T], error) {
	o := applyOptions(optFns)

	store := engine.NewMapStore[NK, T]()
	for key, item := range items {
		if err := store.Set(key, item); err != nil {
			return nil, translateError(err)
		}
	}

	events := engine.NewDispatcher(BindWithConflict(extract, idx, o.conflict))

	start := time.Now()
	err := events.OnBulkLoad(store.All())
	o.metricsCollector.RecordBulkLoad(len(items), time.Since(start), err)
	o.logger.LogBulkLoad(idx.Kind(), len(items), err)

	if err != nil {
		return nil, translateError(err)
	}

	m := &HashMap[NK, K, T]{
		store:   store,
		idx:     idx,
		events:  events,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}

	m.lookup = &Lookup[K, NK, T]{
		idx:     idx,
		store:   store,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}

	return m, nil
}

// NewUniqueMap indexes items by one unique derived key each.
func NewUniqueMap[NK comparable, K comparable, T any](extract index.KeyExtractor[T, K], items map[NK]T, optFns ...Option) (*HashMap[NK, K, T], error) {
	return NewHashMap(unique.New[K, NK](), singleKey(extract), items, optFns...)
}

// NewMultiMap indexes items by one derived key each, with any number of
// elements per key.
func NewMultiMap[NK comparable, K comparable, T any](extract index.KeyExtractor[T, K], items map[NK]T, optFns ...Option) (*HashMap[NK, K, T], error) {
	return NewHashMap(multi.New[K, NK](), singleKey(extract), items, optFns...)
}

// NewDenseMap indexes items by a small unsigned integer key used as a direct
// array offset, with MinKey/MaxKey available through the facade.
func NewDenseMap[NK comparable, K index.Unsigned, T any](extract index.KeyExtractor[T, K], items map[NK]T, optFns ...Option) (*HashMap[NK, K, T], error) {
	o := applyOptions(optFns)

	idx := dense.New[K, NK](func(do *dense.Options) {
		do.Bound = o.bound
		do.UniqueKeys = o.uniqueKeys
	})

	return NewHashMap(idx, singleKey(extract), items, optFns...)
}

// Insert stores item under the given native key and indexes it. Inserting an
// existing native key behaves as an update: the old element's keys are
// unindexed, the new element's keys indexed, Len is unchanged. On a
// constraint violation nothing is stored or indexed.
func (m *HashMap[NK, K, T]) Insert(key NK, item T) error {
	start := time.Now()

	err := m.insert(key, item)

	m.metrics.RecordInsert(time.Since(start), err)
	m.logger.LogInsert(m.idx.Kind(), key, err)

	return err
}

func (m *HashMap[NK, K, T]) insert(key NK, item T) error {
	if old, ok := m.store.Get(key); ok {
		if err := m.events.ValidateUpdate(old, item); err != nil {
			return translateError(err)
		}

		if err := m.store.Set(key, item); err != nil {
			return translateError(err)
		}

		m.events.OnUpdate(key, old, item)

		return nil
	}

	if err := m.events.ValidateInsert(item); err != nil {
		return translateError(err)
	}

	if err := m.store.Set(key, item); err != nil {
		return translateError(err)
	}

	m.events.OnInsert(key, item)

	return nil
}

// Get retrieves the element stored under the given native key. Native
// pass-through; the indices are not consulted.
func (m *HashMap[NK, K, T]) Get(key NK) (T, bool) {
	return m.store.Get(key)
}

// Update applies fn to the element under the given native key and commits
// the result, rekeying every index. An absent key fails with ErrNotFound, an
// inadmissible key change with the index's error; either way nothing changes.
func (m *HashMap[NK, K, T]) Update(key NK, fn func(T) T) (T, error) {
	start := time.Now()

	item, err := m.update(key, fn)

	m.metrics.RecordUpdate(time.Since(start), err)
	m.logger.LogUpdate(m.idx.Kind(), key, err)

	return item, err
}

func (m *HashMap[NK, K, T]) update(key NK, fn func(T) T) (T, error) {
	var zero T

	old, ok := m.store.Get(key)
	if !ok {
		return zero, translateError(engine.ErrNotFound)
	}

	item := fn(old)

	if err := m.events.ValidateUpdate(old, item); err != nil {
		return zero, translateError(err)
	}

	if err := m.store.Set(key, item); err != nil {
		return zero, translateError(err)
	}

	m.events.OnUpdate(key, old, item)

	return item, nil
}

// Remove deletes the element under the given native key from store and
// indices and returns it. An absent key fails with ErrNotFound.
func (m *HashMap[NK, K, T]) Remove(key NK) (T, error) {
	start := time.Now()

	item, err := m.remove(key)

	m.metrics.RecordRemove(time.Since(start), err)
	m.logger.LogRemove(m.idx.Kind(), key, err)

	return item, err
}

func (m *HashMap[NK, K, T]) remove(key NK) (T, error) {
	var zero T

	item, ok := m.store.Get(key)
	if !ok {
		return zero, translateError(engine.ErrNotFound)
	}

	if err := m.store.Delete(key); err != nil {
		return zero, translateError(err)
	}

	m.events.OnRemove(key, item)

	return item, nil
}

// UpdateByKey applies fn to every element the primary index resolves for the
// derived key, one native mutation each, and returns how many were updated.
// Each mutation is atomic on its own; if one fails the earlier ones stay
// committed and the count of those is returned with the error.
func (m *HashMap[NK, K, T]) UpdateByKey(key K, fn func(T) T) (int, error) {
	start := time.Now()

	count, err := m.updateByKey(key, fn)

	m.metrics.RecordUpdate(time.Since(start), err)
	m.logger.LogUpdate(m.idx.Kind(), key, err)

	return count, err
}

func (m *HashMap[NK, K, T]) updateByKey(key K, fn func(T) T) (int, error) {
	// Materialized first: the mutations below edit the position set being
	// iterated.
	natives := slices.Collect(m.idx.Positions(key))

	for n, nk := range natives {
		if _, err := m.update(nk, fn); err != nil {
			return n, err
		}
	}

	return len(natives), nil
}

// RemoveByKey removes every element the primary index resolves for the
// derived key and returns how many were removed. Absent keys remove nothing.
func (m *HashMap[NK, K, T]) RemoveByKey(key K) (int, error) {
	start := time.Now()

	count, err := m.removeByKey(key)

	m.metrics.RecordRemove(time.Since(start), err)
	m.logger.LogRemove(m.idx.Kind(), key, err)

	return count, err
}

func (m *HashMap[NK, K, T]) removeByKey(key K) (int, error) {
	natives := slices.Collect(m.idx.Positions(key))

	for n, nk := range natives {
		if _, err := m.remove(nk); err != nil {
			return n, err
		}
	}

	return len(natives), nil
}

// Len returns the number of elements.
func (m *HashMap[NK, K, T]) Len() int {
	return m.store.Len()
}

// Lookup returns the read facade over the primary index.
func (m *HashMap[NK, K, T]) Lookup() *Lookup[K, NK, T] {
	return m.lookup
}

// CreateView copies the entries for the given keys into an independent view.
// Shorthand for Lookup().CreateView.
func (m *HashMap[NK, K, T]) CreateView(keys ...K) *View[K, NK, T] {
	return m.lookup.CreateView(keys...)
}

// Attach registers an additional index sink over the same store, replaying
// the current contents into it first. The sink observes all subsequent
// mutations.
func (m *HashMap[NK, K, T]) Attach(sink engine.Sink[NK, T]) error {
	if err := sink.OnBulkLoad(m.store.All()); err != nil {
		return translateError(err)
	}

	m.events.Register(sink)

	return nil
}

// Store exposes the backing store read-only, for wiring facades over
// attached indices.
func (m *HashMap[NK, K, T]) Store() engine.Store[NK, T] {
	return m.store
}

// All returns an iterator over native-key/element pairs in map order. The
// store is read-locked for the duration of one iteration; do not mutate from
// inside the loop body.
func (m *HashMap[NK, K, T]) All() iter.Seq2[NK, T] {
	return m.store.All()
}
