// Package lookups provides secondary indices over in-memory collections.
//
// This file implements strategy-specific fluent builder APIs for creating and configuring indexed collections.
// Builders are immutable - each method returns a new builder with the updated configuration.
package lookups

import (
	"github.com/lima1909/lookups/index"
)

// =============================================================================
// Unique List Builder (Immutable)
// =============================================================================

// Unique creates a builder for a list indexed by one unique key per element.
// A duplicate key rejects the mutation that introduces it.
//
// The builder is immutable - each method returns a new builder with the updated configuration.
// This ensures thread-safety and prevents accidental state sharing.
//
// Example:
//
//	l, err := lookups.Unique(func(c Car) uint32 { return c.ID }).
//	    Items(cars...).
//	    OnConflict(lookups.OnConflictKeepLast).
//	    Build()
func Unique[T any, K comparable](extract index.KeyExtractor[T, K]) UniqueBuilder[T, K] {
	return UniqueBuilder[T, K]{
		extract: extract,
	}
}

// UniqueBuilder is an immutable fluent builder for unique-indexed lists.
// Each method returns a new builder with the updated configuration.
type UniqueBuilder[T any, K comparable] struct {
	extract  index.KeyExtractor[T, K]
	items    []T
	conflict OnConflict
	logger   *Logger
	metrics  MetricsCollector
}

// Items sets the initial elements, indexed in one bulk load.
func (b UniqueBuilder[T, K]) Items(items ...T) UniqueBuilder[T, K] {
	b.items = items
	return b
}

// OnConflict sets the bulk-load duplicate-key policy.
// Default: OnConflictReject.
func (b UniqueBuilder[T, K]) OnConflict(c OnConflict) UniqueBuilder[T, K] {
	b.conflict = c
	return b
}

// Logger sets the structured logger for operation tracing.
func (b UniqueBuilder[T, K]) Logger(l *Logger) UniqueBuilder[T, K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b UniqueBuilder[T, K]) Metrics(mc MetricsCollector) UniqueBuilder[T, K] {
	b.metrics = mc
	return b
}

// Build creates the unique-indexed list.
func (b UniqueBuilder[T, K]) Build() (*List[K, T], error) {
	var opts []Option
	if b.conflict != OnConflictReject {
		opts = append(opts, WithOnConflict(b.conflict))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return NewUniqueList(b.extract, b.items, opts...)
}

// MustBuild creates the list, panicking on error.
func (b UniqueBuilder[T, K]) MustBuild() *List[K, T] {
	l, err := b.Build()
	if err != nil {
		panic(err)
	}
	return l
}

// =============================================================================
// Multi List Builder (Immutable)
// =============================================================================

// Multi creates a builder for a list indexed by one key per element, with any
// number of elements per key. Retrieval per key follows insertion order.
//
// Example:
//
//	l, err := lookups.Multi(func(p Person) string { return p.Name }).
//	    Items(people...).
//	    Build()
func Multi[T any, K comparable](extract index.KeyExtractor[T, K]) MultiBuilder[T, K] {
	return MultiBuilder[T, K]{
		extract: extract,
	}
}

// MultiBuilder is an immutable fluent builder for multi-indexed lists.
type MultiBuilder[T any, K comparable] struct {
	extract index.KeyExtractor[T, K]
	items   []T
	logger  *Logger
	metrics MetricsCollector
}

// Items sets the initial elements, indexed in one bulk load.
func (b MultiBuilder[T, K]) Items(items ...T) MultiBuilder[T, K] {
	b.items = items
	return b
}

// Logger sets the structured logger for operation tracing.
func (b MultiBuilder[T, K]) Logger(l *Logger) MultiBuilder[T, K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b MultiBuilder[T, K]) Metrics(mc MetricsCollector) MultiBuilder[T, K] {
	b.metrics = mc
	return b
}

// Build creates the multi-indexed list.
func (b MultiBuilder[T, K]) Build() (*List[K, T], error) {
	var opts []Option
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return NewMultiList(b.extract, b.items, opts...)
}

// MustBuild creates the list, panicking on error.
func (b MultiBuilder[T, K]) MustBuild() *List[K, T] {
	l, err := b.Build()
	if err != nil {
		panic(err)
	}
	return l
}

// =============================================================================
// Dense List Builder (Immutable)
// =============================================================================

// Dense creates a builder for a list indexed by a small unsigned integer key
// used as a direct array offset. Keys carry a total order, so the facade
// answers MinKey/MaxKey.
//
// The key domain should be dense and bounded; a sparse domain degrades to
// pathological memory use.
//
// Example:
//
//	l, err := lookups.Dense(func(c Car) uint32 { return c.ID }).
//	    Bound(10_000).
//	    UniqueKeys().
//	    Items(cars...).
//	    Build()
func Dense[T any, K index.Unsigned](extract index.KeyExtractor[T, K]) DenseBuilder[T, K] {
	return DenseBuilder[T, K]{
		extract: extract,
	}
}

// DenseBuilder is an immutable fluent builder for dense-indexed lists.
type DenseBuilder[T any, K index.Unsigned] struct {
	extract    index.KeyExtractor[T, K]
	items      []T
	bound      uint64
	uniqueKeys bool
	conflict   OnConflict
	logger     *Logger
	metrics    MetricsCollector
}

// Items sets the initial elements, indexed in one bulk load.
func (b DenseBuilder[T, K]) Items(items ...T) DenseBuilder[T, K] {
	b.items = items
	return b
}

// Bound caps the admissible keys, inclusive. Keys beyond it are rejected
// with ErrKeyOutOfRange.
func (b DenseBuilder[T, K]) Bound(n uint64) DenseBuilder[T, K] {
	b.bound = n
	return b
}

// UniqueKeys restricts every key to at most one element, like a unique index.
func (b DenseBuilder[T, K]) UniqueKeys() DenseBuilder[T, K] {
	b.uniqueKeys = true
	return b
}

// OnConflict sets the bulk-load duplicate-key policy; it only applies
// together with UniqueKeys. Default: OnConflictReject.
func (b DenseBuilder[T, K]) OnConflict(c OnConflict) DenseBuilder[T, K] {
	b.conflict = c
	return b
}

// Logger sets the structured logger for operation tracing.
func (b DenseBuilder[T, K]) Logger(l *Logger) DenseBuilder[T, K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b DenseBuilder[T, K]) Metrics(mc MetricsCollector) DenseBuilder[T, K] {
	b.metrics = mc
	return b
}

// Build creates the dense-indexed list.
func (b DenseBuilder[T, K]) Build() (*List[K, T], error) {
	var opts []Option
	if b.bound > 0 {
		opts = append(opts, WithBound(b.bound))
	}
	if b.uniqueKeys {
		opts = append(opts, WithUniqueKeys())
	}
	if b.conflict != OnConflictReject {
		opts = append(opts, WithOnConflict(b.conflict))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return NewDenseList(b.extract, b.items, opts...)
}

// MustBuild creates the list, panicking on error.
func (b DenseBuilder[T, K]) MustBuild() *List[K, T] {
	l, err := b.Build()
	if err != nil {
		panic(err)
	}
	return l
}

// =============================================================================
// Unique Map Builder (Immutable)
// =============================================================================

// UniqueMap creates a builder for a native-key map indexed by one unique
// derived key per element. The native key type is given explicitly, the rest
// is inferred from the extractor:
//
//	m, err := lookups.UniqueMap[string](func(c Car) uint32 { return c.ID }).
//	    Items(carsByPlate).
//	    Build()
func UniqueMap[NK comparable, T any, K comparable](extract index.KeyExtractor[T, K]) UniqueMapBuilder[NK, T, K] {
	return UniqueMapBuilder[NK, T, K]{
		extract: extract,
	}
}

// UniqueMapBuilder is an immutable fluent builder for unique-indexed maps.
type UniqueMapBuilder[NK comparable, T any, K comparable] struct {
	extract  index.KeyExtractor[T, K]
	items    map[NK]T
	conflict OnConflict
	logger   *Logger
	metrics  MetricsCollector
}

// Items sets the initial elements, indexed in one bulk load in map order.
func (b UniqueMapBuilder[NK, T, K]) Items(items map[NK]T) UniqueMapBuilder[NK, T, K] {
	b.items = items
	return b
}

// OnConflict sets the bulk-load duplicate-key policy.
// Default: OnConflictReject.
func (b UniqueMapBuilder[NK, T, K]) OnConflict(c OnConflict) UniqueMapBuilder[NK, T, K] {
	b.conflict = c
	return b
}

// Logger sets the structured logger for operation tracing.
func (b UniqueMapBuilder[NK, T, K]) Logger(l *Logger) UniqueMapBuilder[NK, T, K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b UniqueMapBuilder[NK, T, K]) Metrics(mc MetricsCollector) UniqueMapBuilder[NK, T, K] {
	b.metrics = mc
	return b
}

// Build creates the unique-indexed map.
func (b UniqueMapBuilder[NK, T, K]) Build() (*HashMap[NK, K, T], error) {
	var opts []Option
	if b.conflict != OnConflictReject {
		opts = append(opts, WithOnConflict(b.conflict))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return NewUniqueMap(b.extract, b.items, opts...)
}

// MustBuild creates the map, panicking on error.
func (b UniqueMapBuilder[NK, T, K]) MustBuild() *HashMap[NK, K, T] {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// =============================================================================
// Multi Map Builder (Immutable)
// =============================================================================

// MultiMap creates a builder for a native-key map indexed by one derived key
// per element, with any number of elements per key.
func MultiMap[NK comparable, T any, K comparable](extract index.KeyExtractor[T, K]) MultiMapBuilder[NK, T, K] {
	return MultiMapBuilder[NK, T, K]{
		extract: extract,
	}
}

// MultiMapBuilder is an immutable fluent builder for multi-indexed maps.
type MultiMapBuilder[NK comparable, T any, K comparable] struct {
	extract index.KeyExtractor[T, K]
	items   map[NK]T
	logger  *Logger
	metrics MetricsCollector
}

// Items sets the initial elements, indexed in one bulk load in map order.
func (b MultiMapBuilder[NK, T, K]) Items(items map[NK]T) MultiMapBuilder[NK, T, K] {
	b.items = items
	return b
}

// Logger sets the structured logger for operation tracing.
func (b MultiMapBuilder[NK, T, K]) Logger(l *Logger) MultiMapBuilder[NK, T, K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b MultiMapBuilder[NK, T, K]) Metrics(mc MetricsCollector) MultiMapBuilder[NK, T, K] {
	b.metrics = mc
	return b
}

// Build creates the multi-indexed map.
func (b MultiMapBuilder[NK, T, K]) Build() (*HashMap[NK, K, T], error) {
	var opts []Option
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return NewMultiMap(b.extract, b.items, opts...)
}

// MustBuild creates the map, panicking on error.
func (b MultiMapBuilder[NK, T, K]) MustBuild() *HashMap[NK, K, T] {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// =============================================================================
// Dense Map Builder (Immutable)
// =============================================================================

// DenseMap creates a builder for a native-key map indexed by a small unsigned
// integer key used as a direct array offset.
func DenseMap[NK comparable, T any, K index.Unsigned](extract index.KeyExtractor[T, K]) DenseMapBuilder[NK, T, K] {
	return DenseMapBuilder[NK, T, K]{
		extract: extract,
	}
}

// DenseMapBuilder is an immutable fluent builder for dense-indexed maps.
type DenseMapBuilder[NK comparable, T any, K index.Unsigned] struct {
	extract    index.KeyExtractor[T, K]
	items      map[NK]T
	bound      uint64
	uniqueKeys bool
	conflict   OnConflict
	logger     *Logger
	metrics    MetricsCollector
}

// Items sets the initial elements, indexed in one bulk load in map order.
func (b DenseMapBuilder[NK, T, K]) Items(items map[NK]T) DenseMapBuilder[NK, T, K] {
	b.items = items
	return b
}

// Bound caps the admissible keys, inclusive.
func (b DenseMapBuilder[NK, T, K]) Bound(n uint64) DenseMapBuilder[NK, T, K] {
	b.bound = n
	return b
}

// UniqueKeys restricts every key to at most one element.
func (b DenseMapBuilder[NK, T, K]) UniqueKeys() DenseMapBuilder[NK, T, K] {
	b.uniqueKeys = true
	return b
}

// OnConflict sets the bulk-load duplicate-key policy; it only applies
// together with UniqueKeys. Default: OnConflictReject.
func (b DenseMapBuilder[NK, T, K]) OnConflict(c OnConflict) DenseMapBuilder[NK, T, K] {
	b.conflict = c
	return b
}

// Logger sets the structured logger for operation tracing.
func (b DenseMapBuilder[NK, T, K]) Logger(l *Logger) DenseMapBuilder[NK, T, K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b DenseMapBuilder[NK, T, K]) Metrics(mc MetricsCollector) DenseMapBuilder[NK, T, K] {
	b.metrics = mc
	return b
}

// Build creates the dense-indexed map.
func (b DenseMapBuilder[NK, T, K]) Build() (*HashMap[NK, K, T], error) {
	var opts []Option
	if b.bound > 0 {
		opts = append(opts, WithBound(b.bound))
	}
	if b.uniqueKeys {
		opts = append(opts, WithUniqueKeys())
	}
	if b.conflict != OnConflictReject {
		opts = append(opts, WithOnConflict(b.conflict))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return NewDenseMap(b.extract, b.items, opts...)
}

// MustBuild creates the map, panicking on error.
func (b DenseMapBuilder[NK, T, K]) MustBuild() *HashMap[NK, K, T] {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
