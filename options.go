package lookups

import (
	"fmt"
	"log/slog"
	"math"
)

// OnConflict controls how the construction-time bulk load treats duplicate
// keys under a unique index. Incremental mutations always reject duplicates;
// the policy applies to bulk load only.
type OnConflict int

const (
	// OnConflictReject aborts the bulk load on the first duplicate key.
	// This is the default.
	OnConflictReject OnConflict = iota

	// OnConflictKeepFirst keeps the item already indexed and skips the
	// conflicting one.
	OnConflictKeepFirst

	// OnConflictKeepLast displaces the item already indexed in favor of the
	// conflicting one.
	OnConflictKeepLast
)

// String implements fmt.Stringer.
func (c OnConflict) String() string {
	switch c {
	case OnConflictReject:
		return "reject"
	case OnConflictKeepFirst:
		return "keep-first"
	case OnConflictKeepLast:
		return "keep-last"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	conflict         OnConflict
	bound            uint64
	uniqueKeys       bool
}

// Option configures constructor behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. conflict-policy-specific constructor variants).
type Option func(*options)

// WithOnConflict configures the bulk-load conflict policy for unique indices.
//
// Example:
//
//	l, err := lookups.NewUniqueList(carID, cars, lookups.WithOnConflict(lookups.OnConflictKeepLast))
func WithOnConflict(c OnConflict) Option {
	return func(o *options) {
		o.conflict = c
	}
}

// WithBound configures the largest key a position-backed index accepts.
// Keys greater than the bound are rejected with ErrKeyOutOfRange.
//
// Only position-backed (dense) indices consult the bound; hash-backed
// indices ignore it.
func WithBound(bound uint64) Option {
	return func(o *options) {
		o.bound = bound
	}
}

// WithUniqueKeys configures a position-backed index to enforce at most one
// element per key, like a hash-backed unique index.
func WithUniqueKeys() Option {
	return func(o *options) {
		o.uniqueKeys = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lookups.BasicMetricsCollector{}
//	l, _ := lookups.NewUniqueList(carID, cars, lookups.WithMetricsCollector(metrics))
//	// ... use l ...
//	stats := metrics.GetStats()
//	fmt.Printf("Lookups: %d, Avg latency: %dns\n", stats.LookupCount, stats.LookupAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lookups.NewJSONLogger(slog.LevelInfo)
//	l, _ := lookups.NewUniqueList(carID, cars, lookups.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		conflict:         OnConflictReject,
		bound:            math.MaxUint32,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
