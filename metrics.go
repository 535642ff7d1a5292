package lookups

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter   prometheus.Counter
//	    lookupHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(duration time.Duration, err error) {
//	    p.insertCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordBulkLoad is called after the construction-time bulk load.
	// count is the number of items attempted, duration is the total time taken,
	// err is nil if all items were indexed.
	RecordBulkLoad(count int, duration time.Duration, err error)

	// RecordLookup is called after each key lookup through the read facade.
	RecordLookup(duration time.Duration)

	// RecordRemove is called after each remove operation.
	RecordRemove(duration time.Duration, err error)

	// RecordUpdate is called after each update operation.
	RecordUpdate(duration time.Duration, err error)

	// RecordCreateView is called after each view creation.
	RecordCreateView(duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)        {}
func (NoopMetricsCollector) RecordBulkLoad(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLookup(time.Duration)               {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error)        {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)        {}
func (NoopMetricsCollector) RecordCreateView(time.Duration)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	BulkLoadCount    atomic.Int64
	BulkLoadItems    atomic.Int64
	BulkLoadErrors   atomic.Int64
	LookupCount      atomic.Int64
	LookupTotalNanos atomic.Int64
	RemoveCount      atomic.Int64
	RemoveErrors     atomic.Int64
	UpdateCount      atomic.Int64
	UpdateErrors     atomic.Int64
	CreateViewCount  atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordBulkLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBulkLoad(count int, duration time.Duration, err error) {
	b.BulkLoadCount.Add(1)
	b.BulkLoadItems.Add(int64(count))
	if err != nil {
		b.BulkLoadErrors.Add(1)
	}
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(duration time.Duration) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(duration.Nanoseconds())
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordCreateView implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreateView(duration time.Duration) {
	b.CreateViewCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:     b.InsertCount.Load(),
		InsertErrors:    b.InsertErrors.Load(),
		InsertAvgNanos:  b.getAvgInsertNanos(),
		BulkLoadCount:   b.BulkLoadCount.Load(),
		BulkLoadItems:   b.BulkLoadItems.Load(),
		BulkLoadErrors:  b.BulkLoadErrors.Load(),
		LookupCount:     b.LookupCount.Load(),
		LookupAvgNanos:  b.getAvgLookupNanos(),
		RemoveCount:     b.RemoveCount.Load(),
		RemoveErrors:    b.RemoveErrors.Load(),
		UpdateCount:     b.UpdateCount.Load(),
		UpdateErrors:    b.UpdateErrors.Load(),
		CreateViewCount: b.CreateViewCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgLookupNanos() int64 {
	count := b.LookupCount.Load()
	if count == 0 {
		return 0
	}
	return b.LookupTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount     int64
	InsertErrors    int64
	InsertAvgNanos  int64
	BulkLoadCount   int64
	BulkLoadItems   int64
	BulkLoadErrors  int64
	LookupCount     int64
	LookupAvgNanos  int64
	RemoveCount     int64
	RemoveErrors    int64
	UpdateCount     int64
	UpdateErrors    int64
	CreateViewCount int64
}
