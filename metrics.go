package ringstore

import (
	"sync/atomic"
)

// MetricsProvider defines the interface for metrics tracking on a Store.
// Kept as an interface, rather than a concrete struct, so callers can swap
// in a Prometheus- or OpenTelemetry-backed implementation without touching
// the hot path.
type MetricsProvider interface {
	// Append path
	IncrementAppends(count uint64)
	RecordAppendCASRetries(retries uint64)
	RecordFragmentInstall()
	RecordFragmentOverwrite()

	// Reader slow paths
	RecordOverrun()
	RecordExpiredMappingID()
	RecordOldestFragmentFallback()

	// Get current values
	GetStats() MetricsSnapshot
}

// MetricsSnapshot represents a point-in-time view of metrics
type MetricsSnapshot struct {
	TotalAppends         uint64
	CASRetries           uint64
	MaxCASRetries        uint64
	FragmentsInstalled   uint64
	FragmentsOverwritten uint64

	Overruns               uint64
	ExpiredMappingIDReads  uint64
	OldestFragmentFallback uint64
}

// atomicMetrics implements MetricsProvider using atomic operations.
// Field layout mirrors the teacher's cache-line-grouped atomic metrics
// struct, scaled down: the append counters are the hot-path group, the
// reader slow-path counters are the cold group.
type atomicMetrics struct {
	// Append path (hot)
	totalAppends         atomic.Uint64
	casRetries           atomic.Uint64
	maxCASRetries        atomic.Uint64
	fragmentsInstalled   atomic.Uint64
	fragmentsOverwritten atomic.Uint64

	// Reader slow paths (cold)
	overruns               atomic.Uint64
	expiredMappingIDReads  atomic.Uint64
	oldestFragmentFallback atomic.Uint64
}

var _ MetricsProvider = (*atomicMetrics)(nil)

func newAtomicMetrics() MetricsProvider {
	return &atomicMetrics{}
}

func (m *atomicMetrics) IncrementAppends(count uint64) {
	m.totalAppends.Add(count)
}

func (m *atomicMetrics) RecordAppendCASRetries(retries uint64) {
	m.casRetries.Add(retries)
	for {
		current := m.maxCASRetries.Load()
		if current >= retries {
			break
		}
		if m.maxCASRetries.CompareAndSwap(current, retries) {
			break
		}
	}
}

func (m *atomicMetrics) RecordFragmentInstall() {
	m.fragmentsInstalled.Add(1)
}

func (m *atomicMetrics) RecordFragmentOverwrite() {
	m.fragmentsOverwritten.Add(1)
}

func (m *atomicMetrics) RecordOverrun() {
	m.overruns.Add(1)
}

func (m *atomicMetrics) RecordExpiredMappingID() {
	m.expiredMappingIDReads.Add(1)
}

func (m *atomicMetrics) RecordOldestFragmentFallback() {
	m.oldestFragmentFallback.Add(1)
}

func (m *atomicMetrics) GetStats() MetricsSnapshot {
	return MetricsSnapshot{
		TotalAppends:           m.totalAppends.Load(),
		CASRetries:             m.casRetries.Load(),
		MaxCASRetries:          m.maxCASRetries.Load(),
		FragmentsInstalled:     m.fragmentsInstalled.Load(),
		FragmentsOverwritten:   m.fragmentsOverwritten.Load(),
		Overruns:               m.overruns.Load(),
		ExpiredMappingIDReads:  m.expiredMappingIDReads.Load(),
		OldestFragmentFallback: m.oldestFragmentFallback.Load(),
	}
}

// noopMetrics discards everything; NewRing uses it when given a nil
// MetricsProvider so a Ring never needs a nil check on its metrics field.
type noopMetrics struct{}

var _ MetricsProvider = noopMetrics{}

func (noopMetrics) IncrementAppends(uint64)       {}
func (noopMetrics) RecordAppendCASRetries(uint64) {}
func (noopMetrics) RecordFragmentInstall()        {}
func (noopMetrics) RecordFragmentOverwrite()      {}
func (noopMetrics) RecordOverrun()                {}
func (noopMetrics) RecordExpiredMappingID()       {}
func (noopMetrics) RecordOldestFragmentFallback() {}
func (noopMetrics) GetStats() MetricsSnapshot     { return MetricsSnapshot{} }
