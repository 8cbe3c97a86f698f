package ringstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicMetricsTracksMaxCASRetries(t *testing.T) {
	m := newAtomicMetrics()

	m.RecordAppendCASRetries(3)
	m.RecordAppendCASRetries(1)
	m.RecordAppendCASRetries(7)
	m.RecordAppendCASRetries(2)

	snap := m.GetStats()
	require.Equal(t, uint64(13), snap.CASRetries)
	require.Equal(t, uint64(7), snap.MaxCASRetries)
}

func TestAtomicMetricsConcurrentMaxRetries(t *testing.T) {
	m := newAtomicMetrics()
	var wg sync.WaitGroup
	for i := uint64(1); i <= 100; i++ {
		wg.Add(1)
		go func(retries uint64) {
			defer wg.Done()
			m.RecordAppendCASRetries(retries)
		}(i)
	}
	wg.Wait()

	require.Equal(t, uint64(100), m.GetStats().MaxCASRetries)
}

func TestNoopMetricsSatisfiesInterface(t *testing.T) {
	var m MetricsProvider = noopMetrics{}
	m.IncrementAppends(1)
	m.RecordAppendCASRetries(1)
	m.RecordFragmentInstall()
	m.RecordFragmentOverwrite()
	m.RecordOverrun()
	m.RecordExpiredMappingID()
	m.RecordOldestFragmentFallback()
	require.Equal(t, MetricsSnapshot{}, m.GetStats())
}
