package diagnostics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basinrelay/ringstore"
)

type diagMapping uint64

func (m diagMapping) MappingID() uint64 { return uint64(m) }

func TestDumpLoadRoundTrip(t *testing.T) {
	store, err := ringstore.NewStore(32)
	require.NoError(t, err)

	for i := uint64(0); i < 10; i++ {
		store.Append(diagMapping(i))
	}

	snap := Capture(store)
	require.Equal(t, store.FragmentSize(), snap.FragmentSize)
	require.Equal(t, store.FragmentCount(), snap.FragmentCount)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, snap))
	require.NotZero(t, buf.Len())

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, snap, loaded)
}

func TestCaptureReflectsAppendedMetrics(t *testing.T) {
	store, err := ringstore.NewStore(32)
	require.NoError(t, err)

	store.Append(diagMapping(1))
	store.Append(diagMapping(2))

	snap := Capture(store)
	require.Equal(t, uint64(2), snap.Metrics.TotalAppends)
}
