package ringstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRingFloorsCapacity(t *testing.T) {
	r, err := NewRing(1, nil, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, (r.FragmentCount()-1)*r.FragmentSize(), minCapacity)
}

func TestNewRingCapsFragmentSize(t *testing.T) {
	// A huge capacity with the default minFragments would blow past the
	// per-fragment slot ceiling; NewRing must grow fragment count instead
	// of fragment size once it hits the ceiling (§3 Sizing).
	huge := uint32(maxPerFragmentForPlatform()*minFragments + 1)
	r, err := NewRing(huge, nil, nil)
	require.NoError(t, err)
	require.LessOrEqual(t, r.FragmentSize(), maxPerFragmentForPlatform())
	require.GreaterOrEqual(t, r.FragmentCount()-1, minFragments)
}

func TestFragmentCoordinatesRoundTrip(t *testing.T) {
	r, err := NewRing(64, nil, nil)
	require.NoError(t, err)

	for seq := uint64(0); seq < 500; seq++ {
		fragmentNum, _, slotIndex := r.FragmentCoordinates(seq)
		require.Equal(t, seq, r.SeqOf(fragmentNum, slotIndex))
	}
}

func TestFragmentCoordinatesWrapAroundRingIndex(t *testing.T) {
	r, err := NewRing(32, nil, nil)
	require.NoError(t, err)

	fragmentNum, ringIndex, _ := r.FragmentCoordinates(r.SeqOf(uint64(r.FragmentCount()), 0))
	require.Equal(t, uint64(r.FragmentCount()), fragmentNum)
	require.Equal(t, 0, ringIndex, "fragment F+1 generations later must land back on ring slot 0")
}
