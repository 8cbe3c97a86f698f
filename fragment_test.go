package ringstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testMapping uint64

func (m testMapping) MappingID() uint64 { return uint64(m) }

func TestFragmentPublishAtIsExclusive(t *testing.T) {
	f := newFragment(0, 4)

	require.True(t, f.PublishAt(0, testMapping(10)))
	require.False(t, f.PublishAt(0, testMapping(20)), "second publish to the same slot must lose")

	got, ok := f.at(0)
	require.True(t, ok)
	require.Equal(t, uint64(10), got.MappingID())
}

func TestFragmentSliceStopsAtGap(t *testing.T) {
	f := newFragment(0, 4)
	require.True(t, f.PublishAt(0, testMapping(1)))
	require.True(t, f.PublishAt(1, testMapping(2)))
	// slot 2 deliberately left unpublished

	out := f.slice(0, 4)
	require.Len(t, out, 2)
	require.Equal(t, uint64(1), out[0].MappingID())
	require.Equal(t, uint64(2), out[1].MappingID())
}

func TestFragmentTrySearchFindsLeftmostDuplicate(t *testing.T) {
	f := newFragment(0, 6)
	ids := []uint64{10, 20, 20, 20, 30, 40}
	for i, id := range ids {
		f.PublishAt(i, testMapping(id))
		f.incrementLength()
	}

	idx, ok := f.TrySearch(20)
	require.True(t, ok)
	require.Equal(t, 1, idx)

	_, ok = f.TrySearch(25)
	require.False(t, ok)
}

func TestFragmentMinMaxValue(t *testing.T) {
	f := newFragment(0, 4)

	_, ok := f.MinValue()
	require.False(t, ok, "empty fragment has no min value")

	require.True(t, f.PublishAt(0, testMapping(5)))
	f.incrementLength()

	minVal, ok := f.MinValue()
	require.True(t, ok)
	require.Equal(t, uint64(5), minVal)

	// length reflects one publish, so MaxValue reads data[length-1], which
	// is data[0] here; the data[0] fallback applies only while length is 0.
	maxVal, ok := f.MaxValue()
	require.True(t, ok)
	require.Equal(t, uint64(5), maxVal)
}
