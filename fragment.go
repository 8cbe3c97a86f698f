package ringstore

import "sync/atomic"

// Fragment is a single contiguous segment of the ring: a fixed-size array
// of slots plus segment-identifying metadata. Once data[i] transitions from
// absent to present it is never mutated again during this fragment's
// lifetime; length advances only upward; fragmentNum is immutable.
//
// Slot publication is grounded on the segment-linking CAS used by
// Tochemey-goakt's SegmentedRingBufferMailbox (tail.next.CompareAndSwap(nil,
// newSeg)), generalized here from "install a successor segment once" to
// "install a mapping into any one of N slots, contended by many producers".
type Fragment struct {
	fragmentNum uint64 // immutable once constructed

	data []atomic.Pointer[mappingHolder]

	// length is the number of populated slots. It advances only after a
	// successful PublishAt, so it is always <= the true number of published
	// slots — never ahead of it. Readers that load it once and treat
	// [0, length) as safe to read rely on exactly this property (§4.4).
	length atomic.Uint64

	// minSeq and maxSeq are set by the installing producer immediately
	// after the fragment wins its CAS into the ring (append.go), and are
	// read-only for every other caller from that point on.
	minSeq atomic.Uint64
	maxSeq atomic.Uint64
}

func newFragment(fragmentNum uint64, size int) *Fragment {
	return &Fragment{
		fragmentNum: fragmentNum,
		data:        make([]atomic.Pointer[mappingHolder], size),
	}
}

// PublishAt atomically transitions data[offset] from absent to mapping.
// It reports whether this caller won the slot; losing is not an error, it
// is the Appender's signal to try the next offset or retry.
func (f *Fragment) PublishAt(offset int, m Mapping) bool {
	return f.data[offset].CompareAndSwap(nil, &mappingHolder{mapping: m})
}

// at loads the mapping stored at offset, if any.
func (f *Fragment) at(offset int) (Mapping, bool) {
	h := f.data[offset].Load()
	if h == nil {
		return nil, false
	}
	return h.mapping, true
}

// incrementLength advances length by one. Called by the Appender exactly
// once per successful PublishAt, never concurrently for the same offset.
func (f *Fragment) incrementLength() {
	f.length.Add(1)
}

// Length returns the fragment's populated-slot count as of this call. The
// value may already be stale by the time the caller acts on it; see the
// length field doc comment.
func (f *Fragment) Length() int {
	return int(f.length.Load())
}

// slice copies out the mappings in data[start:end) into a plain slice. The
// copy is cheap (it copies interface values, not underlying mapping data)
// and, unlike a raw borrowed view into an array, remains valid after this
// fragment is replaced in the ring — Go's garbage collector keeps each
// referenced Mapping alive independently of the Fragment that first held it.
func (f *Fragment) slice(start, end int) []Mapping {
	if start < 0 {
		start = 0
	}
	if end > len(f.data) {
		end = len(f.data)
	}
	if start >= end {
		return nil
	}
	out := make([]Mapping, 0, end-start)
	for i := start; i < end; i++ {
		m, ok := f.at(i)
		if !ok {
			break // a concurrent publish hasn't landed yet; stop at the gap
		}
		out = append(out, m)
	}
	return out
}

// TrySearch performs a binary search over data[0, length) by Mapping.Id,
// assuming producers enqueued in non-decreasing id order. It returns the
// index of the first slot whose Id equals id, or (-1, false).
func (f *Fragment) TrySearch(id uint64) (int, bool) {
	length := f.Length()
	lo, hi := 0, length-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		m, ok := f.at(mid)
		if !ok {
			return -1, false
		}
		midID := m.MappingID()
		switch {
		case midID == id:
			// Walk left over any duplicate ids to return the first match.
			for mid > 0 {
				prev, ok := f.at(mid - 1)
				if !ok || prev.MappingID() != id {
					break
				}
				mid--
			}
			return mid, true
		case midID < id:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1, false
}

// MinValue returns data[0].Id, or (0, false) if the fragment has no
// published slots yet. It is advisory: callers must tolerate the not-ok
// case when the fragment is brand new.
func (f *Fragment) MinValue() (uint64, bool) {
	m, ok := f.at(0)
	if !ok {
		return 0, false
	}
	return m.MappingID(), true
}

// MaxValue returns data[length-1].Id, falling back to data[0].Id when
// length is still 0 (the in-progress first write), per §4.1.
func (f *Fragment) MaxValue() (uint64, bool) {
	length := f.Length()
	idx := 0
	if length > 0 {
		idx = length - 1
	}
	m, ok := f.at(idx)
	if !ok {
		return 0, false
	}
	return m.MappingID(), true
}
