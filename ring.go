package ringstore

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// ptrSize is the platform's native pointer width, used to pick the
// large-object-region-avoiding fragment ceiling in §3 Sizing.
const ptrSize = unsafe.Sizeof(uintptr(0))

const (
	// minCapacity is the floor applied to any requested capacity (§3 Sizing).
	minCapacity = 32

	// minFragments is "at least F = 4" from §3 Sizing.
	minFragments = 4

	// maxPerFragment64 and maxPerFragment32 bound a single fragment's slot
	// array so it stays out of the platform's large-object region. Both
	// work out to roughly the same byte budget per fragment (slot size
	// scales with pointer width), matching §3's stated defaults.
	maxPerFragment64 = 8192
	maxPerFragment32 = 16384
)

// maxPerFragmentForPlatform returns the platform-appropriate ceiling on
// slots-per-fragment described in §3 Sizing.
func maxPerFragmentForPlatform() int {
	if ptrSize == 4 {
		return maxPerFragment32
	}
	return maxPerFragment64
}

// Ring is the outer array of fragment slots, the global message counter,
// and the algorithms for locating fragments by sequence number. All of its
// mutable state is bundled into a small set of atomically-updated scalars
// on this single struct, following CometState's design in the teacher
// (state.go): one object, every field's atomic ordering documented at the
// point of declaration, no process-wide singletons.
type Ring struct {
	fragments []atomic.Pointer[Fragment] // length fragmentCount

	fragmentSize  int
	fragmentCount int // F+1

	// nextFreeSeq: acquire-load for readers, release-store (via Add) for
	// the Appender. A reader observing nextFreeSeq = N is guaranteed to see
	// every fragment installation performed before the increment that
	// produced N (§5 Ordering).
	nextFreeSeq atomic.Uint64

	// minSeq: lower bound of sequence numbers still addressable by a
	// cursor. Advances each time a fragment is overwritten. Non-decreasing.
	minSeq atomic.Uint64

	// minMappingID: lower bound of Mapping.Id still addressable. Updated in
	// lockstep with minSeq. Non-decreasing, assuming producers enqueue with
	// non-decreasing ids.
	minMappingID atomic.Uint64

	// maxMapping: most recently appended mapping. Best-effort, written
	// non-atomically from the spec's point of view — in Go this is a plain
	// atomic.Pointer store with no additional fencing beyond what the
	// store/load pair already gives, used for observation only. No
	// algorithm in this package depends on its freshness (§5, §9 item 3).
	maxMapping atomic.Pointer[mappingHolder]

	metrics MetricsProvider
	tracer  Tracer

	// logger is nil unless attachLogger was called (Store does this at
	// construction). Every use site guards with "IsDebug() && r.logger !=
	// nil", the same gate the teacher uses around its own trace-level
	// logger.Debug calls in client.go, so a Ring built directly via NewRing
	// (as the tests do) stays silent.
	logger Logger
}

// attachLogger wires a Logger into the Ring for IsDebug()-gated tracing of
// the Appender's contention path and the Reader's slow paths. Called once
// by NewStore; a Ring with no attached logger simply never logs.
func (r *Ring) attachLogger(logger Logger) {
	r.logger = logger
}

// NewRing allocates a Ring sized for the requested logical capacity. The
// capacity is floored to minCapacity; the actual capacity
// (fragmentCount-1)*fragmentSize may exceed the request, never fall short
// of it once floored.
func NewRing(capacity uint32, metrics MetricsProvider, tracer Tracer) (*Ring, error) {
	c := int(capacity)
	if c < minCapacity {
		c = minCapacity
	}

	fragments := minFragments
	maxPer := maxPerFragmentForPlatform()
	fragmentSize := ceilDiv(c, fragments)
	if fragmentSize > maxPer {
		fragmentSize = maxPer
		fragments = ceilDiv(c, fragmentSize)
		if fragments < minFragments {
			fragments = minFragments
		}
	}
	if fragmentSize <= 0 {
		return nil, fmt.Errorf("ringstore: computed fragment size %d is invalid for capacity %d", fragmentSize, capacity)
	}

	if metrics == nil {
		metrics = noopMetrics{}
	}
	if tracer == nil {
		tracer = NoOpTracer{}
	}

	return &Ring{
		fragments:     make([]atomic.Pointer[Fragment], fragments+1),
		fragmentSize:  fragmentSize,
		fragmentCount: fragments + 1,
		metrics:       metrics,
		tracer:        tracer,
	}, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// FragmentCoordinates maps a sequence number to the fragment that owns it,
// the ring slot that fragment currently (or will) occupy, and the offset
// within that fragment. The division and modulo here are intentionally
// unchecked / wrapping-unsafe, matching §9's requirement that seq /
// fragmentSize not be guarded the way the capacity computation is.
func (r *Ring) FragmentCoordinates(seq uint64) (fragmentNum uint64, ringIndex int, slotIndex int) {
	fs := uint64(r.fragmentSize)
	fragmentNum = seq / fs
	ringIndex = int(fragmentNum % uint64(r.fragmentCount))
	slotIndex = int(seq % fs)
	return
}

// SeqOf is the inverse of FragmentCoordinates' (fragmentNum, slotIndex)
// half.
func (r *Ring) SeqOf(fragmentNum uint64, slotIndex int) uint64 {
	return fragmentNum*uint64(r.fragmentSize) + uint64(slotIndex)
}

// FragmentSize returns the computed slot count per fragment.
func (r *Ring) FragmentSize() int { return r.fragmentSize }

// FragmentCount returns F+1, including the overflow cushion.
func (r *Ring) FragmentCount() int { return r.fragmentCount }

// NextFreeSeq loads the next sequence number to be assigned (acquire).
func (r *Ring) NextFreeSeq() uint64 { return r.nextFreeSeq.Load() }

// MinSeq loads the lower bound of sequence numbers still addressable by a
// cursor (acquire).
func (r *Ring) MinSeq() uint64 { return r.minSeq.Load() }

// MinMappingID loads the lower bound of Mapping.Id still addressable.
func (r *Ring) MinMappingID() uint64 { return r.minMappingID.Load() }

// MaxMapping returns the most recently appended mapping, best-effort. It
// may trail the true maximum or briefly be nil right after a wrap (§9
// item 3).
func (r *Ring) MaxMapping() Mapping {
	h := r.maxMapping.Load()
	if h == nil {
		return nil
	}
	return h.mapping
}

func (r *Ring) storeMaxMapping(m Mapping) {
	r.maxMapping.Store(&mappingHolder{mapping: m})
}

// fragmentAt loads whatever currently occupies ringIndex, which may be
// absent, current, or one generation behind the fragment numbered
// fragmentNum (§3 Ring-level invariants).
func (r *Ring) fragmentAt(ringIndex int) *Fragment {
	return r.fragments[ringIndex].Load()
}

// FragmentSnapshot is a point-in-time, non-atomic capture of one ring slot,
// for offline inspection (diagnostics package) rather than for any
// algorithm in this package.
type FragmentSnapshot struct {
	RingIndex   int
	Populated   bool
	FragmentNum uint64
	Length      int
	MinSeq      uint64
	MaxSeq      uint64
}

// FragmentSnapshots walks every ring slot and captures its current state.
// Each slot is read independently with no synchronization across slots, so
// the result is not a single consistent instant of the whole ring — good
// enough for a postmortem dump, not for driving any read or append logic.
func (r *Ring) FragmentSnapshots() []FragmentSnapshot {
	out := make([]FragmentSnapshot, len(r.fragments))
	for i := range r.fragments {
		f := r.fragments[i].Load()
		if f == nil {
			out[i] = FragmentSnapshot{RingIndex: i}
			continue
		}
		out[i] = FragmentSnapshot{
			RingIndex:   i,
			Populated:   true,
			FragmentNum: f.fragmentNum,
			Length:      f.Length(),
			MinSeq:      f.minSeq.Load(),
			MaxSeq:      f.maxSeq.Load(),
		}
	}
	return out
}
