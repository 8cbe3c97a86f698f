package ringstore

// Append places mapping into the ring and returns the sequence number it
// was assigned. It never fails; on contention it retries internally. It is
// safe under unbounded concurrent callers (§4.3).
//
// The retry loop generalizes the CAS-retry shape of
// SegmentedRingBufferMailbox.Enqueue (other_examples, Tochemey-goakt): load
// the current tail/slot, try to claim a place in it, else try to install a
// successor and retry. The difference from that unbounded MPSC mailbox is
// that installing a successor here can displace a still-populated
// fragment — the ring is bounded and overwrites the oldest data by design,
// where the mailbox never overwrites at all.
func (r *Ring) Append(m Mapping) uint64 {
	var retries uint64
	for {
		seq := r.nextFreeSeq.Load()
		fragmentNum, ringIndex, slotIndex := r.FragmentCoordinates(seq)
		current := r.fragmentAt(ringIndex)

		switch {
		case (current == nil || current.fragmentNum < fragmentNum) && slotIndex == 0:
			result, ok := r.installFragment(current, fragmentNum, ringIndex, m)
			if !ok {
				retries++
				continue
			}
			if retries > 0 {
				r.metrics.RecordAppendCASRetries(retries)
				r.traceRetries("installFragment", retries)
			}
			return result

		case current == nil || current.fragmentNum < fragmentNum:
			// Slot is absent or stale but we're not the designated
			// installer (slotIndex != 0). Whoever observed slotIndex == 0
			// is expected to install imminently; spin and retry.
			retries++
			continue

		case current.fragmentNum == fragmentNum:
			result, ok := r.publishIntoCurrent(current, fragmentNum, slotIndex, m)
			if !ok {
				retries++
				continue
			}
			if retries > 0 {
				r.metrics.RecordAppendCASRetries(retries)
				r.traceRetries("publishIntoCurrent", retries)
			}
			return result

		default:
			// current.fragmentNum > fragmentNum: our seq read was already
			// stale by the time we looked at the ring slot. Retry from the
			// top with a fresh nextFreeSeq.
			retries++
			continue
		}
	}
}

// traceRetries logs a contended append once it finally succeeds, gated the
// same way the teacher gates its own trace-level logger.Debug calls in
// client.go: "if IsDebug() && logger != nil".
func (r *Ring) traceRetries(path string, retries uint64) {
	if IsDebug() && r.logger != nil {
		r.logger.Debug("append won after contention", "path", path, "retries", retries)
	}
}

// installFragment is case 1 of §4.3: this producer is the designated
// installer of a new fragment at ringIndex.
func (r *Ring) installFragment(current *Fragment, fragmentNum uint64, ringIndex int, m Mapping) (uint64, bool) {
	newFrag := newFragment(fragmentNum, r.fragmentSize)
	newFrag.data[0].Store(&mappingHolder{mapping: m})

	if !r.fragments[ringIndex].CompareAndSwap(current, newFrag) {
		return 0, false
	}

	newFrag.minSeq.Store(r.SeqOf(fragmentNum, 0))
	newFrag.maxSeq.Store(r.SeqOf(fragmentNum, r.fragmentSize-1))
	newFrag.length.Store(1)
	r.storeMaxMapping(m)
	r.metrics.RecordFragmentInstall()

	if current != nil {
		// This installation displaced a populated fragment: advance the
		// watermarks past everything it held.
		if lastID, ok := current.MaxValue(); ok {
			r.minMappingID.Store(lastID)
		}
		r.minSeq.Store(current.maxSeq.Load() + 1)
		r.metrics.RecordFragmentOverwrite()
	} else if ringIndex == 0 {
		// First-ever population of the ring.
		r.minMappingID.Store(m.MappingID())
	}

	r.nextFreeSeq.Add(1)
	r.metrics.IncrementAppends(1)
	return r.SeqOf(fragmentNum, 0), true
}

// publishIntoCurrent is case 3 of §4.3: the slot already holds the
// fragment we want, so try to claim any offset from slotIndex onward.
func (r *Ring) publishIntoCurrent(current *Fragment, fragmentNum uint64, slotIndex int, m Mapping) (uint64, bool) {
	for i := slotIndex; i < r.fragmentSize; i++ {
		if !current.PublishAt(i, m) {
			continue
		}
		current.incrementLength()
		r.storeMaxMapping(m)
		r.nextFreeSeq.Add(1)
		r.metrics.IncrementAppends(1)
		return r.SeqOf(fragmentNum, i), true
	}
	// All slots from slotIndex onward are already occupied; a faster
	// producer filled the fragment. Caller retries from the top.
	return 0, false
}
