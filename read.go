package ringstore

// MessageBatch is what every read operation returns: a contiguous run of
// messages starting at NextCursor, plus whether the caller should expect
// more immediately by reading again from NextCursor + len(Messages).
//
// Unlike the source's borrowed-view return (valid only while the backing
// fragment stays installed, per §4.4), Messages here is an independent
// slice of already-resolved Mapping values: Go's garbage collector keeps
// each one alive regardless of what happens to the Fragment that produced
// it, so there is no "consume before the next wraparound" deadline to
// document for callers. The struct shape is kept anyway for interface
// fidelity with the three-case read contract in §4.4.1.
type MessageBatch struct {
	NextCursor uint64
	Messages   []Mapping
	HasMore    bool
}

// maxOverrunRetries bounds the re-read-and-retry loop in Case C. The spec
// (§4.4.1 Case C, step 4) describes an unbounded retry while "the ring has
// not yet wrapped around to produce a valid tail" — genuinely unbounded is
// correct for a ring under sustained load, but a Go function call should
// still be total, so a small bound here converts "the ring may simply
// never wrap" into an empty-batch return instead of a true infinite loop.
// This is a defensive addition beyond the spec; see DESIGN.md.
const maxOverrunRetries = 64

// Read resolves a sequence cursor against the ring, implementing the three
// cases of §4.4.1.
func (r *Ring) Read(cursor uint64) MessageBatch {
	tip := r.nextFreeSeq.Load()

	// Case A: up to date.
	if tip <= cursor {
		return MessageBatch{NextCursor: cursor, Messages: nil, HasMore: false}
	}

	// Case B: the fragment that should hold cursor is still installed.
	fragmentNum, ringIndex, slotIndex := r.FragmentCoordinates(cursor)
	if f := r.fragmentAt(ringIndex); f != nil && f.fragmentNum == fragmentNum {
		fMin := f.minSeq.Load()
		if fMin <= cursor && cursor < fMin+uint64(r.fragmentSize) {
			nextFragStart := r.SeqOf(fragmentNum+1, 0)
			end := tip
			if nextFragStart < end {
				end = nextFragStart
			}
			localEnd := int(end - fMin)
			return MessageBatch{
				NextCursor: cursor,
				Messages:   f.slice(slotIndex, localEnd),
				HasMore:    tip > nextFragStart,
			}
		}
	}

	// Case C: overrun. The fragment that used to hold cursor is gone.
	return r.readOverrun(cursor, tip)
}

func (r *Ring) readOverrun(cursor, tip uint64) MessageBatch {
	for attempt := 0; attempt < maxOverrunRetries; attempt++ {
		tipFragmentNum, ringIndex, _ := r.FragmentCoordinates(tip)
		tailIndex := (ringIndex + 1) % r.fragmentCount
		tail := r.fragmentAt(tailIndex)

		if tail != nil && tail.fragmentNum < tipFragmentNum {
			length := tail.Length()
			r.metrics.RecordOverrun()
			r.tracer.TraceOverrun(cursor, tail.fragmentNum)
			if IsDebug() && r.logger != nil {
				r.logger.Debug("read overrun recovered", "cursor", cursor, "recoveredFragment", tail.fragmentNum, "attempt", attempt)
			}
			return MessageBatch{
				NextCursor: r.SeqOf(tail.fragmentNum, 0),
				Messages:   tail.slice(0, length),
				HasMore:    true,
			}
		}

		// The ring hasn't wrapped far enough yet to produce a valid tail
		// (e.g. it is still being populated). Re-read tip and retry.
		tip = r.nextFreeSeq.Load()
	}
	return MessageBatch{NextCursor: cursor, Messages: nil, HasMore: false}
}

// ReadSinceMappingID resolves a read by the caller's domain payload id
// rather than the store's internal sequence number, per §4.4.2.
func (r *Ring) ReadSinceMappingID(id uint64) MessageBatch {
	found, fragment := r.searchByMappingID(id)
	if found {
		idx, ok := fragment.TrySearch(id)
		if ok {
			return r.Read(r.SeqOf(fragment.fragmentNum, idx+1))
		}
		// The outer search located the fragment that should hold id, but
		// the inner search missed inside its own [MinValue, MaxValue]
		// range. The spec classifies this as "expired" even though the
		// fragment is still live — preserved faithfully; see §9 Open
		// Question 1 and DESIGN.md.
		r.metrics.RecordExpiredMappingID()
		r.tracer.TraceExpiredMappingID(id, fragment.fragmentNum)
		if IsDebug() && r.logger != nil {
			r.logger.Debug("mapping id expired", "id", id, "fragment", fragment.fragmentNum)
		}
		return r.getAllMessages()
	}

	if id <= r.minMappingID.Load() {
		return r.getAllMessages()
	}

	// The id is ahead of the store's current view.
	return MessageBatch{NextCursor: r.nextFreeSeq.Load(), Messages: nil, HasMore: false}
}

// getAllMessages returns the oldest fragment's populated prefix in full
// ("GetAllMessages(minSeq)" in §4.4.2 step 4). If the ring hasn't populated
// that slot yet it returns an empty batch with HasMore=false — which a
// caller may misread as "caught up" when the ring is in fact still
// warming (§9 Open Question 2).
func (r *Ring) getAllMessages() MessageBatch {
	minSeq := r.minSeq.Load()
	_, ringIndex, _ := r.FragmentCoordinates(minSeq)
	f := r.fragmentAt(ringIndex)
	if f == nil {
		return MessageBatch{NextCursor: minSeq, Messages: nil, HasMore: false}
	}
	r.metrics.RecordOldestFragmentFallback()
	r.tracer.TraceOldestFragmentFallback(f.fragmentNum)
	if IsDebug() && r.logger != nil {
		r.logger.Debug("oldest fragment fallback", "fragment", f.fragmentNum)
	}
	return MessageBatch{
		NextCursor: r.SeqOf(f.fragmentNum, 0),
		Messages:   f.slice(0, f.Length()),
		HasMore:    true,
	}
}

// searchByMappingID treats the ring as though indexed by Mapping.Id,
// valid because producers enqueue in non-decreasing id order (§4.4.3).
func (r *Ring) searchByMappingID(id uint64) (bool, *Fragment) {
	low := r.minSeq.Load()
	high := r.nextFreeSeq.Load()

	for low <= high {
		mid := low + (high-low)/2
		_, ringIndex, _ := r.FragmentCoordinates(mid)
		f := r.fragmentAt(ringIndex)
		if f == nil {
			return false, nil
		}

		minVal, minOK := f.MinValue()
		maxVal, maxOK := f.MaxValue()
		if !minOK || !maxOK {
			return false, nil
		}

		switch {
		case id < minVal:
			if f.minSeq.Load() == 0 {
				return false, nil
			}
			high = f.minSeq.Load() - 1
		case id > maxVal:
			low = f.maxSeq.Load() + 1
		default:
			return true, f
		}
	}
	return false, nil
}
