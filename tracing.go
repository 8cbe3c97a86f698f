package ringstore

// Tracer receives diagnostic callbacks from the reader's slow paths only
// (overrun, expired mapping id, oldest-fragment fallback). It is write-only
// and optional: nothing in Append or in Read's Case A/B depends on a Tracer
// being present or on its calls completing in any particular order relative
// to other readers.
type Tracer interface {
	// TraceOverrun fires when a cursor read falls into Case C: the fragment
	// that used to hold cursor has already been overwritten.
	TraceOverrun(cursor uint64, recoveredFragmentNum uint64)

	// TraceExpiredMappingID fires when ReadSinceMappingID finds the fragment
	// that should hold id but the id itself is no longer present in it.
	TraceExpiredMappingID(id uint64, fragmentNum uint64)

	// TraceOldestFragmentFallback fires whenever the reader falls back to
	// dumping the oldest surviving fragment in full.
	TraceOldestFragmentFallback(fragmentNum uint64)
}

// NoOpTracer discards every call. NewRing uses it when given a nil Tracer;
// NewStore instead defaults to a LoggingTracer over the Store's Logger.
type NoOpTracer struct{}

var _ Tracer = NoOpTracer{}

func (NoOpTracer) TraceOverrun(cursor uint64, recoveredFragmentNum uint64) {}
func (NoOpTracer) TraceExpiredMappingID(id uint64, fragmentNum uint64)     {}
func (NoOpTracer) TraceOldestFragmentFallback(fragmentNum uint64)          {}

// LoggingTracer forwards each trace event to a Logger at debug level,
// prefixed so multiple stores sharing one logger stay distinguishable.
type LoggingTracer struct {
	Logger Logger
	Prefix string
}

var _ Tracer = (*LoggingTracer)(nil)

func (t *LoggingTracer) TraceOverrun(cursor uint64, recoveredFragmentNum uint64) {
	t.Logger.Debug(t.Prefix+" cursor overrun", "cursor", cursor, "recovered_fragment", recoveredFragmentNum)
}

func (t *LoggingTracer) TraceExpiredMappingID(id uint64, fragmentNum uint64) {
	t.Logger.Debug(t.Prefix+" mapping id expired", "id", id, "fragment", fragmentNum)
}

func (t *LoggingTracer) TraceOldestFragmentFallback(fragmentNum uint64) {
	t.Logger.Debug(t.Prefix+" oldest fragment fallback", "fragment", fragmentNum)
}
