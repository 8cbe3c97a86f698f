package ringstore

// Mapping is the opaque payload type the store carries. The core only ever
// needs a single accessor off of it — a monotonically increasing 64-bit id
// assigned by the caller — so it is modeled as a one-method interface rather
// than a concrete struct. Ids are not required to be consecutive, but the
// overrun-recovery and id-based read paths (read.go) assume producers
// enqueue mappings with non-decreasing ids.
type Mapping interface {
	MappingID() uint64
}

// mappingHolder wraps a Mapping so fragment slots can be published with
// atomic.Pointer.CompareAndSwap(nil, holder): CAS against a concrete pointer
// type needs a distinguishable "absent" zero value, which an interface
// value stored directly cannot provide as cleanly as a *T can.
type mappingHolder struct {
	mapping Mapping
}
