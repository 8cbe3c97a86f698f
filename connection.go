package ringstore

import "github.com/google/uuid"

// ConnectionID is an opaque correlation id for a reconnecting reader,
// threaded through ReadSinceMappingID purely so a trace line can be tied
// back to the client that produced it. The core never compares or stores
// one beyond the lifetime of a single call.
type ConnectionID uuid.UUID

// NewConnectionID mints a fresh random correlation id.
func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.New())
}

func (c ConnectionID) String() string {
	return uuid.UUID(c).String()
}
