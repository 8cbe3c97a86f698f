package ringstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStoreAppliesOptions(t *testing.T) {
	var captured []any
	logger := &capturingLogger{fields: &captured}

	store, err := NewStore(64, WithLogger(logger), WithTracePrefix("unit-test"))
	require.NoError(t, err)
	require.Equal(t, logger, store.Logger())

	store.Append(testMapping(1))
	batch := store.Read(0)
	require.Len(t, batch.Messages, 1)
}

func TestStoreReadSinceMappingIDWithConnectionID(t *testing.T) {
	store, err := NewStore(32)
	require.NoError(t, err)

	store.Append(testMapping(1))
	store.Append(testMapping(2))

	batch := store.ReadSinceMappingID(1, NewConnectionID())
	require.NotEmpty(t, batch.Messages)
	require.Equal(t, uint64(2), batch.Messages[0].MappingID())
}

func TestStoreFragmentSnapshotsReflectAppends(t *testing.T) {
	store, err := NewStore(32)
	require.NoError(t, err)

	store.Append(testMapping(1))

	snaps := store.FragmentSnapshots()
	require.NotEmpty(t, snaps)

	var anyPopulated bool
	for _, s := range snaps {
		if s.Populated {
			anyPopulated = true
			require.Equal(t, 1, s.Length)
		}
	}
	require.True(t, anyPopulated)
}

// capturingLogger is a minimal Logger that records every message it
// receives; used to prove WithLogger wires the injected implementation
// through to Store.Logger() and to capture debug traces.
type capturingLogger struct {
	fields *[]any
}

var _ Logger = (*capturingLogger)(nil)

func (l *capturingLogger) Debug(msg string, keysAndValues ...any) {
	*l.fields = append(*l.fields, msg)
}
func (l *capturingLogger) Info(msg string, keysAndValues ...any)  { *l.fields = append(*l.fields, msg) }
func (l *capturingLogger) Warn(msg string, keysAndValues ...any)  { *l.fields = append(*l.fields, msg) }
func (l *capturingLogger) Error(msg string, keysAndValues ...any) { *l.fields = append(*l.fields, msg) }
func (l *capturingLogger) WithContext(ctx context.Context) Logger { return l }
func (l *capturingLogger) WithFields(keysAndValues ...any) Logger { return l }
