package ringstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"
)

func TestNoOpLogger(t *testing.T) {
	logger := NoOpLogger{}

	logger.Debug("debug message")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "count", 42)
	logger.Error("error message", "error", "something went wrong")

	require.Equal(t, logger, logger.WithContext(context.Background()))
	require.Equal(t, logger, logger.WithFields("field1", "value1"))
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &StdLogger{level: LogLevelInfo, writer: &buf}

	logger.Debug("debug message")
	require.Zero(t, buf.Len(), "debug must not log at info level")

	logger.Info("info message")
	require.Contains(t, buf.String(), "[INFO] info message")
	buf.Reset()

	logger.Warn("warning", "code", 404, "message", "not found")
	require.Contains(t, buf.String(), "[WARN] warning")
	require.Contains(t, buf.String(), "code=404")
	buf.Reset()

	fieldLogger := logger.WithFields("request_id", "123")
	fieldLogger.Error("request failed", "status", 500)
	require.Contains(t, buf.String(), "request_id=123")
	require.Contains(t, buf.String(), "status=500")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Info("slog test message", "key", "value")
	require.Contains(t, buf.String(), "slog test message")
	require.Contains(t, buf.String(), "key=value")
	buf.Reset()

	fieldAdapter := adapter.WithFields("component", "ring")
	fieldAdapter.Warn("warning from component", "code", 429)
	require.Contains(t, buf.String(), "component=ring")
	require.Contains(t, buf.String(), "code=429")
}

func TestLogrAdapter(t *testing.T) {
	adapter := NewLogrAdapter(testr.New(t))

	// None of these should panic; logr has no buffer-capture hook as simple
	// as StdLogger's writer, so this exercises the call shapes rather than
	// asserting on output.
	adapter.Debug("debug message", "key", "value")
	adapter.Info("info message")
	adapter.Warn("warn message", "code", 429)
	adapter.Error("error message")

	fieldAdapter := adapter.WithFields("component", "ring")
	require.NotNil(t, fieldAdapter)
	fieldAdapter.Info("with fields")

	require.Equal(t, adapter, adapter.WithContext(context.Background()))
}

func TestLogrAdapterSatisfiesLoggerWithRealLogr(t *testing.T) {
	var l logr.Logger = logr.Discard()
	var _ Logger = NewLogrAdapter(l)
}

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name       string
		config     LogConfig
		expectType string
	}{
		{name: "none level returns NoOpLogger", config: LogConfig{Level: "none"}, expectType: "ringstore.NoOpLogger"},
		{name: "off level returns NoOpLogger", config: LogConfig{Level: "off"}, expectType: "ringstore.NoOpLogger"},
		{name: "debug level returns StdLogger", config: LogConfig{Level: "debug"}, expectType: "*ringstore.StdLogger"},
		{name: "custom logger wins over level", config: LogConfig{Logger: NoOpLogger{}, Level: "debug"}, expectType: "ringstore.NoOpLogger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := createLogger(tt.config)
			require.Equal(t, tt.expectType, typeName(logger))
		})
	}
}

func TestDebugMode(t *testing.T) {
	original := IsDebug()
	defer SetDebug(original)

	SetDebug(true)
	require.True(t, IsDebug())

	SetDebug(false)
	require.False(t, IsDebug())
}

// TestDebugModeTracesReaderSlowPaths proves IsDebug() actually gates extra
// logger.Debug calls on the Reader's slow paths once a Logger reaches the
// Ring through Store, not just that the flag itself flips.
func TestDebugModeTracesReaderSlowPaths(t *testing.T) {
	original := IsDebug()
	defer SetDebug(original)

	var captured []any
	logger := &capturingLogger{fields: &captured}
	store, err := NewStore(minCapacity, WithLogger(logger))
	require.NoError(t, err)

	fragSize := store.FragmentSize()
	for i := 0; i < fragSize*store.FragmentCount()+1; i++ {
		store.Append(testMapping(uint64(i + 1)))
	}

	SetDebug(false)
	captured = nil
	store.Read(0)
	require.Empty(t, captured, "no debug trace expected while IsDebug() is false")

	SetDebug(true)
	captured = nil
	store.Read(0)
	require.Contains(t, captured, "read overrun recovered")
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
