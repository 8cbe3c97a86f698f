package ringstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateConfigFillsZeroValues(t *testing.T) {
	cfg := Config{}
	require.NoError(t, validateConfig(&cfg))

	require.Equal(t, uint32(minCapacity), cfg.Capacity)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "ringstore", cfg.Tracing.Prefix)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, uint32(minCapacity), cfg.Capacity)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "ringstore", cfg.Tracing.Prefix)
}
