package ringstore

// LogConfig controls logging behavior. Mirrors comet.LogConfig from the
// teacher: an injectable Logger, or a level string that selects a default
// one.
type LogConfig struct {
	// Logger allows injecting a custom logger. If nil, a default logger is
	// created based on Level.
	Logger Logger `json:"-"`

	// Level controls log level when using the default logger.
	// Options: "debug", "info", "warn", "error", "none".
	Level string `json:"level"`
}

// TracingConfig controls the reader's slow-path tracing (§6 Construction
// inputs: "Optional tracing sink and a string prefix").
type TracingConfig struct {
	// Tracer allows injecting a custom Tracer. If nil, a LoggingTracer
	// wrapping the store's Logger is created; pass NoOpTracer{} to disable
	// tracing.
	Tracer Tracer `json:"-"`

	// Prefix is prepended to every trace line when the default
	// LoggingTracer is used. An empty Prefix is filled in with "ringstore".
	Prefix string `json:"prefix"`
}

// Config is the complete configuration for a Store.
type Config struct {
	// Capacity is the requested logical capacity in messages (§6). Floored
	// to 32 by Ring construction; actual capacity may exceed the request.
	Capacity uint32 `json:"capacity"`

	Log     LogConfig     `json:"log"`
	Tracing TracingConfig `json:"tracing"`
}

// DefaultConfig returns sensible defaults, mirroring
// comet.DefaultCometConfig's role as the one place default values live.
func DefaultConfig() Config {
	return Config{
		Capacity: minCapacity,
		Log: LogConfig{
			Level: "info",
		},
		Tracing: TracingConfig{
			Prefix: "ringstore",
		},
	}
}

// validateConfig fills in zero-values and checks for invalid combinations,
// the same role comet's validateConfig plays for CometConfig.
func validateConfig(cfg *Config) error {
	if cfg.Capacity == 0 {
		cfg.Capacity = minCapacity
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Tracing.Prefix == "" {
		cfg.Tracing.Prefix = "ringstore"
	}
	return nil
}
