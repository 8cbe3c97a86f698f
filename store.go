package ringstore

import "fmt"

// Store is the public façade over a Ring: construction, the primary
// Append/Read/ReadSinceMappingID surface, and the observable properties
// described in §6. It bundles a Ring with the Logger/Tracer/MetricsProvider
// it was built with, the same wrapping shape as comet.Client bundling a
// set of Shards with its Logger and MetricsProvider.
type Store struct {
	ring    *Ring
	logger  Logger
	tracer  Tracer
	metrics MetricsProvider
	config  Config
}

// Option configures a Store at construction time. Generalizes the
// teacher's NewClient(dataDir string, config ...CometConfig) variadic-
// config shape into functional options, since there is no positional
// directory argument here to anchor a config struct on.
type Option func(*Config)

// WithLogger injects a custom Logger.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.Log.Logger = l }
}

// WithLogLevel selects the default logger's level when no custom Logger is
// injected. One of "debug", "info", "warn", "error", "none".
func WithLogLevel(level string) Option {
	return func(c *Config) { c.Log.Level = level }
}

// WithTracer injects a custom Tracer for the reader's slow paths.
func WithTracer(t Tracer) Option {
	return func(c *Config) { c.Tracing.Tracer = t }
}

// WithTracePrefix sets the prefix used by the default LoggingTracer.
func WithTracePrefix(prefix string) Option {
	return func(c *Config) { c.Tracing.Prefix = prefix }
}

// NewStore constructs a Store with the requested logical capacity (§6
// Construction inputs). capacity is floored to 32; actual capacity may
// exceed the request.
func NewStore(capacity uint32, opts ...Option) (*Store, error) {
	cfg := DefaultConfig()
	cfg.Capacity = capacity
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("ringstore: invalid config: %w", err)
	}

	logger := createLogger(cfg.Log)
	tracer := cfg.Tracing.Tracer
	if tracer == nil {
		tracer = &LoggingTracer{Logger: logger, Prefix: cfg.Tracing.Prefix}
	}
	metrics := newAtomicMetrics()

	ring, err := NewRing(cfg.Capacity, metrics, tracer)
	if err != nil {
		return nil, fmt.Errorf("ringstore: failed to build ring: %w", err)
	}
	ring.attachLogger(logger)

	return &Store{
		ring:    ring,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
		config:  cfg,
	}, nil
}

// Append places mapping into the store and returns the sequence number it
// was assigned (§4.3, §6).
func (s *Store) Append(mapping Mapping) uint64 {
	return s.ring.Append(mapping)
}

// Read resolves a sequence cursor into a MessageBatch (§4.4.1, §6).
func (s *Store) Read(cursor uint64) MessageBatch {
	return s.ring.Read(cursor)
}

// ReadSinceMappingID resolves a read by payload id rather than sequence
// cursor (§4.4.2, §6). connectionID is an optional correlation id; when
// given, it is written to the Store's Logger at debug level so the log line
// can be tied back to the reconnecting client. It is not passed to the
// Tracer and carries no semantic weight in the core itself.
func (s *Store) ReadSinceMappingID(id uint64, connectionID ...ConnectionID) MessageBatch {
	if len(connectionID) > 0 {
		s.logger.Debug("resolving read by mapping id", "mappingId", id, "connectionId", connectionID[0].String())
	}
	return s.ring.ReadSinceMappingID(id)
}

// FragmentSize returns the computed slot count per fragment.
func (s *Store) FragmentSize() int { return s.ring.FragmentSize() }

// FragmentCount returns F+1, including the overflow cushion.
func (s *Store) FragmentCount() int { return s.ring.FragmentCount() }

// MaxMapping returns the most recently appended mapping, best-effort.
func (s *Store) MaxMapping() Mapping { return s.ring.MaxMapping() }

// MinMappingID returns the lower bound of still-addressable payload ids.
func (s *Store) MinMappingID() uint64 { return s.ring.MinMappingID() }

// MinSeq returns the lower bound of sequence numbers still addressable by
// a cursor.
func (s *Store) MinSeq() uint64 { return s.ring.MinSeq() }

// NextFreeSeq returns the next sequence number to be assigned.
func (s *Store) NextFreeSeq() uint64 { return s.ring.NextFreeSeq() }

// Stats returns a point-in-time snapshot of the store's metrics.
func (s *Store) Stats() MetricsSnapshot { return s.metrics.GetStats() }

// FragmentSnapshots captures the current state of every ring slot, for the
// diagnostics package. See Ring.FragmentSnapshots for consistency caveats.
func (s *Store) FragmentSnapshots() []FragmentSnapshot { return s.ring.FragmentSnapshots() }

// Logger returns the Logger the Store was built with.
func (s *Store) Logger() Logger { return s.logger }
