// Package diagnostics captures point-in-time ring/fragment metadata for
// offline inspection, the kind of thing you'd reach for after a consumer
// reports an overrun or an expired-mapping read and you want to know what
// the ring actually looked like at the time. It is never called from the
// core's hot paths.
package diagnostics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/basinrelay/ringstore"
)

// FragmentSnapshot mirrors ringstore.FragmentSnapshot for the wire format,
// kept as its own type so the dump format doesn't change shape if the core
// package's internal snapshot type does.
type FragmentSnapshot struct {
	RingIndex   int    `json:"ringIndex"`
	Populated   bool   `json:"populated"`
	FragmentNum uint64 `json:"fragmentNum"`
	Length      int    `json:"length"`
	MinSeq      uint64 `json:"minSeq"`
	MaxSeq      uint64 `json:"maxSeq"`
}

// Snapshot is a full point-in-time capture of one Store.
type Snapshot struct {
	FragmentSize  int                       `json:"fragmentSize"`
	FragmentCount int                       `json:"fragmentCount"`
	MinSeq        uint64                    `json:"minSeq"`
	NextFreeSeq   uint64                    `json:"nextFreeSeq"`
	MinMappingID  uint64                    `json:"minMappingId"`
	Fragments     []FragmentSnapshot        `json:"fragments"`
	Metrics       ringstore.MetricsSnapshot `json:"metrics"`
}

// Capture takes a Snapshot of store. Like the underlying
// Store.FragmentSnapshots, the per-fragment reads are independent and not
// synchronized against each other or against the scalar fields, so this is
// a best-effort picture, not a consistent instant of the whole ring.
func Capture(store *ringstore.Store) Snapshot {
	rawFragments := store.FragmentSnapshots()
	fragments := make([]FragmentSnapshot, len(rawFragments))
	for i, f := range rawFragments {
		fragments[i] = FragmentSnapshot{
			RingIndex:   f.RingIndex,
			Populated:   f.Populated,
			FragmentNum: f.FragmentNum,
			Length:      f.Length,
			MinSeq:      f.MinSeq,
			MaxSeq:      f.MaxSeq,
		}
	}
	return Snapshot{
		FragmentSize:  store.FragmentSize(),
		FragmentCount: store.FragmentCount(),
		MinSeq:        store.MinSeq(),
		NextFreeSeq:   store.NextFreeSeq(),
		MinMappingID:  store.MinMappingID(),
		Fragments:     fragments,
		Metrics:       store.Stats(),
	}
}

// Dump JSON-encodes snap and writes it to w zstd-compressed, the same
// encode-then-ship shape as Shard.preCompressEntries/compressor in the
// teacher's client.go.
func Dump(w io.Writer, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("diagnostics: marshal snapshot: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("diagnostics: new zstd writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return fmt.Errorf("diagnostics: compress snapshot: %w", err)
	}
	return enc.Close()
}

// Load reads a zstd-compressed dump produced by Dump and decodes it back
// into a Snapshot, mirroring comet/reader.go's decompressor usage.
func Load(r io.Reader) (Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("diagnostics: new zstd reader: %w", err)
	}
	defer dec.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, dec); err != nil {
		return Snapshot{}, fmt.Errorf("diagnostics: decompress dump: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("diagnostics: unmarshal snapshot: %w", err)
	}
	return snap, nil
}
