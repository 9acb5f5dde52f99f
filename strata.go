// Package strata implements the storage layer of an append-oriented, layered
// key-range database: data is written into discrete layers (immutable
// generations of non-overlapping byte-range sections), and a higher-level
// stacking mechanism overlays multiple layers to answer reads.
//
// This module covers a single generation: collision analysis, unchecked
// read/write primitives, a compact big-endian persistence format, and the
// one-way heap-to-disk flush transition. Composing layers into one logical
// address space, compaction, and multi-writer coordination belong to the
// stacking orchestrator built on top.
//
// # Basic Usage
//
// Writing a fresh layer and flushing it to disk:
//
//	import "github.com/arloliu/strata"
//
//	file, _ := os.Create("gen-000001.layer")
//	l, _ := strata.NewLayer(file)
//
//	// Discover free sub-ranges, then write into them.
//	query := section.NewRange(0, 64)
//	collisions, _ := l.CheckCollisions(query)
//	for _, free := range l.CheckNonCollisions(query, collisions) {
//	    _ = l.WriteUnchecked(free.Start, data[free.Start:free.End])
//	}
//
//	// One-way transition: serializes all sections, layer becomes read-only.
//	_ = l.Flush()
//
// Reading a persisted layer back:
//
//	file, _ := os.Open("gen-000001.layer")
//	l, _ := strata.LoadLayer(file)
//	rel, data, _ := l.ReadUnchecked(section.NewRange(2, 5))
//	payload := data[rel.Start:rel.End]
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the layer
// package, simplifying the most common use cases. For fine-grained control
// (options, snapshots, fingerprints), use the layer package directly.
package strata

import (
	"io"

	"github.com/arloliu/strata/layer"
)

// NewLayer creates a fresh, empty, heap-backed layer writing to stream.
//
// The layer accumulates sections through its write path until Flush, which
// serializes it to stream and makes it permanently read-only. stream is
// exclusively owned by the returned layer.
//
// Available options:
//   - layer.WithFlushBufferSize(n)
//   - layer.WithSyncOnFlush(enabled)
//
// Example:
//
//	l, err := strata.NewLayer(file, layer.WithSyncOnFlush(false))
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewLayer(stream layer.Stream, opts ...layer.Option) (*layer.Layer, error) {
	return layer.New(stream, opts...)
}

// LoadLayer reconstructs a disk-backed, read-only layer from the bytes
// persisted on stream. Only the fixed header is read eagerly; sections are
// re-derived lazily by scanning stream on demand, keeping memory bounded
// for large layers.
//
// Returns an error matching errs.ErrCorrupted if the header is short or
// malformed.
func LoadLayer(stream layer.Stream, opts ...layer.Option) (*layer.Layer, error) {
	return layer.Load(stream, opts...)
}

// RestoreLayer restores a layer from a snapshot produced by
// layer.WriteSnapshot, materializing its image onto stream and returning
// the disk-backed layer loaded from it.
//
// The snapshot's checksum is verified before anything is written to stream.
func RestoreLayer(r io.Reader, stream layer.Stream, opts ...layer.Option) (*layer.Layer, error) {
	return layer.ReadSnapshot(r, stream, opts...)
}
