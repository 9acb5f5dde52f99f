package layer

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/internal/hash"
	"github.com/arloliu/strata/internal/options"
	"github.com/arloliu/strata/internal/pool"
	"github.com/arloliu/strata/section"
)

// DefaultFlushBufferSize is the size of the buffered writer that batches
// section records during Flush. Buffering is purely for throughput; the
// buffer is fully drained before Flush returns, so it has no effect on
// correctness or ordering.
const DefaultFlushBufferSize = 4 * 1024 * 1024 // 4MiB

// Stream is the persistent byte-addressable resource a layer reads, writes,
// and seeks on. Typically an *os.File, but any capability offering the
// three operations works. A Stream instance is exclusively owned by its
// Layer; no two layers may share one.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
}

// syncer is the optional durability capability of a Stream.
type syncer interface {
	Sync() error
}

// readCursor is a hint of where the most recent sequential read landed.
// Reserved for future acceleration of sequential disk scans; no operation
// consults it yet.
type readCursor struct {
	addr  uint64
	index int
}

// Layer is one generation of the stacked database: an ordered collection of
// non-overlapping byte-range sections over a single logical address space,
// heap-backed and writable when fresh, disk-backed and immutable once
// flushed or loaded.
//
// A Layer is not safe for concurrent use while heap-backed. Once it is
// disk-backed it never mutates and may be shared freely across readers.
type Layer struct {
	bounds     section.Range
	hasBounds  bool
	size       uint64
	readCursor readCursor

	mapper mapper
	stream Stream

	flushBufferSize int
	syncOnFlush     bool
}

// Option represents a functional option for configuring a Layer.
// This is a type alias for the generic Option interface specialized for Layer.
type Option = options.Option[*Layer]

// WithFlushBufferSize overrides the size of the buffered writer used by
// Flush. Returns an error at construction time if size is not positive.
func WithFlushBufferSize(size int) Option {
	return options.New(func(l *Layer) error {
		if size <= 0 {
			return errors.New("flush buffer size must be positive")
		}
		l.flushBufferSize = size

		return nil
	})
}

// WithSyncOnFlush controls whether Flush calls Sync on streams that support
// it. Enabled by default; disable only when the caller handles durability
// itself (e.g. batching syncs across many layers).
func WithSyncOnFlush(enabled bool) Option {
	return options.NoError(func(l *Layer) {
		l.syncOnFlush = enabled
	})
}

// New creates a fresh, empty, heap-backed layer writing to stream.
func New(stream Stream, opts ...Option) (*Layer, error) {
	l := &Layer{
		mapper:          newHeapMapper(),
		stream:          stream,
		flushBufferSize: DefaultFlushBufferSize,
		syncOnFlush:     true,
	}
	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

// Load reconstructs a disk-backed, read-only layer from the bytes persisted
// on stream. Only the 24-byte header is read eagerly; sections are parsed
// lazily on first iteration.
//
// Returns:
//   - *Layer: The loaded layer.
//   - error: ErrInvalidHeader (wrapped under ErrCorrupted) if the header is
//     short or malformed.
func Load(stream Stream, opts ...Option) (*Layer, error) {
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	buf := make([]byte, section.HeaderSize)
	if _, err := io.ReadFull(stream, buf); err != nil {
		return nil, errs.Corrupt(errs.ErrInvalidHeader)
	}

	hdr, err := section.ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	l := &Layer{
		bounds:          hdr.Bounds,
		hasBounds:       true,
		size:            hdr.Size,
		mapper:          diskMapper{},
		stream:          stream,
		flushBufferSize: DefaultFlushBufferSize,
		syncOnFlush:     true,
	}
	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

// Bounds returns the tight enclosing interval of all sections in the layer,
// and false if the layer has no sections. Exposed for cheap out-of-layer
// range-intersection pre-filtering by the stacking orchestrator.
func (l *Layer) Bounds() (section.Range, bool) {
	return l.bounds, l.hasBounds
}

// Size returns the total payload bytes across all sections. This is the sum
// of section lengths, not the bounds span: gaps between sections don't count.
func (l *Layer) Size() uint64 {
	return l.size
}

// ReadOnly reports whether the layer is disk-backed and therefore immutable.
func (l *Layer) ReadOnly() bool {
	_, err := l.mapper.writer()
	return err != nil
}

// CheckCollisions returns the sorted, non-overlapping sub-ranges of query
// that intersect existing sections. An empty result means the whole query
// range is free.
//
// Because sections are mutually non-overlapping and iterated in ascending
// order, the output needs no post-sorting.
//
// Returns:
//   - []section.Range: Intersections with existing sections, ascending.
//   - error: ErrCorrupted if disk iteration fails to parse a record.
func (l *Layer) CheckCollisions(query section.Range) ([]section.Range, error) {
	// Fast reject: empty layer, or query entirely outside bounds.
	if !l.hasBounds || !l.bounds.Overlaps(query) {
		return nil, nil
	}

	var out []section.Range
	for s, err := range l.mapper.sections(l.stream, l.size) {
		if err != nil {
			return nil, err
		}
		if s.Range.Overlaps(query) {
			out = append(out, s.Range.Intersect(query))
		}
	}

	return out, nil
}

// CheckNonCollisions returns the sub-ranges of query not covered by any of
// collisions, that is, the free gaps a writer may claim.
//
// Precondition: collisions is sorted ascending and mutually non-overlapping,
// exactly as produced by CheckCollisions for the same query. The input is
// not re-validated.
func (l *Layer) CheckNonCollisions(query section.Range, collisions []section.Range) []section.Range {
	var out []section.Range

	lastEnd := query.Start
	for _, c := range collisions {
		if c.Start > lastEnd {
			out = append(out, section.NewRange(lastEnd, c.Start))
		}
		lastEnd = c.End
	}

	if lastEnd != query.End {
		out = append(out, section.NewRange(lastEnd, query.End))
	}

	return out
}

// ReadUnchecked returns the payload of the single section fully containing
// addr, along with addr's range relative to that section's start. The
// returned data is the section's payload (a view, not a copy); applying the
// relative range to it yields exactly the requested bytes.
//
// Precondition, not checked: addr must not span two sections. Callers must
// split multi-section reads themselves; a spanning request simply fails
// with ErrOutOfBounds here since no single section contains it.
//
// Returns:
//   - section.Range: addr relative to the matched section's start.
//   - []byte: The matched section's payload.
//   - error: ErrOutOfBounds if no section fully contains addr, or
//     ErrCorrupted if disk iteration fails.
func (l *Layer) ReadUnchecked(addr section.Range) (section.Range, []byte, error) {
	// TODO: consult readCursor to resume sequential disk scans instead of
	// rescanning from the header offset on every call.
	for s, err := range l.mapper.sections(l.stream, l.size) {
		if err != nil {
			return section.Range{}, nil, err
		}
		if s.Range.Contains(addr) {
			rel := section.NewRange(addr.Start-s.Range.Start, addr.End-s.Range.Start)
			return rel, s.Data, nil
		}
	}

	return section.Range{}, nil, errs.ErrOutOfBounds
}

// WriteUnchecked inserts a new section covering [addr, addr+len(data)) with
// the given payload. The payload is ingested zero-copy: the layer keeps a
// reference to data, and the caller must not modify it afterwards.
//
// Precondition, caller-enforced: the target range does not overlap any
// existing section in this layer (prove it with CheckCollisions /
// CheckNonCollisions first). The write path performs no overlap rejection,
// since re-validating would cost a redundant full scan the caller already
// paid for, and violating the precondition corrupts the layer's ordering
// invariant. Use Write for the checked variant.
//
// Returns:
//   - error: ErrReadOnlyLayer if the layer is disk-backed.
func (l *Layer) WriteUnchecked(addr uint64, data []byte) error {
	m, err := l.mapper.writer()
	if err != nil {
		return err
	}

	s := section.New(addr, data)

	// Sequential-append fast path: the cursor remembers where the previous
	// write ended; a write continuing there reuses the cached index.
	idx := m.cursor.index
	if m.cursor.next != addr {
		idx = len(m.entries)
		for i, e := range m.entries {
			if e.Range.Start > addr {
				idx = i
				break
			}
		}
	}

	m.insert(idx, s)
	m.cursor = writeCursor{next: s.Range.End, index: idx + 1}
	l.size += s.Range.Len()

	if l.hasBounds {
		l.bounds = l.bounds.Union(s.Range)
	} else {
		l.bounds = s.Range
		l.hasBounds = true
	}

	return nil
}

// Write is the checked variant of WriteUnchecked: it re-derives collisions
// for the target range and refuses overlapping writes with
// ErrSectionOverlap. Use it when the collision scan hasn't already been
// paid for; otherwise prefer CheckCollisions + WriteUnchecked.
func (l *Layer) Write(addr uint64, data []byte) error {
	query := section.NewRange(addr, addr+uint64(len(data)))

	collisions, err := l.CheckCollisions(query)
	if err != nil {
		return err
	}
	if len(collisions) > 0 {
		return fmt.Errorf("%w: %s collides at %s", errs.ErrSectionOverlap, query, collisions[0])
	}

	return l.WriteUnchecked(addr, data)
}

// Flush serializes the layer to its stream (the 24-byte header followed by
// every section record in ascending order) and switches the layer to
// disk-backed, read-only mode. Flushing an empty or already-disk-backed
// layer is a no-op.
//
// On failure the stream may be partially written, but the layer remains
// heap-backed in memory (the mapper only switches after the final drain and
// sync succeed), so Flush may be safely retried.
func (l *Layer) Flush() error {
	hm, ok := l.mapper.(*heapMapper)
	if !ok || !l.hasBounds {
		return nil
	}

	if _, err := l.stream.Seek(0, io.SeekStart); err != nil {
		return err
	}

	w := bufio.NewWriterSize(l.stream, l.flushBufferSize)

	hdr := section.Header{Size: l.size, Bounds: l.bounds}
	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	// The heap collection is already sorted; records go out in store order.
	for _, s := range hm.entries {
		scratch.Reset()
		scratch.B = section.AppendRecordHeader(scratch.B, s.Range)
		if _, err := w.Write(scratch.B); err != nil {
			return err
		}
		if _, err := w.Write(s.Data); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if l.syncOnFlush {
		if s, ok := l.stream.(syncer); ok {
			if err := s.Sync(); err != nil {
				return err
			}
		}
	}

	l.mapper = diskMapper{}

	return nil
}

// Fingerprint returns the xxHash64 of the layer's canonical serialized image
// (header plus sorted section records). It is computed through the mapper's
// iteration contract, so a heap layer and its flushed disk form produce the
// same fingerprint. Intended for manifest and integrity checks by the
// stacking orchestrator.
func (l *Layer) Fingerprint() (uint64, error) {
	d := hash.NewDigest()

	hdr := section.Header{Size: l.size, Bounds: l.bounds}
	if _, err := d.Write(hdr.Bytes()); err != nil {
		return 0, err
	}

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	for s, err := range l.mapper.sections(l.stream, l.size) {
		if err != nil {
			return 0, err
		}

		scratch.Reset()
		scratch.B = section.AppendRecordHeader(scratch.B, s.Range)
		if _, err := d.Write(scratch.B); err != nil {
			return 0, err
		}
		if _, err := d.Write(s.Data); err != nil {
			return 0, err
		}
	}

	return d.Sum64(), nil
}

// appendImage appends the layer's canonical serialized image to dst: the
// exact bytes Flush would write. Shared by the snapshot surface.
func (l *Layer) appendImage(dst []byte) ([]byte, error) {
	hdr := section.Header{Size: l.size, Bounds: l.bounds}
	dst = hdr.AppendTo(dst)

	for s, err := range l.mapper.sections(l.stream, l.size) {
		if err != nil {
			return nil, err
		}
		dst = section.AppendRecordHeader(dst, s.Range)
		dst = append(dst, s.Data...)
	}

	return dst, nil
}
