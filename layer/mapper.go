package layer

import (
	"io"
	"iter"
	"slices"

	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/section"
)

// writeCursor caches where the most recent write landed, so a monotonically
// increasing write pattern picks its insertion index in O(1) instead of
// rescanning the collection. It is a cache, never a source of truth: any
// write whose address does not match next falls back to a full scan.
type writeCursor struct {
	// next is the address immediately after the last inserted section.
	next uint64
	// index is the insertion index for a write continuing at next.
	index int
}

// mapper is the backing store for a layer's sections: a closed set of two
// variants, heap (mutable, memory-resident) and disk (immutable, re-derived
// from the persistent resource on demand).
type mapper interface {
	// sections returns a lazy, restartable sequence of the layer's sections
	// in ascending start order. The heap variant yields its resident
	// entries; the disk variant seeks stream to the header offset and
	// parses records until declaredSize payload bytes have been consumed.
	// A parse failure is yielded as the final element's error.
	sections(stream Stream, declaredSize uint64) iter.Seq2[section.Section, error]

	// writer returns the mutable heap storage, or ErrReadOnlyLayer when the
	// mapper is disk-backed. This is the single gate preventing mutation of
	// flushed or loaded layers.
	writer() (*heapMapper, error)
}

// heapMapper holds the sections of a fresh layer in memory, sorted ascending
// by range start and pairwise non-overlapping. The ordering invariant is
// maintained by insertion discipline on the write path, not re-validated
// here.
type heapMapper struct {
	entries []section.Section
	cursor  writeCursor
}

func newHeapMapper() *heapMapper {
	return &heapMapper{}
}

func (m *heapMapper) sections(_ Stream, _ uint64) iter.Seq2[section.Section, error] {
	return func(yield func(section.Section, error) bool) {
		for _, s := range m.entries {
			if !yield(s, nil) {
				return
			}
		}
	}
}

func (m *heapMapper) writer() (*heapMapper, error) {
	return m, nil
}

// insert places s at index i. The caller computes the index that preserves
// ascending start order; the mapper trusts it.
func (m *heapMapper) insert(i int, s section.Section) {
	m.entries = slices.Insert(m.entries, i, s)
}

// diskMapper carries no resident state; every iteration re-derives the
// sections by scanning the persistent resource. This keeps memory bounded
// for large persisted layers at the cost of O(sections) per lookup.
type diskMapper struct{}

func (diskMapper) sections(stream Stream, declaredSize uint64) iter.Seq2[section.Section, error] {
	return func(yield func(section.Section, error) bool) {
		if _, err := stream.Seek(section.HeaderSize, io.SeekStart); err != nil {
			yield(section.Section{}, errs.Corrupt(err))
			return
		}

		hdr := make([]byte, section.RecordHeaderSize)

		var consumed uint64
		for consumed < declaredSize {
			if _, err := io.ReadFull(stream, hdr); err != nil {
				yield(section.Section{}, errs.Corrupt(errs.ErrInvalidSectionRecord))
				return
			}

			rng, err := section.ParseRecordHeader(hdr)
			if err != nil {
				yield(section.Section{}, err)
				return
			}

			// A record overrunning the declared layer size means the header
			// and the records disagree; surface it instead of returning a
			// partial section set.
			if rng.Len() > declaredSize-consumed {
				yield(section.Section{}, errs.Corrupt(errs.ErrInvalidSectionRecord))
				return
			}

			data := make([]byte, rng.Len())
			if _, err := io.ReadFull(stream, data); err != nil {
				// Short read while still under the declared size.
				yield(section.Section{}, errs.Corrupt(errs.ErrInvalidSectionRecord))
				return
			}
			consumed += rng.Len()

			if !yield(section.Section{Range: rng, Data: data}, nil) {
				return
			}
		}
	}
}

func (diskMapper) writer() (*heapMapper, error) {
	return nil, errs.ErrReadOnlyLayer
}
