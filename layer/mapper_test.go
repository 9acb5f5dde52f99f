package layer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/section"
)

// buildImage assembles a persisted layer image by hand so tests can truncate
// or mangle it before loading.
func buildImage(t *testing.T, hdr section.Header, records ...section.Section) []byte {
	t.Helper()

	img := hdr.Bytes()
	for _, s := range records {
		img = section.AppendRecordHeader(img, s.Range)
		img = append(img, s.Data...)
	}

	return img
}

func TestLoad_CorruptHeader(t *testing.T) {
	t.Run("Short header", func(t *testing.T) {
		_, err := Load(&memStream{buf: []byte{1, 2, 3}})
		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("Inverted bounds", func(t *testing.T) {
		hdr := section.Header{Size: 0, Bounds: section.Range{Start: 10, End: 5}}
		_, err := Load(&memStream{buf: hdr.Bytes()})
		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("Size exceeds bounds span", func(t *testing.T) {
		hdr := section.Header{Size: 100, Bounds: section.NewRange(0, 10)}
		_, err := Load(&memStream{buf: hdr.Bytes()})
		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})
}

func TestDiskMapper_CorruptRecords(t *testing.T) {
	hdr := section.Header{Size: 10, Bounds: section.NewRange(0, 10)}
	good := buildImage(t, hdr, section.New(0, []byte("0123456789")))

	load := func(t *testing.T, img []byte) *Layer {
		t.Helper()

		l, err := Load(&memStream{buf: img})
		require.NoError(t, err)

		return l
	}

	t.Run("Intact image scans cleanly", func(t *testing.T) {
		l := load(t, good)
		_, data, err := l.ReadUnchecked(section.NewRange(0, 10))
		require.NoError(t, err)
		require.Equal(t, []byte("0123456789"), data)
	})

	t.Run("Truncated record header", func(t *testing.T) {
		l := load(t, good[:section.HeaderSize+8])
		_, _, err := l.ReadUnchecked(section.NewRange(0, 10))
		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidSectionRecord)
	})

	t.Run("Truncated payload", func(t *testing.T) {
		l := load(t, good[:len(good)-4])
		_, _, err := l.ReadUnchecked(section.NewRange(0, 10))
		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidSectionRecord)
	})

	t.Run("Inverted record range", func(t *testing.T) {
		img := append([]byte{}, hdr.Bytes()...)
		img = section.AppendRecordHeader(img, section.Range{Start: 10, End: 0})
		img = append(img, []byte("0123456789")...)

		l := load(t, img)
		_, _, err := l.ReadUnchecked(section.NewRange(0, 10))
		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidSectionRecord)
	})

	t.Run("Record overruns declared size", func(t *testing.T) {
		short := section.Header{Size: 4, Bounds: section.NewRange(0, 10)}
		img := buildImage(t, short, section.New(0, []byte("0123456789")))

		l := load(t, img)
		_, _, err := l.ReadUnchecked(section.NewRange(0, 4))
		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidSectionRecord)
	})

	t.Run("Corruption surfaces through CheckCollisions", func(t *testing.T) {
		l := load(t, good[:len(good)-4])
		_, err := l.CheckCollisions(section.NewRange(0, 10))
		require.ErrorIs(t, err, errs.ErrCorrupted)
	})
}

func TestDiskMapper_WriterGate(t *testing.T) {
	hdr := section.Header{Size: 3, Bounds: section.NewRange(0, 3)}
	img := buildImage(t, hdr, section.New(0, []byte("abc")))

	l, err := Load(&memStream{buf: img})
	require.NoError(t, err)

	require.True(t, l.ReadOnly())
	require.ErrorIs(t, l.WriteUnchecked(10, []byte("x")), errs.ErrReadOnlyLayer)
	require.ErrorIs(t, l.Write(10, []byte("x")), errs.ErrReadOnlyLayer)
}

func TestHeapMapper_RestartableIteration(t *testing.T) {
	l, err := New(&memStream{})
	require.NoError(t, err)

	require.NoError(t, l.WriteUnchecked(0, []byte("aa")))
	require.NoError(t, l.WriteUnchecked(2, []byte("bb")))

	// Two full passes over the same mapper must see identical entries.
	for range 2 {
		var count int
		for s, err := range l.mapper.sections(nil, l.size) {
			require.NoError(t, err)
			require.Len(t, s.Data, 2)
			count++
		}
		require.Equal(t, 2, count)
	}
}

func TestWriteCursor_SequentialFastPath(t *testing.T) {
	l, err := New(&memStream{})
	require.NoError(t, err)

	hm, err := l.mapper.writer()
	require.NoError(t, err)

	require.NoError(t, l.WriteUnchecked(0, []byte("aaaa")))
	require.Equal(t, writeCursor{next: 4, index: 1}, hm.cursor)

	require.NoError(t, l.WriteUnchecked(4, []byte("bbbb")))
	require.Equal(t, writeCursor{next: 8, index: 2}, hm.cursor)

	// A non-sequential write falls back to a scan and re-primes the cursor.
	require.NoError(t, l.WriteUnchecked(100, []byte("cc")))
	require.Equal(t, writeCursor{next: 102, index: 3}, hm.cursor)

	require.NoError(t, l.WriteUnchecked(50, []byte("dd")))
	require.Equal(t, writeCursor{next: 52, index: 3}, hm.cursor)

	var starts []uint64
	for s, err := range l.mapper.sections(nil, l.size) {
		require.NoError(t, err)
		starts = append(starts, s.Range.Start)
	}
	require.Equal(t, []uint64{0, 4, 50, 100}, starts)
}
