package section

import (
	"testing"

	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	original := Header{
		Size:   30,
		Bounds: NewRange(100, 200),
	}

	data := original.Bytes()
	require.Len(t, data, HeaderSize)

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, original, parsed)
}

func TestHeaderBytesLayout(t *testing.T) {
	h := Header{Size: 1, Bounds: NewRange(2, 3)}
	data := h.Bytes()

	// big-endian u64 triple: size, bounds.start, bounds.end
	require.Equal(t, byte(1), data[7])
	require.Equal(t, byte(2), data[15])
	require.Equal(t, byte(3), data[23])

	require.Equal(t, data, Header{Size: 1, Bounds: NewRange(2, 3)}.AppendTo(nil))
}

func TestHeaderParseErrors(t *testing.T) {
	t.Run("short buffer", func(t *testing.T) {
		var h Header
		err := h.Parse([]byte{1, 2, 3})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("inverted bounds", func(t *testing.T) {
		data := Header{Size: 0, Bounds: NewRange(0, 10)}.Bytes()
		engine.PutUint64(data[BoundsStartOffset:], 20) // start > end

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("size exceeds bounds span", func(t *testing.T) {
		data := Header{Size: 50, Bounds: NewRange(0, 10)}.Bytes()

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})
}

func TestRecordHeaderRoundTrip(t *testing.T) {
	r := NewRange(40, 64)

	buf := AppendRecordHeader(nil, r)
	require.Len(t, buf, RecordHeaderSize)

	parsed, err := ParseRecordHeader(buf)
	require.NoError(t, err)
	require.Equal(t, r, parsed)
}

func TestRecordHeaderParseErrors(t *testing.T) {
	t.Run("short buffer", func(t *testing.T) {
		_, err := ParseRecordHeader([]byte{0, 0, 0})

		require.ErrorIs(t, err, errs.ErrCorrupted)
		require.ErrorIs(t, err, errs.ErrInvalidSectionRecord)
	})

	t.Run("inverted range", func(t *testing.T) {
		buf := AppendRecordHeader(nil, NewRange(0, 0))
		engine.PutUint64(buf[0:8], 100) // start > end

		_, err := ParseRecordHeader(buf)
		require.ErrorIs(t, err, errs.ErrInvalidSectionRecord)
	})
}

func TestSnapshotHeaderRoundTrip(t *testing.T) {
	original := SnapshotHeader{
		Compression: format.CompressionS2,
		Checksum:    0xDEADBEEFCAFEF00D,
		ImageLen:    4096,
	}

	data := original.Bytes()
	require.Len(t, data, SnapshotHeaderSize)

	var parsed SnapshotHeader
	require.NoError(t, parsed.Parse(data))
	require.Equal(t, original, parsed)
}

func TestSnapshotHeaderParseErrors(t *testing.T) {
	valid := SnapshotHeader{Compression: format.CompressionNone, ImageLen: 10}.Bytes()

	t.Run("short buffer", func(t *testing.T) {
		var h SnapshotHeader
		require.ErrorIs(t, h.Parse(valid[:SnapshotHeaderSize-1]), errs.ErrInvalidSnapshot)
	})

	t.Run("wrong magic", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[0] = 0x00
		data[1] = 0x00

		var h SnapshotHeader
		require.ErrorIs(t, h.Parse(data), errs.ErrInvalidSnapshot)
	})

	t.Run("unknown compression", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[2] = 0xFF

		var h SnapshotHeader
		require.ErrorIs(t, h.Parse(data), errs.ErrInvalidSnapshot)
	})
}
