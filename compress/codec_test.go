package compress

import (
	"bytes"
	"testing"

	"github.com/arloliu/strata/format"
	"github.com/stretchr/testify/require"
)

// sampleImage builds a byte slice resembling a serialized layer image:
// repetitive record headers with mixed payload bytes, so every real codec
// has something to bite on.
func sampleImage(n int) []byte {
	data := make([]byte, 0, n)
	for i := 0; len(data) < n; i++ {
		data = append(data, 0, 0, 0, 0, 0, 0, byte(i>>8), byte(i))
		data = append(data, bytes.Repeat([]byte{byte(i)}, 24)...)
	}

	return data[:n]
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		_, err := GetCodec(format.CompressionType(0xFF))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported compression type")
	})
}

func TestCodecRoundTrip(t *testing.T) {
	image := sampleImage(16 * 1024)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(image)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, image, restored)
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestNoOpSharesMemory(t *testing.T) {
	codec := NewNoOpCompressor()
	data := sampleImage(128)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, &data[0], &compressed[0], "noop must not copy")

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, &data[0], &restored[0], "noop must not copy")
}

func TestZstdDecompressInvalidData(t *testing.T) {
	codec := NewZstdCompressor()

	_, err := codec.Decompress([]byte("definitely not a zstd frame"))
	require.Error(t, err)
}

func TestCompressionStats(t *testing.T) {
	stats := CompressionStats{
		Algorithm:      format.CompressionZstd,
		OriginalSize:   1000,
		CompressedSize: 250,
	}

	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	require.Zero(t, empty.CompressionRatio())
}

func BenchmarkCodecCompress(b *testing.B) {
	image := sampleImage(64 * 1024)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(b, err)

		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(image)))
			for b.Loop() {
				_, _ = codec.Compress(image)
			}
		})
	}
}
