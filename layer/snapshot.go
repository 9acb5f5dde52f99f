package layer

import (
	"io"

	"github.com/arloliu/strata/compress"
	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/internal/hash"
	"github.com/arloliu/strata/internal/pool"
	"github.com/arloliu/strata/section"
)

// WriteSnapshot exports the layer as a self-describing snapshot: a fixed
// envelope header (magic, compression type, xxHash64 checksum, image length)
// followed by the canonical serialized image, compressed with the requested
// codec. Snapshots give flushed layers a replication/backup surface without
// touching the core persisted format; the checksum covers the uncompressed
// image, so restore detects payload corruption regardless of codec.
//
// Works for both heap- and disk-backed layers via the iteration contract.
//
// Returns:
//   - compress.CompressionStats: Image and payload sizes for monitoring.
//   - error: Codec lookup, iteration, or write failures.
func (l *Layer) WriteSnapshot(w io.Writer, compression format.CompressionType) (compress.CompressionStats, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return compress.CompressionStats{}, err
	}

	img := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(img)

	img.B, err = l.appendImage(img.B)
	if err != nil {
		return compress.CompressionStats{}, err
	}

	payload, err := codec.Compress(img.B)
	if err != nil {
		return compress.CompressionStats{}, err
	}

	hdr := section.SnapshotHeader{
		Compression: compression,
		Checksum:    hash.Sum64(img.B),
		ImageLen:    uint64(img.Len()),
	}
	if _, err := w.Write(hdr.Bytes()); err != nil {
		return compress.CompressionStats{}, err
	}
	if _, err := w.Write(payload); err != nil {
		return compress.CompressionStats{}, err
	}

	return compress.CompressionStats{
		Algorithm:      compression,
		OriginalSize:   int64(img.Len()),
		CompressedSize: int64(len(payload)),
	}, nil
}

// ReadSnapshot restores a layer from a snapshot produced by WriteSnapshot:
// it validates the envelope, decompresses the image, verifies its length and
// checksum, materializes the image onto stream, and returns the disk-backed
// layer loaded from it. stream becomes the restored layer's persistent
// resource and must not be shared.
//
// Returns:
//   - *Layer: The restored, read-only layer.
//   - error: ErrInvalidSnapshot for a short or malformed envelope,
//     ErrChecksumMismatch if the image fails verification, ErrCorrupted if
//     decompression fails.
func ReadSnapshot(r io.Reader, stream Stream, opts ...Option) (*Layer, error) {
	hdrBuf := make([]byte, section.SnapshotHeaderSize)
	if _, err := io.ReadFull(r, hdrBuf); err != nil {
		return nil, errs.ErrInvalidSnapshot
	}

	var hdr section.SnapshotHeader
	if err := hdr.Parse(hdrBuf); err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(hdr.Compression)
	if err != nil {
		return nil, errs.ErrInvalidSnapshot
	}

	image, err := codec.Decompress(payload)
	if err != nil {
		return nil, errs.Corrupt(err)
	}

	if uint64(len(image)) != hdr.ImageLen {
		return nil, errs.ErrChecksumMismatch
	}
	if hash.Sum64(image) != hdr.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := stream.Write(image); err != nil {
		return nil, err
	}

	return Load(stream, opts...)
}
