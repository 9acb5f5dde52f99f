package section

import (
	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
)

// SnapshotHeader is the fixed-size envelope header of an exported layer
// snapshot. It precedes the (possibly compressed) serialized layer image.
type SnapshotHeader struct {
	// Compression identifies the codec applied to the image payload.
	Compression format.CompressionType // byte offset 2
	// Checksum is the xxHash64 of the uncompressed layer image.
	Checksum uint64 // byte offset 4-11
	// ImageLen is the uncompressed layer image length in bytes.
	ImageLen uint64 // byte offset 12-19
}

// Parse parses the snapshot envelope header from a byte slice.
//
// Returns:
//   - error: ErrInvalidSnapshot if data is short, carries the wrong magic
//     number, or names an unknown compression type
func (h *SnapshotHeader) Parse(data []byte) error {
	if len(data) < SnapshotHeaderSize {
		return errs.ErrInvalidSnapshot
	}

	if engine.Uint16(data[0:2]) != MagicSnapshotV1 {
		return errs.ErrInvalidSnapshot
	}

	h.Compression = format.CompressionType(data[2])
	if !h.Compression.Valid() {
		return errs.ErrInvalidSnapshot
	}

	h.Checksum = engine.Uint64(data[4:12])
	h.ImageLen = engine.Uint64(data[12:SnapshotHeaderSize])

	return nil
}

// Bytes serializes the SnapshotHeader into a byte slice.
func (h SnapshotHeader) Bytes() []byte {
	b := make([]byte, SnapshotHeaderSize)

	engine.PutUint16(b[0:2], MagicSnapshotV1)
	b[2] = byte(h.Compression)
	b[3] = 0 // reserved
	engine.PutUint64(b[4:12], h.Checksum)
	engine.PutUint64(b[12:SnapshotHeaderSize], h.ImageLen)

	return b
}
