package section

import "github.com/arloliu/strata/endian"

// offsets and sizes in the persisted layer file
const (
	HeaderSize       = 24 // fixed layer header: size, bounds.start, bounds.end (u64 each)
	RecordHeaderSize = 16 // per-section record header: start, end (u64 each)

	SizeOffset        = 0  // byte offset of the layer size field
	BoundsStartOffset = 8  // byte offset of the bounds.start field
	BoundsEndOffset   = 16 // byte offset of the bounds.end field
)

// snapshot envelope
const (
	SnapshotHeaderSize = 20     // magic(u16) + compression(u8) + reserved(u8) + checksum(u64) + image length(u64)
	MagicSnapshotV1    = 0xEC10 // version 1 magic number for the snapshot envelope
)

// engine is the byte order of everything this package serializes. The
// persisted layer and snapshot formats are big-endian throughout.
var engine = endian.GetBigEndianEngine()
