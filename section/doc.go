// Package section defines the data model and binary codecs of the persisted
// layer format: address ranges, sections, the fixed-size layer header, the
// per-section record header, and the snapshot envelope header.
//
// # Persisted layer format
//
// All integers are big-endian. The layout is a 24-byte header followed by
// section records sorted ascending by start address:
//
//	offset 0   : size             (u64)  total payload bytes across all sections
//	offset 8   : bounds.start     (u64)
//	offset 16  : bounds.end       (u64)
//	offset 24  : section[0].start (u64)
//	offset 32  : section[0].end   (u64)
//	offset 40  : section[0].payload ((end - start) bytes)
//	...repeat until cumulative payload length == size
//
// HeaderSize is the fixed rewind offset shared by the flush path (where
// writing starts) and disk iteration (where scanning starts); the two sides
// must never disagree on it.
package section
