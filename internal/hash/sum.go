// Package hash provides the xxHash64 helpers used for layer fingerprints
// and snapshot checksums.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the given bytes.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewDigest returns a streaming xxHash64 digest for hashing a serialized
// layer image without materializing it.
func NewDigest() *xxhash.Digest {
	return xxhash.New()
}
