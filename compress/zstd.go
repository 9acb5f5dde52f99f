package compress

// ZstdCompressor provides Zstandard compression for layer snapshots.
//
// Zstd trades compression speed for ratio, making it the right choice when a
// snapshot is shipped over the network or kept in cold storage:
//   - Replicating flushed layers to follower nodes
//   - Long-term retention of retired generations
//   - Bandwidth-limited export paths
//
// Two implementations back this type, selected at build time:
//   - Pure Go (klauspost/compress/zstd), the default
//   - CGO (valyala/gozstd), enabled with -tags cgo_zstd for higher throughput
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
