// Package compress provides the compression codecs used by the layer
// snapshot surface.
//
// A snapshot wraps a complete serialized layer image (fixed header plus
// sorted section records) in a small envelope; this package implements the
// envelope's payload compression. The core persisted layer format is never
// compressed; codecs apply to snapshot export/restore only.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are looked up by format.CompressionType:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Compress(image)
//
// # Supported Algorithms
//
//   - None: bypass, zero-copy (default; payloads are opaque caller bytes
//     that may be incompressible)
//   - Zstd: best ratio, moderate speed; suited to replication and cold
//     storage of retired generations
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, moderate ratio
//
// The Zstd codec has two build-time implementations: pure Go
// (klauspost/compress/zstd, the default) and CGO (valyala/gozstd, enabled
// with -tags cgo_zstd). Both produce interoperable Zstandard frames, so a
// snapshot written by one can be restored by the other.
package compress
