// Package deflatecore implements a DEFLATE (RFC 1951) and zlib (RFC 1950)
// codec: a canonical prefix coder, a Lempel-Ziv match finder, and a
// DEFLATE block segmenter/encoder, plus the inverse decode pipeline.
//
// The package is a synchronous, single-threaded library: every call is a
// pure computation over its inputs, and callers wanting to compress or
// decompress several buffers concurrently should call from multiple
// goroutines with independent inputs rather than share state.
package deflatecore
