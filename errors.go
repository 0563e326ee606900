package deflatecore

import "errors"

// Decode errors.
var (
	// ErrUnexpectedEOF means the bit stream was truncated before a block
	// or stream boundary it was expected to reach.
	ErrUnexpectedEOF = errors.New("deflatecore: unexpected end of stream")

	// ErrInvalidData means the stream violates a format constraint: a
	// conflicting canonical code, a stored-block length mismatch, a
	// reserved block type, a distance past the decoded output so far, a
	// meta-Huffman RLE overshoot, or a zlib header mod-31 check failure.
	ErrInvalidData = errors.New("deflatecore: invalid data")

	// ErrUnsupportedFormat means the stream uses a feature this codec
	// deliberately does not implement, e.g. zlib FDICT=1.
	ErrUnsupportedFormat = errors.New("deflatecore: unsupported format")

	// ErrInvalidInput means the decoded output would exceed the caller's
	// declared output size.
	ErrInvalidInput = errors.New("deflatecore: output exceeds declared size")

	// ErrOutOfMemory surfaces an allocation failure during decode or
	// encode.
	ErrOutOfMemory = errors.New("deflatecore: out of memory")
)

// Encode errors.
var (
	// ErrEmptyInput means Deflate was called with a zero-length input.
	ErrEmptyInput = errors.New("deflatecore: empty input")

	// ErrEntropyFailure means the encoder's internal frequency tables
	// produced an impossible Huffman tree; callers should treat this as a
	// library bug.
	ErrEntropyFailure = errors.New("deflatecore: internal entropy invariant violated")
)
