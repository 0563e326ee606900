// Deflate-side entry point: ties the match finder, block segmenter, and
// block encoder together into a complete RFC 1951 stream, with optional
// RFC 1950 zlib framing.
package flate

import (
	"encoding/binary"
	"errors"

	"github.com/nthbyte/deflatecore/internal/adler32"
	"github.com/nthbyte/deflatecore/internal/bitio"
	"github.com/nthbyte/deflatecore/internal/block"
	"github.com/nthbyte/deflatecore/internal/lz"
)

// ErrEmptyInput is returned for a zero-length encode input. An entropy
// failure (RFC 1951's canonical tables can't be built from the block's
// frequencies) has no reachable source in this implementation:
// internal/prefix.NewCodes always resolves the degenerate too-few-symbols
// case internally (RFC 1951 section 3.2.7's two-distance-code requirement)
// rather than failing.
var ErrEmptyInput = errors.New("flate: empty input")

// strategyFor maps a compression level to the match-finding strategy that
// backs it.
func strategyFor(level block.Level) lz.Strategy {
	switch level {
	case block.Fastest:
		return lz.StrategyFast
	case block.Fast:
		return lz.StrategyFast
	case block.Best:
		return lz.StrategyBest
	default:
		return lz.StrategyDefault
	}
}

// DeflateOptions controls optional framing around the raw DEFLATE payload.
type DeflateOptions struct {
	// Zlib wraps the payload in an RFC 1950 header and trailing Adler-32.
	Zlib bool
}

// Deflate compresses input at the given level, optionally wrapping the
// result in zlib framing.
func Deflate(input []byte, level block.Level, opts DeflateOptions) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	strategy := strategyFor(level)
	finder := lz.NewFinder(strategy, input, lz.MaxDistance)
	tokens := lz.Tokenize(input, finder)
	blocks := block.Segment(tokens)

	w := bitio.NewWriter()

	var cmf, flg byte
	if opts.Zlib {
		cmf, flg = zlibHeaderBytes(level)
		w.WriteRawBytes([]byte{cmf, flg})
	}

	for _, blk := range blocks {
		block.Encode(w, blk, level)
	}
	w.SkipToNextByteBoundary()

	if opts.Zlib {
		var trailer [4]byte
		binary.BigEndian.PutUint32(trailer[:], adler32.Checksum(input))
		w.WriteRawBytes(trailer[:])
	}

	return w.Bytes(), nil
}

// zlibHeaderBytes builds cmf/flg per RFC 1950 section 2.2: a fixed
// 32768-byte window (log2(32768)-8 == 7), FDICT=0, and FLEVEL derived from
// level.
func zlibHeaderBytes(level block.Level) (cmf, flg byte) {
	const cm = 8          // DEFLATE compression method
	const cinfo = 7 << 4   // log2(32768) - 8 == 7
	cmf = cm | cinfo

	var flevel byte
	switch level {
	case block.Fastest:
		flevel = 0
	case block.Fast:
		flevel = 1
	case block.Default:
		flevel = 2
	case block.Best:
		flevel = 3
	}
	flg = flevel << 6 // FDICT (bit 5) stays 0

	check := (int(cmf)*256 + int(flg)) % 31
	if check != 0 {
		flg += byte(31 - check)
	}
	return cmf, flg
}
