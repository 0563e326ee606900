// Package block segments a token stream into DEFLATE blocks and encodes
// each one, choosing between the static and dynamic Huffman block types
// (RFC 1951 section 3.2.3). Grounded on original_source/src/deflate/deflate.rs.
package block

import "github.com/nthbyte/deflatecore/internal/lz"

// NumLitSymbols is the size of the literal/length alphabet (256 literals,
// end-of-block, 29 length codes, and the two unused symbols 286 and 287).
const NumLitSymbols = 288

// NumDistSymbols is the size of the distance alphabet.
const NumDistSymbols = 30

// EndOfBlock is the literal/length alphabet's end-of-block symbol.
const EndOfBlock = 256

// MinBlockSize is the minimum number of tokens the segmenter puts in a
// chunk before starting a new block.
const MinBlockSize = 16 * 1024

// staticEncodeThresholdBytes is the entropy-estimate byte threshold below
// which both static and dynamic encodings are tried and the cheaper one
// kept.
const staticEncodeThresholdBytes = 4096

// Block is a contiguous span of tokens plus the derived state the encoder
// needs: frequency tables for both alphabets, a cached entropy estimate,
// and whether this is the stream's final block.
type Block struct {
	Tokens   []lz.Token
	LitFreq  [NumLitSymbols]uint32
	DistFreq [NumDistSymbols]uint32
	Final    bool

	entropyBits   float64
	entropyCached bool
}

// NewBlock builds a Block from a token span, counting frequencies and
// ensuring freq_lit[256] >= 1: the end-of-block symbol is always live.
func NewBlock(tokens []lz.Token, final bool) *Block {
	b := &Block{Tokens: tokens, Final: final}
	for _, t := range tokens {
		if t.Match {
			li, _ := lengthSymbol(t.Length)
			b.LitFreq[li]++
			di, _ := distanceSymbol(t.Distance)
			b.DistFreq[di]++
		} else {
			b.LitFreq[t.Literal]++
		}
	}
	b.LitFreq[EndOfBlock]++
	return b
}

// EntropyEstimateBytes returns the cached Shannon-entropy byte-size
// estimate for this block, computing it on first use.
func (b *Block) EntropyEstimateBytes() float64 {
	if !b.entropyCached {
		b.entropyBits = estimatedBitCost(b.LitFreq[:], b.DistFreq[:])
		b.entropyCached = true
	}
	return b.entropyBits / 8
}
