// Package lz implements the Lempel-Ziv match finder and tokenizer: it
// turns an input byte buffer into a stream of literal/match tokens, using
// whichever of three match-finding strategies the caller selects. Grounded
// on original_source/src/lz/lz.rs, src/lz/lzss.rs, and src/lz/cache.rs.
package lz

import "fmt"

// MinMatchLen is the shortest back-reference DEFLATE allows.
const MinMatchLen = 3

// MaxMatchLen is the longest back-reference a single DEFLATE token can
// carry; longer matches are split by the tokenizer.
const MaxMatchLen = 258

// MaxDistance is the largest back-reference distance DEFLATE allows.
const MaxDistance = 32768

// Token is either a literal byte or a length/distance match.
type Token struct {
	Match    bool
	Literal  byte
	Length   int
	Distance int
}

func (t Token) String() string {
	if t.Match {
		return fmt.Sprintf("match(len=%d,dist=%d)", t.Length, t.Distance)
	}
	return fmt.Sprintf("lit(%#02x)", t.Literal)
}

// irWord is the LZ-IR's opaque 64-bit token encoding: a tagged union of a
// run of up to seven literals, or one length/distance match. Bit 63 is the
// tag; literal runs pack a 3-bit count and up to seven bytes into the low
// 59 bits, matches pack a 15-bit (distance-1) and an 8-bit (length-3)
// field.
type irWord uint64

const irTagMatch = irWord(1) << 63

func packLiteralRun(lits []byte) irWord {
	if len(lits) == 0 || len(lits) > 7 {
		panic("lz: literal run must hold 1..=7 bytes")
	}
	w := irWord(len(lits)) << 56
	for i, b := range lits {
		w |= irWord(b) << uint(8*i)
	}
	return w
}

func (w irWord) literalRun() []byte {
	n := int((w >> 56) & 0x7)
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(w >> uint(8*i))
	}
	return out
}

func packMatch(length, distance int) irWord {
	if length < MinMatchLen || length > MaxMatchLen {
		panic("lz: match length out of range")
	}
	if distance < 1 || distance > MaxDistance {
		panic("lz: match distance out of range")
	}
	return irTagMatch | irWord(length-MinMatchLen)<<16 | irWord(distance-1)
}

func (w irWord) match() (length, distance int) {
	length = int((w>>16)&0xFF) + MinMatchLen
	distance = int(w&0xFFFF) + 1
	return length, distance
}

// Sequence is an append-only LZ-IR buffer: the tokenizer writes into it as
// it scans the input, coalescing consecutive literals into shared 64-bit
// words, and the block encoder later walks the decoded Token view. It is
// created by the tokenizer, consumed by the block encoder, and discarded
// with its owning buffer.
type Sequence struct {
	words   []irWord
	pending []byte
}

// AppendLiteral buffers a literal byte, flushing a packed run every seven
// bytes.
func (s *Sequence) AppendLiteral(b byte) {
	s.pending = append(s.pending, b)
	if len(s.pending) == 7 {
		s.flushLiterals()
	}
}

// AppendMatch flushes any pending literals and appends one match word.
func (s *Sequence) AppendMatch(length, distance int) {
	s.flushLiterals()
	s.words = append(s.words, packMatch(length, distance))
}

func (s *Sequence) flushLiterals() {
	if len(s.pending) == 0 {
		return
	}
	s.words = append(s.words, packLiteralRun(s.pending))
	s.pending = s.pending[:0]
}

// Tokens expands the LZ-IR buffer into a plain Token slice for the block
// encoder.
func (s *Sequence) Tokens() []Token {
	s.flushLiterals()
	out := make([]Token, 0, len(s.words))
	for _, w := range s.words {
		if w&irTagMatch != 0 {
			length, distance := w.match()
			out = append(out, Token{Match: true, Length: length, Distance: distance})
		} else {
			for _, b := range w.literalRun() {
				out = append(out, Token{Literal: b})
			}
		}
	}
	return out
}
