package prefix

import "github.com/nthbyte/deflatecore/internal/bitio"

// Codes bundles a code-length table with its assigned canonical codes so
// callers can emit symbols without recomputing AssignCanonicalCodes.
type Codes struct {
	Lengths []int
	Values  []uint32
}

// NewCodes builds canonical codes from per-symbol frequencies, per RFC
// 1951 section 3.2.2.
func NewCodes(freq []uint32, maxLen int) Codes {
	lengths := BuildCodeLengths(freq, maxLen)
	return Codes{Lengths: lengths, Values: AssignCanonicalCodes(lengths)}
}

// NewCodesFromLengths builds canonical codes from an already-decided
// length table, used for the fixed/static Huffman tables (RFC 1951
// section 3.2.6) where the lengths are compile-time constants rather than
// derived from frequencies.
func NewCodesFromLengths(lengths []int) Codes {
	return Codes{Lengths: lengths, Values: AssignCanonicalCodes(lengths)}
}

// Emit writes symbol's canonical code to w, bit-reversed to its length so
// it lands on the wire LSB-first (RFC 1951 section 3.1.1).
func (c Codes) Emit(w *bitio.Writer, symbol int) {
	l := c.Lengths[symbol]
	w.Push(bitio.Bits(bitio.BitSize(l), c.Values[symbol]).Reversed())
}

// Len returns the code's bit length for symbol, for cost-estimation
// purposes (entropy-based static-vs-dynamic size estimate).
func (c Codes) Len(symbol int) int {
	return c.Lengths[symbol]
}
