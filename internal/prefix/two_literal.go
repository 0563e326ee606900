package prefix

import "github.com/nthbyte/deflatecore/internal/bitio"

// TwoLiteralKind tags the shape of what a single table probe decoded: a
// tagged union over {Single(u8), Double(u8,u8), Length(code), EndOfBlock}.
type TwoLiteralKind int

const (
	TwoLiteralMiss TwoLiteralKind = iota
	TwoLiteralSingle
	TwoLiteralDouble
	TwoLiteralLength
	TwoLiteralEndOfBlock
)

// TwoLiteralResult is the decoded outcome of one DecodeTwoLiterals probe.
type TwoLiteralResult struct {
	Kind      TwoLiteralKind
	Lit1      byte
	Lit2      byte
	LengthSym int // only meaningful for TwoLiteralLength: the 0..=28 length-VLI index
}

type twoEntry struct {
	result TwoLiteralResult
	bits   uint8
}

// endOfBlockSymbol is the DEFLATE literal/length alphabet's end-of-block
// marker. lengthSymbolBase mirrors vli.LengthSymbolBase without importing
// vli, to keep this general-purpose package alphabet-agnostic beyond these
// two well-known constants.
const (
	endOfBlockSymbol = 256
	lengthSymbolBase = 257
)

// buildTwoLiteralTable precomputes, for every possible k-bit window, what a
// single decode plus an opportunistic second literal decode would yield.
// NewDecoder builds it for every alphabet, but its literal/length/end-of-
// block classification is only meaningful for the DEFLATE literal/length
// alphabet; callers that don't need it can ignore Decoder.DecodeTwoLiterals.
func (d *Decoder) buildTwoLiteralTable() {
	d.twoTab = make([]twoEntry, len(d.table))
	for idx := range d.table {
		e1 := d.table[idx]
		if e1.symbol < 0 {
			d.twoTab[idx] = twoEntry{result: TwoLiteralResult{Kind: TwoLiteralMiss}}
			continue
		}
		switch {
		case int(e1.symbol) == endOfBlockSymbol:
			d.twoTab[idx] = twoEntry{
				result: TwoLiteralResult{Kind: TwoLiteralEndOfBlock},
				bits:   e1.length,
			}
		case int(e1.symbol) >= lengthSymbolBase:
			d.twoTab[idx] = twoEntry{
				result: TwoLiteralResult{Kind: TwoLiteralLength, LengthSym: int(e1.symbol) - lengthSymbolBase},
				bits:   e1.length,
			}
		default:
			// e1 is a literal byte; see if a second literal fits in
			// the remaining window bits.
			rest := idx >> e1.length
			remBits := d.k - int(e1.length)
			if remBits > 0 && rest < len(d.table) {
				e2 := d.table[rest&(len(d.table)-1)]
				if e2.symbol >= 0 && int(e2.symbol) < 256 && int(e1.length)+int(e2.length) <= d.k {
					d.twoTab[idx] = twoEntry{
						result: TwoLiteralResult{Kind: TwoLiteralDouble, Lit1: byte(e1.symbol), Lit2: byte(e2.symbol)},
						bits:   e1.length + e2.length,
					}
					continue
				}
			}
			d.twoTab[idx] = twoEntry{
				result: TwoLiteralResult{Kind: TwoLiteralSingle, Lit1: byte(e1.symbol)},
				bits:   e1.length,
			}
		}
	}
}

// DecodeTwoLiterals attempts to consume up to two literal codes (or one
// length/end-of-block code) in a single table probe, falling back to the
// ordinary tree-walking Decode when the window doesn't resolve. Both paths
// must be observationally equivalent.
func (d *Decoder) DecodeTwoLiterals(r *bitio.Reader) (TwoLiteralResult, bool) {
	peek, ok := r.PeekBits(d.k)
	if ok {
		e := d.twoTab[peek]
		if e.result.Kind != TwoLiteralMiss {
			r.Advance(int(e.bits))
			return e.result, true
		}
	}
	sym, ok := d.walkTree(r)
	if !ok {
		return TwoLiteralResult{}, false
	}
	switch {
	case sym == endOfBlockSymbol:
		return TwoLiteralResult{Kind: TwoLiteralEndOfBlock}, true
	case sym >= lengthSymbolBase:
		return TwoLiteralResult{Kind: TwoLiteralLength, LengthSym: sym - lengthSymbolBase}, true
	default:
		return TwoLiteralResult{Kind: TwoLiteralSingle, Lit1: byte(sym)}, true
	}
}
