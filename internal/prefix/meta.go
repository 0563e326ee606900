package prefix

import (
	"errors"

	"github.com/nthbyte/deflatecore/internal/bitio"
)

// NumMetaSymbols is the size of the RFC 1951 code-length alphabet: sixteen
// verbatim lengths plus the three run-length escapes.
const NumMetaSymbols = 19

// MaxMetaCodeLen is the maximum code length allowed for the meta-Huffman
// code itself (RFC 1951 section 3.2.7).
const MaxMetaCodeLen = 7

// DeflateCodeOrder is the RFC 1951 permutation in which meta-code lengths
// are written to the stream (section 3.2.7).
var DeflateCodeOrder = [NumMetaSymbols]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// WebPCodeOrder is the alternate permutation WebP's lossless format uses
// for the same kind of meta-code-length table; not used by DEFLATE output,
// kept here for other consumers of the same meta-Huffman machinery.
var WebPCodeOrder = [NumMetaSymbols]int{17, 18, 0, 1, 2, 3, 4, 5, 16, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// ErrLengthOverflow means a meta-Huffman RLE run would write past the
// caller's expected output length.
var ErrLengthOverflow = errors.New("prefix: meta-Huffman run overshoots expected length")

// ErrLeadingRepeat means escape symbol 16 ("repeat previous") appeared as
// the very first symbol, with no prior length to repeat. RFC 1951 doesn't
// define a "previous" length before the first one is read, so this is
// rejected rather than treated as an implicit zero.
var ErrLeadingRepeat = errors.New("prefix: repeat-previous escape with no prior length")

type rleRun struct {
	symbol int // 0..15 verbatim, or 16/17/18 escape
	extra  bitio.VarBits
}

// compressLengths run-length compresses a concatenated length sequence
// using escapes 16 (repeat previous nonzero, 3..6 times, 2-bit extra), 17
// (repeat zero, 3..10 times, 3-bit extra), and 18 (repeat zero, 11..138
// times, 7-bit extra), per RFC 1951 section 3.2.7.
func compressLengths(lengths []int) []rleRun {
	var runs []rleRun
	i := 0
	for i < len(lengths) {
		v := lengths[i]
		j := i + 1
		for j < len(lengths) && lengths[j] == v {
			j++
		}
		count := j - i

		if v == 0 {
			for count > 0 {
				switch {
				case count >= 11:
					n := min(count, 138)
					runs = append(runs, rleRun{symbol: 18, extra: bitio.Bits(7, uint32(n-11))})
					count -= n
				case count >= 3:
					n := min(count, 10)
					runs = append(runs, rleRun{symbol: 17, extra: bitio.Bits(3, uint32(n-3))})
					count -= n
				default:
					for ; count > 0; count-- {
						runs = append(runs, rleRun{symbol: 0})
					}
				}
			}
		} else {
			runs = append(runs, rleRun{symbol: v})
			count--
			for count > 0 {
				n := min(count, 6)
				if n < 3 {
					for k := 0; k < n; k++ {
						runs = append(runs, rleRun{symbol: v})
					}
				} else {
					runs = append(runs, rleRun{symbol: 16, extra: bitio.Bits(2, uint32(n-3))})
				}
				count -= n
			}
		}
		i = j
	}
	return runs
}

// WriteMetaHuffman writes the RFC 1951 "meta-Huffman" section (section
// 3.2.7): a Huffman code over the 19-symbol length alphabet, its code
// lengths in permutation order, and the RLE-compressed concatenated length
// stream. Callers write hlit/hdist themselves first; lengths here is the
// already-concatenated (literal/length lengths, distance lengths).
func WriteMetaHuffman(w *bitio.Writer, order [NumMetaSymbols]int, lengths []int) {
	runs := compressLengths(lengths)

	var metaFreq [NumMetaSymbols]uint32
	for _, r := range runs {
		metaFreq[r.symbol]++
	}
	metaCodes := NewCodes(metaFreq[:], MaxMetaCodeLen)

	hclen := NumMetaSymbols
	for hclen > 4 && metaCodes.Lengths[order[hclen-1]] == 0 {
		hclen--
	}
	w.PushBits(4, uint32(hclen-4))
	for i := 0; i < hclen; i++ {
		w.PushBits(3, uint32(metaCodes.Lengths[order[i]]))
	}

	for _, r := range runs {
		metaCodes.Emit(w, r.symbol)
		if r.extra.Size > 0 {
			w.Push(r.extra)
		}
	}
}

// ReadMetaHuffman reads the RFC 1951 meta-Huffman section (section 3.2.7)
// and decodes exactly expectedLength code lengths.
func ReadMetaHuffman(r *bitio.Reader, order [NumMetaSymbols]int, expectedLength int) ([]int, error) {
	hclenField, ok := r.ReadBits(4)
	if !ok {
		return nil, errUnexpectedEOF
	}
	hclen := int(hclenField) + 4

	var metaLengths [NumMetaSymbols]int
	for i := 0; i < hclen; i++ {
		v, ok := r.ReadBits(3)
		if !ok {
			return nil, errUnexpectedEOF
		}
		metaLengths[order[i]] = int(v)
	}

	dec, err := NewDecoder(metaLengths[:])
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, expectedLength)
	prev := 0
	havePrev := false
	for len(out) < expectedLength {
		sym, ok := dec.Decode(r)
		if !ok {
			return nil, errUnexpectedEOF
		}
		switch {
		case sym <= 15:
			out = append(out, sym)
			prev = sym
			havePrev = true
		case sym == 16:
			if !havePrev {
				return nil, ErrLeadingRepeat
			}
			extra, ok := r.ReadBits(2)
			if !ok {
				return nil, errUnexpectedEOF
			}
			n := 3 + int(extra)
			if len(out)+n > expectedLength {
				return nil, ErrLengthOverflow
			}
			for i := 0; i < n; i++ {
				out = append(out, prev)
			}
		case sym == 17:
			extra, ok := r.ReadBits(3)
			if !ok {
				return nil, errUnexpectedEOF
			}
			n := 3 + int(extra)
			if len(out)+n > expectedLength {
				return nil, ErrLengthOverflow
			}
			for i := 0; i < n; i++ {
				out = append(out, 0)
			}
			prev, havePrev = 0, true
		case sym == 18:
			extra, ok := r.ReadBits(7)
			if !ok {
				return nil, errUnexpectedEOF
			}
			n := 11 + int(extra)
			if len(out)+n > expectedLength {
				return nil, ErrLengthOverflow
			}
			for i := 0; i < n; i++ {
				out = append(out, 0)
			}
			prev, havePrev = 0, true
		default:
			return nil, ErrConflictingCodes
		}
	}
	return out, nil
}

var errUnexpectedEOF = errors.New("prefix: unexpected end of bit stream")

// ErrUnexpectedEOF is the exported sentinel for a truncated bit stream.
var ErrUnexpectedEOF = errUnexpectedEOF
