// Package flate implements the DEFLATE decoder (RFC 1951) and zlib framing
// (RFC 1950), decoding a complete input buffer in one pass. Grounded on the
// teacher's own internal/flate/inflate.go: the panic+recover error
// boundary, the block-type switch, and the byte-by-byte overlapping copy
// are kept; the resumable/seekable decompressor state (resumePoint,
// readAtLeast, the chunk/link huffmanDecoder) is replaced by
// internal/prefix's tree+table decoder and a plain growing output slice,
// since this module decodes whole buffers rather than seekable archive
// members.
package flate

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/nthbyte/deflatecore/internal/adler32"
	"github.com/nthbyte/deflatecore/internal/bitio"
	"github.com/nthbyte/deflatecore/internal/prefix"
	"github.com/nthbyte/deflatecore/internal/vli"
)

// Error classes this package returns.
var (
	ErrUnexpectedEOF     = errors.New("flate: unexpected end of bit stream")
	ErrInvalidData       = errors.New("flate: invalid data")
	ErrUnsupportedFormat = errors.New("flate: unsupported format")
	ErrInvalidInput      = errors.New("flate: output would exceed the declared size")
)

const (
	btypeStored  = 0
	btypeFixed   = 1
	btypeDynamic = 2

	maxNumLit  = 288
	maxNumDist = 30
)

var fixedOnce sync.Once
var fixedLitDecoder, fixedDistDecoder *prefix.Decoder

func fixedDecoders() (*prefix.Decoder, *prefix.Decoder) {
	fixedOnce.Do(func() {
		litLengths := make([]int, maxNumLit)
		for i := 0; i <= 143; i++ {
			litLengths[i] = 8
		}
		for i := 144; i <= 255; i++ {
			litLengths[i] = 9
		}
		for i := 256; i <= 279; i++ {
			litLengths[i] = 7
		}
		for i := 280; i <= 287; i++ {
			litLengths[i] = 8
		}
		distLengths := make([]int, maxNumDist)
		for i := range distLengths {
			distLengths[i] = 5
		}

		var err error
		fixedLitDecoder, err = prefix.NewDecoder(litLengths)
		if err != nil {
			panic(err)
		}
		fixedDistDecoder, err = prefix.NewDecoder(distLengths)
		if err != nil {
			panic(err)
		}
	})
	return fixedLitDecoder, fixedDistDecoder
}

// Inflate decodes a raw DEFLATE or zlib-framed stream, returning an error
// if the result would exceed maxOutputLen bytes.
func Inflate(input []byte, maxOutputLen int) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = recoverErr(rec)
		}
	}()

	payload, zlibFramed := stripFraming(input)
	r := bitio.NewReader(payload)
	result := inflateBlocks(r, maxOutputLen)

	if zlibFramed {
		trailer, ok := r.ReadNextBytesSlice(4)
		if !ok {
			panic(ErrUnexpectedEOF)
		}
		want := binary.BigEndian.Uint32(trailer)
		if got := adler32.Checksum(result); got != want {
			panic(ErrInvalidData)
		}
	}
	return result, nil
}

// InflateInPlace decodes input into output, failing if the decoded length
// would exceed len(output).
func InflateInPlace(input []byte, output []byte) (err error) {
	result, err := Inflate(input, len(output))
	if err != nil {
		return err
	}
	copy(output, result)
	return nil
}

func recoverErr(rec any) error {
	if e, ok := rec.(error); ok {
		return e
	}
	return ErrInvalidData
}

// stripFraming detects a zlib header (RFC 1950 section 2.2) and returns
// the DEFLATE payload plus whether framing was present.
func stripFraming(input []byte) (payload []byte, zlibFramed bool) {
	if len(input) == 0 {
		panic(ErrUnexpectedEOF)
	}
	if input[0]&0x0F != 8 {
		return input, false
	}
	if len(input) < 2 {
		panic(ErrUnexpectedEOF)
	}
	cmf, flg := input[0], input[1]
	if (int(cmf)*256+int(flg))%31 != 0 {
		panic(ErrInvalidData)
	}
	if (flg>>5)&1 == 1 {
		panic(ErrUnsupportedFormat) // FDICT=1
	}
	return input[2:], true
}

// inflateBlocks runs the DEFLATE block loop (RFC 1951 section 3.2.3),
// appending to a growing output slice bounded by limit bytes.
func inflateBlocks(r *bitio.Reader, limit int) []byte {
	var out []byte
	for {
		bfinal, ok := r.ReadBits(1)
		if !ok {
			panic(ErrUnexpectedEOF)
		}
		btype, ok := r.ReadBits(2)
		if !ok {
			panic(ErrUnexpectedEOF)
		}

		switch btype {
		case btypeStored:
			out = storedBlock(r, out, limit)
		case btypeFixed:
			lit, dist := fixedDecoders()
			out = huffmanBlock(r, lit, dist, out, limit)
		case btypeDynamic:
			lit, dist := readDynamicTables(r)
			out = huffmanBlock(r, lit, dist, out, limit)
		default:
			panic(ErrInvalidData) // btype == 3, reserved
		}

		if bfinal == 1 {
			return out
		}
	}
}

func storedBlock(r *bitio.Reader, out []byte, limit int) []byte {
	header, ok := r.ReadNextBytesSlice(4)
	if !ok {
		panic(ErrUnexpectedEOF)
	}
	n := int(header[0]) | int(header[1])<<8
	nn := int(header[2]) | int(header[3])<<8
	if uint16(nn) != uint16(^uint16(n)) {
		panic(ErrInvalidData)
	}
	data, ok := r.ReadNextBytesSlice(n)
	if !ok {
		panic(ErrUnexpectedEOF)
	}
	return appendChecked(out, data, limit)
}

// huffmanBlock decodes one compressed block's body (RFC 1951 section
// 3.2.5): literal/length symbols, with back-reference copies handled
// byte-by-byte so self-overlapping copies (including distance==1 RLE
// fills) reproduce correctly.
func huffmanBlock(r *bitio.Reader, lit, dist *prefix.Decoder, out []byte, limit int) []byte {
	for {
		sym, ok := lit.Decode(r)
		if !ok {
			panic(ErrUnexpectedEOF)
		}

		switch {
		case sym < 256:
			if limit >= 0 && len(out)+1 > limit {
				panic(ErrInvalidInput)
			}
			out = append(out, byte(sym))
			continue
		case sym == 256:
			return out
		case sym > 285:
			panic(ErrInvalidData)
		}

		li := sym - vli.LengthSymbolBase
		lengthEntry := vli.Length.Entry(li)
		var lengthExtra uint32
		if lengthEntry.Extra > 0 {
			v, ok := r.ReadBits(lengthEntry.Extra)
			if !ok {
				panic(ErrUnexpectedEOF)
			}
			lengthExtra = v
		}
		length := vli.Length.Join(li, lengthExtra)

		distSym, ok := dist.Decode(r)
		if !ok {
			panic(ErrUnexpectedEOF)
		}
		if distSym < 0 || distSym >= vli.Distance.Len() {
			panic(ErrInvalidData)
		}
		distEntry := vli.Distance.Entry(distSym)
		var distExtra uint32
		if distEntry.Extra > 0 {
			v, ok := r.ReadBits(distEntry.Extra)
			if !ok {
				panic(ErrUnexpectedEOF)
			}
			distExtra = v
		}
		distance := vli.Distance.Join(distSym, distExtra)

		if distance > len(out) {
			panic(ErrInvalidData)
		}
		if limit >= 0 && len(out)+length > limit {
			panic(ErrInvalidInput)
		}

		start := len(out) - distance
		if distance == 1 {
			fill := out[start]
			for i := 0; i < length; i++ {
				out = append(out, fill)
			}
		} else {
			for i := 0; i < length; i++ {
				out = append(out, out[start+i])
			}
		}
	}
}

// readDynamicTables reads a dynamic block's header (RFC 1951 section
// 3.2.7) and builds the literal/length and distance decoders.
func readDynamicTables(r *bitio.Reader) (*prefix.Decoder, *prefix.Decoder) {
	hlitField, ok := r.ReadBits(5)
	if !ok {
		panic(ErrUnexpectedEOF)
	}
	nlit := int(hlitField) + 257

	hdistField, ok := r.ReadBits(5)
	if !ok {
		panic(ErrUnexpectedEOF)
	}
	ndist := int(hdistField) + 1
	if nlit > maxNumLit || ndist > maxNumDist {
		panic(ErrInvalidData)
	}

	combined, err := prefix.ReadMetaHuffman(r, prefix.DeflateCodeOrder, nlit+ndist)
	if err != nil {
		if errors.Is(err, prefix.ErrUnexpectedEOF) {
			panic(ErrUnexpectedEOF)
		}
		panic(ErrInvalidData)
	}

	lit, err := prefix.NewDecoder(combined[:nlit])
	if err != nil {
		panic(ErrInvalidData)
	}
	dist, err := prefix.NewDecoder(combined[nlit:])
	if err != nil {
		panic(ErrInvalidData)
	}
	return lit, dist
}

func appendChecked(out []byte, data []byte, limit int) []byte {
	if limit >= 0 && len(out)+len(data) > limit {
		panic(ErrInvalidInput)
	}
	return append(out, data...)
}
