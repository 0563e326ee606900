package flate

import (
	"testing"

	"github.com/nthbyte/deflatecore/internal/bitio"
	"github.com/nthbyte/deflatecore/internal/prefix"
)

// fixedTestCodes rebuilds RFC 1951's fixed Huffman literal/length table
// locally, so this test can write a fixed-Huffman block by hand (spec.md
// §8 scenario E1) without depending on the encoder package.
func fixedTestCodes() prefix.Codes {
	lengths := make([]int, maxNumLit)
	for i := 0; i <= 143; i++ {
		lengths[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lengths[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lengths[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lengths[i] = 8
	}
	return prefix.NewCodesFromLengths(lengths)
}

func TestFixedBlockHelloWorld(t *testing.T) {
	codes := fixedTestCodes()
	w := bitio.NewWriter()
	w.PushBits(1, 1) // bfinal
	w.PushBits(2, 1) // btype=01 fixed
	for _, b := range []byte("Hello, World!") {
		codes.Emit(w, int(b))
	}
	codes.Emit(w, 256) // end of block

	out, err := Inflate(w.Bytes(), 13)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "Hello, World!" {
		t.Fatalf("got %q", out)
	}
}

func TestEmptyFixedFinalBlock(t *testing.T) {
	out, err := Inflate([]byte{0x03, 0x00}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestBtype11IsInvalidData(t *testing.T) {
	w := bitio.NewWriter()
	w.PushBits(1, 1) // bfinal
	w.PushBits(2, 3) // btype=11, reserved
	_, err := Inflate(w.Bytes(), 0)
	if err != ErrInvalidData {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestZlibFDICTRejected(t *testing.T) {
	// cmf=0x78 (CM=8, CINFO=7), flg chosen with FDICT=1 and a valid mod-31
	// checksum.
	cmf := byte(0x78)
	var flg byte
	for f := 0; f < 256; f++ {
		candidate := byte(f) | 0x20 // force FDICT bit
		if (int(cmf)*256+int(candidate))%31 == 0 {
			flg = candidate
			break
		}
	}
	input := []byte{cmf, flg, 0, 0, 0, 0}
	_, err := Inflate(input, 0)
	if err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestZlibMod31CheckFails(t *testing.T) {
	cmf := byte(0x78)
	flg := byte(0x01) // 0x7801 passes the mod-31 check, so it is bumped to 0x02 below
	if (int(cmf)*256+int(flg))%31 == 0 {
		flg++
	}
	_, err := Inflate([]byte{cmf, flg, 0, 0}, 0)
	if err != ErrInvalidData {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestUnexpectedEOF(t *testing.T) {
	if _, err := Inflate(nil, 0); err != ErrUnexpectedEOF {
		t.Fatalf("expected ErrUnexpectedEOF for empty input, got %v", err)
	}
}

func TestDistanceOneRunLengthFill(t *testing.T) {
	codes := fixedTestCodes()
	w := bitio.NewWriter()
	w.PushBits(1, 1)
	w.PushBits(2, 1)
	codes.Emit(w, int('A'))
	// length symbol for 258 is 285 (no extra bits); distance symbol 0 means
	// distance 1 (no extra bits).
	codes.Emit(w, 285)
	distCodes := prefix.NewCodesFromLengths(func() []int {
		l := make([]int, maxNumDist)
		for i := range l {
			l[i] = 5
		}
		return l
	}())
	distCodes.Emit(w, 0)
	codes.Emit(w, 256)

	out, err := Inflate(w.Bytes(), 259)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 259 {
		t.Fatalf("expected 259 bytes, got %d", len(out))
	}
	for i, b := range out {
		if b != 'A' {
			t.Fatalf("byte %d: got %q want 'A'", i, b)
		}
	}
}

func TestInflateInPlaceRejectsOversizedOutput(t *testing.T) {
	codes := fixedTestCodes()
	w := bitio.NewWriter()
	w.PushBits(1, 1)
	w.PushBits(2, 1)
	for _, b := range []byte("too long") {
		codes.Emit(w, int(b))
	}
	codes.Emit(w, 256)

	buf := make([]byte, 3)
	if err := InflateInPlace(w.Bytes(), buf); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
