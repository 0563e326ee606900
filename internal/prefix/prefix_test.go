package prefix

import (
	"math/rand"
	"testing"

	"github.com/nthbyte/deflatecore/internal/bitio"
)

func TestBuildCodeLengthsSatisfiesKraft(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(286)
		freq := make([]uint32, n)
		for i := range freq {
			if rng.Intn(4) != 0 {
				freq[i] = uint32(1 + rng.Intn(5000))
			}
		}
		lengths := BuildCodeLengths(freq, MaxCodeLen)
		if got := KraftSum(lengths, MaxCodeLen); got > int64(1)<<MaxCodeLen {
			t.Fatalf("trial %d: Kraft sum %d exceeds 2^%d", trial, got, MaxCodeLen)
		}
		for _, l := range lengths {
			if l > MaxCodeLen {
				t.Fatalf("trial %d: length %d exceeds max %d", trial, l, MaxCodeLen)
			}
		}
	}
}

func TestDegenerateZeroAndOneSymbol(t *testing.T) {
	lengths := BuildCodeLengths([]uint32{0, 0, 0}, MaxCodeLen)
	if n := countLive(lengths); n < 2 {
		t.Fatalf("expected >= 2 live symbols for all-zero frequency, got %d", n)
	}

	lengths = BuildCodeLengths([]uint32{0, 7, 0}, MaxCodeLen)
	if n := countLive(lengths); n < 2 {
		t.Fatalf("expected >= 2 live symbols for single nonzero frequency, got %d", n)
	}
	if lengths[1] == 0 {
		t.Fatal("original symbol must keep a code")
	}
}

func countLive(lengths []int) int {
	n := 0
	for _, l := range lengths {
		if l > 0 {
			n++
		}
	}
	return n
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		n := 2 + rng.Intn(50)
		freq := make([]uint32, n)
		var symbols []int
		for i := 0; i < 2000; i++ {
			s := rng.Intn(n)
			freq[s]++
			symbols = append(symbols, s)
		}
		codes := NewCodes(freq, MaxCodeLen)
		dec, err := NewDecoder(codes.Lengths)
		if err != nil {
			t.Fatalf("trial %d: NewDecoder: %v", trial, err)
		}

		w := bitio.NewWriter()
		for _, s := range symbols {
			codes.Emit(w, s)
		}
		r := bitio.NewReader(w.Bytes())
		for i, want := range symbols {
			got, ok := dec.Decode(r)
			if !ok {
				t.Fatalf("trial %d symbol %d: unexpected EOF", trial, i)
			}
			if got != want {
				t.Fatalf("trial %d symbol %d: got %d want %d", trial, i, got, want)
			}
		}
	}
}

func TestDecodeTwoLiteralsMatchesDecode(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	freq := make([]uint32, 288)
	for i := range freq[:256] {
		freq[i] = uint32(1 + rng.Intn(200))
	}
	freq[256] = 1
	codes := NewCodes(freq, MaxCodeLen)
	dec, err := NewDecoder(codes.Lengths)
	if err != nil {
		t.Fatal(err)
	}

	var symbols []int
	for i := 0; i < 5000; i++ {
		symbols = append(symbols, rng.Intn(256))
	}
	symbols = append(symbols, 256)

	w := bitio.NewWriter()
	for _, s := range symbols {
		codes.Emit(w, s)
	}

	rSingle := bitio.NewReader(w.Bytes())
	rDouble := bitio.NewReader(w.Bytes())

	var viaSingle []int
	for {
		sym, ok := dec.Decode(rSingle)
		if !ok {
			t.Fatal("unexpected EOF via Decode")
		}
		viaSingle = append(viaSingle, sym)
		if sym == 256 {
			break
		}
	}

	var viaDouble []int
	for {
		res, ok := dec.DecodeTwoLiterals(rDouble)
		if !ok {
			t.Fatal("unexpected EOF via DecodeTwoLiterals")
		}
		switch res.Kind {
		case TwoLiteralSingle:
			viaDouble = append(viaDouble, int(res.Lit1))
		case TwoLiteralDouble:
			viaDouble = append(viaDouble, int(res.Lit1), int(res.Lit2))
		case TwoLiteralEndOfBlock:
			viaDouble = append(viaDouble, 256)
		}
		if res.Kind == TwoLiteralEndOfBlock {
			break
		}
	}

	if len(viaSingle) != len(viaDouble) {
		t.Fatalf("length mismatch: single=%d double=%d", len(viaSingle), len(viaDouble))
	}
	for i := range viaSingle {
		if viaSingle[i] != viaDouble[i] {
			t.Fatalf("symbol %d: single=%d double=%d", i, viaSingle[i], viaDouble[i])
		}
	}
}

func TestMetaHuffmanRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		n := 10 + rng.Intn(300)
		lengths := make([]int, n)
		for i := range lengths {
			if rng.Intn(3) != 0 {
				lengths[i] = 1 + rng.Intn(15)
			}
		}
		w := bitio.NewWriter()
		WriteMetaHuffman(w, DeflateCodeOrder, lengths)
		r := bitio.NewReader(w.Bytes())
		got, err := ReadMetaHuffman(r, DeflateCodeOrder, len(lengths))
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if len(got) != len(lengths) {
			t.Fatalf("trial %d: length %d want %d", trial, len(got), len(lengths))
		}
		for i := range lengths {
			if got[i] != lengths[i] {
				t.Fatalf("trial %d index %d: got %d want %d", trial, i, got[i], lengths[i])
			}
		}
	}
}

func TestTooFewSymbolsRejected(t *testing.T) {
	if _, err := NewDecoder([]int{0, 0, 0}); err != ErrTooFewSymbols {
		t.Fatalf("expected ErrTooFewSymbols, got %v", err)
	}
	if _, err := NewDecoder([]int{3, 0, 0}); err != ErrTooFewSymbols {
		t.Fatalf("expected ErrTooFewSymbols, got %v", err)
	}
}
