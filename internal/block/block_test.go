package block

import (
	"math/rand"
	"testing"

	"github.com/nthbyte/deflatecore/internal/bitio"
	"github.com/nthbyte/deflatecore/internal/lz"
)

func TestNewBlockAlwaysCountsEndOfBlock(t *testing.T) {
	blk := NewBlock(nil, true)
	if blk.LitFreq[EndOfBlock] < 1 {
		t.Fatal("freq_lit[256] must be >= 1 per spec.md §3")
	}
}

func TestSegmentInheritsFinalFlag(t *testing.T) {
	tokens := make([]lz.Token, MinBlockSize*2+5)
	for i := range tokens {
		tokens[i] = lz.Token{Literal: byte(i)}
	}
	blocks := Segment(tokens)
	if len(blocks) < 2 {
		t.Fatalf("expected at least 2 blocks, got %d", len(blocks))
	}
	for i, b := range blocks {
		wantFinal := i == len(blocks)-1
		if b.Final != wantFinal {
			t.Fatalf("block %d: Final=%v want %v", i, b.Final, wantFinal)
		}
	}
}

func TestSegmentEmptyProducesOneFinalBlock(t *testing.T) {
	blocks := Segment(nil)
	if len(blocks) != 1 || !blocks[0].Final {
		t.Fatalf("expected one final empty block, got %+v", blocks)
	}
}

func TestEncodeProducesWellFormedBitstream(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var tokens []lz.Token
	for i := 0; i < 500; i++ {
		if rng.Intn(3) == 0 && len(tokens) > 0 {
			tokens = append(tokens, lz.Token{Match: true, Length: 3 + rng.Intn(250), Distance: 1 + rng.Intn(100)})
		} else {
			tokens = append(tokens, lz.Token{Literal: byte(rng.Intn(256))})
		}
	}
	blk := NewBlock(tokens, true)

	for _, level := range []Level{Fastest, Fast, Default, Best} {
		w := bitio.NewWriter()
		Encode(w, blk, level)
		if w.BitCount() == 0 {
			t.Fatalf("level %v: expected a nonempty bitstream", level)
		}
		r := bitio.NewReader(w.Bytes())
		bfinal, ok := r.ReadBits(1)
		if !ok || bfinal != 1 {
			t.Fatalf("level %v: expected bfinal=1", level)
		}
		btype, ok := r.ReadBits(2)
		if !ok || btype == 3 {
			t.Fatalf("level %v: invalid btype %d", level, btype)
		}
	}
}

func TestEntropyEstimateIsCachedAndNonNegative(t *testing.T) {
	blk := NewBlock([]lz.Token{{Literal: 'a'}, {Literal: 'b'}, {Literal: 'a'}}, true)
	first := blk.EntropyEstimateBytes()
	second := blk.EntropyEstimateBytes()
	if first != second {
		t.Fatalf("expected cached entropy estimate to be stable: %v != %v", first, second)
	}
	if first < 0 {
		t.Fatalf("entropy estimate must be non-negative, got %v", first)
	}
}
