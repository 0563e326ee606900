package bitio

import (
	"math/rand"
	"testing"
)

func TestVarBitsReversedIsInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		size := BitSize(1 + rng.Intn(MaxBitSize))
		value := rng.Uint32()
		v := Bits(size, value)
		got := v.Reversed().Reversed()
		if got != v {
			t.Fatalf("size=%d value=%#x: reversed-reversed = %+v, want %+v", size, value, got, v)
		}
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	w := NewWriter()
	var want []VarBits
	for i := 0; i < 500; i++ {
		size := BitSize(1 + rng.Intn(20))
		value := rng.Uint32()
		vb := Bits(size, value)
		want = append(want, vb)
		w.Push(vb)
	}
	r := NewReader(w.Bytes())
	for i, vb := range want {
		got, ok := r.ReadBits(int(vb.Size))
		if !ok {
			t.Fatalf("entry %d: unexpected EOF", i)
		}
		if got != vb.Value {
			t.Fatalf("entry %d: got %#x want %#x", i, got, vb.Value)
		}
	}
}

func TestPeekThenAdvanceEqualsRead(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	w := NewWriter()
	for i := 0; i < 300; i++ {
		w.PushBits(BitSize(1+rng.Intn(16)), rng.Uint32())
	}
	data := w.Bytes()

	rA := NewReader(data)
	rB := NewReader(data)
	for {
		n := 1 + rng.Intn(16)
		peeked, okA := rA.PeekBits(n)
		if okA {
			rA.Advance(n)
		}
		read, okB := rB.ReadBits(n)
		if okA != okB {
			t.Fatalf("peek+advance availability %v != read availability %v", okA, okB)
		}
		if !okA {
			break
		}
		if peeked != read {
			t.Fatalf("peek+advance = %#x, read = %#x", peeked, read)
		}
	}
}

func TestSkipToNextByteBoundary(t *testing.T) {
	w := NewWriter()
	w.PushBits(3, 0b101)
	w.SkipToNextByteBoundary()
	w.WriteRawBytes([]byte{0xAB, 0xCD})
	data := w.Bytes()
	if len(data) != 3 {
		t.Fatalf("expected 3 bytes, got %d: %x", len(data), data)
	}
	if data[1] != 0xAB || data[2] != 0xCD {
		t.Fatalf("raw bytes not byte-aligned: %x", data)
	}
}

func TestReadNextBytesSlice(t *testing.T) {
	w := NewWriter()
	w.PushBits(4, 0xF)
	w.SkipToNextByteBoundary()
	w.WriteRawBytes([]byte{1, 2, 3, 4})
	r := NewReader(w.Bytes())
	r.ReadBits(4)
	got, ok := r.ReadNextBytesSlice(4)
	if !ok {
		t.Fatal("expected ok")
	}
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestReaderEOF(t *testing.T) {
	r := NewReader([]byte{0xFF})
	if _, ok := r.ReadBits(8); !ok {
		t.Fatal("expected first read to succeed")
	}
	if _, ok := r.ReadBits(1); ok {
		t.Fatal("expected EOF on second read")
	}
}
