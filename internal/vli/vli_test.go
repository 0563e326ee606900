package vli

import "testing"

func TestLengthTableRoundTrip(t *testing.T) {
	for v := 3; v <= 258; v++ {
		sym, extra := Length.Split(v)
		got := Length.Join(sym, extra)
		if got != v {
			t.Fatalf("length %d: split/join round trip gave %d", v, got)
		}
	}
}

func TestDistanceTableRoundTrip(t *testing.T) {
	for v := 1; v <= 32768; v++ {
		sym, extra := Distance.Split(v)
		got := Distance.Join(sym, extra)
		if got != v {
			t.Fatalf("distance %d: split/join round trip gave %d", v, got)
		}
	}
}

func TestTableRanges(t *testing.T) {
	if Length.Len() != 29 {
		t.Fatalf("expected 29 length entries, got %d", Length.Len())
	}
	if Distance.Len() != 30 {
		t.Fatalf("expected 30 distance entries, got %d", Distance.Len())
	}
	if Length.Max() != 258 {
		t.Fatalf("length max = %d, want 258", Length.Max())
	}
	if Distance.Max() != 32768 {
		t.Fatalf("distance max = %d, want 32768", Distance.Max())
	}
}
