// Package vli implements the variable-length integer scheme RFC 1951 uses
// for match lengths and distances: each value is represented as a leading
// symbol plus a fixed number of extra bits, generalized from the original
// crate's VlInteger table builder (original_source/src/num/vl_integer.rs).
package vli

// Entry is one row of a VLI table: a symbol covers [Base, Base+2^Extra) and
// is further disambiguated by reading Extra extra bits.
type Entry struct {
	Extra int
	Base  int
}

// Table maps values to (symbol, extra-bits) and back.
type Table struct {
	entries []Entry
}

// NewTable builds a Table from extra-bit counts and base values, one pair
// per symbol, in ascending symbol order.
func NewTable(extra []int, base []int) *Table {
	if len(extra) != len(base) {
		panic("vli: extra and base length mismatch")
	}
	entries := make([]Entry, len(extra))
	for i := range extra {
		entries[i] = Entry{Extra: extra[i], Base: base[i]}
	}
	return &Table{entries: entries}
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int { return len(t.entries) }

// Entry returns the (extra, base) pair for symbol i.
func (t *Table) Entry(i int) Entry { return t.entries[i] }

// Split finds the symbol whose range contains value, returning the symbol
// index and the extra-bit payload to write alongside it. value must be in
// [t.entries[0].Base, t.Max()].
func (t *Table) Split(value int) (symbol int, extraValue uint32) {
	// The tables are monotonically increasing in Base; a linear scan from
	// the top is cheap given at most 30 entries and matches how small,
	// fixed RFC 1951 tables are normally searched.
	for i := len(t.entries) - 1; i >= 0; i-- {
		if value >= t.entries[i].Base {
			return i, uint32(value - t.entries[i].Base)
		}
	}
	panic("vli: value below table range")
}

// Join reconstructs the value encoded by symbol plus its extra-bit payload.
func (t *Table) Join(symbol int, extraValue uint32) int {
	e := t.entries[symbol]
	return e.Base + int(extraValue)
}

// Max returns the largest representable value in the table.
func (t *Table) Max() int {
	last := t.entries[len(t.entries)-1]
	return last.Base + (1<<uint(last.Extra) - 1)
}

// Length is the RFC 1951 length table: 29 entries, symbol i encodes the
// literal/length alphabet symbol 257+i, decoded length in [3, 258].
var Length = NewTable(
	[]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0},
	[]int{3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258},
)

// Distance is the RFC 1951 distance table: 30 entries, decoded distance in
// [1, 32768].
var Distance = NewTable(
	[]int{0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13},
	[]int{1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577},
)

// LengthSymbolBase is the literal/length alphabet offset of length symbol 0
// (RFC 1951: length symbols start at 257).
const LengthSymbolBase = 257
