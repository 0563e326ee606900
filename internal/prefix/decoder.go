package prefix

import (
	"math/bits"

	"github.com/nthbyte/deflatecore/internal/bitio"
)

// leafFlag marks a tree cell child slot as a terminal symbol rather than an
// index into cells, packed into the high bit of the 16-bit child pointer.
const leafFlag = uint16(1) << 15

type treeCell struct {
	left, right uint16
}

type tableEntry struct {
	symbol int32 // -1 = miss, fall back to the tree
	length uint8
}

// Decoder holds a canonical prefix code's binary tree plus a flat lookup
// table keyed by the next k unread (already bit-reversed by the wire
// format) bits.
type Decoder struct {
	cells  []treeCell
	table  []tableEntry
	twoTab []twoEntry
	k      int
	min    int
}

// NewDecoder builds a prefix Decoder from per-symbol code lengths.
// lengths[i] == 0 means symbol i does not appear in the code.
func NewDecoder(lengths []int) (*Decoder, error) {
	live := 0
	maxLen := 0
	minLen := 0
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		live++
		if l > maxLen {
			maxLen = l
		}
		if minLen == 0 || l < minLen {
			minLen = l
		}
	}
	if live < 2 {
		return nil, ErrTooFewSymbols
	}

	codes := AssignCanonicalCodes(lengths)

	d := &Decoder{cells: []treeCell{{}}, min: minLen}
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		if err := d.insert(sym, codes[sym], l); err != nil {
			return nil, err
		}
	}

	k := maxLen
	if k > 15 {
		k = 15
	}
	d.k = k
	d.buildTable(lengths, codes, k)
	d.buildTwoLiteralTable()
	return d, nil
}

// insert walks the tree from the root along code's top length-1 bits (MSB
// to LSB, matching the order those bits leave the wire), creating internal
// nodes as needed, then marks the final child a leaf carrying symbol.
func (d *Decoder) insert(symbol int, code uint32, length int) error {
	cur := 0
	for i := length - 1; i >= 1; i-- {
		bit := (code >> uint(i)) & 1
		cell := &d.cells[cur]
		slot := &cell.left
		if bit == 1 {
			slot = &cell.right
		}
		if *slot&leafFlag != 0 {
			return ErrConflictingCodes
		}
		if *slot == 0 {
			// append may move d.cells, so link the new child by index
			// rather than through slot.
			d.cells = append(d.cells, treeCell{})
			next := uint16(len(d.cells) - 1)
			if bit == 1 {
				d.cells[cur].right = next
			} else {
				d.cells[cur].left = next
			}
			cur = int(next)
			continue
		}
		cur = int(*slot)
	}
	bit := code & 1
	cell := &d.cells[cur]
	slot := &cell.left
	if bit == 1 {
		slot = &cell.right
	}
	if *slot != 0 {
		return ErrConflictingCodes
	}
	*slot = leafFlag | uint16(symbol)
	return nil
}

// buildTable fills the k-bit lookup table. For every code of length <= k,
// its entry is replicated across all table indices whose low `length` bits
// equal the code's bits as they appear on the wire (i.e. bit-reversed
// within length), stepping by 2^length.
func (d *Decoder) buildTable(lengths []int, codes []uint32, k int) {
	d.table = make([]tableEntry, 1<<uint(k))
	for i := range d.table {
		d.table[i].symbol = -1
	}
	for sym, l := range lengths {
		if l == 0 || l > k {
			continue
		}
		key := wireKey(codes[sym], l)
		for off := key; off < len(d.table); off += 1 << uint(l) {
			d.table[off] = tableEntry{symbol: int32(sym), length: uint8(l)}
		}
	}
}

// wireKey reverses the low `length` bits of code, matching how those bits
// are physically ordered on the LSB-first wire (RFC 1951 section 3.1.1).
func wireKey(code uint32, length int) int {
	r := bits.Reverse32(code << uint(32-length))
	return int(r)
}

// Decode reads one symbol from r using the lookup table with a tree-walk
// fallback for codes longer than the table's key width.
func (d *Decoder) Decode(r *bitio.Reader) (int, bool) {
	if peek, ok := r.PeekBits(d.k); ok {
		e := d.table[peek]
		if e.symbol >= 0 {
			r.Advance(int(e.length))
			return int(e.symbol), true
		}
	}
	return d.walkTree(r)
}

func (d *Decoder) walkTree(r *bitio.Reader) (int, bool) {
	cur := 0
	for {
		bit, ok := r.ReadBool()
		if !ok {
			return 0, false
		}
		cell := d.cells[cur]
		slot := cell.left
		if bit {
			slot = cell.right
		}
		if slot == 0 {
			return 0, false // under-subscribed path, never assigned
		}
		if slot&leafFlag != 0 {
			return int(slot &^ leafFlag), true
		}
		cur = int(slot)
	}
}
