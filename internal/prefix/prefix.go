// Package prefix implements the canonical prefix (Huffman) coder: building
// code lengths from symbol frequencies, assigning canonical codes, and
// decoding them back with a table-driven decoder. Grounded on the teacher's
// internal/flate.huffmanDecoder (canonicalization, bits.Reverse16, the
// degenerate single-symbol case) and on the encoder shapes in
// other_examples/c5c5305e_chronos-tachyon-huffman__encoder.go.go and
// other_examples/8f89d7ab_bwesterb-go-ncrlite__huffman.go.go.
package prefix

import (
	"container/heap"
	"errors"
)

// MaxCodeLen is the DEFLATE-mandated maximum canonical code length.
const MaxCodeLen = 15

// ErrTooFewSymbols means fewer than two symbols have a nonzero frequency or
// length, which DEFLATE's canonical tables never allow (RFC 1951 section
// 3.2.7 requires at least two distance codes even when only one is used).
var ErrTooFewSymbols = errors.New("prefix: fewer than two live symbols")

// ErrConflictingCodes means the canonical codes implied by a length table
// overlap, i.e. the table is not actually a valid prefix code.
var ErrConflictingCodes = errors.New("prefix: conflicting canonical codes")

type freqNode struct {
	freq   uint32
	symbol int
	// left/right are -1 for leaves, otherwise indices into the builder's
	// node slice.
	left, right int
}

// treeHeap orders nodes by (freq ascending; symbol index ascending on
// ties), the standard Huffman tree-building priority order.
type treeHeap struct {
	nodes *[]freqNode
	idx   []int
}

func (h treeHeap) Len() int { return len(h.idx) }
func (h treeHeap) Less(i, j int) bool {
	a, b := (*h.nodes)[h.idx[i]], (*h.nodes)[h.idx[j]]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.symbol < b.symbol
}
func (h treeHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *treeHeap) Push(x any)   { h.idx = append(h.idx, x.(int)) }
func (h *treeHeap) Pop() any {
	old := h.idx
	n := len(old)
	v := old[n-1]
	h.idx = old[:n-1]
	return v
}

// BuildCodeLengths builds DEFLATE-legal canonical code lengths (each in
// [0, maxLen]) for the given per-symbol frequencies. Symbols with zero
// frequency get length 0. If fewer than two symbols have nonzero frequency,
// synthetic symbols are added so the result always encodes at least two
// live codes (RFC 1951 section 3.2.7).
func BuildCodeLengths(freq []uint32, maxLen int) []int {
	lengths := make([]int, len(freq))

	var nodes []freqNode
	symIndex := make(map[int]int) // symbol -> index into nodes, for leaves
	for sym, f := range freq {
		if f == 0 {
			continue
		}
		symIndex[sym] = len(nodes)
		nodes = append(nodes, freqNode{freq: f, symbol: sym, left: -1, right: -1})
	}

	switch len(nodes) {
	case 0:
		// No symbols at all: two synthetic length-1 codes (distance
		// alphabet padding requirement, RFC 1951 section 3.2.7).
		lengths = ensureLen(lengths, 2)
		lengths[0] = 1
		lengths[1] = 1
		return lengths
	case 1:
		only := nodes[0].symbol
		lengths[only] = 1
		// Synthesize a second symbol distinct from only, at length 1.
		synthetic := only ^ 1
		lengths = ensureLen(lengths, synthetic+1)
		lengths[synthetic] = 1
		return lengths
	}

	h := &treeHeap{nodes: &nodes}
	h.idx = make([]int, len(nodes))
	for i := range nodes {
		h.idx[i] = i
	}
	heap.Init(h)

	for h.Len() > 1 {
		ai := heap.Pop(h).(int)
		bi := heap.Pop(h).(int)
		a, b := nodes[ai], nodes[bi]
		parent := freqNode{freq: a.freq + b.freq, symbol: minSymbol(a, b, nodes), left: ai, right: bi}
		nodes = append(nodes, parent)
		heap.Push(h, len(nodes)-1)
	}
	root := h.idx[0]

	depth(nodes, root, 0, lengths)

	clipToMaxLen(lengths, maxLen)
	return lengths
}

// minSymbol picks a stable tie-break representative for an internal node:
// the smaller of its two children's own representatives, so ties in the
// heap keep favoring the lowest original symbol index.
func minSymbol(a, b freqNode, nodes []freqNode) int {
	return min(a.symbol, b.symbol)
}

func depth(nodes []freqNode, i, d int, out []int) {
	n := nodes[i]
	if n.left < 0 && n.right < 0 {
		out[n.symbol] = d
		return
	}
	depth(nodes, n.left, d+1, out)
	depth(nodes, n.right, d+1, out)
}

func ensureLen(s []int, n int) []int {
	for len(s) < n {
		s = append(s, 0)
	}
	return s
}

// clipToMaxLen enforces the DEFLATE 15-bit code length ceiling, redistributing
// over-length codes with the classic "Kraft rebalance" used by zlib-family
// encoders: clip, then walk lengths from maxLen-1 downward lending one code
// each time the Kraft sum still overflows.
func clipToMaxLen(lengths []int, maxLen int) {
	for i, l := range lengths {
		if l > maxLen {
			lengths[i] = maxLen
		}
	}
	limitLengths(lengths, maxLen)
}

// limitLengths clips individual symbol lengths so that
// sum(2^-length) <= 1, preferring to grow the lengths of symbols that
// already have long codes. This runs after a straight clip and only acts
// when clipping alone left the code over-subscribed.
func limitLengths(lengths []int, maxLen int) {
	for {
		kraft := int64(0)
		maxUnit := int64(1) << uint(maxLen)
		var longestIdx = -1
		var longestLen = 0
		for i, l := range lengths {
			if l == 0 {
				continue
			}
			kraft += maxUnit >> uint(l)
			if l < maxLen && l > longestLen {
				// Track a non-maxed-out symbol we can still grow
				// in case we must shed further.
				longestLen = l
				longestIdx = i
			}
		}
		if kraft <= maxUnit {
			return
		}
		if longestIdx < 0 {
			// Every live symbol is already at maxLen; nothing more
			// can be done without breaking canonicality. This
			// should not happen for any alphabet DEFLATE defines.
			return
		}
		lengths[longestIdx]++
	}
}

// AssignCanonicalCodes assigns canonical codes given code lengths, per RFC
// 1951 section 3.2.2: sort by (length asc, symbol asc), left-shift the
// running code each time length grows, assign, increment. Symbols with
// length 0 get a zero-value code that must not be used.
func AssignCanonicalCodes(lengths []int) []uint32 {
	codes := make([]uint32, len(lengths))

	order := make([]int, 0, len(lengths))
	for i, l := range lengths {
		if l > 0 {
			order = append(order, i)
		}
	}
	sortBylengthThenSymbol(order, lengths)

	code := uint32(0)
	prevLen := 0
	for _, sym := range order {
		l := lengths[sym]
		code <<= uint(l - prevLen)
		codes[sym] = code
		code++
		prevLen = l
	}
	return codes
}

func sortBylengthThenSymbol(order []int, lengths []int) {
	// Insertion sort is sufficient: alphabets here never exceed a few
	// hundred symbols (288 literal/length, 30 distance, 19 meta).
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := order[j-1], order[j]
			if lengths[a] < lengths[b] || (lengths[a] == lengths[b] && a < b) {
				break
			}
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
}

// KraftSum returns Σ 2^(-length_i) scaled by 2^maxLen, i.e. an integer that
// must be <= 2^maxLen for the length table to be a valid (not over-
// subscribed) prefix code.
func KraftSum(lengths []int, maxLen int) int64 {
	var sum int64
	unit := int64(1) << uint(maxLen)
	for _, l := range lengths {
		if l > 0 {
			sum += unit >> uint(l)
		}
	}
	return sum
}
