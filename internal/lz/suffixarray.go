package lz

import (
	"math"

	"github.com/nthbyte/deflatecore/internal/sais"
)

// suffixArrayMaxNeighbors bounds how many suffix-array neighbors are
// scanned per direction: at most ~200 neighbors per side by default, to
// keep a single query bounded regardless of how repetitive the input is.
const suffixArrayMaxNeighbors = 200

// SuffixArray is the suffix-array-plus-LCP ("best") match finder: the
// whole input is indexed once up front, and each query walks outward from
// the queried position's rank in both directions, using the LCP array's
// running minimum to bound match length without re-comparing bytes.
// Grounded on internal/sais (built for this module).
type SuffixArray struct {
	data        []byte
	sa          []int
	rank        []int
	lcp         []int
	maxDistance int
}

// NewSuffixArray builds a SuffixArray finder over data. Construction is
// O(n): this strategy trades a full-input up-front pass for the best
// compression of the three.
func NewSuffixArray(data []byte, maxDistance int) *SuffixArray {
	sa := sais.BuildSuffixArray(data)
	rank := sais.InverseSuffixArray(sa)
	lcp := sais.LCPArray(data, sa, rank)
	return &SuffixArray{data: data, sa: sa, rank: rank, lcp: lcp, maxDistance: maxDistance}
}

func (s *SuffixArray) Find(pos int) (length, distance int, ok bool) {
	r := s.rank[pos]
	bestLen, bestDist := 0, math.MaxInt

	// Scan left: ranks r-1, r-2, ...
	minLCP := math.MaxInt
	idx := r
	for step := 0; step < suffixArrayMaxNeighbors && idx > 0; step++ {
		if s.lcp[idx] < minLCP {
			minLCP = s.lcp[idx]
		}
		idx--
		if minLCP < MinMatchLen {
			break
		}
		cand := s.sa[idx]
		if cand >= pos {
			continue
		}
		dist := pos - cand
		if dist < 1 || dist > s.maxDistance {
			continue
		}
		length := min(minLCP, MaxMatchLen)
		if length > bestLen || (length == bestLen && dist < bestDist) {
			bestLen, bestDist = length, dist
		}
	}

	// Scan right: ranks r+1, r+2, ...
	minLCP = math.MaxInt
	idx = r
	for step := 0; step < suffixArrayMaxNeighbors && idx+1 < len(s.sa); step++ {
		idx++
		if s.lcp[idx] < minLCP {
			minLCP = s.lcp[idx]
		}
		if minLCP < MinMatchLen {
			break
		}
		cand := s.sa[idx]
		if cand >= pos {
			continue
		}
		dist := pos - cand
		if dist < 1 || dist > s.maxDistance {
			continue
		}
		length := min(minLCP, MaxMatchLen)
		if length > bestLen || (length == bestLen && dist < bestDist) {
			bestLen, bestDist = length, dist
		}
	}

	if bestLen < MinMatchLen {
		return 0, 0, false
	}
	return bestLen, bestDist, true
}

// Advance is a no-op: the suffix array is built once over the whole input
// up front.
func (s *SuffixArray) Advance(pos, n int) {}
