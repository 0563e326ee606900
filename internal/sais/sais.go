// Package sais builds suffix arrays in linear time via induced sorting
// (SA-IS, Nong/Zhang/Chan 2009), plus the inverse-rank array and the Kasai
// LCP array the suffix-array match finder needs. Grounded on
// original_source/src/lz/lcp/sais.rs and src/lz/match_finder/sais.rs (two
// kept revisions of the same algorithm in the original crate).
package sais

// BuildSuffixArray returns the suffix array of data: sa[k] is the starting
// position of the k-th lexicographically smallest suffix. Internally a
// sentinel smaller than every byte is appended; the public result excludes
// it.
func BuildSuffixArray(data []byte) []int {
	n := len(data)
	if n == 0 {
		return []int{}
	}
	s := make([]int32, n+1)
	for i, b := range data {
		s[i] = int32(b) + 1 // shift the byte alphabet up by one; 0 is the sentinel
	}
	s[n] = 0

	sa := make([]int32, n+1)
	saisRec(s, sa, n+1, 257)

	out := make([]int, n)
	for i := 1; i <= n; i++ {
		out[i-1] = int(sa[i])
	}
	return out
}

// InverseSuffixArray computes rank[i] = the index k such that sa[k] == i,
// i.e. the rank of the suffix starting at i.
func InverseSuffixArray(sa []int) []int {
	rank := make([]int, len(sa))
	for k, p := range sa {
		rank[p] = k
	}
	return rank
}

// LCPArray computes the Kasai longest-common-prefix array: lcp[k] is the
// length of the common prefix between sa[k-1] and sa[k] (lcp[0] is 0 by
// convention, there being no predecessor).
func LCPArray(data []byte, sa, rank []int) []int {
	n := len(data)
	lcp := make([]int, n)
	h := 0
	for i := 0; i < n; i++ {
		if rank[i] > 0 {
			j := sa[rank[i]-1]
			for i+h < n && j+h < n && data[i+h] == data[j+h] {
				h++
			}
			lcp[rank[i]] = h
			if h > 0 {
				h--
			}
		} else {
			h = 0
		}
	}
	return lcp
}

// NaiveSuffixArray sorts suffixes by direct comparison. It is only intended
// for cross-checking BuildSuffixArray in tests on small inputs, grounded on
// original_source/src/lz/lcp/tests.rs.
func NaiveSuffixArray(data []byte) []int {
	n := len(data)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	less := func(i, j int) bool {
		a, b := sa[i], sa[j]
		for a < n && b < n {
			if data[a] != data[b] {
				return data[a] < data[b]
			}
			a++
			b++
		}
		return a == n // a's suffix is a (shorter or equal) prefix of b's
	}
	insertionSort(sa, less)
	return sa
}

func insertionSort(sa []int, less func(i, j int) bool) {
	for i := 1; i < len(sa); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			sa[j], sa[j-1] = sa[j-1], sa[j]
		}
	}
}

func isLMS(t []bool, i int) bool {
	return i > 0 && t[i] && !t[i-1]
}

func classifyTypes(s []int32, n int) []bool {
	t := make([]bool, n)
	t[n-1] = true
	for i := n - 2; i >= 0; i-- {
		switch {
		case s[i] < s[i+1]:
			t[i] = true
		case s[i] > s[i+1]:
			t[i] = false
		default:
			t[i] = t[i+1]
		}
	}
	return t
}

func bucketSizes(s []int32, K int) []int32 {
	sizes := make([]int32, K)
	for _, c := range s {
		sizes[c]++
	}
	return sizes
}

func bucketStarts(sizes []int32) []int32 {
	starts := make([]int32, len(sizes))
	var sum int32
	for i, c := range sizes {
		starts[i] = sum
		sum += c
	}
	return starts
}

func bucketEnds(sizes []int32) []int32 {
	ends := make([]int32, len(sizes))
	var sum int32
	for i, c := range sizes {
		sum += c
		ends[i] = sum
	}
	return ends
}

func induceSortL(sa, s []int32, t []bool, sizes []int32, n int) {
	heads := bucketStarts(sizes)
	for i := 0; i < n; i++ {
		j := sa[i] - 1
		if j >= 0 && !t[j] {
			c := s[j]
			sa[heads[c]] = j
			heads[c]++
		}
	}
}

func induceSortS(sa, s []int32, t []bool, sizes []int32, n int) {
	tails := bucketEnds(sizes)
	for i := n - 1; i >= 0; i-- {
		j := sa[i] - 1
		if j >= 0 && t[j] {
			c := s[j]
			tails[c]--
			sa[tails[c]] = j
		}
	}
}

// saisRec is the recursive SA-IS core. s has length n over alphabet
// [0, K), with s[n-1] == 0 acting as the unique minimal sentinel. sa is the
// n-length output buffer, fully owned by this call.
//
// The reduced-alphabet recursive sub-problem reuses sa itself: the head
// sa[:n1] becomes the recursive SA output and the tail sa[n-n1:] becomes
// the recursive input string. The recursive call fills its own output span
// with -1 on entry; the span between head and tail is left as scratch and
// is not read by the recursion.
func saisRec(s, sa []int32, n, K int) {
	t := classifyTypes(s, n)
	sizes := bucketSizes(s, K)

	ends := bucketEnds(sizes)
	for i := range sa {
		sa[i] = -1
	}
	for i := 1; i < n; i++ {
		if isLMS(t, i) {
			c := s[i]
			ends[c]--
			sa[ends[c]] = int32(i)
		}
	}
	induceSortL(sa, s, t, sizes, n)
	induceSortS(sa, s, t, sizes, n)

	// Compact the now-sorted LMS positions to the front of sa.
	n1 := 0
	for i := 0; i < n; i++ {
		if isLMS(t, int(sa[i])) {
			sa[n1] = sa[i]
			n1++
		}
	}
	for i := n1; i < n; i++ {
		sa[i] = -1
	}

	// Name each LMS substring; names land (keyed by original position/2)
	// in the scratch span sa[n1:n], then get compacted into the final
	// n1-length tail sa[n-n1:n] in original left-to-right order (that
	// tail is the reduced string for the recursive subproblem).
	name := int32(0)
	prev := int32(-1)
	for i := 0; i < n1; i++ {
		pos := sa[i]
		diff := prev == -1
		if !diff {
			for d := int32(0); ; d++ {
				pi, pp := pos+d, prev+d
				if int(pi) >= n || int(pp) >= n || s[pi] != s[pp] || t[pi] != t[pp] {
					diff = true
					break
				}
				if d > 0 && (isLMS(t, int(pi)) || isLMS(t, int(pp))) {
					break
				}
			}
		}
		if diff {
			name++
			prev = pos
		}
		bucketIdx := pos / 2
		sa[n1+int(bucketIdx)] = name - 1
	}
	j := n - 1
	for i := n - 1; i >= n1; i-- {
		if sa[i] >= 0 {
			sa[j] = sa[i]
			j--
		}
	}

	sa1 := sa[:n1]
	s1 := sa[n-n1:]

	if int(name) < n1 {
		saisRec(s1, sa1, n1, int(name))
	} else {
		for i := 0; i < n1; i++ {
			sa1[s1[i]] = int32(i)
		}
	}

	// Re-derive LMS positions (original string order) into s1, map sa1
	// through them, then induce-sort the full array from the correctly
	// ordered LMS seeds.
	j = 0
	for i := 1; i < n; i++ {
		if isLMS(t, i) {
			s1[j] = int32(i)
			j++
		}
	}
	for i := 0; i < n1; i++ {
		sa1[i] = s1[sa1[i]]
	}
	for i := n1; i < n; i++ {
		sa[i] = -1
	}
	sizes2 := bucketSizes(s, K)
	ends2 := bucketEnds(sizes2)
	for i := n1 - 1; i >= 0; i-- {
		pos := sa[i]
		sa[i] = -1
		c := s[pos]
		ends2[c]--
		sa[ends2[c]] = pos
	}
	induceSortL(sa, s, t, sizes2, n)
	induceSortS(sa, s, t, sizes2, n)
}
