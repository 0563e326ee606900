package lz

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
)

// hashCachePurgeBytes bounds the cache's working set: buckets keyed by a
// hash of a 3-byte window hold position lists, purged past a limit
// (default 16 MiB). One bucket entry is counted as 4 bytes (an int32
// position) and each bucket as maxCandidatesPerBucket entries; NewHashCache
// divides this budget by that bucket size to get the cache capacity.
const hashCachePurgeBytes = 16 * 1024 * 1024

// maxCandidatesPerBucket caps how many positions a single hash bucket
// retains; older positions are dropped first.
const maxCandidatesPerBucket = 32

// HashCache is the position index shared by the hash-cache ("fast") and
// bounded-attempt ("default") match-finding strategies. Each 3-byte
// window of the input is hashed with xxhash and appended to a
// tinylfu-bounded bucket of candidate positions; tinylfu's own eviction
// policy, plus a per-bucket window/size trim, together realize the
// "purge past a limit" invariant. Grounded on the teacher's block cache in
// internal/spinner/spinner.go, which keys a tinylfu.T by a maphash of a
// (file, offset) pair the same way this keys one by an xxhash of window
// bytes.
type HashCache struct {
	data        []byte
	maxDistance int
	cache       *tinylfu.T[uint64, []int32]
}

// NewHashCache builds a hash-cache index over data. maxDistance bounds how
// far back a candidate may lie (32768 for DEFLATE).
func NewHashCache(data []byte, maxDistance int) *HashCache {
	numBuckets := hashCachePurgeBytes / (maxCandidatesPerBucket * 4)
	return &HashCache{
		data:        data,
		maxDistance: maxDistance,
		cache: tinylfu.New[uint64, []int32](numBuckets, numBuckets*10,
			func(k uint64) uint64 { return k }),
	}
}

func windowHash(data []byte, pos int) (uint64, bool) {
	if pos+MinMatchLen > len(data) {
		return 0, false
	}
	return xxhash.Sum64(data[pos : pos+MinMatchLen]), true
}

// Insert indexes the 3-byte window starting at pos, if one exists.
func (h *HashCache) Insert(pos int) {
	key, ok := windowHash(h.data, pos)
	if !ok {
		return
	}
	list, _ := h.cache.Get(key)
	list = append(list, int32(pos))
	cutoff := int32(pos - h.maxDistance)
	kept := list[:0]
	for _, p := range list {
		if p >= cutoff {
			kept = append(kept, p)
		}
	}
	if len(kept) > maxCandidatesPerBucket {
		kept = kept[len(kept)-maxCandidatesPerBucket:]
	}
	h.cache.Add(key, kept)
}

// Advance indexes every position in [pos, pos+n).
func (h *HashCache) Advance(pos, n int) {
	for i := 0; i < n; i++ {
		h.Insert(pos + i)
	}
}

// Candidates returns indexed positions strictly before pos that share pos's
// 3-byte window, most recently inserted first.
func (h *HashCache) Candidates(pos int) []int32 {
	key, ok := windowHash(h.data, pos)
	if !ok {
		return nil
	}
	list, ok := h.cache.Get(key)
	if !ok {
		return nil
	}
	out := make([]int32, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		if int(list[i]) < pos {
			out = append(out, list[i])
		}
	}
	return out
}

// Nearest returns the single most recently inserted candidate for pos.
func (h *HashCache) Nearest(pos int) (int, bool) {
	cands := h.Candidates(pos)
	if len(cands) == 0 {
		return 0, false
	}
	return int(cands[0]), true
}

func matchLength(data []byte, a, b, maxLen int) int {
	n := 0
	for a+n < len(data) && b+n < len(data) && n < maxLen && data[a+n] == data[b+n] {
		n++
	}
	return n
}

// Fast is the hash-cache ("fast") match finder: it checks only the single
// nearest candidate per position, trading search depth for O(1) work per
// byte.
type Fast struct {
	hc   *HashCache
	data []byte
}

// NewFast builds a Fast finder over data.
func NewFast(data []byte, maxDistance int) *Fast {
	return &Fast{hc: NewHashCache(data, maxDistance), data: data}
}

func (f *Fast) Find(pos int) (length, distance int, ok bool) {
	c, ok := f.hc.Nearest(pos)
	if !ok {
		return 0, 0, false
	}
	l := matchLength(f.data, pos, c, MaxMatchLen)
	if l < MinMatchLen {
		return 0, 0, false
	}
	return l, pos - c, true
}

func (f *Fast) Advance(pos, n int) { f.hc.Advance(pos, n) }
