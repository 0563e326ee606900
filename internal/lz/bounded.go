package lz

// defaultAttemptBudget and defaultThresholdMax implement the "default"
// match-finding strategy's stopping rule: try a bounded number of
// candidates from the hash-cache, stopping early once a match at least
// thresholdMax long is found.
const (
	defaultAttemptBudget = 12
	defaultThresholdMax  = 16
)

// Bounded is the bounded-attempt ("default") match finder: it walks the
// hash-cache's candidate list for a position, evaluating true match length
// for each, stopping when either the attempt budget or the length
// threshold is reached, and returning the longest match seen.
type Bounded struct {
	hc            *HashCache
	data          []byte
	attemptBudget int
	thresholdMax  int
}

// NewBounded builds a Bounded finder over data with the default attempt
// budget and length threshold.
func NewBounded(data []byte, maxDistance int) *Bounded {
	return &Bounded{
		hc:            NewHashCache(data, maxDistance),
		data:          data,
		attemptBudget: defaultAttemptBudget,
		thresholdMax:  defaultThresholdMax,
	}
}

func (b *Bounded) Find(pos int) (length, distance int, ok bool) {
	cands := b.hc.Candidates(pos)
	bestLen, bestDist := 0, 0
	for attempts, c := range cands {
		if attempts >= b.attemptBudget {
			break
		}
		l := matchLength(b.data, pos, int(c), MaxMatchLen)
		if l > bestLen {
			bestLen, bestDist = l, pos-int(c)
		}
		if bestLen >= b.thresholdMax {
			break
		}
	}
	if bestLen < MinMatchLen {
		return 0, 0, false
	}
	return bestLen, bestDist, true
}

func (b *Bounded) Advance(pos, n int) { b.hc.Advance(pos, n) }
