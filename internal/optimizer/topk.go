package optimizer

import (
	"container/heap"
)

// topK retains the best results seen so far. The heap root is the worst retained result.
type topK struct {
	limit   int
	results []Result
}

func newTopK(limit int) *topK {
	return &topK{
		limit:   limit,
		results: make([]Result, 0, min(limit, 1024)),
	}
}

func (t *topK) Len() int { return len(t.results) }

func (t *topK) Less(i, j int) bool {
	return ranksBefore(&t.results[j], &t.results[i])
}

func (t *topK) Swap(i, j int) { t.results[i], t.results[j] = t.results[j], t.results[i] }

func (t *topK) Push(x any) { t.results = append(t.results, x.(Result)) }

func (t *topK) Pop() any {
	last := t.results[len(t.results)-1]
	t.results = t.results[:len(t.results)-1]
	return last
}

func (t *topK) full() bool {
	return len(t.results) >= t.limit
}

// beatsWorst reports whether a leaf with this gain and damage could displace the worst
// retained result. Equal gain and damage need the key to decide.
func (t *topK) beatsWorst(gain, damage float64) bool {
	if !t.full() {
		return true
	}
	worst := &t.results[0]
	if gain != worst.PercentGain {
		return gain > worst.PercentGain
	}
	return damage >= worst.Damage
}

func (t *topK) offer(r Result) {
	if !t.full() {
		heap.Push(t, r)
		return
	}
	if !ranksBefore(&r, &t.results[0]) {
		return
	}
	t.results[0] = r
	heap.Fix(t, 0)
}

// drain returns the retained results best first.
func (t *topK) drain() []Result {
	results := t.results
	t.results = nil
	return Rank(results, t.limit)
}
