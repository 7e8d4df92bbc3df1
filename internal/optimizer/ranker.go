package optimizer

import (
	"sort"
)

const MaxResultsCap = 10_000

// ClampLimit bounds a requested display count to [1, maxResults].
func ClampLimit(n, maxResults int) int {
	if maxResults <= 0 {
		maxResults = MaxResultsCap
	}
	if n < 1 {
		n = 1
	}
	if n > maxResults {
		n = maxResults
	}
	return n
}

// ranksBefore orders by percent gain, then damage, both descending, then key ascending.
func ranksBefore(a, b *Result) bool {
	if a.PercentGain != b.PercentGain {
		return a.PercentGain > b.PercentGain
	}
	if a.Damage != b.Damage {
		return a.Damage > b.Damage
	}
	return a.Key < b.Key
}

// Rank sorts results best first and truncates them to limit. A limit below 1 keeps everything.
func Rank(results []Result, limit int) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		return ranksBefore(&results[i], &results[j])
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
