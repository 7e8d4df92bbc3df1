package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func keys(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Key)
	}
	return out
}

func TestRank_GainThenDamage(t *testing.T) {
	results := []Result{
		{Key: "a", PercentGain: 5.0, Damage: 100},
		{Key: "b", PercentGain: 5.0, Damage: 200},
		{Key: "c", PercentGain: 10.0, Damage: 50},
	}

	ranked := Rank(results, 10)

	assert.Equal(t, []string{"c", "b", "a"}, keys(ranked))
}

func TestRank_KeyBreaksFullTies(t *testing.T) {
	results := []Result{
		{Key: "z|none", PercentGain: 1, Damage: 10},
		{Key: "a|none", PercentGain: 1, Damage: 10},
		{Key: "m|none", PercentGain: 1, Damage: 10},
	}

	assert.Equal(t, []string{"a|none", "m|none", "z|none"}, keys(Rank(results, 0)))
}

func TestRank_Truncates(t *testing.T) {
	results := []Result{
		{Key: "a", PercentGain: 1},
		{Key: "b", PercentGain: 3},
		{Key: "c", PercentGain: 2},
	}

	assert.Equal(t, []string{"b", "c"}, keys(Rank(results, 2)))
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		maxResults int
		expected   int
	}{
		{"huge request", 999999999, 10_000, 10_000},
		{"zero", 0, 10_000, 1},
		{"negative", -5, 10_000, 1},
		{"in range", 25, 10_000, 25},
		{"default cap", 999999999, 0, MaxResultsCap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampLimit(tt.requested, tt.maxResults))
		})
	}
}

func TestTopK_MatchesFullSort(t *testing.T) {
	var all []Result
	for i := 0; i < 200; i++ {
		all = append(all, Result{
			Key:         string(rune('A'+i%26)) + string(rune('a'+i%7)),
			PercentGain: float64(i % 13),
			Damage:      float64(i % 5),
		})
	}

	top := newTopK(15)
	for _, r := range all {
		top.offer(r)
	}

	expected := Rank(append([]Result(nil), all...), 15)
	assert.Equal(t, keys(expected), keys(top.drain()))
}
