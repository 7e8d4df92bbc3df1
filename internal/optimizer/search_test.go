package optimizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_EnumeratesEveryAssignment(t *testing.T) {
	candidates := BuildCandidates(poolOf(2, 3, 1, 4), gear.Slots, Constraints{})
	calls := 0

	computation, err := Search(context.Background(), candidates, stats.Bonus{}, flatScorer(&calls), 100, SearchOptions{Limit: 100})

	require.NoError(t, err)
	assert.Equal(t, int64(24), computation.TotalCombos)
	assert.Equal(t, int64(24), computation.EstimatedCombos)
	assert.Equal(t, 24, calls)
	require.Len(t, computation.Results, 24)

	seen := make(map[string]bool)
	for _, r := range computation.Results {
		assert.False(t, seen[r.Key], "duplicate assignment %s", r.Key)
		seen[r.Key] = true
		assert.Len(t, strings.Split(r.Key, keySeparator), len(gear.Slots))
	}
}

func TestSearch_KeysAndSelection(t *testing.T) {
	pool := []gear.Item{
		flatItem("w1", gear.SlotWeapon1, 10),
		flatItem("h1", gear.SlotHead, 5),
	}
	candidates := BuildCandidates(pool, gear.Slots, Constraints{})

	computation, err := Search(context.Background(), candidates, stats.Bonus{}, flatScorer(nil), 100, SearchOptions{Limit: 5})

	require.NoError(t, err)
	require.Len(t, computation.Results, 1)
	result := computation.Results[0]
	assert.Equal(t, "w1|none|none|none|h1|none|none|none", result.Key)
	assert.Equal(t, 115.0, result.Damage)
	assert.InDelta(t, 15.0, result.PercentGain, 1e-9)
	assert.Len(t, result.Selection, 2)
	assert.Equal(t, "w1", result.Selection[gear.SlotWeapon1].ID)
	assert.Equal(t, "h1", result.Selection[gear.SlotHead].ID)
}

func TestSearch_RunningBonusMatchesPath(t *testing.T) {
	pool := poolOf(3, 2, 4, 2)
	pool[0].Subs = []gear.Attribute{{Stat: stats.CriticalRate, Value: 0.3}}
	pool[4].Addition = &gear.Attribute{Stat: stats.CriticalRate, Value: 1.7}
	candidates := BuildCandidates(pool, gear.Slots, Constraints{})
	index := gear.IndexPool(pool)

	var base stats.Bonus
	base.Add(stats.FlatDamage, 1000)
	base.Add(stats.CriticalRate, 0.1)

	var mismatches int
	scorer := ScorerFunc(func(bonus *stats.Bonus) float64 {
		return bonus.Get(stats.FlatDamage)*1000 + bonus.Get(stats.CriticalRate)
	})

	computation, err := Search(context.Background(), candidates, base, scorer, 1, SearchOptions{Limit: MaxResultsCap})
	require.NoError(t, err)

	for _, r := range computation.Results {
		expected := base
		for _, id := range strings.Split(r.Key, keySeparator) {
			if item, ok := index[id]; ok {
				item.ApplyTo(&expected, gear.Apply)
			}
		}
		if scorer.Score(&expected) != r.Damage {
			mismatches++
		}
	}

	assert.Equal(t, 0, mismatches)
	assert.Len(t, computation.Results, 48)
}

func TestSearch_ZeroBaselineGivesZeroGain(t *testing.T) {
	candidates := BuildCandidates(poolOf(3, 3), gear.Slots, Constraints{})

	computation, err := Search(context.Background(), candidates, stats.Bonus{}, flatScorer(nil), 0, SearchOptions{Limit: 100})

	require.NoError(t, err)
	require.NotEmpty(t, computation.Results)
	for _, r := range computation.Results {
		assert.Equal(t, 0.0, r.PercentGain)
		assert.Greater(t, r.Damage, 0.0)
	}
}

func TestSearch_LimitKeepsBest(t *testing.T) {
	candidates := BuildCandidates(poolOf(4, 4, 4), gear.Slots, Constraints{})

	full, err := Search(context.Background(), candidates, stats.Bonus{}, flatScorer(nil), 100, SearchOptions{Limit: 1000})
	require.NoError(t, err)
	top, err := Search(context.Background(), candidates, stats.Bonus{}, flatScorer(nil), 100, SearchOptions{Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(64), top.TotalCombos)
	assert.Equal(t, keys(full.Results[:5]), keys(top.Results))
	assert.Equal(t, "weapon_1-3|weapon_2-3|ring-3|none|none|none|none|none", top.Results[0].Key)
}

func TestSearch_ReportsProgress(t *testing.T) {
	candidates := BuildCandidates(poolOf(10, 10, 10), gear.Slots, Constraints{})

	var reports [][2]int64
	progress := func(current, total int64) {
		reports = append(reports, [2]int64{current, total})
	}

	_, err := Search(context.Background(), candidates, stats.Bonus{}, flatScorer(nil), 100, SearchOptions{
		Limit:         1,
		ProgressEvery: 250,
		YieldEvery:    100,
		Progress:      progress,
	})

	require.NoError(t, err)
	require.Len(t, reports, 5)
	assert.Equal(t, [2]int64{250, 1000}, reports[0])
	assert.Equal(t, [2]int64{1000, 1000}, reports[len(reports)-1])
}

func TestSearch_CancellationDiscardsResults(t *testing.T) {
	candidates := BuildCandidates(poolOf(10, 10, 10), gear.Slots, Constraints{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	scorer := ScorerFunc(func(bonus *stats.Bonus) float64 {
		calls++
		if calls == 50 {
			cancel()
		}
		return bonus.Get(stats.FlatDamage)
	})

	computation, err := Search(ctx, candidates, stats.Bonus{}, scorer, 1, SearchOptions{Limit: 100, CheckEvery: 10})

	require.Error(t, err)
	assert.Nil(t, computation)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrTooManyCombinations))
	assert.Equal(t, 50, calls)
}

func TestSearch_CancelBeforeFirstCheck(t *testing.T) {
	candidates := BuildCandidates(poolOf(2, 3, 1, 4), gear.Slots, Constraints{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	scorer := ScorerFunc(func(bonus *stats.Bonus) float64 {
		calls++
		if calls == 5 {
			cancel()
		}
		return 100 + bonus.Get(stats.FlatDamage)
	})

	// 24 leaves never reach the default check interval
	computation, err := Search(ctx, candidates, stats.Bonus{}, scorer, 100, SearchOptions{})

	assert.True(t, IsCancelled(err))
	assert.Nil(t, computation)
}

func TestSearch_AlreadyCancelled(t *testing.T) {
	candidates := BuildCandidates(poolOf(2), gear.Slots, Constraints{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Search(ctx, candidates, stats.Bonus{}, flatScorer(&calls), 1, SearchOptions{})

	assert.True(t, IsCancelled(err))
	assert.Equal(t, 0, calls)
}
