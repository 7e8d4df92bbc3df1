package optimizer

import (
	"context"

	"gear-loadout-optimiser/internal/damage"
	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/stats"

	"github.com/rs/zerolog/log"
)

const DefaultCeiling int64 = 200_000

// Scorer maps a stat bonus to the damage value results are ranked by. Score must not
// modify bonus and must be deterministic.
type Scorer interface {
	Score(bonus *stats.Bonus) float64
}

type ScorerFunc func(bonus *stats.Bonus) float64

func (f ScorerFunc) Score(bonus *stats.Bonus) float64 {
	return f(bonus)
}

type Request struct {
	Sheet          stats.Sheet         `json:"stats"`
	Elements       stats.ElementConfig `json:"element_stats"`
	Pool           []gear.Item         `json:"pool"`
	Equipped       gear.Loadout        `json:"equipped"`
	DesiredDisplay int                 `json:"desired_display"`
	// Modifiers is added to every scored bonus, gear or not.
	Modifiers   stats.Bonus   `json:"modifiers"`
	Constraints Constraints   `json:"constraints"`
	Reduce      ReduceOptions `json:"reduce"`
}

type Options struct {
	// Ceiling is the largest combination count searched. Zero uses DefaultCeiling.
	Ceiling       int64
	MaxResults    int
	CheckEvery    int64
	ProgressEvery int64
	YieldEvery    int64
	Progress      ProgressFunc
	// Scorer replaces the damage model built from the request's sheet and elements.
	Scorer Scorer
}

type Result struct {
	Key         string                  `json:"key"`
	Damage      float64                 `json:"damage"`
	PercentGain float64                 `json:"percent_gain"`
	Selection   map[gear.Slot]gear.Item `json:"selection"`
}

type Computation struct {
	// BaseDamage is the score without any gear.
	BaseDamage float64 `json:"base_damage"`
	// BaselineWithGear is the score of the equipped loadout, the reference for PercentGain.
	BaselineWithGear float64  `json:"baseline_with_gear"`
	TotalCombos      int64    `json:"total_combos"`
	EstimatedCombos  int64    `json:"estimated_combos"`
	Results          []Result `json:"results"`
}

// Baselines scores the request with no gear and with the equipped gear.
func Baselines(req Request, scorer Scorer) (base float64, withGear float64) {
	noGear := req.Modifiers
	base = scorer.Score(&noGear)

	equipped := gear.AggregateEquipped(req.Pool, req.Equipped)
	equipped.Merge(req.Modifiers)
	withGear = scorer.Score(&equipped)

	return base, withGear
}

// Optimize searches every loadout of the request's pool and returns the best ones ranked by
// gain over the equipped loadout. A *TooManyCombinationsError is returned before any
// scoring when the search is too large. Cancelling ctx returns an error matching ErrCancelled.
func Optimize(ctx context.Context, req Request, opts Options) (*Computation, error) {
	scorer := opts.Scorer
	if scorer == nil {
		scorer = damage.NewScorer(req.Sheet, req.Elements)
	}
	ceiling := opts.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	limit := ClampLimit(req.DesiredDisplay, opts.MaxResults)

	constraints := req.Constraints.withEquipped(req.Equipped)
	candidates := BuildCandidates(req.Pool, gear.Slots, constraints)

	estimated := CountCombinations(candidates)
	if req.Reduce.enabled() && estimated > req.Reduce.Above {
		withGear := gear.AggregateEquipped(req.Pool, req.Equipped)
		withGear.Merge(req.Modifiers)
		candidates = reduceCandidates(candidates, req.Reduce, scorer, withGear, gear.Resolve(req.Pool, req.Equipped))
	}

	estimated, err := CheckCeiling(candidates, ceiling)
	if err != nil {
		return nil, err
	}

	baseDamage, withGear := Baselines(req, scorer)

	if !hasValidItems(req.Pool) {
		log.Debug().Msg("Empty gear pool, skipping search")
		return &Computation{
			BaseDamage:       baseDamage,
			BaselineWithGear: withGear,
			Results:          []Result{},
		}, nil
	}

	log.Debug().Msgf("Searching %d combinations over %d slots", estimated, len(candidates))

	computation, err := Search(ctx, candidates, req.Modifiers, scorer, withGear, SearchOptions{
		Limit:         limit,
		CheckEvery:    opts.CheckEvery,
		ProgressEvery: opts.ProgressEvery,
		YieldEvery:    opts.YieldEvery,
		Progress:      opts.Progress,
	})
	if err != nil {
		return nil, err
	}
	computation.BaseDamage = baseDamage

	return computation, nil
}

func hasValidItems(pool []gear.Item) bool {
	for i := range pool {
		if pool[i].Slot.Valid() {
			return true
		}
	}
	return false
}
