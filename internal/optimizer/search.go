package optimizer

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/stats"
)

const (
	DefaultCheckEvery    = 1024
	DefaultProgressEvery = 4096
	emptySlotKey         = "none"
	keySeparator         = "|"
)

// ProgressFunc receives the number of leaves evaluated and the number expected.
type ProgressFunc func(current, total int64)

type SearchOptions struct {
	// Limit is the number of results kept, at least one. Callers apply their own cap.
	Limit int
	// CheckEvery is the number of leaves between cancellation checks.
	CheckEvery int64
	// ProgressEvery is the number of leaves between progress reports.
	ProgressEvery int64
	// YieldEvery, when positive, yields the processor every N leaves.
	YieldEvery int64
	Progress   ProgressFunc
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.CheckEvery <= 0 {
		o.CheckEvery = DefaultCheckEvery
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	if o.Limit < 1 {
		o.Limit = 1
	}
	return o
}

// searchState is owned by a single Search call.
type searchState struct {
	ctx        context.Context
	candidates []SlotCandidates
	scorer     Scorer
	baseline   float64
	opts       SearchOptions

	// assignment[i] is the item bound at depth i, nil when empty.
	assignment []*gear.Item
	// frames[i] is the running bonus before depth i is bound. frames[0] is the base.
	frames []stats.Bonus

	leaves   int64
	expected int64
	top      *topK
	key      strings.Builder
}

// Search walks every assignment of candidates depth first, scoring each leaf against base
// plus the bound items. It returns the leaf count and the ranked top results. When ctx is
// done the partial results are dropped and an error matching ErrCancelled is returned.
func Search(
	ctx context.Context,
	candidates []SlotCandidates,
	base stats.Bonus,
	scorer Scorer,
	baselineWithGear float64,
	opts SearchOptions,
) (*Computation, error) {
	opts = opts.withDefaults()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	s := &searchState{
		ctx:        ctx,
		candidates: candidates,
		scorer:     scorer,
		baseline:   baselineWithGear,
		opts:       opts,
		assignment: make([]*gear.Item, len(candidates)),
		frames:     make([]stats.Bonus, len(candidates)+1),
		expected:   CountCombinations(candidates),
		top:        newTopK(opts.Limit),
	}
	s.frames[0] = base

	if err := s.visit(0); err != nil {
		return nil, err
	}
	// leaves after the last periodic check
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	if opts.Progress != nil {
		opts.Progress(s.leaves, s.expected)
	}

	return &Computation{
		BaselineWithGear: baselineWithGear,
		TotalCombos:      s.leaves,
		EstimatedCombos:  s.expected,
		Results:          s.top.drain(),
	}, nil
}

func (s *searchState) visit(depth int) error {
	if depth == len(s.candidates) {
		return s.leaf()
	}

	for _, item := range s.candidates[depth].Items {
		s.assignment[depth] = item
		s.frames[depth+1] = s.frames[depth]
		if item != nil {
			item.ApplyTo(&s.frames[depth+1], gear.Apply)
		}

		if err := s.visit(depth + 1); err != nil {
			return err
		}
	}
	s.assignment[depth] = nil

	return nil
}

func (s *searchState) leaf() error {
	s.leaves++

	bonus := &s.frames[len(s.candidates)]
	damage := s.scorer.Score(bonus)
	gain := percentGain(damage, s.baseline)

	if s.top.beatsWorst(gain, damage) {
		s.top.offer(s.result(damage, gain))
	}

	if s.opts.Progress != nil && s.leaves%s.opts.ProgressEvery == 0 {
		s.opts.Progress(s.leaves, s.expected)
	}
	if s.opts.YieldEvery > 0 && s.leaves%s.opts.YieldEvery == 0 {
		runtime.Gosched()
	}
	if s.leaves%s.opts.CheckEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
	}

	return nil
}

func (s *searchState) result(damage, gain float64) Result {
	selection := make(map[gear.Slot]gear.Item)
	s.key.Reset()
	for i, item := range s.assignment {
		if i > 0 {
			s.key.WriteString(keySeparator)
		}
		if item == nil {
			s.key.WriteString(emptySlotKey)
			continue
		}
		s.key.WriteString(item.ID)
		selection[s.candidates[i].Slot] = *item
	}

	return Result{
		Key:         s.key.String(),
		Damage:      damage,
		PercentGain: gain,
		Selection:   selection,
	}
}

func percentGain(damage, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (damage - baseline) / baseline * 100
}
