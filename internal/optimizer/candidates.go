package optimizer

import (
	"math"
	"sort"

	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/helpers"
	"gear-loadout-optimiser/internal/stats"

	"github.com/rs/zerolog/log"
)

// SlotCandidates is the ordered list of choices for one slot. A nil entry means the
// slot is left empty.
type SlotCandidates struct {
	Slot  gear.Slot
	Items []*gear.Item
}

// Constraints narrow the candidates of individual slots.
type Constraints struct {
	// Locked fixes a slot to one item id. An empty id fixes the slot empty.
	Locked map[gear.Slot]string `json:"locked_slots,omitempty"`
	// Restrict limits a slot to the listed ids. An empty id in the list allows the slot to stay empty.
	Restrict map[gear.Slot][]string `json:"restrict_slots,omitempty"`
	// SlotsToOptimize, when set, locks every other slot to its equipped item.
	SlotsToOptimize []gear.Slot `json:"slots_to_optimize,omitempty"`
}

// ReduceOptions shrink an oversized search to the best items per slot instead of refusing it.
type ReduceOptions struct {
	Above      int64 `json:"auto_reduce_above,omitempty"`
	Target     int64 `json:"reduce_target,omitempty"`
	PerSlotCap int   `json:"reduce_per_slot_cap,omitempty"`
}

func (r ReduceOptions) enabled() bool {
	return r.Above > 0
}

// withEquipped folds SlotsToOptimize into Locked using the equipped loadout.
func (c Constraints) withEquipped(equipped gear.Loadout) Constraints {
	if len(c.SlotsToOptimize) == 0 {
		return c
	}

	optimise := make(map[gear.Slot]bool, len(c.SlotsToOptimize))
	for _, slot := range c.SlotsToOptimize {
		optimise[slot] = true
	}

	resolved := c
	resolved.Locked = helpers.CloneMap(c.Locked)
	for _, slot := range gear.Slots {
		if optimise[slot] {
			continue
		}
		if _, ok := resolved.Locked[slot]; ok {
			continue
		}
		resolved.Locked[slot] = equipped[slot]
	}
	return resolved
}

// BuildCandidates returns the candidate list of every requested slot in canonical order.
// Items whose slot is unknown are skipped. A slot with no candidates gets the single
// empty choice.
func BuildCandidates(pool []gear.Item, slots []gear.Slot, constraints Constraints) []SlotCandidates {
	requested := make(map[gear.Slot]bool, len(slots))
	for _, slot := range slots {
		if !slot.Valid() {
			log.Debug().Msgf("Ignoring unknown slot %q", slot)
			continue
		}
		requested[slot] = true
	}

	bySlot := make(map[gear.Slot][]*gear.Item)
	for i := range pool {
		item := &pool[i]
		if !item.Slot.Valid() {
			log.Debug().Msgf("Skipping item %s with unknown slot %q", item.ID, item.Slot)
			continue
		}
		bySlot[item.Slot] = append(bySlot[item.Slot], item)
	}

	candidates := make([]SlotCandidates, 0, len(requested))
	for _, slot := range gear.Slots {
		if !requested[slot] {
			continue
		}
		items := filterSlot(slot, bySlot[slot], constraints)
		if len(items) == 0 {
			items = []*gear.Item{nil}
		}
		candidates = append(candidates, SlotCandidates{Slot: slot, Items: items})
	}

	return candidates
}

func filterSlot(slot gear.Slot, items []*gear.Item, constraints Constraints) []*gear.Item {
	if id, ok := constraints.Locked[slot]; ok {
		if id == "" {
			return nil
		}
		for _, item := range items {
			if item.ID == id {
				return []*gear.Item{item}
			}
		}
		log.Warn().Msgf("Locked item %s not found in %s pool, leaving slot empty", id, slot)
		return nil
	}

	allowed, ok := constraints.Restrict[slot]
	if !ok {
		return items
	}

	filtered := make([]*gear.Item, 0, len(allowed))
	if helpers.ContainsStr(allowed, "") {
		filtered = append(filtered, nil)
	}
	for _, item := range items {
		if helpers.ContainsStr(allowed, item.ID) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// CountCombinations is the product of the candidate list lengths, saturating at math.MaxInt64.
func CountCombinations(candidates []SlotCandidates) int64 {
	total := int64(1)
	for _, c := range candidates {
		total = helpers.MulSaturating(total, int64(len(c.Items)))
	}
	return total
}

// CheckCeiling returns the combination count, or a *TooManyCombinationsError when it exceeds ceiling.
func CheckCeiling(candidates []SlotCandidates, ceiling int64) (int64, error) {
	combinations := CountCombinations(candidates)
	if ceiling > 0 && combinations > ceiling {
		return combinations, &TooManyCombinationsError{Combinations: combinations, Ceiling: ceiling}
	}
	return combinations, nil
}

// reduceCandidates keeps the best items of every slot, ranked by the score of swapping each
// one into the equipped loadout. It uses the largest per-slot cap whose product fits target.
func reduceCandidates(
	candidates []SlotCandidates,
	opts ReduceOptions,
	scorer Scorer,
	withGear stats.Bonus,
	equipped map[gear.Slot]*gear.Item,
) []SlotCandidates {
	target := opts.Target
	if target <= 0 {
		target = opts.Above
	}

	largest := 1
	for _, c := range candidates {
		if len(c.Items) > largest {
			largest = len(c.Items)
		}
	}
	perSlotCap := opts.PerSlotCap
	if perSlotCap <= 0 || perSlotCap > largest {
		perSlotCap = largest
	}

	limit := 1
	for n := perSlotCap; n >= 1; n-- {
		total := int64(1)
		for _, c := range candidates {
			total = helpers.MulSaturating(total, int64(min(len(c.Items), n)))
		}
		if total <= target {
			limit = n
			break
		}
	}

	reduced := make([]SlotCandidates, len(candidates))
	for i, c := range candidates {
		if len(c.Items) <= limit {
			reduced[i] = c
			continue
		}
		reduced[i] = SlotCandidates{
			Slot:  c.Slot,
			Items: bestItems(c, limit, scorer, withGear, equipped[c.Slot]),
		}
	}

	log.Debug().Msgf("Reduced %d combinations to %d (%d items per slot)",
		CountCombinations(candidates), CountCombinations(reduced), limit)

	return reduced
}

func bestItems(c SlotCandidates, limit int, scorer Scorer, withGear stats.Bonus, current *gear.Item) []*gear.Item {
	type scored struct {
		item  *gear.Item
		score float64
	}

	ranked := make([]scored, 0, len(c.Items))
	for _, item := range c.Items {
		bonus := withGear
		if current != nil {
			current.ApplyTo(&bonus, gear.Remove)
		}
		if item != nil {
			item.ApplyTo(&bonus, gear.Apply)
		}
		score := scorer.Score(&bonus)
		if math.IsNaN(score) {
			score = math.Inf(-1)
		}
		ranked = append(ranked, scored{item: item, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	items := make([]*gear.Item, 0, limit)
	for _, r := range ranked[:limit] {
		items = append(items, r.item)
	}
	return items
}
