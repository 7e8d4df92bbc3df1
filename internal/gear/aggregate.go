package gear

import (
	"gear-loadout-optimiser/internal/stats"
)

// Direction is the sign applied to an item's contributions.
type Direction float64

const (
	Apply  Direction = 1
	Remove Direction = -1
)

// ApplyTo adds (or with Remove, subtracts) every contribution of the item to bonus.
func (item *Item) ApplyTo(bonus *stats.Bonus, dir Direction) {
	for _, attr := range item.Mains {
		bonus.Add(attr.Stat, float64(dir)*attr.Value)
	}
	for _, attr := range item.Subs {
		bonus.Add(attr.Stat, float64(dir)*attr.Value)
	}
	if item.Addition != nil {
		bonus.Add(item.Addition.Stat, float64(dir)*item.Addition.Value)
	}
}

// Aggregate applies each non-nil item to bonus in place.
func Aggregate(items []*Item, bonus *stats.Bonus, dir Direction) {
	for _, item := range items {
		if item == nil {
			continue
		}
		item.ApplyTo(bonus, dir)
	}
}

// AggregateEquipped builds the bonus of the equipped loadout. Ids missing from the pool are ignored.
func AggregateEquipped(pool []Item, equipped Loadout) stats.Bonus {
	var bonus stats.Bonus
	index := IndexPool(pool)

	for _, slot := range Slots {
		id, ok := equipped[slot]
		if !ok || id == "" {
			continue
		}
		item, ok := index[id]
		if !ok {
			continue
		}
		item.ApplyTo(&bonus, Apply)
	}

	return bonus
}

// Resolve returns the equipped item per slot, skipping empty slots and unknown ids.
func Resolve(pool []Item, equipped Loadout) map[Slot]*Item {
	index := IndexPool(pool)
	resolved := make(map[Slot]*Item)
	for _, slot := range Slots {
		id := equipped[slot]
		if id == "" {
			continue
		}
		if item, ok := index[id]; ok {
			resolved[slot] = item
		}
	}
	return resolved
}
