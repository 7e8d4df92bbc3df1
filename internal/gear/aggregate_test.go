package gear

import (
	"fmt"
	"testing"

	"gear-loadout-optimiser/internal/stats"

	"github.com/stretchr/testify/assert"
)

func testItem(id string, slot Slot, attrs ...Attribute) Item {
	item := Item{ID: id, Name: id, Slot: slot}
	if len(attrs) > 0 {
		item.Mains = attrs[:1]
	}
	if len(attrs) > 1 {
		item.Subs = attrs[1:]
	}
	return item
}

func TestAggregate_SumsAllKinds(t *testing.T) {
	item := Item{
		ID:       "ring-1",
		Slot:     SlotRing,
		Mains:    []Attribute{{Stat: stats.Agility, Value: 10}},
		Subs:     []Attribute{{Stat: stats.Agility, Value: 2.5}, {Stat: stats.CriticalRate, Value: 1}},
		Addition: &Attribute{Stat: stats.FlatDamage, Value: 30},
	}

	var bonus stats.Bonus
	Aggregate([]*Item{&item, nil}, &bonus, Apply)

	assert.Equal(t, 12.5, bonus.Get(stats.Agility))
	assert.Equal(t, 1.0, bonus.Get(stats.CriticalRate))
	assert.Equal(t, 30.0, bonus.Get(stats.FlatDamage))
}

func TestAggregate_PushPopIsNoOp(t *testing.T) {
	items := make([]Item, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, testItem(
			fmt.Sprintf("item-%d", i),
			Slots[i%len(Slots)],
			Attribute{Stat: stats.MaxPhysicalAttack, Value: 0.1 * float64(i+1)},
			Attribute{Stat: stats.CriticalDMGBonus, Value: 1.0 / float64(i+3)},
			Attribute{Stat: stats.PrecisionRate, Value: 0.7},
		))
	}

	var bonus stats.Bonus
	bonus.Add(stats.MaxPhysicalAttack, 1234.567)
	bonus.Add(stats.PrecisionRate, 65)
	before := bonus

	// nested push then pop in reverse order, repeated to surface accumulation drift
	for round := 0; round < 100; round++ {
		for i := range items {
			items[i].ApplyTo(&bonus, Apply)
		}
		for i := len(items) - 1; i >= 0; i-- {
			items[i].ApplyTo(&bonus, Remove)
		}
	}

	for _, id := range stats.All() {
		assert.InDelta(t, before.Get(id), bonus.Get(id), 1e-7, "drift on %s", id)
	}
}

func TestAggregateEquipped(t *testing.T) {
	pool := []Item{
		testItem("w1", SlotWeapon1, Attribute{Stat: stats.Power, Value: 5}),
		testItem("w2", SlotWeapon1, Attribute{Stat: stats.Power, Value: 50}),
		testItem("h1", SlotHead, Attribute{Stat: stats.HP, Value: 100}),
	}

	bonus := AggregateEquipped(pool, Loadout{
		SlotWeapon1: "w1",
		SlotHead:    "h1",
		SlotRing:    "missing",
		SlotChest:   "",
	})

	assert.Equal(t, 5.0, bonus.Get(stats.Power))
	assert.Equal(t, 100.0, bonus.Get(stats.HP))

	empty := AggregateEquipped(pool, Loadout{})
	assert.True(t, empty.IsZero())
}

func TestResolve(t *testing.T) {
	pool := []Item{
		testItem("w1", SlotWeapon1),
		testItem("h1", SlotHead),
	}

	resolved := Resolve(pool, Loadout{SlotWeapon1: "w1", SlotRing: "nope"})
	assert.Len(t, resolved, 1)
	assert.Equal(t, "w1", resolved[SlotWeapon1].ID)
}

func TestSlot_Valid(t *testing.T) {
	for _, slot := range Slots {
		assert.True(t, slot.Valid())
	}
	assert.False(t, Slot("offhand").Valid())
	assert.Equal(t, "offhand", Slot("offhand").Label())
}

func TestItem_AttributesAndKinds(t *testing.T) {
	item := Item{
		ID:       "ring-1",
		Slot:     SlotRing,
		Mains:    []Attribute{{Stat: stats.Agility, Value: 10}},
		Subs:     []Attribute{{Stat: stats.CriticalRate, Value: 1}, {Stat: stats.HP, Value: 30}},
		Addition: &Attribute{Stat: stats.FlatDamage, Value: 5},
	}

	assert.Equal(t, []Attribute{
		{Stat: stats.Agility, Value: 10},
		{Stat: stats.CriticalRate, Value: 1},
		{Stat: stats.HP, Value: 30},
		{Stat: stats.FlatDamage, Value: 5},
	}, item.Attributes())
	assert.Equal(t, []AttributeKind{KindMain, KindSub, KindSub, KindAddition}, item.AttributeKinds())

	bare := Item{ID: "bare"}
	assert.Empty(t, bare.Attributes())
	assert.Empty(t, bare.AttributeKinds())
}
