package gear

type Slot string

const (
	SlotWeapon1  Slot = "weapon_1"
	SlotWeapon2  Slot = "weapon_2"
	SlotRing     Slot = "ring"
	SlotTalisman Slot = "talisman"
	SlotHead     Slot = "head"
	SlotChest    Slot = "chest"
	SlotHand     Slot = "hand"
	SlotLeg      Slot = "leg"
)

// Slots is the canonical slot order. Search traversal and result keys both follow it.
var Slots = []Slot{
	SlotWeapon1,
	SlotWeapon2,
	SlotRing,
	SlotTalisman,
	SlotHead,
	SlotChest,
	SlotHand,
	SlotLeg,
}

var slotLabels = map[Slot]string{
	SlotWeapon1:  "Weapon I",
	SlotWeapon2:  "Weapon II",
	SlotRing:     "Ring",
	SlotTalisman: "Talisman",
	SlotHead:     "Head",
	SlotChest:    "Chest",
	SlotHand:     "Hand",
	SlotLeg:      "Leg",
}

func (s Slot) Valid() bool {
	_, ok := slotLabels[s]
	return ok
}

func (s Slot) Label() string {
	if label, ok := slotLabels[s]; ok {
		return label
	}
	return string(s)
}

// Loadout maps a slot to the id of the item equipped in it. A missing or empty id means the slot is empty.
type Loadout map[Slot]string
