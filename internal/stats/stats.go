package stats

import (
	"fmt"
)

// StatID enumerates every stat the damage model reads. The set is closed: gear
// attributes and character sheets are both indexed by it.
type StatID uint8

const (
	MinPhysicalAttack StatID = iota
	MaxPhysicalAttack
	PhysicalAttackMultiplier
	FlatDamage
	PhysicalPenetration
	PhysicalDMGBonus

	Body
	Power
	Defense
	Agility
	Momentum

	MainElementMultiplier
	BellstrikeMin
	BellstrikeMax
	BellstrikePenetration
	BellstrikeDMGBonus
	StonesplitMin
	StonesplitMax
	StonesplitPenetration
	StonesplitDMGBonus
	SilkbindMin
	SilkbindMax
	SilkbindPenetration
	SilkbindDMGBonus
	BamboocutMin
	BamboocutMax
	BamboocutPenetration
	BamboocutDMGBonus

	PrecisionRate
	CriticalRate
	CriticalDMGBonus
	AffinityRate
	AffinityDMGBonus
	DamageBoost

	HP
	PhysicalDefense
	PhysicalResistance
	PhysicalDMGReduction

	StatCount
)

var statNames = [StatCount]string{
	MinPhysicalAttack:        "MinPhysicalAttack",
	MaxPhysicalAttack:        "MaxPhysicalAttack",
	PhysicalAttackMultiplier: "PhysicalAttackMultiplier",
	FlatDamage:               "FlatDamage",
	PhysicalPenetration:      "PhysicalPenetration",
	PhysicalDMGBonus:         "PhysicalDMGBonus",
	Body:                     "Body",
	Power:                    "Power",
	Defense:                  "Defense",
	Agility:                  "Agility",
	Momentum:                 "Momentum",
	MainElementMultiplier:    "MainElementMultiplier",
	BellstrikeMin:            "bellstrikeMin",
	BellstrikeMax:            "bellstrikeMax",
	BellstrikePenetration:    "bellstrikePenetration",
	BellstrikeDMGBonus:       "bellstrikeDMGBonus",
	StonesplitMin:            "stonesplitMin",
	StonesplitMax:            "stonesplitMax",
	StonesplitPenetration:    "stonesplitPenetration",
	StonesplitDMGBonus:       "stonesplitDMGBonus",
	SilkbindMin:              "silkbindMin",
	SilkbindMax:              "silkbindMax",
	SilkbindPenetration:      "silkbindPenetration",
	SilkbindDMGBonus:         "silkbindDMGBonus",
	BamboocutMin:             "bamboocutMin",
	BamboocutMax:             "bamboocutMax",
	BamboocutPenetration:     "bamboocutPenetration",
	BamboocutDMGBonus:        "bamboocutDMGBonus",
	PrecisionRate:            "PrecisionRate",
	CriticalRate:             "CriticalRate",
	CriticalDMGBonus:         "CriticalDMGBonus",
	AffinityRate:             "AffinityRate",
	AffinityDMGBonus:         "AffinityDMGBonus",
	DamageBoost:              "DamageBoost",
	HP:                       "HP",
	PhysicalDefense:          "PhysicalDefense",
	PhysicalResistance:       "PhysicalResistance",
	PhysicalDMGReduction:     "PhysicalDMGReduction",
}

var statsByName = func() map[string]StatID {
	m := make(map[string]StatID, StatCount)
	for i, name := range statNames {
		m[name] = StatID(i)
	}
	return m
}()

func (s StatID) String() string {
	if s >= StatCount {
		return fmt.Sprintf("StatID(%d)", uint8(s))
	}
	return statNames[s]
}

func (s StatID) Valid() bool {
	return s < StatCount
}

// Parse looks up a stat by the name used in exported profiles and gear.
func Parse(name string) (StatID, bool) {
	id, ok := statsByName[name]
	return id, ok
}

func (s StatID) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stat id %d", uint8(s))
	}
	return []byte(statNames[s]), nil
}

func (s *StatID) UnmarshalText(text []byte) error {
	id, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown stat '%s'", string(text))
	}
	*s = id
	return nil
}

// All returns every stat id in declaration order.
func All() []StatID {
	ids := make([]StatID, 0, StatCount)
	for i := StatID(0); i < StatCount; i++ {
		ids = append(ids, i)
	}
	return ids
}
