package damage

import (
	"math"

	"gear-loadout-optimiser/internal/stats"
)

// Result holds the four damage figures of one hit.
type Result struct {
	Min      float64 `json:"min"`
	Normal   float64 `json:"normal"`
	Critical float64 `json:"critical"`
	Affinity float64 `json:"affinity"`
}

// values is every input of the formula after stats, element selection, derived stats
// and gear have been folded together.
type values struct {
	minPhysAtk       float64
	maxPhysAtk       float64
	physPenetration  float64
	physDmgBonus     float64
	minOtherAttr     float64
	maxOtherAttr     float64
	physAtkMult      float64
	flatDmg          float64
	minYourAttr      float64
	maxYourAttr      float64
	elementMult      float64
	attrPenetration  float64
	attrDmgBonus     float64
	critDmgBonus     float64
	affinityDmgBonus float64
	dmgBoost         float64
	precisionRate    float64
	criticalRate     float64
	affinityRate     float64
}

func collect(sheet *stats.Sheet, elements stats.ElementConfig, bonus *stats.Bonus) values {
	total := func(id stats.StatID) float64 {
		return sheet.Total(id) + bonus.Get(id)
	}

	agility := total(stats.Agility)
	momentum := total(stats.Momentum)
	power := total(stats.Power)

	v := values{
		minPhysAtk:       total(stats.MinPhysicalAttack) + agility*1 + power*0.246,
		maxPhysAtk:       total(stats.MaxPhysicalAttack) + momentum*0.9 + power*1.315,
		physPenetration:  total(stats.PhysicalPenetration),
		physDmgBonus:     total(stats.PhysicalDMGBonus),
		physAtkMult:      total(stats.PhysicalAttackMultiplier),
		flatDmg:          total(stats.FlatDamage),
		elementMult:      total(stats.MainElementMultiplier),
		critDmgBonus:     total(stats.CriticalDMGBonus),
		affinityDmgBonus: total(stats.AffinityDMGBonus),
		dmgBoost:         total(stats.DamageBoost),
		precisionRate:    total(stats.PrecisionRate),
		criticalRate:     total(stats.CriticalRate) + agility*0.075,
		affinityRate:     total(stats.AffinityRate) + momentum*0.04,
	}

	if elements.Selected.Valid() {
		own := elements.Selected.Stats()
		v.minYourAttr = total(own.Min)
		v.maxYourAttr = total(own.Max)
		v.attrPenetration = total(own.Penetration)
		v.attrDmgBonus = total(own.DMGBonus)
	}

	for _, e := range elements.Others() {
		other := e.Stats()
		minAttr := total(other.Min)
		// a Max below Min is treated as Min
		v.minOtherAttr += minAttr
		v.maxOtherAttr += math.Max(total(other.Max), minAttr)
	}

	return v
}

func (v values) physModifier() float64 {
	return (1 + v.physPenetration/200) * (1 + v.physDmgBonus/100)
}

func (v values) elementModifier() float64 {
	return 1 + v.attrPenetration/200 + v.attrDmgBonus/100
}

// hit is the pre-multiplier damage of a hit using the given attack rolls.
func (v values) hit(physAtk float64, otherAttr float64, yourAttr float64) float64 {
	return (physAtk*v.physModifier()+otherAttr)*(v.physAtkMult/100) +
		v.flatDmg +
		yourAttr*(v.elementMult/100)*v.elementModifier()
}

func (v values) minimum() float64 {
	dmg := v.hit(v.minPhysAtk, v.minOtherAttr, v.minYourAttr) * 1.02 * (1 + v.dmgBoost/100)
	return math.Floor(dmg*10+0.5) / 10
}

func (v values) maxHit() float64 {
	return v.hit(v.maxPhysAtk, math.Max(v.minOtherAttr, v.maxOtherAttr), v.maxYourAttr)
}

func (v values) critical() float64 {
	return v.maxHit() * (1 + v.critDmgBonus/100) * (1 + v.dmgBoost/100)
}

func (v values) affinity() float64 {
	return v.maxHit() * (1 + v.affinityDmgBonus/100) * (1 + v.dmgBoost/100)
}

func (v values) average() float64 {
	avgOther := v.minOtherAttr
	if v.minOtherAttr < v.maxOtherAttr {
		avgOther = (v.minOtherAttr + v.maxOtherAttr) / 2
	}
	avgPhys := (v.minPhysAtk + v.maxPhysAtk) / 2
	avgYour := (v.minYourAttr + v.maxYourAttr) / 2

	return v.hit(avgPhys, avgOther, avgYour) * (1 + v.dmgBoost/100)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// expected is the expected damage of a normal hit given precision, affinity and
// critical chances. Affinity and critical share one roll and are rescaled when
// their chances add up to more than 100%.
func (v values) expected(minDamage float64, affinityDamage float64) float64 {
	base := v.average()

	p := clamp01(v.precisionRate / 100)
	a := clamp01(v.affinityRate / 100)
	c := clamp01(v.criticalRate / 100)
	cd := v.critDmgBonus / 100

	scale := 1.0
	if a+c > 1 {
		scale = 1 / (a + c)
	}
	as := a * scale
	cs := c * scale

	noPrecision := as*affinityDamage + (1-as)*minDamage
	precision := as*affinityDamage + cs*base*(1+cd) + (1-as-cs)*base

	return (1-p)*noPrecision + p*precision
}

// Calculate evaluates the damage model for a character sheet plus a gear bonus.
func Calculate(sheet *stats.Sheet, elements stats.ElementConfig, bonus *stats.Bonus) Result {
	v := collect(sheet, elements, bonus)

	minDamage := v.minimum()
	affinity := v.affinity()

	return Result{
		Min:      minDamage,
		Normal:   v.expected(minDamage, affinity),
		Critical: v.critical(),
		Affinity: affinity,
	}
}
