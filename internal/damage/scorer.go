package damage

import (
	"gear-loadout-optimiser/internal/stats"
)

// Scorer ranks gear bonuses by the expected normal damage of a fixed character.
type Scorer struct {
	sheet    stats.Sheet
	elements stats.ElementConfig
}

func NewScorer(sheet stats.Sheet, elements stats.ElementConfig) *Scorer {
	return &Scorer{
		sheet:    sheet,
		elements: elements,
	}
}

// Score returns the expected normal damage for the bonus. It does not modify bonus.
func (s *Scorer) Score(bonus *stats.Bonus) float64 {
	return Calculate(&s.sheet, s.elements, bonus).Normal
}

func (s *Scorer) Calculate(bonus *stats.Bonus) Result {
	return Calculate(&s.sheet, s.elements, bonus)
}
