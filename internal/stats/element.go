package stats

import "fmt"

type Element string

const (
	Bellstrike Element = "bellstrike"
	Stonesplit Element = "stonesplit"
	Silkbind   Element = "silkbind"
	Bamboocut  Element = "bamboocut"
)

var Elements = []Element{Bellstrike, Stonesplit, Silkbind, Bamboocut}

// ElementStats groups the four per-element stat ids.
type ElementStats struct {
	Min         StatID
	Max         StatID
	Penetration StatID
	DMGBonus    StatID
}

var elementStats = map[Element]ElementStats{
	Bellstrike: {BellstrikeMin, BellstrikeMax, BellstrikePenetration, BellstrikeDMGBonus},
	Stonesplit: {StonesplitMin, StonesplitMax, StonesplitPenetration, StonesplitDMGBonus},
	Silkbind:   {SilkbindMin, SilkbindMax, SilkbindPenetration, SilkbindDMGBonus},
	Bamboocut:  {BamboocutMin, BamboocutMax, BamboocutPenetration, BamboocutDMGBonus},
}

func (e Element) Valid() bool {
	_, ok := elementStats[e]
	return ok
}

func (e Element) Stats() ElementStats {
	return elementStats[e]
}

func ParseElement(name string) (Element, error) {
	e := Element(name)
	if !e.Valid() {
		return "", fmt.Errorf("unknown element '%s'", name)
	}
	return e, nil
}

// ElementConfig is the active elemental configuration for a damage calculation.
type ElementConfig struct {
	Selected Element `json:"selected"`
}

// Others returns every element except the selected one, in canonical order.
func (c ElementConfig) Others() []Element {
	others := make([]Element, 0, len(Elements)-1)
	for _, e := range Elements {
		if e != c.Selected {
			others = append(others, e)
		}
	}
	return others
}
