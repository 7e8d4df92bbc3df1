// Package profile reads exported character profiles: stats, element selection, the gear
// inventory and the equipped loadout. Exports are hand edited often, so parsing is lenient
// and records what it had to drop as warnings.
package profile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/optimizer"
	"gear-loadout-optimiser/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

var ErrInvalidProfile = errors.New("invalid profile")

type Profile struct {
	Version  string              `json:"version"`
	Sheet    stats.Sheet         `json:"stats"`
	Elements stats.ElementConfig `json:"element_stats"`
	Pool     []gear.Item         `json:"pool"`
	Equipped gear.Loadout        `json:"equipped"`
	Warnings []string            `json:"warnings,omitempty"`
}

func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Profile, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid json", ErrInvalidProfile)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidProfile)
	}

	version := root.Get("version")
	if !version.Exists() {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidProfile)
	}

	p := &Profile{
		Version:  version.String(),
		Equipped: make(gear.Loadout),
	}

	p.readStats(root.Get("stats"))
	p.readElements(root.Get("elementStats"))
	p.readGear(root.Get("gear"))

	for _, warning := range p.Warnings {
		log.Warn().Msg(warning)
	}

	return p, nil
}

// Request builds an optimiser request for the profile's whole inventory.
func (p *Profile) Request(display int) optimizer.Request {
	return optimizer.Request{
		Sheet:          p.Sheet,
		Elements:       p.Elements,
		Pool:           p.Pool,
		Equipped:       p.Equipped,
		DesiredDisplay: display,
	}
}

// StorableItems is the pool without items in unknown slots.
func (p *Profile) StorableItems() []gear.Item {
	items := make([]gear.Item, 0, len(p.Pool))
	for _, item := range p.Pool {
		if item.Slot.Valid() {
			items = append(items, item)
		}
	}
	return items
}

func (p *Profile) warn(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

func (p *Profile) readStats(section gjson.Result) {
	section.ForEach(func(key, value gjson.Result) bool {
		p.readStat(key.String(), value)
		return true
	})
}

func (p *Profile) readStat(name string, value gjson.Result) {
	id, ok := stats.Parse(name)
	if !ok {
		p.warn("dropping unknown stat %q", name)
		return
	}

	var stat stats.Stat
	if value.IsObject() {
		stat.Current = p.number(name+".current", value.Get("current"))
		stat.Increase = p.number(name+".increase", value.Get("increase"))
	} else {
		stat.Current = p.number(name, value)
	}
	p.Sheet[id] = stat
}

func (p *Profile) readElements(section gjson.Result) {
	section.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "selected" {
			element, err := stats.ParseElement(strings.ToLower(value.String()))
			if err != nil {
				p.warn("ignoring selected element: %v", err)
				return true
			}
			p.Elements.Selected = element
			return true
		}
		p.readStat(key.String(), value)
		return true
	})
}

func (p *Profile) readGear(section gjson.Result) {
	seen := make(map[string]bool)
	section.Get("customGears").ForEach(func(_, value gjson.Result) bool {
		item, ok := p.readItem(value)
		if !ok {
			return true
		}
		if seen[item.ID] {
			p.warn("dropping duplicate item %q", item.ID)
			return true
		}
		seen[item.ID] = true
		p.Pool = append(p.Pool, item)
		return true
	})

	section.Get("equipped").ForEach(func(key, value gjson.Result) bool {
		slot := gear.Slot(key.String())
		if !slot.Valid() {
			p.warn("ignoring equipped item in unknown slot %q", slot)
			return true
		}
		if id := value.String(); id != "" && value.Type != gjson.Null {
			p.Equipped[slot] = id
		}
		return true
	})
}

func (p *Profile) readItem(value gjson.Result) (gear.Item, bool) {
	id := value.Get("id").String()
	if id == "" {
		p.warn("dropping item without id")
		return gear.Item{}, false
	}

	item := gear.Item{
		ID:   id,
		Name: value.Get("name").String(),
		Slot: gear.Slot(value.Get("slot").String()),
	}
	if !item.Slot.Valid() {
		p.warn("item %q has unknown slot %q and will not be optimised", id, item.Slot)
	}

	// older exports carry a single main, newer ones a list
	if main := value.Get("main"); main.IsObject() {
		if attr, ok := p.readAttribute(id, main); ok {
			item.Mains = append(item.Mains, attr)
		}
	}
	value.Get("mains").ForEach(func(_, main gjson.Result) bool {
		if attr, ok := p.readAttribute(id, main); ok {
			item.Mains = append(item.Mains, attr)
		}
		return true
	})
	value.Get("subs").ForEach(func(_, sub gjson.Result) bool {
		if attr, ok := p.readAttribute(id, sub); ok {
			item.Subs = append(item.Subs, attr)
		}
		return true
	})
	if addition := value.Get("addition"); addition.IsObject() {
		if attr, ok := p.readAttribute(id, addition); ok {
			item.Addition = &attr
		}
	}

	return item, true
}

func (p *Profile) readAttribute(itemID string, value gjson.Result) (gear.Attribute, bool) {
	name := value.Get("stat").String()
	id, ok := stats.Parse(name)
	if !ok {
		p.warn("dropping unknown stat %q on item %q", name, itemID)
		return gear.Attribute{}, false
	}
	return gear.Attribute{Stat: id, Value: p.number(itemID+"."+name, value.Get("value"))}, true
}

func (p *Profile) number(path string, value gjson.Result) float64 {
	n, err := stats.LooseNumber(value)
	if err != nil {
		p.warn("%s: %v", path, err)
		return 0
	}
	return n
}
