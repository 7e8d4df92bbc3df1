package gear

import (
	"gear-loadout-optimiser/internal/stats"
)

// AttributeKind only affects how the attribute is grouped for display.
type AttributeKind string

const (
	KindMain     AttributeKind = "main"
	KindSub      AttributeKind = "sub"
	KindAddition AttributeKind = "addition"
)

type Attribute struct {
	Stat  stats.StatID `json:"stat"`
	Value float64      `json:"value"`
}

type Item struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Slot     Slot        `json:"slot"`
	Mains    []Attribute `json:"mains"`
	Subs     []Attribute `json:"subs"`
	Addition *Attribute  `json:"addition,omitempty"`
}

// Attributes returns every contribution of the item regardless of kind.
func (item *Item) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(item.Mains)+len(item.Subs)+1)
	attrs = append(attrs, item.Mains...)
	attrs = append(attrs, item.Subs...)
	if item.Addition != nil {
		attrs = append(attrs, *item.Addition)
	}
	return attrs
}

// AttributeKinds returns the contributions tagged with their kind, in the order Attributes uses.
func (item *Item) AttributeKinds() []AttributeKind {
	kinds := make([]AttributeKind, 0, len(item.Mains)+len(item.Subs)+1)
	for range item.Mains {
		kinds = append(kinds, KindMain)
	}
	for range item.Subs {
		kinds = append(kinds, KindSub)
	}
	if item.Addition != nil {
		kinds = append(kinds, KindAddition)
	}
	return kinds
}

// IndexPool maps item ids to items. Later duplicates do not replace earlier ones.
func IndexPool(pool []Item) map[string]*Item {
	index := make(map[string]*Item, len(pool))
	for i := range pool {
		if _, ok := index[pool[i].ID]; ok {
			continue
		}
		index[pool[i].ID] = &pool[i]
	}
	return index
}
