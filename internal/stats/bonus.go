package stats

import (
	"encoding/json"
	"fmt"
)

// Bonus is a flat stat -> accumulated value map, indexed by StatID.
type Bonus [StatCount]float64

func (b *Bonus) Add(id StatID, value float64) {
	if !id.Valid() {
		return
	}
	b[id] += value
}

func (b *Bonus) Get(id StatID) float64 {
	if !id.Valid() {
		return 0
	}
	return b[id]
}

// Merge adds every value of other into b.
func (b *Bonus) Merge(other Bonus) {
	for i := range other {
		b[i] += other[i]
	}
}

// IsZero reports whether no stat carries a value.
func (b *Bonus) IsZero() bool {
	for i := range b {
		if b[i] != 0 {
			return false
		}
	}
	return true
}

// MarshalJSON renders only the non-zero stats, keyed by name.
func (b Bonus) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64)
	for i, v := range b {
		if v != 0 {
			out[StatID(i).String()] = v
		}
	}
	return json.Marshal(out)
}

func (b *Bonus) UnmarshalJSON(data []byte) error {
	in := make(map[string]float64)
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*b = Bonus{}
	for name, v := range in {
		id, ok := Parse(name)
		if !ok {
			return fmt.Errorf("unknown stat '%s' in bonus", name)
		}
		b[id] = v
	}
	return nil
}
