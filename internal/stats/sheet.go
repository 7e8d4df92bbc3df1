package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Stat is one character stat: the value on the sheet plus a pending increase
// the player is trialling.
type Stat struct {
	Current  float64 `json:"current"`
	Increase float64 `json:"increase"`
}

func (s Stat) Total() float64 {
	return s.Current + s.Increase
}

// UnmarshalJSON accepts {"current", "increase"} with number, numeric string or "" (an
// untouched form field) values. A bare value is read as current.
func (s *Stat) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid stat json")
	}
	value := gjson.ParseBytes(data)

	if !value.IsObject() {
		current, err := LooseNumber(value)
		if err != nil {
			return err
		}
		*s = Stat{Current: current}
		return nil
	}

	current, err := LooseNumber(value.Get("current"))
	if err != nil {
		return fmt.Errorf("current: %w", err)
	}
	increase, err := LooseNumber(value.Get("increase"))
	if err != nil {
		return fmt.Errorf("increase: %w", err)
	}

	s.Current = current
	s.Increase = increase
	return nil
}

// LooseNumber reads a json number or numeric string. Missing, null and "" read as 0.
func LooseNumber(value gjson.Result) (float64, error) {
	switch value.Type {
	case gjson.Number:
		return value.Num, nil
	case gjson.String:
		str := strings.TrimSpace(value.Str)
		if str == "" {
			return 0, nil
		}
		n, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", value.Str)
		}
		return n, nil
	case gjson.Null:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected a number, got %s", value.Raw)
	}
}

// Sheet is the full character stat vector.
type Sheet [StatCount]Stat

func (s *Sheet) Set(id StatID, current float64) {
	if !id.Valid() {
		return
	}
	s[id].Current = current
}

func (s *Sheet) Total(id StatID) float64 {
	if !id.Valid() {
		return 0
	}
	return s[id].Total()
}

func (s Sheet) MarshalJSON() ([]byte, error) {
	out := make(map[string]Stat)
	for i, v := range s {
		if v.Current != 0 || v.Increase != 0 {
			out[StatID(i).String()] = v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a name -> stat map. Unknown names are rejected so typos surface early.
func (s *Sheet) UnmarshalJSON(data []byte) error {
	in := make(map[string]Stat)
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*s = Sheet{}
	for name, v := range in {
		id, ok := Parse(name)
		if !ok {
			return fmt.Errorf("unknown stat '%s' in sheet", name)
		}
		s[id] = v
	}
	return nil
}
