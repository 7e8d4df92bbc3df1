package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParse(t *testing.T) {
	for _, id := range All() {
		parsed, ok := Parse(id.String())
		assert.True(t, ok, "stat %d has no name", id)
		assert.Equal(t, id, parsed)
	}

	_, ok := Parse("NotAStat")
	assert.False(t, ok)
}

func TestStat_UnmarshalLooseValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Stat
	}{
		{name: "numbers", input: `{"current": 12.5, "increase": 3}`, expected: Stat{Current: 12.5, Increase: 3}},
		{name: "empty strings", input: `{"current": "", "increase": ""}`, expected: Stat{}},
		{name: "numeric strings", input: `{"current": "40", "increase": "1.5"}`, expected: Stat{Current: 40, Increase: 1.5}},
		{name: "missing increase", input: `{"current": 7}`, expected: Stat{Current: 7}},
		{name: "null", input: `{"current": null, "increase": 2}`, expected: Stat{Increase: 2}},
		{name: "bare number", input: `55`, expected: Stat{Current: 55}},
		{name: "bare string", input: `" 12 "`, expected: Stat{Current: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Stat
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestStat_UnmarshalRejectsNonNumbers(t *testing.T) {
	for _, input := range []string{`{"current": "lots"}`, `{"increase": [1]}`, `true`} {
		var s Stat
		assert.Error(t, json.Unmarshal([]byte(input), &s), input)
	}
}

func TestLooseNumber(t *testing.T) {
	doc := gjson.Parse(`{"n": 1.5, "s": "2", "blank": "", "null": null, "bad": "x", "arr": [1]}`)

	tests := []struct {
		path     string
		expected float64
		wantErr  bool
	}{
		{path: "n", expected: 1.5},
		{path: "s", expected: 2},
		{path: "blank"},
		{path: "null"},
		{path: "missing"},
		{path: "bad", wantErr: true},
		{path: "arr", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, err := LooseNumber(doc.Get(tt.path))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestSheet_UnmarshalRejectsUnknownStat(t *testing.T) {
	var s Sheet
	err := json.Unmarshal([]byte(`{"Agility": {"current": 1}, "Agilty": {"current": 2}}`), &s)
	assert.Error(t, err)
}

func TestSheet_Total(t *testing.T) {
	var s Sheet
	require.NoError(t, json.Unmarshal([]byte(`{"Agility": {"current": 10, "increase": 5}}`), &s))
	assert.Equal(t, 15.0, s.Total(Agility))
	assert.Equal(t, 0.0, s.Total(Power))
}

func TestBonus_JSONRoundTripSkipsZeroes(t *testing.T) {
	var b Bonus
	b.Add(CriticalRate, 4.5)
	b.Add(FlatDamage, 100)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"CriticalRate": 4.5, "FlatDamage": 100}`, string(data))

	var decoded Bonus
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b, decoded)
}

func TestElementConfig_Others(t *testing.T) {
	cfg := ElementConfig{Selected: Silkbind}
	assert.Equal(t, []Element{Bellstrike, Stonesplit, Bamboocut}, cfg.Others())
}
