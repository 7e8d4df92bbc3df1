package env

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Defaults(t *testing.T) {
	t.Setenv("OPTIMISER_MAX_COMBINATIONS", "")
	t.Setenv("OPTIMISER_MAX_RESULTS", "")
	t.Setenv("OPTIMISER_CONCURRENT_JOBS", "")
	t.Setenv("API_PORT", "")

	e, err := Get()
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultMaxCombinations), e.MaxCombinations)
	assert.Equal(t, DefaultMaxResults, e.MaxResults)
	assert.Equal(t, int64(runtime.NumCPU()), e.ConcurrentJobs)
	assert.Equal(t, DefaultAPIPort, e.APIPort)
}

func TestGet_Overrides(t *testing.T) {
	t.Setenv("OPTIMISER_MAX_COMBINATIONS", "1000000")
	t.Setenv("OPTIMISER_MAX_RESULTS", "50")
	t.Setenv("OPTIMISER_CONCURRENT_JOBS", "2")
	t.Setenv("API_PORT", "9090")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_DB", "loadouts")

	e, err := Get()
	require.NoError(t, err)

	assert.Equal(t, int64(1_000_000), e.MaxCombinations)
	assert.Equal(t, 50, e.MaxResults)
	assert.Equal(t, int64(2), e.ConcurrentJobs)
	assert.Equal(t, "9090", e.APIPort)
	assert.True(t, e.HasDatabase())
}

func TestGet_InvalidNumber(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"not a number", "OPTIMISER_MAX_COMBINATIONS", "lots"},
		{"negative", "OPTIMISER_MAX_RESULTS", "-1"},
		{"zero", "OPTIMISER_CONCURRENT_JOBS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Get()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
