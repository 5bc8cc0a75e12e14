package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/burgers1d/internal/config"
)

func TestStableStepSearch(t *testing.T) {
	base := config.GetPreset("sine")

	best, trials, err := StableStepSearch(context.Background(), base, []float64{10, 0.001})
	require.NoError(t, err)
	require.Len(t, trials, 2)

	assert.Equal(t, 0.001, trials[0].Dt)
	assert.Equal(t, 10.0, trials[1].Dt)
	assert.True(t, trials[0].Stable)
	assert.Equal(t, 100, trials[0].StepsTaken)
	assert.False(t, trials[1].Stable)
	assert.Equal(t, 0.001, best)
}

// Explicit diffusion with SSP-RK3 is stable up to a diffusion number of
// about 0.63.
func TestStableStepSearchDiffusionLimit(t *testing.T) {
	base := config.GetPreset("diffusion")

	best, trials, err := StableStepSearch(context.Background(), base, []float64{0.001, 0.002, 0.004})
	require.NoError(t, err)
	assert.Equal(t, 0.002, best)
	require.Len(t, trials, 3)
	assert.InDelta(t, 0.8192, trials[2].DiffusionNumber, 1e-9)
	assert.False(t, trials[2].Stable)
}

func TestStableStepSearchNoneStable(t *testing.T) {
	base := config.GetPreset("unstable")
	_, trials, err := StableStepSearch(context.Background(), base, []float64{10, 20})
	assert.ErrorIs(t, err, ErrNoStableStep)
	assert.Len(t, trials, 2)
}

func TestStableStepSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := StableStepSearch(ctx, config.GetPreset("sine"), []float64{0.001})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSuggestDt(t *testing.T) {
	dt, err := SuggestDt(config.GetPreset("sine"), 0.5)
	require.NoError(t, err)
	assert.Greater(t, dt, 0.0)
	assert.Less(t, dt, 0.1)
}

func TestGridSearch(t *testing.T) {
	base := config.GetPreset("diffusion")
	base.Duration = 0.05

	gs := NewGridSearch([]string{"nu"}, [][]float64{{0.01, 0.05, 0.1}})
	params, val, err := gs.Search(context.Background(), base, "energy")
	require.NoError(t, err)

	// more viscosity dissipates more energy
	assert.Equal(t, 0.1, params["nu"])
	assert.Greater(t, val, 0.0)
}

func TestGridSearchUnknownParam(t *testing.T) {
	gs := NewGridSearch([]string{"gravity"}, [][]float64{{1}})
	_, _, err := gs.Search(context.Background(), config.GetPreset("sine"), "energy")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGridSearchInvalidCombination(t *testing.T) {
	gs := NewGridSearch([]string{"points"}, [][]float64{{16, 1}})
	params, _, err := gs.Search(context.Background(), config.GetPreset("sine"), "energy")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Nil(t, params)
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gs := NewGridSearch([]string{"nu"}, [][]float64{{0.01}})
	_, _, err := gs.Search(ctx, config.GetPreset("sine"), "energy")
	assert.ErrorIs(t, err, context.Canceled)
}
