package optim

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/san-kum/burgers1d/internal/config"
	"github.com/san-kum/burgers1d/internal/experiment"
	"github.com/san-kum/burgers1d/internal/operator"
)

var ErrNoStableStep = errors.New("optim: no candidate step size stayed finite")

// StepTrial is the outcome of one candidate dt.
type StepTrial struct {
	Dt           float64
	Stable       bool
	StepsTaken   int
	EnergyGrowth float64
	// DiffusionNumber is nu*dt/dx^2 for the trial.
	DiffusionNumber float64
}

// BlowupFactor bounds max|u| relative to the initial field; a trial
// exceeding it counts as unstable even while still finite.
const BlowupFactor = 1e3

// StableStepSearch runs base once per candidate dt, each for the step count
// of base, and reports the largest dt that stayed bounded. Runs are
// sequential; trials come back sorted by ascending dt.
func StableStepSearch(ctx context.Context, base *config.Config, dts []float64) (float64, []StepTrial, error) {
	candidates := append([]float64(nil), dts...)
	sort.Float64s(candidates)

	steps := base.Steps
	if steps <= 0 && base.Dt > 0 {
		steps = int(math.Round(base.Duration / base.Dt))
	}
	if steps < 1 {
		steps = 1
	}

	trials := make([]StepTrial, 0, len(candidates))
	best := 0.0

	for _, dt := range candidates {
		cfg := base.Clone()
		cfg.Dt = dt
		cfg.Steps = steps
		cfg.ValidateState = true

		exp := experiment.New(cfg, nil)
		if err := exp.Setup(); err != nil {
			return 0, trials, err
		}
		limit := BlowupFactor * math.Max(exp.InitialField().MaxAbs(), 1)

		result, err := exp.Run(ctx)
		if err != nil {
			return 0, trials, err
		}

		trial := StepTrial{
			Dt:              dt,
			Stable:          !result.Unstable && result.Final().MaxAbs() <= limit,
			StepsTaken:      result.StepsTaken,
			EnergyGrowth:    result.Metrics["energy_growth"],
			DiffusionNumber: cfg.Params().DiffusionNumber(dt),
		}
		trials = append(trials, trial)
		if trial.Stable {
			best = dt
		}
	}

	if best == 0 {
		return 0, trials, ErrNoStableStep
	}
	return best, trials, nil
}

// SuggestDt returns cfl times the advective/diffusive step limit of the
// configuration's initial field.
func SuggestDt(base *config.Config, cfl float64) (float64, error) {
	exp := experiment.New(base.Clone(), nil)
	if err := exp.Setup(); err != nil {
		return 0, err
	}
	return operator.StableDt(exp.InitialField(), base.Params(), cfl), nil
}
