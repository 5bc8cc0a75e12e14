package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/burgers1d/internal/config"
	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/grid"
	"github.com/san-kum/burgers1d/internal/integrators"
	"github.com/san-kum/burgers1d/internal/metrics"
	"github.com/san-kum/burgers1d/internal/operator"
	"github.com/san-kum/burgers1d/internal/sim"
	"github.com/san-kum/burgers1d/internal/smoothing"
)

// InitialCondition builds u0 on grid x from the configuration.
type InitialCondition func(cfg *config.Config, x []float64) field.Field

type Registry struct {
	integrators map[string]func() integrators.Integrator
	operators   map[string]func(workers int) operator.Operator
	smoothers   map[string]func() smoothing.Smoother
	initials    map[string]InitialCondition
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() integrators.Integrator),
		operators:   make(map[string]func(int) operator.Operator),
		smoothers:   make(map[string]func() smoothing.Smoother),
		initials:    make(map[string]InitialCondition),
	}

	r.integrators["ssprk3"] = func() integrators.Integrator { return integrators.NewSSPRK3() }
	r.integrators["euler"] = func() integrators.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() integrators.Integrator { return integrators.NewRK4() }

	r.operators["burgers"] = func(workers int) operator.Operator {
		if workers > 1 {
			return operator.NewParallelBurgers(workers)
		}
		return operator.NewBurgers()
	}
	r.operators["advection"] = func(int) operator.Operator { return operator.NewAdvection() }
	r.operators["diffusion"] = func(int) operator.Operator { return operator.NewDiffusion() }

	r.smoothers["none"] = func() smoothing.Smoother { return smoothing.NewNone() }
	r.smoothers["binomial"] = func() smoothing.Smoother { return smoothing.Binomial() }
	r.smoothers["binomial-zero"] = func() smoothing.Smoother {
		return smoothing.NewKernel3([3]float64{0.25, 0.5, 0.25}, smoothing.EdgeZero)
	}
	r.smoothers["binomial-periodic"] = func() smoothing.Smoother {
		return smoothing.NewKernel3([3]float64{0.25, 0.5, 0.25}, smoothing.EdgePeriodic)
	}

	r.initials["sine"] = func(cfg *config.Config, x []float64) field.Field {
		return grid.Sine(x)
	}
	r.initials["riemann"] = func(cfg *config.Config, x []float64) field.Field {
		s := smoothing.Repeat(smoothing.Binomial(), cfg.PresmoothPasses())
		return grid.Riemann(x, cfg.Riemann.Left, cfg.Riemann.Right, cfg.Riemann.X0, s)
	}
	r.initials["gaussian"] = func(cfg *config.Config, x []float64) field.Field {
		g := cfg.Gaussian
		return grid.Gaussian(x, g.Center, g.Width, g.Amplitude)
	}
	r.initials["constant"] = func(cfg *config.Config, x []float64) field.Field {
		return grid.Constant(len(x), cfg.Constant)
	}

	return r
}

func (r *Registry) GetIntegrator(name string) (integrators.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetOperator(name string, workers int) (operator.Operator, error) {
	fn, ok := r.operators[name]
	if !ok {
		return nil, fmt.Errorf("unknown operator: %s", name)
	}
	return fn(workers), nil
}

// GetSmoother resolves a smoother name. The empty name means no smoother.
func (r *Registry) GetSmoother(name string) (smoothing.Smoother, error) {
	if name == "" {
		name = "none"
	}
	fn, ok := r.smoothers[name]
	if !ok {
		return nil, fmt.Errorf("unknown smoother: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetInitial(name string) (InitialCondition, error) {
	fn, ok := r.initials[name]
	if !ok {
		return nil, fmt.Errorf("unknown initial condition: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListIntegrators() []string { return sortedKeys(r.integrators) }
func (r *Registry) ListOperators() []string   { return sortedKeys(r.operators) }
func (r *Registry) ListSmoothers() []string   { return sortedKeys(r.smoothers) }
func (r *Registry) ListInitials() []string    { return sortedKeys(r.initials) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metric instances for a grid spacing dx.
func (r *Registry) DefaultMetrics(dx float64) []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergy(dx),
		metrics.NewEnergyGrowth(dx),
		metrics.NewMassDrift(dx),
		metrics.NewVariationGrowth(),
		metrics.NewStability(1e6),
	}
}
