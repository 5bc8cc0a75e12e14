package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/burgers1d/internal/config"
	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/grid"
	"github.com/san-kum/burgers1d/internal/sim"
)

// Experiment is one configured run: grid, initial field and simulator.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	simulator *sim.Simulator
	x         []float64
	u0        field.Field
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Experiment{
		cfg:      cfg,
		registry: registry,
	}
}

// Setup validates the configuration and resolves every named component.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	op, err := e.registry.GetOperator(e.cfg.Operator, e.cfg.Workers)
	if err != nil {
		return err
	}
	integ, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	smoother, err := e.registry.GetSmoother(e.cfg.Smoother)
	if err != nil {
		return err
	}
	initial, err := e.registry.GetInitial(e.cfg.Initial)
	if err != nil {
		return err
	}

	x, _, err := grid.Uniform(e.cfg.Length, e.cfg.Points)
	if err != nil {
		return err
	}

	e.x = x
	e.u0 = initial(e.cfg, x)
	e.simulator = sim.New(op, integ)
	e.simulator.SetSmoother(smoother)
	for _, m := range e.registry.DefaultMetrics(e.cfg.Dx()) {
		e.simulator.AddMetric(m)
	}
	return nil
}

// SimConfig translates the file configuration into loop settings.
func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Params:        e.cfg.Params(),
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		Steps:         e.cfg.Steps,
		SaveEvery:     e.cfg.SaveEvery,
		SmoothEvery:   e.cfg.SmoothEvery,
		ValidateState: e.cfg.ValidateState,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.u0, e.SimConfig())
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Grid returns the grid coordinates built by Setup.
func (e *Experiment) Grid() []float64 { return e.x }

// SetInitialField replaces the u0 built by Setup. Call it after Setup.
func (e *Experiment) SetInitialField(u field.Field) error {
	if len(u) != e.cfg.Points {
		return fmt.Errorf("%w: initial field has %d samples, grid has %d", field.ErrShapeMismatch, len(u), e.cfg.Points)
	}
	e.u0 = u.Clone()
	return nil
}

// InitialField returns a copy of u0.
func (e *Experiment) InitialField() field.Field { return e.u0.Clone() }

// RunConfig is shorthand for New, Setup and Run.
func RunConfig(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	exp := New(cfg, nil)
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
