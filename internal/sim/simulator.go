package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/integrators"
	"github.com/san-kum/burgers1d/internal/operator"
	"github.com/san-kum/burgers1d/internal/smoothing"
)

type Simulator struct {
	op         operator.Operator
	integrator integrators.Integrator
	smoother   smoothing.Smoother
	metrics    []Metric
	observers  []Observer
}

func New(op operator.Operator, integrator integrators.Integrator) *Simulator {
	return &Simulator{
		op:         op,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetSmoother installs the filter applied every Config.SmoothEvery steps.
func (s *Simulator) SetSmoother(sm smoothing.Smoother) { s.smoother = sm }

func (s *Simulator) Operator() operator.Operator        { return s.op }
func (s *Simulator) Integrator() integrators.Integrator { return s.integrator }
func (s *Simulator) Smoother() smoothing.Smoother       { return s.smoother }

// Run advances u0 for cfg.NumSteps() steps. u0 is not modified. A context
// cancellation returns the partial result together with ctx.Err().
// Numerical blow-up is not an error return: with ValidateState set it is
// recorded in Result.Errors as a *field.SimulationError wrapping
// field.ErrUnstable and the run stops early.
func (s *Simulator) Run(ctx context.Context, u0 field.Field, cfg Config) (*Result, error) {
	if err := s.validate(u0, cfg); err != nil {
		return nil, err
	}

	steps := cfg.NumSteps()
	saveEvery := cfg.SaveEvery
	if saveEvery <= 0 {
		saveEvery = 1
	}

	result := &Result{
		Fields:  make([]field.Field, 0, steps/saveEvery+2),
		Times:   make([]float64, 0, steps/saveEvery+2),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	diagf("run: op=%s integrator=%s N=%d dx=%g nu=%g dt=%g steps=%d",
		s.op.Name(), s.integrator.Name(), len(u0), cfg.Params.Dx, cfg.Params.Nu, cfg.Dt, steps)

	u := u0.Clone()
	t := 0.0
	lastSaved := 0

	result.Fields = append(result.Fields, u.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			opsf("run canceled at step %d (t=%.4f)", i, t)
			s.finish(result, u, t, lastSaved)
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(i, u, t)
		}

		next := s.integrator.Step(s.op, u, cfg.Dt, cfg.Params)
		if s.smoother != nil && cfg.SmoothEvery > 0 && (i+1)%cfg.SmoothEvery == 0 {
			next = s.smoother.Smooth(next)
		}

		if cfg.ValidateState && !next.IsValid() {
			err := &field.SimulationError{Step: i + 1, Time: t + cfg.Dt, Wrapped: field.ErrUnstable}
			result.Errors = append(result.Errors, err)
			result.Unstable = true
			opsf("%v", err)
			break
		}

		u = next
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++

		if result.StepsTaken%saveEvery == 0 {
			result.Fields = append(result.Fields, u.Clone())
			result.Times = append(result.Times, t)
			lastSaved = result.StepsTaken
		}
	}

	s.finish(result, u, t, lastSaved)

	if !cfg.ValidateState && !u.IsValid() {
		result.Unstable = true
	}

	diagf("run done: steps=%d t=%.4f max|u|=%g unstable=%v",
		result.StepsTaken, t, u.MaxAbs(), result.Unstable)

	return result, nil
}

func (s *Simulator) finish(result *Result, u field.Field, t float64, lastSaved int) {
	if result.StepsTaken != lastSaved {
		result.Fields = append(result.Fields, u.Clone())
		result.Times = append(result.Times, t)
	}
	for _, m := range s.metrics {
		m.Observe(u, t)
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validate(u0 field.Field, cfg Config) error {
	if len(u0) == 0 {
		return fmt.Errorf("%w: empty initial field", field.ErrShapeMismatch)
	}
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %g", field.ErrInvalidParameter, cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", field.ErrInvalidParameter, cfg.Steps)
	}
	if cfg.Steps == 0 && cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", field.ErrInvalidParameter, cfg.Duration)
	}
	if cfg.SaveEvery < 0 || cfg.SmoothEvery < 0 {
		return fmt.Errorf("%w: save/smooth intervals must be non-negative", field.ErrInvalidParameter)
	}
	if !cfg.AllowDegenerate {
		if err := cfg.Params.Validate(); err != nil {
			return err
		}
	}
	if !u0.IsValid() {
		return fmt.Errorf("initial field: %w", field.ErrInvalidState)
	}
	return nil
}

// RunWithCallback steps until the callback returns false, the configured
// step count is reached or ctx is done. Nothing is recorded.
func (s *Simulator) RunWithCallback(ctx context.Context, u0 field.Field, cfg Config, callback func(step int, u field.Field, t float64) bool) error {
	if err := s.validate(u0, cfg); err != nil {
		return err
	}

	u := u0.Clone()
	steps := cfg.NumSteps()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		if !callback(i, u, t) {
			return nil
		}

		u = s.integrator.Step(s.op, u, cfg.Dt, cfg.Params)
		if s.smoother != nil && cfg.SmoothEvery > 0 && (i+1)%cfg.SmoothEvery == 0 {
			u = s.smoother.Smooth(u)
		}

		if cfg.ValidateState && !u.IsValid() {
			return &field.SimulationError{Step: i + 1, Time: t + cfg.Dt, Wrapped: field.ErrUnstable}
		}
	}

	return nil
}
