package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/burgers1d/internal/config"
	"github.com/san-kum/burgers1d/internal/experiment"
	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/sim"
	"github.com/san-kum/burgers1d/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run: a preset (or the default configuration)
// plus overrides.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Name       string             `yaml:"name"`
	Initial    string             `yaml:"initial"`
	Integrator string             `yaml:"integrator"`
	Operator   string             `yaml:"operator"`
	Smoother   string             `yaml:"smoother"`
	Params     map[string]float64 `yaml:"params"`
	Save       bool               `yaml:"save"`
}

// StepResult pairs a scenario step with its run.
type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
	// RunID is set when the step was saved.
	RunID string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

// Config resolves the step into a full configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}

	if s.Name != "" {
		cfg.Name = s.Name
	}
	if s.Initial != "" {
		cfg.Initial = s.Initial
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Operator != "" {
		cfg.Operator = s.Operator
	}
	if s.Smoother != "" {
		cfg.Smoother = s.Smoother
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps marked save are written
// to store when it is non-nil. Progress lines go to out when non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, store *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	if out == nil {
		out = io.Discard
	}

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Name)

		exp := experiment.New(cfg, registry)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: cfg.Name, Config: cfg, Result: result}
		if step.Save && store != nil {
			if sr.RunID, err = store.Save(cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs a configuration across a range of one parameter
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue   float64
	Final        field.Field
	Unstable     bool
	EnergyGrowth float64
	Energy       float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(cfg, registry)
		if err := exp.Setup(); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue:   paramVal,
			Final:        result.Final(),
			Unstable:     result.Unstable,
			EnergyGrowth: result.Metrics["energy_growth"],
			Energy:       result.Metrics["energy"],
		})
	}

	return results, nil
}

// MonteCarloConfig perturbs the initial field with uniform noise
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one perturbed run
type MonteCarloResult struct {
	TrialID      int
	Initial      field.Field
	Final        field.Field
	Stable       bool
	EnergyGrowth float64
}

// RunMonteCarlo executes trials with random perturbations of u0, which
// probes how sensitive a near-marginal dt is to noise.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		exp := experiment.New(cfg.Base.Clone(), registry)
		if err := exp.Setup(); err != nil {
			return nil, err
		}

		u0 := exp.InitialField()
		for i := range u0 {
			u0[i] += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		}
		if err := exp.SetInitialField(u0); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		final := result.Final()
		results = append(results, MonteCarloResult{
			TrialID:      trial,
			Initial:      u0,
			Final:        final,
			Stable:       !result.Unstable && final.MaxAbs() <= 1e6,
			EnergyGrowth: result.Metrics["energy_growth"],
		})
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
