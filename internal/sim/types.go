package sim

import (
	"github.com/san-kum/burgers1d/internal/field"
)

type Metric interface {
	Name() string
	Observe(u field.Field, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, u field.Field, t float64)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(step int, u field.Field, t float64)

func (f ObserverFunc) OnStep(step int, u field.Field, t float64) { f(step, u, t) }

type Config struct {
	Params field.Params
	Dt     float64
	// Duration is used when Steps is zero.
	Duration float64
	Steps    int
	// SaveEvery keeps every n-th field in Result.Fields; the final field is
	// always kept. Zero means 1.
	SaveEvery int
	// SmoothEvery applies the simulator's smoother after every n-th step.
	// Zero disables smoothing.
	SmoothEvery   int
	ValidateState bool
	// AllowDegenerate skips Params validation so dx == 0 can be run.
	AllowDegenerate bool
}

// NumSteps resolves Steps or Duration/Dt into a step count.
func (c Config) NumSteps() int {
	if c.Steps > 0 {
		return c.Steps
	}
	if c.Dt <= 0 {
		return 0
	}
	// round to absorb Duration/Dt landing just under an integer
	return int(c.Duration/c.Dt + 0.5)
}

type Result struct {
	Fields     []field.Field
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
	// Unstable is set when a non-finite field was detected.
	Unstable bool
}

// Final returns the last saved field, or nil for an empty result.
func (r *Result) Final() field.Field {
	if len(r.Fields) == 0 {
		return nil
	}
	return r.Fields[len(r.Fields)-1]
}

// FinalTime returns the time of the last saved field.
func (r *Result) FinalTime() float64 {
	if len(r.Times) == 0 {
		return 0
	}
	return r.Times[len(r.Times)-1]
}
