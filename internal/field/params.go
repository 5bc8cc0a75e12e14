package field

import (
	"fmt"
	"math"
)

// Params are the grid parameters of one simulation run: spatial step and
// kinematic viscosity. They stay constant for the duration of a run.
type Params struct {
	Dx float64 `json:"dx" yaml:"dx"`
	Nu float64 `json:"nu" yaml:"nu"`
}

// Validate rejects a non-positive or non-finite step and negative viscosity.
// The operators themselves never call it; a zero Dx passed straight to an
// operator yields Inf/NaN samples.
func (p Params) Validate() error {
	if !(p.Dx > 0) || math.IsInf(p.Dx, 0) {
		return fmt.Errorf("%w: dx must be positive and finite, got %g", ErrInvalidParameter, p.Dx)
	}
	if p.Nu < 0 || math.IsNaN(p.Nu) || math.IsInf(p.Nu, 0) {
		return fmt.Errorf("%w: nu must be non-negative and finite, got %g", ErrInvalidParameter, p.Nu)
	}
	return nil
}

// DiffusionNumber returns nu*dt/dx^2. Explicit central diffusion is stable
// for forward Euler (and therefore SSP-RK3) while this stays at or below 1/2.
func (p Params) DiffusionNumber(dt float64) float64 {
	return p.Nu * dt / (p.Dx * p.Dx)
}
