package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/burgers1d/internal/field"
)

// KineticEnergy returns 1/2 * sum(u^2) * dx.
func KineticEnergy(u field.Field, dx float64) float64 {
	return 0.5 * floats.Dot(u, u) * dx
}

// Energy reports the kinetic energy of the most recent observation.
type Energy struct {
	name    string
	dx      float64
	samples int
	current float64
}

func NewEnergy(dx float64) *Energy {
	return &Energy{
		name: "energy",
		dx:   dx,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(u field.Field, t float64) {
	e.current = KineticEnergy(u, e.dx)
	e.samples++
}

func (e *Energy) Value() float64 {
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
	e.samples = 0
}

// EnergyGrowth tracks max E(t)/E(0). Values above 1 mean the scheme
// amplified energy; physical Burgers' flow only dissipates it.
type EnergyGrowth struct {
	name          string
	dx            float64
	initialEnergy float64
	maxRatio      float64
	samples       int
}

func NewEnergyGrowth(dx float64) *EnergyGrowth {
	return &EnergyGrowth{
		name: "energy_growth",
		dx:   dx,
	}
}

func (e *EnergyGrowth) Name() string { return e.name }

func (e *EnergyGrowth) Observe(u field.Field, t float64) {
	energy := KineticEnergy(u, e.dx)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		e.maxRatio = math.Max(e.maxRatio, energy/e.initialEnergy)
	}
}

func (e *EnergyGrowth) Value() float64 {
	return e.maxRatio
}

func (e *EnergyGrowth) Reset() {
	e.initialEnergy = 0
	e.maxRatio = 0
	e.samples = 0
}

// MassDrift tracks max |M(t) - M(0)| with M = sum(u) * dx.
type MassDrift struct {
	name        string
	dx          float64
	initialMass float64
	maxDrift    float64
	samples     int
}

func NewMassDrift(dx float64) *MassDrift {
	return &MassDrift{
		name: "mass_drift",
		dx:   dx,
	}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(u field.Field, t float64) {
	mass := floats.Sum(u) * m.dx

	if m.samples == 0 {
		m.initialMass = mass
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Abs(mass-m.initialMass))
}

func (m *MassDrift) Value() float64 {
	return m.maxDrift
}

func (m *MassDrift) Reset() {
	m.initialMass = 0
	m.maxDrift = 0
	m.samples = 0
}
