package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/grid"
	"github.com/san-kum/burgers1d/internal/integrators"
	"github.com/san-kum/burgers1d/internal/operator"
)

// SpatialStudy measures the error of the Burgers right-hand side for
// u = sin(2*pi*x) on [0, 1) against the exact
// -u*u_x + nu*u_xx at each resolution in ns.
func SpatialStudy(ns []int, nu float64) (*Study, error) {
	st := NewStudy(fmt.Sprintf("burgers rhs, nu=%g", nu))
	k := 2 * math.Pi
	for _, n := range ns {
		x, dx, err := grid.Uniform(1, n)
		if err != nil {
			return nil, err
		}
		u := grid.Sine(x)
		exact := make([]float64, n)
		for i, xi := range x {
			ux := k * math.Cos(k*xi)
			uxx := -k * k * u[i]
			exact[i] = -u[i]*ux + nu*uxx
		}
		got := operator.RHS(u, field.Params{Dx: dx, Nu: nu})
		st.Add(n, dx, L2Error(got, exact, dx), MaxError(got, exact))
	}
	return st, nil
}

// TemporalStudy integrates u0 to time span with each dt in dts and
// compares against a reference computed with the smallest dt divided by
// refine. The Dx column of the study holds dt.
func TemporalStudy(integ integrators.Integrator, op operator.Operator, u0 field.Field, p field.Params, span float64, dts []float64, refine int) (*Study, error) {
	if len(dts) == 0 {
		return nil, ErrInsufficientData
	}
	if refine < 2 {
		refine = 2
	}
	smallest := dts[0]
	for _, dt := range dts {
		if dt <= 0 {
			return nil, fmt.Errorf("analysis: dt must be positive, got %g", dt)
		}
		smallest = math.Min(smallest, dt)
	}

	advance := func(dt float64) (field.Field, int) {
		steps := int(math.Round(span / dt))
		u := u0
		for i := 0; i < steps; i++ {
			u = integ.Step(op, u, dt, p)
		}
		return u, steps
	}

	ref, _ := advance(smallest / float64(refine))

	st := NewStudy(fmt.Sprintf("%s temporal", integ.Name()))
	for _, dt := range dts {
		u, steps := advance(dt)
		st.Add(steps, dt, L2Error(u, ref, p.Dx), MaxError(u, ref))
	}
	return st, nil
}
