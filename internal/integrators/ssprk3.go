package integrators

import (
	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/operator"
)

// SSPRK3 is the three-stage, third-order strong-stability-preserving
// Runge-Kutta scheme in Shu-Osher form:
//
//	u1 = u + dt*L(u)
//	u2 = 3/4*u + 1/4*(u1 + dt*L(u1))
//	u3 = 1/3*u + 2/3*(u2 + dt*L(u2))
//
// Each stage is a convex combination of forward Euler steps, so any
// stability property forward Euler has at a given dt carries over.
// Non-finite values coming out of L propagate unchanged.
type SSPRK3 struct{}

func NewSSPRK3() *SSPRK3 {
	return &SSPRK3{}
}

func (s *SSPRK3) Name() string { return "ssprk3" }

func (s *SSPRK3) Step(op operator.Operator, u field.Field, dt float64, p field.Params) field.Field {
	k1 := op.Eval(u, p)
	u1 := u.AddScaled(dt, k1)

	k2 := op.Eval(u1, p)
	u2 := field.Lincomb(0.75, u, 0.25, u1.AddScaled(dt, k2))

	k3 := op.Eval(u2, p)
	return field.Lincomb(1.0/3.0, u, 2.0/3.0, u2.AddScaled(dt, k3))
}

// Step advances u by dt with SSP-RK3 applied to the viscous Burgers operator.
func Step(u field.Field, dt float64, p field.Params) field.Field {
	return NewSSPRK3().Step(operator.NewBurgers(), u, dt, p)
}
