package integrators

import (
	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/operator"
)

// Euler is the first-order forward Euler step, the building block of SSPRK3.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(op operator.Operator, u field.Field, dt float64, p field.Params) field.Field {
	du := op.Eval(u, p)
	result := make(field.Field, len(u))
	for i := range u {
		result[i] = u[i] + dt*du[i]
	}
	return result
}
