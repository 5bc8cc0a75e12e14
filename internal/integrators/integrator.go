package integrators

import (
	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/operator"
)

// Integrator advances a field by one fixed step dt under op. Implementations
// return a new field and leave u untouched.
type Integrator interface {
	Step(op operator.Operator, u field.Field, dt float64, p field.Params) field.Field
	Name() string
}
