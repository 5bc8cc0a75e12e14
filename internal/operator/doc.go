// Package operator provides semi-discrete spatial operators for the
// one-dimensional viscous Burgers' equation on a periodic grid.
//
// An operator maps a velocity field to its time derivative:
//
//	du/dt = L(u) = -u * du/dx + nu * d2u/dx2
//
// Derivatives are second-order central differences with indices taken
// modulo N, so index 0 sees u[N-1] as its left neighbour and index N-1 sees
// u[0] as its right neighbour.
//
// Operators are pure: each call allocates its result and never writes to
// the input. They perform no validation of their parameters; dx == 0
// produces Inf/NaN samples rather than an error. Callers that want a clean
// failure validate [field.Params] first (the simulation loop does).
//
// # Parallel evaluation
//
// Every index depends only on its periodic neighbours in the input, so
// [Burgers] can split the index range over goroutines when Workers > 1. The
// result is identical to the serial evaluation.
package operator
