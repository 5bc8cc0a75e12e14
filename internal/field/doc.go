// Package field provides the velocity field type shared by the spatial
// operator, the time integrators and the simulation loop.
//
// A [Field] holds samples of u on a periodic one-dimensional grid. Every
// arithmetic method allocates a fresh result and leaves its operands
// untouched, so a Field passed into an operator or integrator is never
// modified:
//
//	u := field.Field{0, 1, 0, -1}
//	v := u.AddScaled(0.5, k) // u is unchanged
//
// Grid spacing and viscosity travel together in [Params], which is passed
// explicitly to every operator and integrator call. There is no package
// level simulation state.
package field
