package operator

import (
	"math"

	"github.com/san-kum/burgers1d/internal/field"
)

// Operator evaluates the right-hand side of a semi-discrete PDE.
type Operator interface {
	Eval(u field.Field, p field.Params) field.Field
	Name() string
}

// RHS evaluates the viscous Burgers' right-hand side serially.
// p.Dx must be nonzero; it is not checked here, and dx == 0 yields
// Inf/NaN samples. Use field.Params.Validate at the call boundary.
func RHS(u field.Field, p field.Params) field.Field {
	out := make(field.Field, len(u))
	burgersRange(u, p, out, 0, len(u))
	return out
}

func burgersRange(u field.Field, p field.Params, out field.Field, start, end int) {
	n := len(u)
	dx, nu := p.Dx, p.Nu
	for i := start; i < end; i++ {
		left := u[(i-1+n)%n]
		right := u[(i+1)%n]
		dudx := (right - left) / (2 * dx)
		d2udx2 := (right - 2*u[i] + left) / (dx * dx)
		out[i] = -u[i]*dudx + nu*d2udx2
	}
}

// Burgers is the advection-diffusion operator -u*u_x + nu*u_xx.
type Burgers struct {
	// Workers > 1 enables chunked parallel evaluation for fields of at
	// least MinChunk*2 samples.
	Workers  int
	MinChunk int
}

func NewBurgers() *Burgers {
	return &Burgers{Workers: 1, MinChunk: 4096}
}

// NewParallelBurgers splits evaluation over the given number of workers.
func NewParallelBurgers(workers int) *Burgers {
	return &Burgers{Workers: workers, MinChunk: 4096}
}

func (b *Burgers) Name() string { return "burgers" }

func (b *Burgers) Eval(u field.Field, p field.Params) field.Field {
	n := len(u)
	if b.Workers <= 1 || n < 2*b.MinChunk {
		return RHS(u, p)
	}
	out := make(field.Field, n)
	ParallelFor(n, b.MinChunk, b.Workers, func(start, end int) {
		burgersRange(u, p, out, start, end)
	})
	return out
}

// Advection is the inviscid operator -u*u_x. It ignores Nu; pair it with a
// smoother when the smoother replaces the diffusion term.
type Advection struct{}

func NewAdvection() *Advection { return &Advection{} }

func (a *Advection) Name() string { return "advection" }

func (a *Advection) Eval(u field.Field, p field.Params) field.Field {
	inviscid := field.Params{Dx: p.Dx}
	return RHS(u, inviscid)
}

// Diffusion is the linear heat operator nu*u_xx.
type Diffusion struct{}

func NewDiffusion() *Diffusion { return &Diffusion{} }

func (d *Diffusion) Name() string { return "diffusion" }

func (d *Diffusion) Eval(u field.Field, p field.Params) field.Field {
	out := SecondDerivative(u, p.Dx)
	for i := range out {
		out[i] *= p.Nu
	}
	return out
}

// FirstDerivative returns the periodic central difference (u[i+1]-u[i-1])/(2dx).
func FirstDerivative(u field.Field, dx float64) field.Field {
	n := len(u)
	out := make(field.Field, n)
	for i := 0; i < n; i++ {
		out[i] = (u[(i+1)%n] - u[(i-1+n)%n]) / (2 * dx)
	}
	return out
}

// SecondDerivative returns the periodic central difference (u[i+1]-2u[i]+u[i-1])/dx^2.
func SecondDerivative(u field.Field, dx float64) field.Field {
	n := len(u)
	out := make(field.Field, n)
	for i := 0; i < n; i++ {
		out[i] = (u[(i+1)%n] - 2*u[i] + u[(i-1+n)%n]) / (dx * dx)
	}
	return out
}

// StableDt returns cfl * min(dx/max|u|, dx^2/(2nu)), the usual explicit
// bounds for advection and diffusion. A limit that does not apply (u == 0
// or nu == 0) is treated as +Inf. Nothing in the solver enforces it.
func StableDt(u field.Field, p field.Params, cfl float64) float64 {
	advective, diffusive := math.Inf(1), math.Inf(1)
	if umax := u.MaxAbs(); umax > 0 {
		advective = p.Dx / umax
	}
	if p.Nu > 0 {
		diffusive = p.Dx * p.Dx / (2 * p.Nu)
	}
	return cfl * math.Min(advective, diffusive)
}
