package integrators

import (
	"sync"

	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/operator"
)

// RK4 is the classical fourth-order Runge-Kutta scheme. It is not SSP.
// Stage inputs come from a per-length field.Pool, so one RK4 value may be
// shared between goroutines.
type RK4 struct {
	mu    sync.Mutex
	pools map[int]*field.Pool
}

func NewRK4() *RK4 {
	return &RK4{pools: make(map[int]*field.Pool)}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) pool(n int) *field.Pool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[n]
	if !ok {
		p = field.NewPool(n)
		r.pools[n] = p
	}
	return p
}

func (r *RK4) Step(op operator.Operator, u field.Field, dt float64, p field.Params) field.Field {
	n := len(u)
	pool := r.pool(n)
	stage := pool.Get()
	defer pool.Put(stage)

	k1 := op.Eval(u, p)

	for i := 0; i < n; i++ {
		stage[i] = u[i] + dt*0.5*k1[i]
	}
	k2 := op.Eval(stage, p)

	for i := 0; i < n; i++ {
		stage[i] = u[i] + dt*0.5*k2[i]
	}
	k3 := op.Eval(stage, p)

	for i := 0; i < n; i++ {
		stage[i] = u[i] + dt*k3[i]
	}
	k4 := op.Eval(stage, p)

	result := make(field.Field, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = u[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}
