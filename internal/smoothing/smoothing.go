// Package smoothing implements stateless low-pass filters that can stand in
// for, or be composed with, the diffusion term of the spatial operator.
package smoothing

import (
	"fmt"

	"github.com/san-kum/burgers1d/internal/field"
)

// Smoother maps a field to a filtered field of the same length without
// modifying its input.
type Smoother interface {
	Smooth(u field.Field) field.Field
	Name() string
}

// EdgeMode selects how samples outside the field are supplied to the kernel.
type EdgeMode uint8

const (
	// EdgeClamp repeats the boundary sample.
	EdgeClamp EdgeMode = iota
	// EdgeZero pads with zeros, like numpy.convolve(mode="same").
	EdgeZero
	// EdgePeriodic wraps around, matching the solver's grid.
	EdgePeriodic
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "clamp"
	case EdgeZero:
		return "zero"
	case EdgePeriodic:
		return "periodic"
	}
	return fmt.Sprintf("EdgeMode(%d)", uint8(m))
}

// ParseEdgeMode accepts the String form of an EdgeMode.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "", "clamp":
		return EdgeClamp, nil
	case "zero":
		return EdgeZero, nil
	case "periodic":
		return EdgePeriodic, nil
	}
	return 0, fmt.Errorf("unknown edge mode: %s", s)
}

// Kernel3 convolves with a three-point kernel and returns an output of the
// input length ("same" mode).
type Kernel3 struct {
	Weights [3]float64
	Edge    EdgeMode
}

// Binomial returns the [0.25, 0.5, 0.25] filter with clamped edges.
func Binomial() *Kernel3 {
	return &Kernel3{Weights: [3]float64{0.25, 0.5, 0.25}, Edge: EdgeClamp}
}

func NewKernel3(weights [3]float64, edge EdgeMode) *Kernel3 {
	return &Kernel3{Weights: weights, Edge: edge}
}

func (k *Kernel3) Name() string {
	return "kernel3-" + k.Edge.String()
}

// Smooth computes out[i] = w0*u[i+1] + w1*u[i] + w2*u[i-1], the centred
// slice of the full discrete convolution.
func (k *Kernel3) Smooth(u field.Field) field.Field {
	n := len(u)
	out := make(field.Field, n)
	if n == 0 {
		return out
	}
	w := k.Weights
	for i := 0; i < n; i++ {
		out[i] = w[0]*k.at(u, i+1) + w[1]*u[i] + w[2]*k.at(u, i-1)
	}
	return out
}

func (k *Kernel3) at(u field.Field, i int) float64 {
	n := len(u)
	if i >= 0 && i < n {
		return u[i]
	}
	switch k.Edge {
	case EdgeZero:
		return 0
	case EdgePeriodic:
		return u[((i%n)+n)%n]
	default:
		if i < 0 {
			return u[0]
		}
		return u[n-1]
	}
}

type repeated struct {
	inner Smoother
	times int
}

// Repeat applies s n times per call. n <= 0 means no smoothing and
// returns None.
func Repeat(s Smoother, n int) Smoother {
	if n < 1 {
		return NewNone()
	}
	return &repeated{inner: s, times: n}
}

func (r *repeated) Name() string {
	return fmt.Sprintf("%s-x%d", r.inner.Name(), r.times)
}

func (r *repeated) Smooth(u field.Field) field.Field {
	out := u
	for i := 0; i < r.times; i++ {
		out = r.inner.Smooth(out)
	}
	return out
}

// None is the identity smoother.
type None struct{}

func NewNone() *None { return &None{} }

func (n *None) Name() string { return "none" }

func (n *None) Smooth(u field.Field) field.Field {
	return u.Clone()
}
