// Package grid builds uniform periodic grids and initial velocity fields.
package grid

import (
	"fmt"
	"math"

	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/smoothing"
)

// Uniform returns n points on [0, length) with the right endpoint excluded,
// so the point after x[n-1] is x[0] of the next period.
func Uniform(length float64, n int) ([]float64, float64, error) {
	if n < 3 {
		return nil, 0, fmt.Errorf("%w: need at least 3 points, got %d", field.ErrInvalidParameter, n)
	}
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, 0, fmt.Errorf("%w: length must be positive, got %g", field.ErrInvalidParameter, length)
	}
	dx := length / float64(n)
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * dx
	}
	return x, dx, nil
}

// Sine returns sin(2*pi*x).
func Sine(x []float64) field.Field {
	u := make(field.Field, len(x))
	for i, xi := range x {
		u[i] = math.Sin(2 * math.Pi * xi)
	}
	return u
}

// Riemann returns left for x < x0 and right elsewhere, passed through the
// smoother when one is given.
func Riemann(x []float64, left, right, x0 float64, s smoothing.Smoother) field.Field {
	u := make(field.Field, len(x))
	for i, xi := range x {
		if xi < x0 {
			u[i] = left
		} else {
			u[i] = right
		}
	}
	if s != nil {
		u = s.Smooth(u)
	}
	return u
}

// RiemannSmoother is the pre-smoother applied to step data: two passes of
// the binomial filter.
func RiemannSmoother() smoothing.Smoother {
	return smoothing.Repeat(smoothing.Binomial(), 2)
}

func Constant(n int, c float64) field.Field {
	u := make(field.Field, n)
	for i := range u {
		u[i] = c
	}
	return u
}

// Gaussian returns amp*exp(-((x-center)/width)^2).
func Gaussian(x []float64, center, width, amp float64) field.Field {
	u := make(field.Field, len(x))
	for i, xi := range x {
		r := (xi - center) / width
		u[i] = amp * math.Exp(-r*r)
	}
	return u
}
