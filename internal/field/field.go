package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is a fixed-length sequence of velocity samples on a periodic grid.
// Operands of the binary methods must have the same length.
type Field []float64

// New returns a zero field of length n.
func New(n int) Field {
	return make(Field, n)
}

func (f Field) Len() int { return len(f) }

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

// IsValid reports whether every sample is finite.
func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm is the discrete L2 norm (no grid weighting).
func (f Field) Norm() float64 {
	if len(f) == 0 {
		return 0
	}
	return floats.Norm(f, 2)
}

func (f Field) MaxAbs() float64 {
	if len(f) == 0 {
		return 0
	}
	return floats.Norm(f, math.Inf(1))
}

func (f Field) Add(other Field) Field {
	result := make(Field, len(f))
	floats.AddTo(result, f, other)
	return result
}

func (f Field) Sub(other Field) Field {
	result := make(Field, len(f))
	floats.SubTo(result, f, other)
	return result
}

func (f Field) Scale(factor float64) Field {
	result := make(Field, len(f))
	floats.ScaleTo(result, factor, f)
	return result
}

// AddScaled returns f + alpha*other.
func (f Field) AddScaled(alpha float64, other Field) Field {
	result := make(Field, len(f))
	floats.AddScaledTo(result, f, alpha, other)
	return result
}

// Lincomb returns a*x + b*y in a newly allocated field.
func Lincomb(a float64, x Field, b float64, y Field) Field {
	result := make(Field, len(x))
	floats.ScaleTo(result, a, x)
	floats.AddScaled(result, b, y)
	return result
}

// Equal reports element-wise equality within tol.
func (f Field) Equal(other Field, tol float64) bool {
	if len(f) != len(other) {
		return false
	}
	return floats.EqualApprox(f, other, tol)
}
