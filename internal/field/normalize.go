package field

import "fmt"

// Normalize returns data scaled to unit L2 norm. Empty input fails with
// ErrShapeMismatch and a zero-norm input fails with ErrZeroVector instead of
// producing NaN samples.
func Normalize(data []float64) (Field, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrShapeMismatch)
	}
	f := Field(data)
	norm := f.Norm()
	if norm == 0 {
		return nil, ErrZeroVector
	}
	if !f.IsValid() {
		return nil, ErrInvalidState
	}
	return f.Scale(1 / norm), nil
}
