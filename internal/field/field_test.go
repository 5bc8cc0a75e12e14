package field

import (
	"errors"
	"math"
	"testing"
)

func TestField_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		valid bool
	}{
		{"empty", Field{}, true},
		{"normal", Field{1.0, 2.0, 3.0}, true},
		{"zeros", Field{0.0, 0.0}, true},
		{"with NaN", Field{1.0, math.NaN()}, false},
		{"with +Inf", Field{1.0, math.Inf(1)}, false},
		{"with -Inf", Field{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestField_Norm(t *testing.T) {
	tests := []struct {
		field    Field
		expected float64
	}{
		{Field{3, 4}, 5.0},
		{Field{1, 0}, 1.0},
		{Field{0, 0}, 0.0},
		{Field{1, 1, 1, 1}, 2.0},
		{Field{}, 0.0},
	}

	for _, tt := range tests {
		if got := tt.field.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.field, got, tt.expected)
		}
	}
}

func TestField_MaxAbs(t *testing.T) {
	if got := (Field{1, -7, 3}).MaxAbs(); got != 7 {
		t.Errorf("MaxAbs = %v, want 7", got)
	}
}

func TestField_Arithmetic(t *testing.T) {
	a := Field{1, 2, 3}
	b := Field{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}

	axpy := a.AddScaled(0.5, b)
	if axpy[0] != 3 || axpy[1] != 4.5 || axpy[2] != 6 {
		t.Errorf("AddScaled failed: got %v", axpy)
	}

	lc := Lincomb(0.75, a, 0.25, b)
	if lc[0] != 1.75 || lc[1] != 2.75 || lc[2] != 3.75 {
		t.Errorf("Lincomb failed: got %v", lc)
	}

	if a[0] != 1 || a[1] != 2 || a[2] != 3 || b[0] != 4 {
		t.Errorf("operands were modified: a=%v b=%v", a, b)
	}
}

func TestField_CloneIndependent(t *testing.T) {
	a := Field{1, 2}
	c := a.Clone()
	c[0] = 99
	if a[0] == 99 {
		t.Error("Clone shares storage with the original")
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"valid", Params{Dx: 0.1, Nu: 0.01}, true},
		{"inviscid", Params{Dx: 0.1, Nu: 0}, true},
		{"zero dx", Params{Dx: 0, Nu: 0.01}, false},
		{"negative dx", Params{Dx: -0.1, Nu: 0.01}, false},
		{"NaN dx", Params{Dx: math.NaN(), Nu: 0.01}, false},
		{"Inf dx", Params{Dx: math.Inf(1), Nu: 0.01}, false},
		{"negative nu", Params{Dx: 0.1, Nu: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestParams_DiffusionNumber(t *testing.T) {
	p := Params{Dx: 0.1, Nu: 0.5}
	if got := p.DiffusionNumber(0.01); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("DiffusionNumber = %v, want 0.5", got)
	}
}

func TestNormalize(t *testing.T) {
	f, err := Normalize([]float64{3, 4})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if math.Abs(f[0]-0.6) > 1e-12 || math.Abs(f[1]-0.8) > 1e-12 {
		t.Errorf("Normalize = %v, want [0.6 0.8]", f)
	}
	if math.Abs(f.Norm()-1) > 1e-12 {
		t.Errorf("normalized norm = %v", f.Norm())
	}
}

func TestNormalize_Rejects(t *testing.T) {
	if _, err := Normalize([]float64{0, 0, 0}); !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected ErrZeroVector, got %v", err)
	}
	if _, err := Normalize([]float64{0, 0}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("zero vector should also match ErrShapeMismatch, got %v", err)
	}
	if _, err := Normalize(nil); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch for empty input, got %v", err)
	}
	if _, err := Normalize([]float64{1, math.NaN()}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Time: 1.5, Step: 150, Wrapped: ErrUnstable}
	expected := "step 150 (t=1.5000): field: simulation unstable (state diverged)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrUnstable) {
		t.Error("SimulationError should unwrap to ErrUnstable")
	}
}

func TestPool(t *testing.T) {
	pool := NewPool(4)

	f1 := pool.Get()
	if len(f1) != 4 {
		t.Errorf("Pool returned wrong size: %d", len(f1))
	}

	f1[0] = 1.0
	f1[1] = 2.0
	pool.Put(f1)

	f2 := pool.Get()
	if f2[0] != 0 || f2[1] != 0 {
		t.Error("Pool did not reset field")
	}
}

func TestPool_GetAndCopy(t *testing.T) {
	pool := NewPool(3)
	src := Field{1, 2, 3}

	dst := pool.GetAndCopy(src)
	if dst[0] != 1 || dst[1] != 2 || dst[2] != 3 {
		t.Errorf("GetAndCopy failed: got %v", dst)
	}

	dst[0] = 99
	if src[0] == 99 {
		t.Error("GetAndCopy did not create independent copy")
	}
}
