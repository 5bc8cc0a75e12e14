package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/burgers1d/internal/field"
)

func TestUniform(t *testing.T) {
	x, dx, err := Uniform(1.0, 16)
	if err != nil {
		t.Fatalf("uniform failed: %v", err)
	}
	if len(x) != 16 {
		t.Fatalf("expected 16 points, got %d", len(x))
	}
	if dx != 1.0/16 {
		t.Errorf("expected dx 0.0625, got %v", dx)
	}
	if x[0] != 0 {
		t.Errorf("expected x[0] = 0, got %v", x[0])
	}
	if math.Abs(x[15]-15.0/16) > 1e-15 {
		t.Errorf("endpoint should be excluded, x[15] = %v", x[15])
	}
}

func TestUniform_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		length float64
		n      int
	}{
		{"too few points", 1, 2},
		{"zero length", 0, 16},
		{"negative length", -1, 16},
		{"NaN length", math.NaN(), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Uniform(tt.length, tt.n); !errors.Is(err, field.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestSine(t *testing.T) {
	x, _, _ := Uniform(1, 4)
	u := Sine(x)
	expected := []float64{0, 1, 0, -1}
	for i := range expected {
		if math.Abs(u[i]-expected[i]) > 1e-12 {
			t.Errorf("u[%d] = %v, want %v", i, u[i], expected[i])
		}
	}
}

func TestRiemann(t *testing.T) {
	x, _, _ := Uniform(1, 8)
	u := Riemann(x, 1, 0, 0.5, nil)
	for i := range u {
		want := 0.0
		if i < 4 {
			want = 1
		}
		if u[i] != want {
			t.Errorf("u[%d] = %v, want %v", i, u[i], want)
		}
	}

	smoothed := Riemann(x, 1, 0, 0.5, RiemannSmoother())
	if smoothed[0] != 1 || smoothed[7] != 0 {
		t.Errorf("clamped edges should keep the plateau values, got %v", smoothed)
	}
	if !(smoothed[3] < 1 && smoothed[3] > 0 && smoothed[4] > 0 && smoothed[4] < 1) {
		t.Errorf("discontinuity should be smeared, got %v", smoothed)
	}
	for i := 1; i < len(smoothed); i++ {
		if smoothed[i] > smoothed[i-1] {
			t.Errorf("smoothed step should be monotone, got %v", smoothed)
		}
	}
}

func TestConstantAndGaussian(t *testing.T) {
	c := Constant(5, 2.5)
	for _, v := range c {
		if v != 2.5 {
			t.Fatalf("Constant = %v", c)
		}
	}

	x, _, _ := Uniform(1, 10)
	g := Gaussian(x, 0.5, 0.1, 2)
	if g[5] != 2 {
		t.Errorf("peak should equal amplitude at the centre, got %v", g[5])
	}
	if math.Abs(g[4]-g[6]) > 1e-12 {
		t.Errorf("gaussian should be symmetric about its centre: %v vs %v", g[4], g[6])
	}
}
