package metrics

import (
	"math"

	"github.com/san-kum/burgers1d/internal/field"
)

// TotalVariation returns sum |u[i+1] - u[i]| including the periodic
// wrap from u[N-1] to u[0].
func TotalVariation(u field.Field) float64 {
	n := len(u)
	tv := 0.0
	for i := 0; i < n; i++ {
		tv += math.Abs(u[(i+1)%n] - u[i])
	}
	return tv
}

// VariationGrowth tracks max TV(t) - TV(0). A positive value means the
// run produced new extrema (spurious oscillations near steep gradients).
type VariationGrowth struct {
	name      string
	initialTV float64
	maxGrowth float64
	samples   int
}

func NewVariationGrowth() *VariationGrowth {
	return &VariationGrowth{name: "tv_growth"}
}

func (v *VariationGrowth) Name() string { return v.name }

func (v *VariationGrowth) Observe(u field.Field, t float64) {
	tv := TotalVariation(u)
	if v.samples == 0 {
		v.initialTV = tv
	}
	v.samples++
	v.maxGrowth = math.Max(v.maxGrowth, tv-v.initialTV)
}

func (v *VariationGrowth) Value() float64 {
	return v.maxGrowth
}

func (v *VariationGrowth) Reset() {
	v.initialTV = 0
	v.maxGrowth = 0
	v.samples = 0
}
