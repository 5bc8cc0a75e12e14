package operator_test

import (
	"math"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/operator"
)

func sineField(n int) (field.Field, float64) {
	dx := 1.0 / float64(n)
	u := make(field.Field, n)
	for i := range u {
		u[i] = math.Sin(2 * math.Pi * float64(i) * dx)
	}
	return u, dx
}

var _ = Describe("RHS", func() {
	It("vanishes on a uniform field", func() {
		for _, p := range []field.Params{{Dx: 0.1, Nu: 0}, {Dx: 1.0 / 16, Nu: 0.01}, {Dx: 3, Nu: 7}} {
			u := field.Field{2.5, 2.5, 2.5, 2.5, 2.5}
			rhs := operator.RHS(u, p)
			Expect(rhs).To(HaveLen(5))
			for _, v := range rhs {
				Expect(v).To(Equal(0.0))
			}
		}
	})

	It("wraps around on a three point grid", func() {
		u := field.Field{1, 2, 4}
		p := field.Params{Dx: 0.5, Nu: 0.1}
		rhs := operator.RHS(u, p)
		// i=0 uses u[2] on the left, i=2 uses u[0] on the right
		Expect(rhs[0]).To(BeNumerically("~", 3.6, 1e-12))
		Expect(rhs[1]).To(BeNumerically("~", -5.6, 1e-12))
		Expect(rhs[2]).To(BeNumerically("~", 2.0, 1e-12))
	})

	It("does not modify its input", func() {
		u, dx := sineField(16)
		orig := u.Clone()
		_ = operator.RHS(u, field.Params{Dx: dx, Nu: 0.01})
		Expect(u).To(Equal(orig))
	})

	It("produces non-finite samples when dx is zero", func() {
		u := field.Field{0, 1, 0, -1}
		rhs := operator.RHS(u, field.Params{Dx: 0, Nu: 0.01})
		Expect(rhs.IsValid()).To(BeFalse())
	})

	It("converges at second order for the diffusion term", func() {
		var errs []float64
		for _, n := range []int{16, 32, 64, 128} {
			u, dx := sineField(n)
			d2 := operator.SecondDerivative(u, dx)
			maxErr := 0.0
			for i := range u {
				exact := -4 * math.Pi * math.Pi * u[i]
				maxErr = math.Max(maxErr, math.Abs(d2[i]-exact))
			}
			errs = append(errs, maxErr)
		}
		for i := 1; i < len(errs); i++ {
			order := math.Log2(errs[i-1] / errs[i])
			Expect(order).To(BeNumerically("~", 2.0, 0.05))
		}
	})

	It("matches the analytic derivative of sin for the first derivative", func() {
		u, dx := sineField(256)
		d1 := operator.FirstDerivative(u, dx)
		for i := range u {
			exact := 2 * math.Pi * math.Cos(2*math.Pi*float64(i)*dx)
			Expect(d1[i]).To(BeNumerically("~", exact, 1e-3))
		}
	})
})

var _ = Describe("Operators", func() {
	var (
		u  field.Field
		dx float64
		p  field.Params
	)

	BeforeEach(func() {
		u, dx = sineField(64)
		p = field.Params{Dx: dx, Nu: 0.05}
	})

	It("Burgers agrees with RHS", func() {
		Expect(operator.NewBurgers().Eval(u, p)).To(Equal(operator.RHS(u, p)))
		Expect(operator.NewBurgers().Name()).To(Equal("burgers"))
	})

	It("parallel Burgers agrees with the serial evaluation", func() {
		b := &operator.Burgers{Workers: 4, MinChunk: 8}
		Expect(b.Eval(u, p)).To(Equal(operator.RHS(u, p)))
	})

	It("Advection ignores the viscosity", func() {
		adv := operator.NewAdvection().Eval(u, p)
		Expect(adv).To(Equal(operator.RHS(u, field.Params{Dx: dx})))
	})

	It("Burgers splits into advection plus diffusion", func() {
		adv := operator.NewAdvection().Eval(u, p)
		diff := operator.NewDiffusion().Eval(u, p)
		full := operator.RHS(u, p)
		for i := range full {
			Expect(adv[i] + diff[i]).To(BeNumerically("~", full[i], 1e-9))
		}
	})
})

var _ = Describe("StableDt", func() {
	It("takes the tighter of the advective and diffusive limits", func() {
		u := field.Field{1, -2, 0.5}
		p := field.Params{Dx: 0.1, Nu: 0.01}
		// advective 0.1/2 = 0.05, diffusive 0.01/0.02 = 0.5
		Expect(operator.StableDt(u, p, 1)).To(BeNumerically("~", 0.05, 1e-15))
		Expect(operator.StableDt(u, p, 0.5)).To(BeNumerically("~", 0.025, 1e-15))
	})

	It("is unbounded for a zero inviscid field", func() {
		Expect(math.IsInf(operator.StableDt(field.Field{0, 0, 0}, field.Params{Dx: 0.1}, 1), 1)).To(BeTrue())
	})
})

var _ = Describe("ParallelFor", func() {
	It("visits every index exactly once", func() {
		for _, n := range []int{0, 1, 7, 100, 1001} {
			visits := make([]int32, n)
			operator.ParallelFor(n, 10, 4, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})
			for i := range visits {
				Expect(visits[i]).To(Equal(int32(1)), "n=%d index %d", n, i)
			}
		}
	})
})
