package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrInsufficientData = errors.New("analysis: need at least two positive samples")

// L2Error is the grid-weighted discrete L2 norm sqrt(dx * sum (u-ref)^2).
func L2Error(u, ref []float64, dx float64) float64 {
	if len(u) != len(ref) {
		return math.NaN()
	}
	return floats.Distance(u, ref, 2) * math.Sqrt(dx)
}

// MaxError is max |u - ref|.
func MaxError(u, ref []float64) float64 {
	if len(u) != len(ref) {
		return math.NaN()
	}
	return floats.Distance(u, ref, math.Inf(1))
}

// ConvergenceOrder fits log(err) = c + p*log(h) by least squares and
// returns p.
func ConvergenceOrder(hs, errs []float64) (float64, error) {
	if len(hs) != len(errs) {
		return 0, fmt.Errorf("analysis: %d step sizes but %d errors", len(hs), len(errs))
	}
	var lh, le []float64
	for i := range hs {
		if hs[i] > 0 && errs[i] > 0 {
			lh = append(lh, math.Log(hs[i]))
			le = append(le, math.Log(errs[i]))
		}
	}
	if len(lh) < 2 {
		return 0, ErrInsufficientData
	}
	_, slope := stat.LinearRegression(lh, le, nil, false)
	return slope, nil
}

// ObservedOrders returns log(e[i]/e[i+1]) / log(h[i]/h[i+1]) for each
// consecutive pair. Pairs with a non-positive entry yield NaN.
func ObservedOrders(hs, errs []float64) []float64 {
	n := len(hs)
	if len(errs) < n {
		n = len(errs)
	}
	if n < 2 {
		return nil
	}
	orders := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		if hs[i] <= 0 || hs[i+1] <= 0 || errs[i] <= 0 || errs[i+1] <= 0 || hs[i] == hs[i+1] {
			orders[i] = math.NaN()
			continue
		}
		orders[i] = math.Log(errs[i]/errs[i+1]) / math.Log(hs[i]/hs[i+1])
	}
	return orders
}

// Study accumulates errors of one quantity over a sequence of resolutions.
type Study struct {
	Title  string
	Points []int
	Dx     []float64
	L2     []float64
	Max    []float64
}

func NewStudy(title string) *Study {
	return &Study{Title: title}
}

func (s *Study) Add(points int, dx, l2, maxErr float64) {
	s.Points = append(s.Points, points)
	s.Dx = append(s.Dx, dx)
	s.L2 = append(s.L2, l2)
	s.Max = append(s.Max, maxErr)
}

func (s *Study) L2Order() (float64, error) {
	return ConvergenceOrder(s.Dx, s.L2)
}

func (s *Study) MaxOrder() (float64, error) {
	return ConvergenceOrder(s.Dx, s.Max)
}
