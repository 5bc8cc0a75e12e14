package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/burgers1d/internal/field"
)

// PowerSpectrum returns |X_k| for k in [0, N/2] where N is len(data), so
// bin k is wavenumber k on the periodic grid. Any N is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(data)/2+1)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantMode returns the non-constant wavenumber with the largest
// amplitude and that amplitude. The mean (k=0) is skipped; an input too
// short to have any other mode returns (0, 0).
func DominantMode(data []float64) (int, float64) {
	ps := PowerSpectrum(data)
	best, amp := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > amp {
			best, amp = k, ps[k]
		}
	}
	return best, amp
}

// UnitSpectrum is the power spectrum of u scaled to unit L2 norm, so runs
// of different amplitude compare directly. A zero field is rejected.
func UnitSpectrum(u []float64) ([]float64, error) {
	unit, err := field.Normalize(u)
	if err != nil {
		return nil, err
	}
	return PowerSpectrum(unit), nil
}
