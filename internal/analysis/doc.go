// Package analysis provides post-processing for simulated velocity fields.
//
//   - [PowerSpectrum] and [DominantMode]: Fourier content of a field
//   - [ConvergenceOrder] and [ObservedOrders]: observed order of accuracy
//     from an error-versus-resolution study
//   - [L2Error] and [MaxError]: discrete error norms against a reference
//
// # Convergence Studies
//
// A [Study] collects one error sample per resolution and reports the
// fitted order:
//
//	st := analysis.NewStudy("second derivative")
//	for _, n := range []int{16, 32, 64} {
//	    st.Add(n, dx, l2, linf)
//	}
//	p, _ := st.L2Order()
package analysis
