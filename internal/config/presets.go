package config

import "sort"

func intPtr(n int) *int { return &n }

// Presets are complete configurations keyed by name. GetPreset returns
// copies, so callers may override fields freely.
var Presets = map[string]*Config{
	"sine": {
		Name: "sine", Initial: "sine", Integrator: "ssprk3", Operator: "burgers", Smoother: "none",
		Length: 1, Points: 16, Nu: 0.01, Dt: 0.001, Duration: 0.1, ValidateState: true,
	},
	"sine-fine": {
		Name: "sine-fine", Initial: "sine", Integrator: "ssprk3", Operator: "burgers", Smoother: "none",
		Length: 1, Points: 128, Nu: 0.01, Dt: 0.0005, Duration: 0.5, SaveEvery: 10, ValidateState: true,
	},
	"riemann": {
		Name: "riemann", Initial: "riemann", Integrator: "ssprk3", Operator: "burgers", Smoother: "none",
		Length: 1, Points: 64, Nu: 0.01, Dt: 0.001, Duration: 0.2, SaveEvery: 10, ValidateState: true,
		Riemann: RiemannConfig{Left: 1, Right: 0, X0: 0.5},
	},
	"shock": {
		Name: "shock", Initial: "riemann", Integrator: "ssprk3", Operator: "advection", Smoother: "binomial-periodic",
		Length: 1, Points: 128, Nu: 0, Dt: 0.001, Duration: 0.3, SaveEvery: 10, SmoothEvery: 1, ValidateState: true,
		Riemann: RiemannConfig{Left: 1, Right: 0, X0: 0.5, Presmooth: intPtr(2)},
	},
	"unstable": {
		Name: "unstable", Initial: "sine", Integrator: "ssprk3", Operator: "burgers", Smoother: "none",
		Length: 1, Points: 16, Nu: 0.01, Dt: 10, Steps: 20, ValidateState: true,
	},
	"diffusion": {
		Name: "diffusion", Initial: "gaussian", Integrator: "ssprk3", Operator: "diffusion", Smoother: "none",
		Length: 1, Points: 64, Nu: 0.05, Dt: 0.001, Duration: 0.5, SaveEvery: 50, ValidateState: true,
		Gaussian: GaussianConfig{Center: 0.5, Width: 0.1, Amplitude: 1},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
