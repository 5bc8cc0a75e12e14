package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/san-kum/burgers1d/internal/sim"
)

var (
	dataDir    string
	verbose    bool
	profileOut string
	// run / compare / stability / spectrum flags
	configFile  string
	preset      string
	initial     string
	integrator  string
	operatorArg string
	smoother    string
	points      int
	length      float64
	nu          float64
	dt          float64
	duration    float64
	steps       int
	saveEvery   int
	smoothEvery int
	workers     int
	noSave      bool
	// study flags
	resolutions  []int
	dtList       []float64
	temporal     bool
	stabilityDts []float64
	fromRun      string
	normalize    bool
	// bench flags
	benchPoints  []int
	benchSteps   int
	benchWorkers int
)

var profiler interface{ Stop() }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "burgers",
		Short:         "1D viscous Burgers' equation solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				sim.SetLogWriters(os.Stderr, os.Stderr)
			}
			switch strings.ToLower(profileOut) {
			case "":
			case "cpu":
				profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
			case "mem":
				profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
			default:
				return fmt.Errorf("unknown profile mode %q (cpu, mem)", profileOut)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if profiler != nil {
				profiler.Stop()
				profiler = nil
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".burgers", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log simulation diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&profileOut, "profile", "", "write a pprof profile to the working directory (cpu, mem)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run fields to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and fields to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "measure the observed order of accuracy",
		Args:  cobra.NoArgs,
		RunE:  convergenceStudy,
	}
	addRunFlags(convergeCmd)
	convergeCmd.Flags().IntSliceVar(&resolutions, "points-list", []int{16, 32, 64, 128, 256}, "grid sizes for the spatial study")
	convergeCmd.Flags().Float64SliceVar(&dtList, "dt-list", []float64{0.004, 0.002, 0.001}, "step sizes for the temporal study")
	convergeCmd.Flags().BoolVar(&temporal, "temporal", false, "study the time integrator instead of the spatial operator")

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "find the largest stable step size among candidates",
		Args:  cobra.NoArgs,
		RunE:  stabilitySearch,
	}
	addRunFlags(stabilityCmd)
	stabilityCmd.Flags().Float64SliceVar(&stabilityDts, "dt-list", []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05}, "candidate step sizes")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "power spectrum of the final field",
		Args:  cobra.NoArgs,
		RunE:  spectrum,
	}
	addRunFlags(spectrumCmd)
	spectrumCmd.Flags().StringVar(&fromRun, "run", "", "analyze a stored run instead of simulating")
	spectrumCmd.Flags().BoolVar(&normalize, "normalize", false, "scale the field to unit L2 norm first")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput",
		Args:  cobra.NoArgs,
		RunE:  benchmark,
	}
	benchCmd.Flags().IntSliceVar(&benchPoints, "points-list", []int{256, 4096, 65536}, "grid sizes")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 100, "steps per measurement")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 4, "workers for the parallel operator")

	rootCmd.AddCommand(runCmd, listCmd, exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd,
		compareCmd, convergeCmd, stabilityCmd, spectrumCmd, scenarioCmd, benchCmd)

	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&initial, "initial", "sine", "initial condition")
	cmd.Flags().StringVar(&integrator, "integrator", "ssprk3", "time integrator")
	cmd.Flags().StringVar(&operatorArg, "operator", "burgers", "spatial operator")
	cmd.Flags().StringVar(&smoother, "smoother", "binomial", "smoother applied every --smooth-every steps")
	cmd.Flags().IntVar(&points, "points", 16, "grid points")
	cmd.Flags().Float64Var(&length, "length", 1.0, "domain length")
	cmd.Flags().Float64Var(&nu, "nu", 0.01, "viscosity")
	cmd.Flags().Float64Var(&dt, "dt", 0.001, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 0.1, "duration")
	cmd.Flags().IntVar(&steps, "steps", 0, "step count (overrides --time)")
	cmd.Flags().IntVar(&saveEvery, "save-every", 0, "keep every n-th field")
	cmd.Flags().IntVar(&smoothEvery, "smooth-every", 0, "apply the smoother every n steps (0 disables)")
	cmd.Flags().IntVar(&workers, "workers", 0, "workers for the burgers operator")
}
