package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/burgers1d/internal/analysis"
	"github.com/san-kum/burgers1d/internal/automation"
	"github.com/san-kum/burgers1d/internal/experiment"
	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/grid"
	"github.com/san-kum/burgers1d/internal/integrators"
	"github.com/san-kum/burgers1d/internal/operator"
	"github.com/san-kum/burgers1d/internal/optim"
	"github.com/san-kum/burgers1d/internal/storage"
)

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	printHeader("comparing integrators",
		fmt.Sprintf("%s | N=%d nu=%g dt=%g t=%g", base.Initial, base.Points, base.Nu, base.Dt, base.Duration))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tMAX|U|\tENERGY_GROWTH\tTV_GROWTH\tTIME_MS\tSTATUS")

	for _, name := range args {
		cfg := base.Clone()
		cfg.Integrator = name

		exp := experiment.New(cfg, nil)
		if err := exp.Setup(); err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(contextOrBackground(cmd))
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.3e\t%.2f\t%s\n",
			name,
			result.Final().MaxAbs(),
			result.Metrics["energy_growth"],
			result.Metrics["tv_growth"],
			float64(elapsed.Microseconds())/1000,
			stableLabel(result.Unstable),
		)
	}

	return w.Flush()
}

func convergenceStudy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var st *analysis.Study
	if temporal {
		registry := experiment.NewRegistry()
		integ, err := registry.GetIntegrator(cfg.Integrator)
		if err != nil {
			return err
		}
		op, err := registry.GetOperator(cfg.Operator, cfg.Workers)
		if err != nil {
			return err
		}
		exp := experiment.New(cfg, registry)
		if err := exp.Setup(); err != nil {
			return err
		}
		st, err = analysis.TemporalStudy(integ, op, exp.InitialField(), cfg.Params(), cfg.Duration, dtList, 4)
		if err != nil {
			return err
		}
	} else {
		st, err = analysis.SpatialStudy(resolutions, cfg.Nu)
		if err != nil {
			return err
		}
	}

	printHeader("convergence study", st.Title)
	printStudy(st)
	return nil
}

func printStudy(st *analysis.Study) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tH\tL2\tMAX\tORDER")
	orders := analysis.ObservedOrders(st.Dx, st.L2)
	for i := range st.Points {
		order := "-"
		if i > 0 && !math.IsNaN(orders[i-1]) {
			order = fmt.Sprintf("%.3f", orders[i-1])
		}
		fmt.Fprintf(w, "%d\t%.3e\t%.3e\t%.3e\t%s\n", st.Points[i], st.Dx[i], st.L2[i], st.Max[i], order)
	}
	w.Flush()

	if p, err := st.L2Order(); err == nil {
		fmt.Printf("\nfitted L2 order: %s\n", okStyle.Render(fmt.Sprintf("%.3f", p)))
	}
	if p, err := st.MaxOrder(); err == nil {
		fmt.Printf("fitted max order: %.3f\n", p)
	}
}

func stabilitySearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	printHeader("stable step search",
		fmt.Sprintf("%s | %s | N=%d nu=%g", cfg.Initial, cfg.Integrator, cfg.Points, cfg.Nu))

	best, trials, err := optim.StableStepSearch(contextOrBackground(cmd), cfg, stabilityDts)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tDIFFUSION_NO\tSTEPS\tENERGY_GROWTH\tSTATUS")
	for _, tr := range trials {
		fmt.Fprintf(w, "%g\t%.4f\t%d\t%.4g\t%s\n", tr.Dt, tr.DiffusionNumber, tr.StepsTaken, tr.EnergyGrowth, stableLabel(!tr.Stable))
	}
	w.Flush()

	if err != nil {
		return err
	}

	fmt.Printf("\nlargest stable dt: %s\n", okStyle.Render(fmt.Sprintf("%g", best)))
	if suggested, err := optim.SuggestDt(cfg, 0.5); err == nil {
		fmt.Printf("cfl-based estimate (cfl=0.5): %g\n", suggested)
	}
	return nil
}

func spectrum(cmd *cobra.Command, args []string) error {
	var u []float64
	var title string

	if fromRun != "" {
		fields, _, err := storage.New(dataDir).LoadFields(fromRun)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return fmt.Errorf("no data")
		}
		u = fields[len(fields)-1]
		title = fromRun
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		exp := experiment.New(cfg, nil)
		if err := exp.Setup(); err != nil {
			return err
		}
		result, err := exp.Run(contextOrBackground(cmd))
		if err != nil {
			return err
		}
		u = result.Final()
		title = cfg.Name
	}

	if !field.Field(u).IsValid() {
		return fmt.Errorf("final field is not finite: %w", field.ErrInvalidState)
	}

	printHeader("power spectrum", title)
	ps := analysis.PowerSpectrum(u)
	if normalize {
		var err error
		if ps, err = analysis.UnitSpectrum(u); err != nil {
			return err
		}
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "K\t|U_K|")
	for k, v := range ps {
		fmt.Fprintf(w, "%d\t%.6e\n", k, v)
	}
	w.Flush()

	k, amp := analysis.DominantMode(u)
	fmt.Printf("\ndominant mode: k=%d amplitude=%.6g\n", k, amp)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	printHeader(sc.Name, sc.Description)
	results, err := automation.RunScenario(contextOrBackground(cmd), sc, experiment.NewRegistry(), st, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSTEPS\tMAX|U|\tENERGY\tSTATUS\tRUN")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.6g\t%s\t%s\n",
			r.Name, r.Result.StepsTaken, r.Result.Final().MaxAbs(), r.Result.Metrics["energy"],
			stableLabel(r.Result.Unstable), runID)
	}
	return w.Flush()
}

func benchmark(cmd *cobra.Command, args []string) error {
	printHeader("benchmarking ssprk3 steps", fmt.Sprintf("%d steps per size", benchSteps))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tOPERATOR\tTIME\tSTEPS/SEC")

	integ := integrators.NewSSPRK3()
	ops := []operator.Operator{operator.NewBurgers(), operator.NewParallelBurgers(benchWorkers)}
	labels := []string{"serial", fmt.Sprintf("parallel x%d", benchWorkers)}

	for _, n := range benchPoints {
		x, dx, err := grid.Uniform(1, n)
		if err != nil {
			return err
		}
		u0 := grid.Sine(x)
		p := field.Params{Dx: dx, Nu: 0.01}
		stepDt := operator.StableDt(u0, p, 0.5)

		for i, op := range ops {
			u := u0
			start := time.Now()
			for s := 0; s < benchSteps; s++ {
				u = integ.Step(op, u, stepDt, p)
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%s\t%v\t%.0f\n", n, labels[i], elapsed, float64(benchSteps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
