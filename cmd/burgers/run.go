package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/burgers1d/internal/config"
	"github.com/san-kum/burgers1d/internal/experiment"
	"github.com/san-kum/burgers1d/internal/storage"
)

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("initial") {
		cfg.Initial = initial
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("operator") {
		cfg.Operator = operatorArg
	}
	if flags.Changed("smoother") {
		cfg.Smoother = smoother
	}
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("nu") {
		cfg.Nu = nu
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
		cfg.Steps = 0
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("save-every") {
		cfg.SaveEvery = saveEvery
	}
	if flags.Changed("smooth-every") {
		cfg.SmoothEvery = smoothEvery
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, nil)
	if err := exp.Setup(); err != nil {
		return err
	}

	printHeader(fmt.Sprintf("running %s", cfg.Name),
		fmt.Sprintf("%s | %s | %s | N=%d nu=%g dt=%g", cfg.Initial, cfg.Operator, cfg.Integrator, cfg.Points, cfg.Nu, cfg.Dt))
	start := time.Now()

	result, err := exp.Run(contextOrBackground(cmd))
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d  t=%.4f  %s\n", result.StepsTaken, result.FinalTime(), stableLabel(result.Unstable))
	for _, e := range result.Errors {
		fmt.Println(warnStyle.Render("  " + e.Error()))
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printMetrics(result.Metrics)
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %-14s %.6g\n", name, metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINITIAL\tOP\tINTEG\tN\tNU\tDT\tSTEPS\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Unstable {
			status = "unstable"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%g\t%g\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Initial,
			run.Operator,
			run.Integrator,
			run.Points,
			run.Nu,
			run.Dt,
			run.StepsTaken,
			status,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	printHeader("presets", "")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tINITIAL\tOP\tSMOOTHER\tN\tNU\tDT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%g\t%g\n", name, p.Initial, p.Operator, p.Smoother, p.Points, p.Nu, p.Dt)
	}
	return w.Flush()
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
