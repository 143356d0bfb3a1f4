package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/raysim/internal/automation"
	"github.com/san-kum/raysim/internal/experiment"
	"github.com/san-kum/raysim/internal/optim"
	"github.com/san-kum/raysim/internal/storage"
)

var (
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	gridParams   []string
	optMetric    string
	perturbation float64
	trials       int
)

func batchCommands() []*cobra.Command {
	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted sequence of scenes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "run a scene across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sceneFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "rays.count", "parameter ("+strings.Join(experiment.ParamNames(), "|")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 8, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 128, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	optimizeCmd := &cobra.Command{
		Use:   "optimize [scene]",
		Short: "grid search for the smallest value of a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOptimize,
	}
	sceneFlags(optimizeCmd)
	optimizeCmd.Flags().StringArrayVar(&gridParams, "grid", nil, "name=v1,v2,... (repeatable)")
	optimizeCmd.Flags().StringVar(&optMetric, "metric", "energy_drift", "metric to minimize")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scene]",
		Short: "perturb placed particles and count stable trials",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	sceneFlags(monteCarloCmd)
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturb", 1, "max perturbation per coordinate")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")

	return []*cobra.Command{scriptCmd, sweepCmd, optimizeCmd, monteCarloCmd}
}

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := interruptible()
	defer stop()
	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, st, logger())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tSTEPS\tSURVIVORS\tENERGY DRIFT\tRUN ID")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.6f\t%s\n", i+1, r.Scene, r.Steps, r.Survivors, r.Metrics["energy_drift"], r.RunID)
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	ctx, stop := interruptible()
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Scene:     cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, logger())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSURVIVORS\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d", r.ParamValue, r.Survivors)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// parseGrid reads name=v1,v2,... flags into parallel name and value lists.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("--grid %q: want name=v1,v2,...", spec)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("--grid %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(gridParams)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}
	for _, name := range names {
		if _, err := experiment.Apply(cfg, map[string]float64{name: 0}); err != nil {
			return err
		}
	}

	ctx, stop := interruptible()
	defer stop()
	best, err := optim.NewGridSearch(names, ranges).Search(ctx, cfg, optMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", optMetric, best.Value)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best.Params[name])
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	if len(cfg.Particles) == 0 {
		return fmt.Errorf("scene %s has no placed particles to perturb", cfg.Name)
	}

	ctx, stop := interruptible()
	defer stop()
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Scene:        cfg,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         cfg.Seed,
	}, logger())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("stable: %d\n", stable)
	fmt.Printf("unstable: %d\n", unstable)
	return nil
}
