package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/raysim/internal/analysis"
	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/experiment"
	"github.com/san-kum/raysim/internal/export"
	"github.com/san-kum/raysim/internal/metrics"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/sim"
	"github.com/san-kum/raysim/internal/storage"
	"github.com/san-kum/raysim/internal/telemetry"
	"github.com/san-kum/raysim/internal/viz"
	"github.com/san-kum/raysim/internal/world"
)

func simulate(cfg *config.Config, log *slog.Logger) (*experiment.Outcome, error) {
	ctx, stop := interruptible()
	defer stop()
	return experiment.New(cfg, log).Run(ctx)
}

func runScene(cmd *cobra.Command, args []string) (*experiment.Outcome, error) {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return nil, err
	}
	return simulate(cfg, logger())
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	log := logger()

	if numRuns > 1 {
		return runEnsemble(cfg, log)
	}

	fmt.Printf("running %s simulation...\n", cfg.Name)
	start := time.Now()
	out, err := simulate(cfg, log)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", out.Result.Steps)
	fmt.Printf("particles: %d (%d removed)\n", len(out.Result.Particles), out.Result.Removed)
	fmt.Printf("rays: %d\n", len(out.Result.Rays))
	fmt.Println("\nmetrics:")
	printMetrics(out.Result.Metrics)

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, out.Result, out.Recorder)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runEnsemble(cfg *config.Config, log *slog.Logger) error {
	build := func(seed int64) (*world.World, error) {
		c := cfg.Clone()
		c.Seed = seed
		return c.BuildWorld(log)
	}
	ens := sim.NewEnsemble(build, metrics.All, numRuns, cfg.Seed)

	fmt.Printf("running %d x %s...\n", numRuns, cfg.Name)
	start := time.Now()
	ctx, stop := interruptible()
	defer stop()
	results, err := ens.Run(ctx, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	mean := make(map[string]float64)
	for name := range results[0].Metrics {
		mean[name] = sim.Mean(results, name)
	}
	fmt.Println("\nmean metrics:")
	printMetrics(mean)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tSURVIVORS\tREMOVED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Survivors,
			run.Removed,
		)
	}
	return w.Flush()
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tWORLD\tBOUNDARY\tPARTICLES\tFORCES\tMIRRORS")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0fx%.0f\t%s\t%d\t%d\t%d\n",
			name, c.World.Width, c.World.Height, c.World.Boundary,
			len(c.Particles)+c.Random.Count, len(c.Forces), len(c.Mirrors))
	}
	return w.Flush()
}

// storedSeries returns the saved telemetry of a run when name is a run id
// rather than a scene.
func storedSeries(args []string) (map[physics.ID]map[string][]float64, bool, error) {
	if len(args) == 0 || configFile != "" || config.GetPreset(args[0]) != nil {
		return nil, false, nil
	}
	st := storage.New(dataDir)
	if _, err := st.Load(args[0]); err != nil {
		return nil, false, nil
	}
	series, err := st.LoadSeries(args[0])
	return series, true, err
}

func plotEntity(cmd *cobra.Command, args []string) error {
	series, stored, err := storedSeries(args)
	if err != nil {
		return err
	}
	if stored {
		ids := make([]physics.ID, 0, len(series))
		for id := range series {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		if entity < 0 || entity >= len(ids) {
			return fmt.Errorf("entity %d out of range (run has %d)", entity, len(ids))
		}
		fmt.Printf("run: %s\n", args[0])
		plotAll(os.Stdout, ids[entity].String(), series[ids[entity]])
		return nil
	}

	out, err := runScene(cmd, args)
	if err != nil {
		return err
	}
	id, err := out.Pick(entity)
	if err != nil {
		return err
	}
	fmt.Printf("scene: %s\n", out.Config.Name)
	byName := make(map[string][]float64)
	for _, name := range out.Recorder.Names(id) {
		byName[name] = out.Recorder.Series(id, name)
	}
	plotAll(os.Stdout, out.Entities[entity].String(), byName)
	return nil
}

func plotAll(w io.Writer, title string, series map[string][]float64) {
	names := make([]string, 0, len(series))
	for name := range series {
		if name != "t" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fmt.Fprintf(w, "entity: %s\n\n", title)
	for _, name := range names {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}
}

// output opens outFile, or stdout when it is empty.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func writeOut(write func(io.Writer) error) error {
	f, err := output()
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outFile)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	out, err := runScene(cmd, args)
	if err != nil {
		return err
	}
	id, err := out.Pick(entity)
	if err != nil {
		return err
	}
	return writeOut(func(w io.Writer) error {
		return export.WriteCSV(w, out.Recorder, id)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	out, err := runScene(cmd, args)
	if err != nil {
		return err
	}
	return writeOut(func(w io.Writer) error {
		return export.WriteJSON(w, export.NewRunData(out.Config, out.Result, out.Recorder))
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	out, err := runScene(cmd, args)
	if err != nil {
		return err
	}

	theme := viz.CurrentTheme
	var svg string
	switch strings.ToLower(svgKind) {
	case "world":
		svg = export.WorldToSVG(out.World, svgWidth, theme)
	case "trajectory":
		id, err := out.Pick(entity)
		if err != nil {
			return err
		}
		svg = export.TrajectoryToSVG(export.Trajectory(out.Recorder, id), svgWidth, svgWidth*3/4, string(theme.Particle))
		if svg == "" {
			return fmt.Errorf("entity %d has no trajectory", entity)
		}
	case "canvas":
		cols := max(20, svgWidth/8)
		rows := max(8, int(float64(cols)*out.World.Height()/out.World.Width()/2))
		svg = export.CanvasToSVG(viz.Snapshot(out.World, cols, rows), 4, theme)
	default:
		return fmt.Errorf("unknown svg kind: %s (world|trajectory|canvas)", svgKind)
	}

	return writeOut(func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

func analyzeEntity(cmd *cobra.Command, args []string) error {
	out, err := runScene(cmd, args)
	if err != nil {
		return err
	}
	id, err := out.Pick(entity)
	if err != nil {
		return err
	}

	pos, vel, cross := "x", "vx", "y"
	if out.Entities[entity].Kind == telemetry.KindWorld {
		pos, vel, cross = "E", "px", "py"
	}
	xs := out.Recorder.Series(id, pos)
	vs := out.Recorder.Series(id, vel)

	fmt.Printf("scene: %s\n", out.Config.Name)
	fmt.Printf("entity: %s\n", out.Entities[entity])
	fmt.Printf("samples: %d\n\n", len(xs))

	freq, err := analysis.DominantFrequency(xs, out.Config.Dt)
	if err != nil {
		fmt.Printf("dominant frequency of %s: %v\n", pos, err)
	} else {
		fmt.Printf("dominant frequency of %s: %.4f Hz", pos, freq)
		if freq > 0 {
			fmt.Printf(" (period %.4fs)", 1/freq)
		}
		fmt.Println()
	}

	fmt.Printf("\nphase portrait (%s vs %s):\n", pos, vel)
	fmt.Print(analysis.NewPhasePortrait(xs, vs).ASCII(60, 20))

	section := analysis.PoincareSection(out.Recorder.Series(id, cross), xs, vs, 0)
	fmt.Printf("\npoincare section at %s = 0: %d crossings\n", cross, len(section.Points))
	if len(section.Points) > 1 {
		fmt.Print(section.ASCII(60, 12))
	}
	return nil
}
