package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/gui"
	"github.com/san-kum/raysim/internal/logging"
	"github.com/san-kum/raysim/internal/optics"
	"github.com/san-kum/raysim/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	dt         float64
	duration   float64
	rayCount   int
	boundary   string
	seed       int64
	workers    int
	particles  []string
	numRuns    int
	save       bool
	entity     int
	outFile    string
	svgKind    string
	svgWidth   int
	themeName  string
)

func logger() *slog.Logger {
	if level, ok := logging.ParseLevel(logLevel); ok {
		return logging.New(os.Stderr, level)
	}
	return logging.FromEnv(slog.LevelWarn)
}

// sceneFlags registers the flags that override a scene's configuration.
func sceneFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.IntVar(&rayCount, "rays", optics.DefaultRayCount, "rays emitted per particle")
	f.StringVar(&boundary, "boundary", "remove", "boundary policy (wrap|remove)")
	f.Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	f.IntVar(&workers, "workers", 1, "ray tracing workers")
	f.StringArrayVar(&particles, "particle", nil, "extra particle x,y,vx,vy[,mass] (repeatable)")
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "raysim",
		Short:        "2d particle and ray optics sandbox",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(logger())
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".raysim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if themeName != "" {
			viz.SetTheme(themeName)
		}
	}

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	sceneFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [scene]",
		Short: "run a scene in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	sceneFlags(guiCmd)

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and print metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	sceneFlags(runCmd)
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "ensemble size; seeds count up from --seed")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes",
		Args:  cobra.NoArgs,
		RunE:  listScenes,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [scene|run_id]",
		Short: "plot an entity's telemetry",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotEntity,
	}
	sceneFlags(plotCmd)
	plotCmd.Flags().IntVar(&entity, "entity", 1, "entity index (0 is the world)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [scene]",
		Short: "export an entity's telemetry to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	sceneFlags(exportCSVCmd)
	exportCSVCmd.Flags().IntVar(&entity, "entity", 1, "entity index (0 is the world)")
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [scene]",
		Short: "export a run and its telemetry to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	sceneFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [scene]",
		Short: "export the final state as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	sceneFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVar(&svgKind, "kind", "world", "world|trajectory|canvas")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&entity, "entity", 1, "entity index for trajectories")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [scene]",
		Short: "frequency and phase analysis of an entity",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeEntity,
	}
	sceneFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&entity, "entity", 1, "entity index (0 is the world)")

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, runsCmd, scenesCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd)
	rootCmd.AddCommand(batchCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	log := logger()
	w, err := cfg.BuildWorld(log)
	if err != nil {
		return err
	}
	return viz.RunLive(w, cfg.Dt, cfg.Name, log)
}

func runGUI(cmd *cobra.Command, args []string) error {
	log := logger()
	if len(args) == 0 && configFile == "" {
		gui.RunInteractive(log)
		return nil
	}
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	w, err := cfg.BuildWorld(log)
	if err != nil {
		return err
	}
	gui.Run(w, cfg.Dt, cfg.Name, log)
	return nil
}
