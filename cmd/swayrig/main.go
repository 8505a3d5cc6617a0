package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/logging"
	"github.com/san-kum/swayrig/internal/storage"
	"github.com/san-kum/swayrig/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	fromRun    string
	theme      string
	presets    []string
	tier       string
	stems      int
	segments   int
	windSpeed  float64
	windStr    float64
	maxBend    float64
	stiffness  float64
	swayStiff  float64
	influence  float64
	kickForce  float64
	dt         float64
	duration   float64
	seed       int64
	pointer    string
	kicks      []float64
	ensemble   int
	noSave     bool
	// phase plot axes
	xAxis int
	yAxis int
	// compare
	omega       float64
	compareTime float64
	fpsList     []int
	// tune
	grid      []string
	metric    string
	targetVal float64
	// sweep and monte carlo
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	trials       int
	perturbation float64
	// svg output
	outFile  string
	jsonOut  string
	snapshot float64

	log *zap.Logger
)

// main registers commands and flags and opens the preset picker when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "swayrig",
		Short:        "wind and pointer driven stem rigs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			log, err = logging.New(verbose)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(base)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".swayrig", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addSceneFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&ensemble, "ensemble", 0, "run N seeds concurrently and report mean metrics")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "sway the bouquet in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "", "colour theme: "+strings.Join(viz.ThemeNames(), ", "))

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of every rotation",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "write to this file instead of stdout")

	compareCmd := &cobra.Command{
		Use:   "compare [stepper...]",
		Short: "compare spring steppers across frame rates",
		RunE:  compareSteppers,
	}
	compareCmd.Flags().Float64Var(&omega, "omega", 6, "spring stiffness")
	compareCmd.Flags().Float64Var(&compareTime, "time", 3, "duration")
	compareCmd.Flags().IntSliceVar(&fpsList, "fps", []int{30, 60, 144}, "frame rates")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search rig parameters against a metric",
		Args:  cobra.NoArgs,
		RunE:  tuneParams,
	}
	addSceneFlags(tuneCmd)
	addSimFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "param=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "rms.all", "metric to optimise")
	tuneCmd.Flags().Float64Var(&targetVal, "target", 0, "drive the metric toward this value instead of minimising it")

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := config.ListGroups()
			if len(args) == 1 {
				groups = args
			}
			for _, g := range groups {
				names := config.ListPresets(g)
				if len(names) == 0 {
					return fmt.Errorf("unknown preset group: %s (available: %v)", g, config.ListGroups())
				}
				fmt.Printf("%s: %s\n", g, strings.Join(names, ", "))
			}
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addSceneFlags(scenarioCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report tip peak and saturation",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSceneFlags(sweepCmd)
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "stem.max_bend", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.05, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.3, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "check the bend clamp under randomised parameters",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addSceneFlags(monteCarloCmd)
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.5, "relative parameter jitter")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the bouquet at a point in time to SVG",
		Args:  cobra.NoArgs,
		RunE:  renderSnapshot,
	}
	addSceneFlags(snapshotCmd)
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().Float64Var(&snapshot, "at", 2, "scene time to capture")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "bouquet.svg", "output file")

	traceCmd := &cobra.Command{
		Use:   "trace [run_id]",
		Short: "write a phase trace of a stored run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderTrace,
	}
	traceCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	traceCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	traceCmd.Flags().StringVarP(&outFile, "out", "o", "trace.svg", "output file")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportJSONCmd, compareCmd, tuneCmd, presetsCmd,
		scenarioCmd, sweepCmd, monteCarloCmd, snapshotCmd, traceCmd)

	err := rootCmd.Execute()
	if log != nil {
		_ = log.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&fromRun, "from", "", "start from the config of a stored run")
	f.StringSliceVar(&presets, "preset", nil, "group/name presets applied in order")
	f.StringVar(&tier, "tier", "medium", "performance tier: low, medium or high")
	f.IntVar(&stems, "stems", config.DefaultStems, "number of stems")
	f.IntVar(&segments, "segments", 3, "segments per stem")
	f.Float64Var(&windSpeed, "wind-speed", 0.8, "wind clock rate")
	f.Float64Var(&windStr, "wind-strength", 0.04, "wind amplitude")
	f.Float64Var(&maxBend, "max-bend", 0.15, "total stem bend limit (rad)")
	f.Float64Var(&stiffness, "stiffness", 6, "stem base stiffness")
	f.Float64Var(&swayStiff, "sway-stiffness", 4, "root sway stiffness")
	f.Float64Var(&influence, "pointer-influence", 0.05, "root tilt per unit pointer")
	f.Float64Var(&kickForce, "kick-force", 2, "kick impulse")
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", config.DefaultDt, "frame delta")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.Int64Var(&seed, "seed", 0, "random seed for the jitter pointer")
	f.StringVar(&pointer, "pointer", "still", "pointer path: still, orbit or jitter")
	f.Float64SliceVar(&kicks, "kick", nil, "kick times in seconds")
}

// buildConfig layers defaults (or a stored run's config), the config file,
// presets and finally any flag the user actually set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if fromRun != "" {
		stored, err := storage.New(dataDir).LoadConfig(fromRun)
		if err != nil {
			return nil, fmt.Errorf("failed to load run %s: %w", fromRun, err)
		}
		cfg = stored
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	for _, p := range presets {
		group, name, ok := strings.Cut(p, "/")
		if !ok || !config.Apply(cfg, group, name) {
			return nil, fmt.Errorf("unknown preset: %s (groups: %v)", p, config.ListGroups())
		}
		if cfg.Name == "" {
			cfg.Name = p
		} else {
			cfg.Name += "+" + p
		}
	}

	f := cmd.Flags()
	if f.Changed("tier") {
		segs, ok := config.TierSegments[tier]
		if !ok {
			return nil, fmt.Errorf("unknown tier: %s", tier)
		}
		cfg.Tier, cfg.Stem.Segments = tier, segs
	}
	if f.Changed("stems") {
		cfg.Stems = stems
	}
	if f.Changed("segments") {
		cfg.Stem.Segments = segments
	}
	if f.Changed("wind-speed") {
		cfg.Wind.Speed = windSpeed
	}
	if f.Changed("wind-strength") {
		cfg.Wind.Strength = windStr
	}
	if f.Changed("max-bend") {
		cfg.Stem.MaxBend = maxBend
	}
	if f.Changed("stiffness") {
		cfg.Stem.BaseStiffness = stiffness
	}
	if f.Changed("sway-stiffness") {
		cfg.Sway.Stiffness = swayStiff
	}
	if f.Changed("pointer-influence") {
		cfg.Sway.PointerInfluence = influence
	}
	if f.Changed("kick-force") {
		cfg.Sway.KickForce = kickForce
	}
	if f.Lookup("dt") != nil {
		if f.Changed("dt") {
			cfg.Sim.Dt = dt
		}
		if f.Changed("time") {
			cfg.Sim.Duration = duration
		}
		if f.Changed("seed") {
			cfg.Sim.Seed = seed
		}
		if f.Changed("pointer") {
			cfg.Pointer.Path = pointer
		}
		if f.Changed("kick") {
			cfg.Sim.Kicks = kicks
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
