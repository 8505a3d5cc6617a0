package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/swayrig/internal/analysis"
	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/experiment"
	"github.com/san-kum/swayrig/internal/integrators"
	"github.com/san-kum/swayrig/internal/optim"
	"github.com/san-kum/swayrig/internal/scene"
	"github.com/san-kum/swayrig/internal/sim"
	"github.com/san-kum/swayrig/internal/storage"
	"github.com/san-kum/swayrig/internal/viz"
)

// rigStepper names the integration scheme the rigs use.
const rigStepper = "analytic"

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if ensemble > 0 {
		return runEnsemble(ctx, cfg)
	}

	exp, err := experiment.New(cfg, log)
	if err != nil {
		return err
	}

	log.Info("running simulation",
		zap.String("name", cfg.Name),
		zap.Int("stems", cfg.Stems),
		zap.Int("segments", cfg.Stem.Segments),
		zap.Float64("duration", cfg.Sim.Duration))
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("kicks: %d\n", result.Kicks)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, rigStepper, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printMetrics(result.Metrics)
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	build := func(s int64) (*sim.Simulator, error) {
		c := cfg.Clone()
		c.Sim.Seed = s
		exp, err := experiment.New(c, log.With(zap.Int64("seed", s)))
		if err != nil {
			return nil, err
		}
		return exp.GetSimulator(), nil
	}

	log.Info("running ensemble", zap.Int("members", ensemble), zap.Int64("first_seed", cfg.Sim.Seed))
	start := time.Now()
	results, err := sim.NewEnsemble(build, ensemble, cfg.Sim.Seed).Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}

	fmt.Printf("%d runs completed in %v\n", len(results), time.Since(start))
	printMetrics(sim.MeanMetrics(results))
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := scene.New(cfg.SceneOptions())
	if err != nil {
		return err
	}
	if theme != "" {
		if !slices.Contains(viz.ThemeNames(), theme) {
			return fmt.Errorf("unknown theme: %s", theme)
		}
		viz.SetTheme(theme)
	}
	log.Debug("starting live view", zap.Int("stems", cfg.Stems), zap.String("tier", cfg.Tier))
	return viz.Run(sc, cfg)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEMS\tDURATION\tDT\tKICKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stems,
			run.Duration,
			run.Dt,
			run.Kicks,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, [][]float64, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(states) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, states, times, nil
}

func label(meta *storage.RunMetadata, idx int) string {
	if idx < len(meta.Labels) {
		return meta.Labels[idx]
	}
	return fmt.Sprintf("x%d", idx)
}

func column(states [][]float64, idx int) []float64 {
	data := make([]float64, len(states))
	for i := range states {
		if idx < len(states[i]) {
			data[i] = states[i][idx]
		}
	}
	return data
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := min(len(states[0]), 8)
	for idx := 0; idx < numVars; idx++ {
		graph := asciigraph.Plot(column(states, idx),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(label(meta, idx)+" (rad)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tFREQ (Hz)\tCROSSINGS\tPEAK")
	for idx := range states[0] {
		data := column(states, idx)
		peak := 0.0
		for _, v := range data {
			peak = max(peak, v, -v)
		}
		fmt.Fprintf(w, "%s\t%.3f\t%d\t%.5f\n",
			label(meta, idx),
			analysis.DominantFrequency(data, meta.Dt),
			analysis.Crossings(data),
			peak,
		)
	}
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	portrait := analysis.NewPhasePortrait(states, xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("axis out of range: run has %d components", len(states[0]))
	}

	fmt.Printf("%s vs %s\n\n", label(meta, yAxis), label(meta, xAxis))
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 24))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, states, times, err := loadRun(args[0])
	if err != nil {
		return err
	}

	result := &dynamo.Result{
		Labels:  meta.Labels,
		States:  make([]dynamo.State, len(states)),
		Times:   times,
		Metrics: meta.Metrics,
		Kicks:   meta.Kicks,
	}
	for i, s := range states {
		result.States[i] = s
	}

	data := storage.NewExportData(meta.Name, meta.Stepper, meta.Dt, meta.Duration, result)
	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, data); err != nil {
			return err
		}
		log.Info("export written", zap.String("file", jsonOut), zap.String("run", meta.ID))
		return nil
	}
	return storage.WriteJSON(os.Stdout, data)
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"STEPPER"}
	for _, fps := range fpsList {
		header = append(header, fmt.Sprintf("%d FPS", fps))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, name := range names {
		row := []string{name}
		for _, fps := range fpsList {
			if fps <= 0 {
				return fmt.Errorf("invalid frame rate: %d", fps)
			}
			s, ok := integrators.ByName(name)
			if !ok {
				return fmt.Errorf("unknown stepper: %s (available: %v)", name, integrators.Names())
			}
			maxErr, _ := integrators.StepResponse(s, omega, 1/float64(fps), compareTime)
			row = append(row, fmt.Sprintf("%.2e", maxErr))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	fmt.Fprintf(w, "\nmax deviation from the closed-form step response, ω=%.1f over %.1fs\n", omega, compareTime)
	return w.Flush()
}

func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, e := range entries {
		name, list, ok := strings.Cut(e, "=")
		if !ok || list == "" {
			return nil, nil, fmt.Errorf("grid entry %q: want param=v1,v2", e)
		}
		vals := make([]float64, 0)
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid entry %q: %w", e, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func tuneParams(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("at least one --grid entry is required (params: %s)", strings.Join(paramNames(cfg), ", "))
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}

	objective := optim.Minimize(metric)
	if cmd.Flags().Changed("target") {
		objective = optim.Target(metric, targetVal)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	quiet := log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	gs := optim.NewGridSearch(names, ranges)
	log.Info("tuning", zap.Strings("params", names), zap.Int("points", len(gs.Points())), zap.String("metric", metric))

	best, score, err := gs.Search(ctx, func(p map[string]float64) (*experiment.Experiment, error) {
		return experiment.WithParams(cfg, p, quiet)
	}, objective)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no grid point produced metric %q", metric)
	}

	fmt.Printf("best score: %.6f\n", score)
	for _, n := range names {
		fmt.Printf("  %s = %g\n", n, best[n])
	}
	return nil
}

func paramNames(cfg *config.Config) []string {
	names := make([]string, 0)
	for k := range cfg.GetParams() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
