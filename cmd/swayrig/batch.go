package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/swayrig/internal/analysis"
	"github.com/san-kum/swayrig/internal/automation"
	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/experiment"
	"github.com/san-kum/swayrig/internal/export"
	"github.com/san-kum/swayrig/internal/storage"
	"github.com/san-kum/swayrig/internal/viz"
)

func runScenario(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(ctx, scenario, base, st, log)
	for i, r := range results {
		fmt.Printf("%d. %-20s steps=%d kicks=%d rms=%.5f %s\n", i+1, r.Name,
			r.Result.StepsTaken, r.Result.Kicks, r.Result.Metrics["rms.all"], r.RunID)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Param: sweepParam, Min: sweepMin, Max: sweepMax, NumSteps: sweepSteps,
	}, base, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tTIP PEAK\tRMS\tSATURATION\n", sweepParam)
	for _, r := range res {
		fmt.Fprintf(w, "%.4f\t%.5f\t%.5f\t%.1f%%\n", r.ParamValue, r.TipPeak, r.RMS, r.Saturation*100)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	quiet := log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Perturbation: perturbation, NumTrials: trials, Seed: base.Sim.Seed,
	}, base, quiet)
	if err != nil {
		return err
	}

	bounded, violated, failed := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d  bounded: %d  violated: %d  invalid: %d\n", len(results), bounded, violated, failed)
	if violated > 0 {
		return fmt.Errorf("bend clamp violated in %d trials", violated)
	}
	return nil
}

// renderSnapshot steps a scene to the requested time with the configured
// pointer path and writes the projected bouquet as SVG.
func renderSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, log)
	if err != nil {
		return err
	}
	if snapshot > 0 {
		simCfg := cfg.SimConfig()
		simCfg.Duration = snapshot
		keepGoing := func(dynamo.State, dynamo.Control, float64) bool { return true }
		if err := exp.GetSimulator().RunWithCallback(cmd.Context(), simCfg, keepGoing); err != nil {
			return err
		}
	}
	sc := exp.Scene()

	canvas := viz.NewCanvas(64, 24)
	viz.Render3D(canvas, viz.BouquetWireframe(sc, 0.45), viz.NewCamera())
	svg := export.CanvasToSVG(canvas, 6, string(viz.CurrentTheme.Stem))
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	log.Info("snapshot written", zap.String("file", outFile), zap.Float64("time", sc.Time()), zap.Int("frames", sc.Frames()))
	return nil
}

func renderTrace(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	portrait := analysis.NewPhasePortrait(states, xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("axis out of range: run has %d components", len(states[0]))
	}

	svg := export.TrajectoryToSVG(portrait.Points, 600, 400, string(viz.CurrentTheme.Bloom))
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to trace", meta.ID)
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	log.Info("trace written", zap.String("file", outFile), zap.String("x", label(meta, xAxis)), zap.String("y", label(meta, yAxis)))
	return nil
}
