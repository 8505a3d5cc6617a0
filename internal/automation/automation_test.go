package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/logging"
	"github.com/san-kum/swayrig/internal/storage"
)

const scenarioYAML = `
name: reveal-check
description: settle, then bounce a gusty bouquet
steps:
  - name: settle
    duration: 1
  - name: gusty-bounce
    presets: [wind/gusty, tier/high]
    params:
      stem.max_bend: 0.2
    stems: 2
    duration: 2
    kicks: [1]
    save: true
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(sc.Steps))
	}

	st := storage.New(t.TempDir())
	results, err := RunScenario(context.Background(), sc, config.DefaultConfig(), st, logging.Nop())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].RunID != "" {
		t.Error("unsaved step should have no run id")
	}
	if results[1].RunID == "" {
		t.Fatal("saved step should have a run id")
	}
	if results[1].Result.Kicks != 1 {
		t.Errorf("expected 1 kick, got %d", results[1].Result.Kicks)
	}

	meta, err := st.Load(results[1].RunID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Stems != 2 || meta.Tier != "high" {
		t.Errorf("step overrides lost: %+v", meta)
	}
}

func TestStepConfigRejectsUnknownPreset(t *testing.T) {
	step := ScenarioStep{Presets: []string{"wind/tornado"}}
	if _, err := step.Config(config.DefaultConfig()); err == nil {
		t.Error("expected error")
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Sim.Duration = 2
	base.Wind.Strength = 0.2

	res, err := RunSweep(context.Background(), &ParameterSweep{Param: "stem.max_bend", Min: 0.03, Max: 0.3, NumSteps: 3}, base, logging.Nop())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 points, got %d", len(res))
	}
	for _, r := range res {
		limit := r.ParamValue / 3
		if r.TipPeak > limit+1e-12 {
			t.Errorf("max_bend %v: tip peak %v over per-segment limit %v", r.ParamValue, r.TipPeak, limit)
		}
	}
	if res[0].TipPeak >= res[2].TipPeak {
		t.Errorf("tip peak should grow with max bend: %v vs %v", res[0].TipPeak, res[2].TipPeak)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	base := config.DefaultConfig()
	base.Sim.Duration = 1

	results, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{Perturbation: 0.5, NumTrials: 8, Seed: 3}, base, logging.Nop())
	if err != nil {
		t.Fatalf("monte carlo: %v", err)
	}
	bounded, violated, failed := MonteCarloStats(results)
	if bounded+violated+failed != 8 {
		t.Fatalf("stats do not add up: %d %d %d", bounded, violated, failed)
	}
	if violated != 0 {
		t.Errorf("clamp violated in %d trials", violated)
	}
}
