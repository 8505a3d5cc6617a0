package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/experiment"
	"github.com/san-kum/swayrig/internal/storage"
)

// Scenario is a scripted sequence of runs sharing one base configuration.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep layers presets and parameter overrides on the base config.
// Zero fields keep the base value.
type ScenarioStep struct {
	Name     string             `yaml:"name"`
	Presets  []string           `yaml:"presets"`
	Params   map[string]float64 `yaml:"params"`
	Stems    int                `yaml:"stems"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Seed     int64              `yaml:"seed"`
	Pointer  string             `yaml:"pointer"`
	Kicks    []float64          `yaml:"kicks"`
	Save     bool               `yaml:"save"`
}

type StepResult struct {
	Name   string
	RunID  string
	Result *dynamo.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &scenario, nil
}

// Config resolves the step against base without modifying it.
func (s ScenarioStep) Config(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	for _, p := range s.Presets {
		group, name, ok := strings.Cut(p, "/")
		if !ok || !config.Apply(cfg, group, name) {
			return nil, fmt.Errorf("unknown preset %q", p)
		}
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	if s.Stems > 0 {
		cfg.Stems = s.Stems
	}
	if s.Duration > 0 {
		cfg.Sim.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Sim.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Sim.Seed = s.Seed
	}
	if s.Pointer != "" {
		cfg.Pointer.Path = s.Pointer
	}
	if s.Kicks != nil {
		cfg.Sim.Kicks = append([]float64(nil), s.Kicks...)
	}
	if s.Name != "" {
		cfg.Name = s.Name
	}
	return cfg, cfg.Validate()
}

// RunScenario executes every step in order. Steps marked save are stored
// when st is non-nil. Results gathered before a failure are returned.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, st *storage.Store, log *zap.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("scenario step", zap.String("scenario", scenario.Name), zap.Int("step", i+1), zap.Int("of", len(scenario.Steps)), zap.String("name", step.Name))

		cfg, err := step.Config(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.New(cfg, log)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: step.Name, Result: result}
		if step.Save && st != nil {
			if sr.RunID, err = st.Save(cfg, "analytic", result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep varies one tunable parameter linearly between Min and Max.
type ParameterSweep struct {
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

type SweepResult struct {
	ParamValue float64
	TipPeak    float64
	RMS        float64
	Saturation float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config, log *zap.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d: %w", sweep.NumSteps, dynamo.ErrParameterBounds)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.Min + float64(i)*paramStep
		exp, err := experiment.WithParams(base, map[string]float64{sweep.Param: val}, log)
		if err != nil {
			return results, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue: val,
			TipPeak:    tipPeak(result),
			RMS:        result.Metrics["rms.all"],
			Saturation: result.Metrics["saturation"],
		})
		log.Debug("sweep point", zap.String("param", sweep.Param), zap.Float64("value", val))
	}

	return results, nil
}

// tipPeak is the largest peak over every tip segment in the run.
func tipPeak(r *dynamo.Result) float64 {
	last := map[string]string{}
	for _, l := range r.Labels {
		stem, _, ok := strings.Cut(l, ".seg")
		if ok && strings.HasSuffix(l, ".x") {
			if l > last[stem] {
				last[stem] = l
			}
		}
	}
	peak := 0.0
	for _, l := range last {
		peak = math.Max(peak, r.Metrics["peak."+l])
	}
	return peak
}

// MonteCarloConfig perturbs every tunable parameter by up to Perturbation
// times its base value per trial.
type MonteCarloConfig struct {
	Perturbation float64
	NumTrials    int
	Seed         int64
}

type MonteCarloResult struct {
	TrialID int
	Params  map[string]float64
	// Bounded is true when every frame kept each segment inside its clamp.
	Bounded bool
	Err     error
}

// RunMonteCarlo checks the clamp under randomised parameters. Trials whose
// parameters fail validation are recorded with Err and not run.
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, base *config.Config, log *zap.Logger) ([]MonteCarloResult, error) {
	rng := rand.New(rand.NewSource(mc.Seed))
	baseParams := base.GetParams()
	names := make([]string, 0, len(baseParams))
	for k := range baseParams {
		names = append(names, k)
	}
	sort.Strings(names)

	results := make([]MonteCarloResult, 0, mc.NumTrials)
	for trial := 0; trial < mc.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		params := make(map[string]float64, len(names))
		for _, k := range names {
			params[k] = baseParams[k] * (1 + (rng.Float64()-0.5)*2*mc.Perturbation)
		}

		mr := MonteCarloResult{TrialID: trial, Params: params}
		exp, err := experiment.WithParams(base, params, log)
		if err != nil {
			mr.Err = err
			results = append(results, mr)
			continue
		}
		result, err := exp.Run(ctx)
		if err != nil {
			mr.Err = err
		} else {
			mr.Bounded = result.Metrics["bounds"] == 1
		}
		results = append(results, mr)

		if (trial+1)%10 == 0 {
			log.Info("monte carlo", zap.Int("done", trial+1), zap.Int("of", mc.NumTrials))
		}
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (bounded, violated, failed int) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Bounded:
			bounded++
		default:
			violated++
		}
	}
	return
}
