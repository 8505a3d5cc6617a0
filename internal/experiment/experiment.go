package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/logging"
	"github.com/san-kum/swayrig/internal/metrics"
	"github.com/san-kum/swayrig/internal/scene"
	"github.com/san-kum/swayrig/internal/sim"
)

// Experiment is one configured scene ready to run headless.
type Experiment struct {
	cfg       *config.Config
	scene     *scene.Scene
	simulator *sim.Simulator
}

func New(cfg *config.Config, log *zap.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sc, err := scene.New(cfg.SceneOptions())
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	pointer, err := sim.NewPointerPath(cfg.Pointer.Path, cfg.Pointer.Radius, cfg.Pointer.Period, cfg.Sim.Seed)
	if err != nil {
		return nil, err
	}

	s := sim.New(sc, pointer, log)
	for _, m := range metrics.ForScene(sc) {
		s.AddMetric(m)
	}
	s.AddObserver(logging.NewProgress(log, 1.0))

	return &Experiment{cfg: cfg, scene: sc, simulator: s}, nil
}

// WithParams clones base, applies the named parameters and builds an
// experiment from the result.
func WithParams(base *config.Config, params map[string]float64, log *zap.Logger) (*Experiment, error) {
	cfg := base.Clone()
	for name, v := range params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	return New(cfg, log)
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

func (e *Experiment) Config() *config.Config { return e.cfg }
func (e *Experiment) Scene() *scene.Scene    { return e.scene }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
