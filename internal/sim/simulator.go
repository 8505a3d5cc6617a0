package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/scene"
)

// Simulator plays a scene through a fixed-step frame loop, the way a render
// loop would, and records every frame.
type Simulator struct {
	scene     *scene.Scene
	pointer   PointerPath
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	log       *zap.Logger
}

func New(sc *scene.Scene, pointer PointerPath, log *zap.Logger) *Simulator {
	if pointer == nil {
		pointer = Still{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{
		scene:     sc,
		pointer:   pointer,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		log:       log,
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Scene() *scene.Scene           { return s.scene }

func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &dynamo.Result{
		Labels:   s.scene.Labels(),
		States:   make([]dynamo.State, 0, steps+1),
		Controls: make([]dynamo.Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Info("simulation started",
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.Int("steps", steps),
		zap.Int("dim", s.scene.Dim()),
	)

	kicks := sortedKicks(cfg.Kicks)
	t := 0.0
	result.States = append(result.States, s.scene.State())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.log.Warn("simulation canceled", zap.Int("step", i), zap.Float64("t", t))
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		for len(kicks) > 0 && kicks[0] <= t {
			s.scene.Kick(cfg.KickForce)
			s.log.Debug("kick", zap.Float64("t", t), zap.Float64("force", cfg.KickForce))
			kicks = kicks[1:]
			result.Kicks++
		}

		p := s.pointer.At(t)
		u := dynamo.Control{p.X, p.Y}

		t += s.scene.Frame(cfg.Dt, p)
		x := s.scene.State()

		if cfg.ValidateState && !x.IsValid() {
			err := &dynamo.SimulationError{Step: i, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			s.log.Error("invalid state", zap.Int("step", i), zap.Float64("t", t))
			break
		}

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		result.StepsTaken++
		result.States = append(result.States, x)
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Info("simulation finished",
		zap.Int("steps", result.StepsTaken),
		zap.Int("kicks", result.Kicks),
		zap.Float64("t", t),
	)

	return result, nil
}

func (s *Simulator) validateConfig(cfg dynamo.Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, dynamo.ErrParameterBounds)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f: %w", cfg.Duration, dynamo.ErrParameterBounds)
	}
	if limit := s.frameLimit(cfg); limit > 0 && cfg.Dt > limit {
		return fmt.Errorf("dt %f exceeds the frame delta limit %f: %w", cfg.Dt, limit, dynamo.ErrParameterBounds)
	}
	return nil
}

// frameLimit is the tighter of the run's and the scene's frame delta caps.
// Zero means unbounded.
func (s *Simulator) frameLimit(cfg dynamo.Config) float64 {
	limit := cfg.MaxFrameDelta
	if sc := s.scene.Options().MaxFrameDelta; sc > 0 && (limit <= 0 || sc < limit) {
		limit = sc
	}
	return limit
}

// RunWithCallback drives the scene until the callback returns false or the
// duration elapses, without recording.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg dynamo.Config, callback func(dynamo.State, dynamo.Control, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	kicks := sortedKicks(cfg.Kicks)
	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for len(kicks) > 0 && kicks[0] <= t {
			s.scene.Kick(cfg.KickForce)
			kicks = kicks[1:]
		}

		p := s.pointer.At(t)
		dt := s.scene.Frame(cfg.Dt, p)
		if dt <= 0 {
			return fmt.Errorf("frame did not advance at t=%.4f: %w", t, dynamo.ErrParameterBounds)
		}
		t += dt

		if !callback(s.scene.State(), dynamo.Control{p.X, p.Y}, t) {
			return nil
		}
	}

	return nil
}

func sortedKicks(kicks []float64) []float64 {
	k := append([]float64(nil), kicks...)
	sort.Float64s(k)
	return k
}
