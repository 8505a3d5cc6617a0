package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/rig"
	"github.com/san-kum/swayrig/internal/scene"
)

func newTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.New(scene.DefaultOptions())
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	return sc
}

func testConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Duration = 1.0
	return cfg
}

func TestSimulatorRun(t *testing.T) {
	sim := New(newTestScene(t), nil, nil)

	result, err := sim.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 61 {
		t.Errorf("expected 61 states, got %d", len(result.States))
	}
	if len(result.Times) != 61 || len(result.Controls) != 60 {
		t.Errorf("unexpected lengths: times=%d controls=%d", len(result.Times), len(result.Controls))
	}
	if math.Abs(result.Times[60]-1.0) > 1e-9 {
		t.Errorf("expected final time 1.0, got %.9f", result.Times[60])
	}
	if len(result.Labels) != len(result.States[0]) {
		t.Errorf("labels %d vs state dim %d", len(result.Labels), len(result.States[0]))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(newTestScene(t), nil, nil)

	tests := []struct {
		name string
		cfg  dynamo.Config
	}{
		{"zero dt", dynamo.Config{Dt: 0, Duration: 1.0}},
		{"negative dt", dynamo.Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", dynamo.Config{Dt: 0.1, Duration: 0}},
		{"negative duration", dynamo.Config{Dt: 0.1, Duration: -1.0}},
		{"dt above run cap", dynamo.Config{Dt: 0.1, Duration: 5, MaxFrameDelta: 0.05}},
		{"dt above scene cap", dynamo.Config{Dt: 0.1, Duration: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), tt.cfg)
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(x dynamo.State, u dynamo.Control, time float64) {
	t.count++
	t.sum += x[0]
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	sim := New(newTestScene(t), nil, nil)

	metric := &testMetric{}
	sim.AddMetric(metric)

	result, err := sim.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 60 {
		t.Errorf("expected 60 observations, got %d", metric.count)
	}
}

func TestSimulatorKicks(t *testing.T) {
	sim := New(newTestScene(t), nil, nil)

	cfg := testConfig()
	cfg.Kicks = []float64{0.5, 0.1}
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Kicks != 2 {
		t.Errorf("expected 2 kicks, got %d", result.Kicks)
	}

	// root.x is still at rest before the first kick with a still pointer
	if result.States[5][0] != 0 {
		t.Errorf("root moved before the kick: %v", result.States[5][0])
	}
	if result.States[10][0] <= 0 {
		t.Errorf("root should lean forward after the kick, got %v", result.States[10][0])
	}
}

func TestSimulatorCancel(t *testing.T) {
	sim := New(newTestScene(t), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := sim.Run(ctx, testConfig())
	if !errors.Is(err, dynamo.ErrContextCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial state, got %d", len(result.States))
	}
}

func TestSimulatorPointerDrivesRoot(t *testing.T) {
	sim := New(newTestScene(t), Still{rig.Pointer{X: 1, Y: 0}}, nil)

	cfg := testConfig()
	cfg.Duration = 5
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	last := result.States[len(result.States)-1]
	if math.Abs(last[1]-0.05) > 1e-4 {
		t.Errorf("root.z = %v, want ~0.05", last[1])
	}
	if result.Controls[0][0] != 1 {
		t.Errorf("control not recorded: %v", result.Controls[0])
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	sim := New(newTestScene(t), nil, nil)

	calls := 0
	err := sim.RunWithCallback(context.Background(), testConfig(), func(x dynamo.State, u dynamo.Control, t float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 callbacks, got %d", calls)
	}
}

func TestEnsembleSeeds(t *testing.T) {
	seeds := make(chan int64, 4)
	ens := NewEnsemble(func(seed int64) (*Simulator, error) {
		seeds <- seed
		sc, err := scene.New(scene.DefaultOptions())
		if err != nil {
			return nil, err
		}
		return New(sc, NewJitter(seed, 0.25), nil), nil
	}, 4, 100)

	results, err := ens.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	close(seeds)

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	seen := map[int64]bool{}
	for s := range seeds {
		seen[s] = true
	}
	for s := int64(100); s < 104; s++ {
		if !seen[s] {
			t.Errorf("seed %d not used", s)
		}
	}
}

func TestMeanMetrics(t *testing.T) {
	got := MeanMetrics([]*dynamo.Result{
		{Metrics: map[string]float64{"peak": 1}},
		{Metrics: map[string]float64{"peak": 3}},
	})
	if got["peak"] != 2 {
		t.Errorf("mean peak = %v, want 2", got["peak"])
	}
}

func TestSimulatorCoversDurationAtFrameCap(t *testing.T) {
	sim := New(newTestScene(t), nil, nil)
	cfg := dynamo.DefaultConfig()
	cfg.Dt = cfg.MaxFrameDelta
	cfg.Duration = 5
	cfg.Kicks = []float64{3}

	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if end := result.Times[len(result.Times)-1]; math.Abs(end-5) > 1e-9 {
		t.Errorf("run ended at t=%v, want 5", end)
	}
	if result.Kicks != 1 {
		t.Errorf("kicks = %d, want 1", result.Kicks)
	}
}
