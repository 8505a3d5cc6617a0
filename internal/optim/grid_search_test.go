package optim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/swayrig/internal/config"
	"github.com/san-kum/swayrig/internal/experiment"
	"github.com/san-kum/swayrig/internal/logging"
)

func TestPoints(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2}, {10, 20, 30}})
	pts := g.Points()
	if len(pts) != 6 {
		t.Fatalf("expected 6 points, got %d", len(pts))
	}
	if pts[0]["a"] != 1 || pts[0]["b"] != 10 || pts[5]["a"] != 2 || pts[5]["b"] != 30 {
		t.Errorf("unexpected ordering: %v", pts)
	}
}

func TestSearchFindsSmallestBend(t *testing.T) {
	base := config.DefaultConfig()
	base.Sim.Duration = 2
	base.Wind.Strength = 0.2

	g := NewGridSearch([]string{"stem.max_bend"}, [][]float64{{0.3, 0.05, 0.15}})
	best, score, err := g.Search(context.Background(), func(p map[string]float64) (*experiment.Experiment, error) {
		return experiment.WithParams(base, p, logging.Nop())
	}, Minimize("rms.all"))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if best["stem.max_bend"] != 0.05 {
		t.Errorf("expected the tightest bend to minimise sway, got %v", best)
	}
	if math.IsInf(score, 0) {
		t.Error("expected a finite score")
	}
}

func TestSearchSkipsBrokenPoints(t *testing.T) {
	base := config.DefaultConfig()
	base.Sim.Duration = 0.5

	g := NewGridSearch([]string{"sway.stiffness"}, [][]float64{{-1, 4}})
	best, _, err := g.Search(context.Background(), func(p map[string]float64) (*experiment.Experiment, error) {
		return experiment.WithParams(base, p, logging.Nop())
	}, Target("rms.root", 0))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if best["sway.stiffness"] != 4 {
		t.Errorf("expected the valid point, got %v", best)
	}
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"stem.max_bend"}, [][]float64{{0.1}})
	if _, _, err := g.Search(ctx, func(p map[string]float64) (*experiment.Experiment, error) {
		return experiment.WithParams(config.DefaultConfig(), p, logging.Nop())
	}, Minimize("rms.all")); err == nil {
		t.Error("expected context error")
	}
}
