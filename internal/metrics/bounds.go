package metrics

import (
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
)

// Bounds reports the fraction of frames in which every clamped component
// stayed within its limit. Components with a zero limit are ignored.
type Bounds struct {
	name       string
	limits     []float64
	violations int
	samples    int
}

func NewBounds(limits []float64) *Bounds {
	return &Bounds{name: "bounds", limits: limits}
}

func (b *Bounds) Name() string { return b.name }

func (b *Bounds) Observe(x dynamo.State, u dynamo.Control, t float64) {
	b.samples++
	for i, lim := range b.limits {
		if lim > 0 && i < len(x) && math.Abs(x[i]) > lim {
			b.violations++
			break
		}
	}
}

func (b *Bounds) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounds) Reset() {
	b.violations = 0
	b.samples = 0
}

// Saturation is the fraction of clamped component samples sitting exactly on
// their limit.
type Saturation struct {
	limits  []float64
	hits    int
	samples int
}

func NewSaturation(limits []float64) *Saturation {
	return &Saturation{limits: limits}
}

func (s *Saturation) Name() string { return "saturation" }

func (s *Saturation) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for i, lim := range s.limits {
		if lim <= 0 || i >= len(x) {
			continue
		}
		s.samples++
		if math.Abs(x[i]) >= lim {
			s.hits++
		}
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.hits) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.hits = 0
	s.samples = 0
}
