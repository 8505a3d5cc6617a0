package metrics

import (
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
)

// Peak tracks the largest magnitude seen on one state component.
type Peak struct {
	name  string
	index int
	peak  float64
}

func NewPeak(name string, index int) *Peak {
	return &Peak{name: "peak." + name, index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if p.index < len(x) {
		p.peak = math.Max(p.peak, math.Abs(x[p.index]))
	}
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() { p.peak = 0 }
