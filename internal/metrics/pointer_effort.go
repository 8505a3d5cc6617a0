package metrics

import (
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
)

// PointerTravel is the mean distance the pointer moves per frame.
type PointerTravel struct {
	name    string
	prev    dynamo.Control
	sum     float64
	samples int
}

func NewPointerTravel() *PointerTravel {
	return &PointerTravel{name: "pointer_travel"}
}

func (p *PointerTravel) Name() string {
	return p.name
}

func (p *PointerTravel) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if p.prev != nil {
		d := 0.0
		for i := range u {
			if i < len(p.prev) {
				d += (u[i] - p.prev[i]) * (u[i] - p.prev[i])
			}
		}
		p.sum += math.Sqrt(d)
		p.samples++
	}
	p.prev = append(p.prev[:0], u...)
}

func (p *PointerTravel) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *PointerTravel) Reset() {
	p.prev = nil
	p.sum = 0
	p.samples = 0
}
