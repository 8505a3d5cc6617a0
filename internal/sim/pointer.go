package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/rig"
)

// PointerPath scripts the pointer for a headless run.
type PointerPath interface {
	At(t float64) rig.Pointer
}

type Still struct {
	rig.Pointer
}

func (s Still) At(float64) rig.Pointer { return s.Pointer }

// Orbit circles the centre once per Period seconds.
type Orbit struct {
	Radius float64
	Period float64
}

func (o Orbit) At(t float64) rig.Pointer {
	a := 2 * math.Pi * t / o.Period
	return rig.Pointer{X: o.Radius * math.Cos(a), Y: o.Radius * math.Sin(a)}.Clamped()
}

// Jitter jumps to a new random position every Hold seconds.
type Jitter struct {
	Hold float64

	rng     *rand.Rand
	current rig.Pointer
	next    float64
}

func NewJitter(seed int64, hold float64) *Jitter {
	return &Jitter{Hold: hold, rng: rand.New(rand.NewSource(seed))}
}

func (j *Jitter) At(t float64) rig.Pointer {
	for t >= j.next {
		j.current = rig.Pointer{X: j.rng.Float64()*2 - 1, Y: j.rng.Float64()*2 - 1}
		j.next += j.Hold
	}
	return j.current
}

// NewPointerPath builds a path by name: "still", "orbit" or "jitter".
func NewPointerPath(name string, radius, period float64, seed int64) (PointerPath, error) {
	switch name {
	case "", "still":
		return Still{}, nil
	case "orbit":
		if period <= 0 {
			return nil, fmt.Errorf("orbit period %v: %w", period, dynamo.ErrParameterBounds)
		}
		return Orbit{Radius: radius, Period: period}, nil
	case "jitter":
		hold := period / 8
		if hold <= 0 {
			hold = 0.5
		}
		return NewJitter(seed, hold), nil
	}
	return nil, fmt.Errorf("unknown pointer path %q: %w", name, dynamo.ErrParameterBounds)
}
