// Package spring implements a critically damped spring that follows a
// moving target without overshoot.
//
// Integration uses the exact solution of
//
//	x'' + 2ωx' + ω²(x - target) = 0
//
// so results do not depend on how a span of time is split into frames.
package spring

import (
	"fmt"
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
)

const (
	DefaultStiffness = 6.0

	// MaxFrameDelta is the recommended ceiling for a single frame delta.
	MaxFrameDelta = 0.05
)

// Spring is a single critically damped degree of freedom. It is owned by one
// caller and is not safe for concurrent use.
type Spring struct {
	Value    float64
	Velocity float64
	Target   float64

	omega float64
}

// New creates a spring resting at initial. Stiffness is the angular
// frequency ω in rad/s and must be positive.
func New(initial, stiffness float64) (*Spring, error) {
	if !(stiffness > 0) || math.IsInf(stiffness, 0) {
		return nil, fmt.Errorf("spring stiffness %v: %w", stiffness, dynamo.ErrParameterBounds)
	}
	return &Spring{Value: initial, Target: initial, omega: stiffness}, nil
}

func (s *Spring) Stiffness() float64 { return s.omega }

// Update advances the spring by dt seconds and returns the new value.
// Negative dt is treated as zero.
func (s *Spring) Update(dt float64) float64 {
	s.Value, s.Velocity = Step(s.Value, s.Velocity, s.Target, s.omega, dt)
	return s.Value
}

// Impulse adds force to the velocity without moving value or target.
func (s *Spring) Impulse(force float64) {
	s.Velocity += force
}

// Snap places the spring at rest on v.
func (s *Spring) Snap(v float64) {
	s.Value = v
	s.Target = v
	s.Velocity = 0
}

// Step is the closed form used by Spring.Update.
func Step(value, velocity, target, omega, dt float64) (float64, float64) {
	if !(dt > 0) {
		return value, velocity
	}
	if math.IsInf(dt, 1) {
		return target, 0
	}
	x := value - target
	c := velocity + omega*x
	exp := math.Exp(-omega * dt)
	return target + (x+c*dt)*exp, (velocity - omega*c*dt) * exp
}

// ClampDelta bounds a raw frame delta to [0, max].
func ClampDelta(delta, max float64) float64 {
	if delta < 0 || math.IsNaN(delta) {
		return 0
	}
	if max > 0 && delta > max {
		return max
	}
	return delta
}
