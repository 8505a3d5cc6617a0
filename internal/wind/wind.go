// Package wind produces the ambient forcing signal that drives stem rigs.
package wind

import (
	"fmt"
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
)

const (
	DefaultSpeed    = 0.8
	DefaultStrength = 0.04

	// ZScale is the amplitude of the z axis relative to x.
	ZScale = 0.6
)

// Sample is a value copy of the wind at one instant.
type Sample struct {
	X, Z, Time float64
}

// Wind is a bounded pseudo-periodic 2D signal. X and Z run at different
// frequencies and phases so the pair never settles into a simple loop.
//
// One Wind is shared by every chain in a scene. It is advanced once per
// frame, before any chain reads it.
type Wind struct {
	X    float64
	Z    float64
	Time float64

	speed    float64
	strength float64
}

func New(speed, strength float64) (*Wind, error) {
	if speed < 0 || math.IsNaN(speed) {
		return nil, fmt.Errorf("wind speed %v: %w", speed, dynamo.ErrParameterBounds)
	}
	if strength < 0 || math.IsNaN(strength) {
		return nil, fmt.Errorf("wind strength %v: %w", strength, dynamo.ErrParameterBounds)
	}
	return &Wind{speed: speed, strength: strength}, nil
}

func Default() *Wind {
	return &Wind{speed: DefaultSpeed, strength: DefaultStrength}
}

func (w *Wind) Speed() float64    { return w.speed }
func (w *Wind) Strength() float64 { return w.strength }

// Advance moves the internal clock by delta*speed and recomputes X and Z.
func (w *Wind) Advance(delta float64) {
	if delta > 0 {
		w.Time += delta * w.speed
	}
	w.X = math.Sin(w.Time) * w.strength
	w.Z = math.Cos(w.Time*0.7+1.3) * w.strength * ZScale
}

func (w *Wind) Sample() Sample {
	return Sample{X: w.X, Z: w.Z, Time: w.Time}
}
