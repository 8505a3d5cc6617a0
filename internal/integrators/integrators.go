// Package integrators holds interchangeable steppers for the critically
// damped spring equation
//
//	x'' = -2ω x' - ω²(x - target)
//
// The analytic stepper is what the rigs use. The others exist to measure how
// far a numerical scheme drifts when the frame rate changes.
package integrators

import "math"

type Stepper interface {
	Name() string
	Step(x, v, target, omega, dt float64) (float64, float64)
}

func accel(x, v, target, omega float64) float64 {
	return -2*omega*v - omega*omega*(x-target)
}

// Names lists the built-in steppers in a stable order.
func Names() []string {
	return []string{"analytic", "euler", "verlet", "rk4", "harmonica"}
}

// ByName returns a fresh stepper, or false if the name is unknown.
func ByName(name string) (Stepper, bool) {
	switch name {
	case "analytic":
		return NewAnalytic(), true
	case "euler":
		return NewEuler(), true
	case "verlet":
		return NewVerlet(), true
	case "rk4":
		return NewRK4(), true
	case "harmonica":
		return NewHarmonica(), true
	}
	return nil, false
}

// StepResponse drives s from rest at 0 toward target 1 for duration seconds
// and returns the largest deviation from the closed-form response
// x(t) = 1 - (1 + ωt)e^{-ωt}, plus the final position.
func StepResponse(s Stepper, omega, dt, duration float64) (maxErr, final float64) {
	x, v := 0.0, 0.0
	steps := int(math.Round(duration / dt))
	for i := 1; i <= steps; i++ {
		x, v = s.Step(x, v, 1, omega, dt)
		t := float64(i) * dt
		want := 1 - (1+omega*t)*math.Exp(-omega*t)
		maxErr = math.Max(maxErr, math.Abs(x-want))
	}
	return maxErr, x
}
