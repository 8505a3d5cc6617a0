package dynamo

import "math"

// State is a flattened frame of rig outputs, one value per controlled
// rotation axis.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest magnitude in the state.
func (s State) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// Control is the external input for a frame: the normalized pointer
// position [px, py].
type Control []float64

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	MaxFrameDelta float64
	Kicks         []float64
	KickForce     float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60.0,
		Duration:      5.0,
		MaxFrameDelta: 0.05,
		KickForce:     2.0,
		ValidateState: true,
	}
}

type Result struct {
	Labels     []string
	States     []State
	Controls   []Control
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Kicks      int
	Errors     []error
}

// Series extracts one state component over the whole run.
func (r *Result) Series(idx int) []float64 {
	out := make([]float64, 0, len(r.States))
	for _, s := range r.States {
		if idx < len(s) {
			out = append(out, s[idx])
		}
	}
	return out
}
