package integrators

import "github.com/charmbracelet/harmonica"

type harmonicaKey struct {
	dt, omega float64
}

// Harmonica delegates to charmbracelet/harmonica with a damping ratio of 1.
// harmonica bakes dt and ω into its coefficients, so springs are cached per
// pair.
type Harmonica struct {
	springs map[harmonicaKey]harmonica.Spring
}

func NewHarmonica() *Harmonica {
	return &Harmonica{springs: make(map[harmonicaKey]harmonica.Spring)}
}

func (h *Harmonica) Name() string { return "harmonica" }

func (h *Harmonica) Step(x, v, target, omega, dt float64) (float64, float64) {
	if dt <= 0 {
		return x, v
	}
	key := harmonicaKey{dt: dt, omega: omega}
	s, ok := h.springs[key]
	if !ok {
		s = harmonica.NewSpring(dt, omega, 1.0)
		h.springs[key] = s
	}
	return s.Update(x, v, target)
}
