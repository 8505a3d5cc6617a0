package integrators

import "github.com/san-kum/swayrig/internal/spring"

type Analytic struct{}

func NewAnalytic() *Analytic { return &Analytic{} }

func (a *Analytic) Name() string { return "analytic" }

func (a *Analytic) Step(x, v, target, omega, dt float64) (float64, float64) {
	return spring.Step(x, v, target, omega, dt)
}
