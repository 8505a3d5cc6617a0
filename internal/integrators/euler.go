package integrators

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(x, v, target, omega, dt float64) (float64, float64) {
	a := accel(x, v, target, omega)
	return x + dt*v, v + dt*a
}
