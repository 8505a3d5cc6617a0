package integrators

// Verlet is velocity Verlet with the velocity-dependent damping term
// evaluated at a predicted half step.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (vv *Verlet) Name() string { return "verlet" }

func (vv *Verlet) Step(x, v, target, omega, dt float64) (float64, float64) {
	a := accel(x, v, target, omega)
	xNew := x + v*dt + 0.5*a*dt*dt

	vPred := v + a*dt
	aNew := accel(xNew, vPred, target, omega)
	return xNew, v + 0.5*(a+aNew)*dt
}
