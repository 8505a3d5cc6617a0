package integrators

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(x, v, target, omega, dt float64) (float64, float64) {
	k1x, k1v := v, accel(x, v, target, omega)

	x2, v2 := x+dt*0.5*k1x, v+dt*0.5*k1v
	k2x, k2v := v2, accel(x2, v2, target, omega)

	x3, v3 := x+dt*0.5*k2x, v+dt*0.5*k2v
	k3x, k3v := v3, accel(x3, v3, target, omega)

	x4, v4 := x+dt*k3x, v+dt*k3v
	k4x, k4v := v4, accel(x4, v4, target, omega)

	dt6 := dt / 6.0
	return x + dt6*(k1x+2*k2x+2*k3x+k4x), v + dt6*(k1v+2*k2v+2*k3v+k4v)
}
