package dynamo

import "errors"

// Domain errors for rig construction and simulation.
var (
	// ErrInvalidState indicates a frame containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrNilWind indicates a chain was built without a forcing signal.
	ErrNilWind = errors.New("dynamo: chain requires a wind source")

	// ErrNilNode indicates a rig was attached to a missing transform node.
	ErrNilNode = errors.New("dynamo: rig requires a transform node")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
