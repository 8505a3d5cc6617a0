// Package dynamo provides the shared primitives for driving spring rigs
// frame by frame.
//
//   - [State]: flattened per-frame rotation outputs
//   - [Control]: per-frame pointer input
//   - [Metric] and [Observer]: hooks invoked once per simulated frame
//   - [Config] and [Result]: run parameters and recorded output
//
// Constructors across the module report bad configuration with errors that
// wrap [ErrParameterBounds], [ErrNilWind] or [ErrNilNode]; test with
// errors.Is.
//
// # Thread Safety
//
// Nothing here is safe for concurrent mutation. Rigs and scenes are owned by
// a single frame loop; use [ParallelFor] only over independent scenes.
package dynamo
