// Package viz draws a live bouquet in the terminal.
//
// The live view is a Bubble Tea program:
//
//   - [Model]: steps a scene from wall-clock ticks and draws it
//   - [Canvas]: braille dot grid the stems are drawn on
//   - [Camera]: orbiting perspective projection of the rig hierarchy
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	B      - Kick the bouquet
//	R      - Settle every spring
//	Arrows - Move the pointer (the mouse also works)
//	T      - Cycle colour themes
//	?      - Show help overlay
package viz
