// Package analysis inspects recorded sway traces.
//
//   - [PowerSpectrum] and [DominantFrequency]: how fast a component sways
//   - [NewPhasePortrait] and [PhasePortraitToASCII]: the path traced by two
//     components, typically the x and z tilt of a stem tip
//   - [Crossings]: zero crossings of a component, a cheap period estimate
package analysis
