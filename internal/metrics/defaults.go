package metrics

import (
	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/scene"
)

// ForScene returns the standard metric set: a peak per component, overall and
// root RMS, clamp checks and pointer travel.
func ForScene(sc *scene.Scene) []dynamo.Metric {
	labels := sc.Labels()
	bounds := sc.Bounds()

	ms := make([]dynamo.Metric, 0, len(labels)+5)
	for i, l := range labels {
		ms = append(ms, NewPeak(l, i))
	}
	ms = append(ms,
		NewRMS("all"),
		NewRMS("root", 0, 1),
		NewBounds(bounds),
		NewSaturation(bounds),
		NewPointerTravel(),
	)
	return ms
}
