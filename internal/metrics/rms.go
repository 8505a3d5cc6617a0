package metrics

import (
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
)

// RMS is the root mean square of a set of state components over a run. An
// empty index set covers the whole state.
type RMS struct {
	name    string
	indices []int
	sumSq   float64
	count   int
}

func NewRMS(name string, indices ...int) *RMS {
	return &RMS{name: "rms." + name, indices: indices}
}

func (r *RMS) Name() string { return r.name }

func (r *RMS) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(r.indices) == 0 {
		for _, v := range x {
			r.sumSq += v * v
			r.count++
		}
		return
	}
	for _, i := range r.indices {
		if i < len(x) {
			r.sumSq += x[i] * x[i]
			r.count++
		}
	}
}

func (r *RMS) Value() float64 {
	if r.count == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.count))
}

func (r *RMS) Reset() {
	r.sumSq = 0
	r.count = 0
}
