package logging

import (
	"go.uber.org/zap"

	"github.com/san-kum/swayrig/internal/dynamo"
)

// Progress logs the peak rotation of the rig at a fixed simulated-time
// interval. It is a dynamo.Observer.
type Progress struct {
	log   *zap.Logger
	every float64
	next  float64
}

func NewProgress(log *zap.Logger, every float64) *Progress {
	if log == nil {
		log = zap.NewNop()
	}
	return &Progress{log: log, every: every}
}

func (p *Progress) OnStep(x dynamo.State, u dynamo.Control, t float64) {
	if p.every <= 0 || t < p.next {
		return
	}
	p.next = t + p.every
	fields := []zap.Field{zap.Float64("t", t), zap.Float64("peak", x.MaxAbs())}
	if len(u) >= 2 {
		fields = append(fields, zap.Float64("px", u[0]), zap.Float64("py", u[1]))
	}
	p.log.Debug("progress", fields...)
}
