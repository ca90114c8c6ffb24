package metrics

import (
	"math"

	"github.com/san-kum/pidlab/internal/sim"
)

// ControlEffort accumulates the mean absolute control signal over a run.
// Unlike the step-response report it is streaming: feed it samples as
// they are produced, or replay a finished trace.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Observe(s sim.Sample) {
	c.sum += math.Abs(s.Control)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
