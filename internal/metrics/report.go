// Package metrics derives standard step-response performance metrics
// from a recorded simulation trace. [Compute] is pure and stateless: it
// recomputes everything from scratch on each call, so callers can ask
// for fresh metrics at any point during or after a run.
package metrics

import (
	"math"

	"github.com/san-kum/pidlab/internal/sim"
)

const (
	// Rise time is the first crossing of this fraction of the setpoint.
	riseFraction = 0.9
	// Settling band as a fraction of the setpoint magnitude.
	settlingBand = 0.02
)

// Report holds the step-response metrics for one trace. RiseTime,
// SettlingTime and the relative metrics are NaN when undefined (never
// reached within the trace, or a zero setpoint makes them meaningless).
type Report struct {
	RiseTime         float64
	SettlingTime     float64
	OvershootPct     float64
	SteadyStateError float64
}

func (r Report) RiseTimeDefined() bool     { return !math.IsNaN(r.RiseTime) }
func (r Report) SettlingTimeDefined() bool { return !math.IsNaN(r.SettlingTime) }

// Compute derives a Report from the trace. The final setpoint value is
// taken from the last sample (a single step input at t=0 is assumed).
// An empty trace yields an all-NaN report.
func Compute(samples []sim.Sample) Report {
	if len(samples) == 0 {
		nan := math.NaN()
		return Report{RiseTime: nan, SettlingTime: nan, OvershootPct: nan, SteadyStateError: nan}
	}

	setpoint := samples[len(samples)-1].Setpoint
	last := samples[len(samples)-1].Output

	return Report{
		RiseTime:         riseTime(samples, setpoint),
		SettlingTime:     settlingTime(samples, setpoint),
		OvershootPct:     overshootPct(samples, setpoint),
		SteadyStateError: math.Abs(setpoint - last),
	}
}

// riseTime returns the first t at which the output crosses 90% of the
// setpoint, linearly interpolated between the two bracketing samples.
func riseTime(samples []sim.Sample, setpoint float64) float64 {
	if setpoint == 0 {
		return math.NaN()
	}
	threshold := riseFraction * setpoint

	reached := func(out float64) bool {
		if setpoint > 0 {
			return out >= threshold
		}
		return out <= threshold
	}

	for i, s := range samples {
		if !reached(s.Output) {
			continue
		}
		if i == 0 {
			return s.T
		}
		prev := samples[i-1]
		// Interpolate the crossing inside [prev.T, s.T].
		frac := (threshold - prev.Output) / (s.Output - prev.Output)
		return prev.T + frac*(s.T-prev.T)
	}
	return math.NaN()
}

// settlingTime returns the earliest t after which the output stays
// within the 2% band through the end of the trace. No extrapolation: a
// trace that leaves the band at its very end never settles.
func settlingTime(samples []sim.Sample, setpoint float64) float64 {
	band := settlingBand * math.Abs(setpoint)

	inBand := func(out float64) bool {
		return math.Abs(out-setpoint) <= band
	}

	// Walk backwards to the last sample outside the band. A NaN output
	// anywhere makes the metric undefined; it is never treated as a
	// plain excursion the trace can recover from.
	lastViolation := -1
	for i := len(samples) - 1; i >= 0; i-- {
		if math.IsNaN(samples[i].Output) {
			return math.NaN()
		}
		if !inBand(samples[i].Output) && lastViolation == -1 {
			lastViolation = i
		}
	}

	switch {
	case lastViolation == len(samples)-1:
		return math.NaN()
	case lastViolation == -1:
		return samples[0].T
	default:
		return samples[lastViolation+1].T
	}
}

func overshootPct(samples []sim.Sample, setpoint float64) float64 {
	if setpoint == 0 {
		return math.NaN()
	}
	peak := math.Inf(-1)
	for _, s := range samples {
		peak = math.Max(peak, s.Output)
	}
	return math.Max(0, (peak-setpoint)/setpoint*100)
}
