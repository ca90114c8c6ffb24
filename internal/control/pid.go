package control

import "fmt"

// Below this dt the derivative term is treated as zero instead of
// dividing by a near-zero interval.
const derivativeEpsilon = 1e-9

// PID is a discrete PID controller with rectangular integration and
// derivative-on-error. Output saturation limits are optional: when set,
// the integral term contribution is clamped to the same range
// (anti-windup); when unset the controller is the unconstrained
// textbook form.
type PID struct {
	Kp float64
	Ki float64
	Kd float64

	outMin  float64
	outMax  float64
	limited bool

	integral float64
	prevErr  float64
}

func NewPID(kp, ki, kd float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd}
}

// NewPIDWithLimits builds a controller whose output is clamped to
// [outMin, outMax].
func NewPIDWithLimits(kp, ki, kd, outMin, outMax float64) (*PID, error) {
	if outMin >= outMax {
		return nil, fmt.Errorf("output limits: min %g must be below max %g", outMin, outMax)
	}
	return &PID{Kp: kp, Ki: ki, Kd: kd, outMin: outMin, outMax: outMax, limited: true}, nil
}

// Compute advances the controller one step and returns the control
// signal. It mutates the integral accumulator and stored previous error.
func (p *PID) Compute(setpoint, measured, dt float64) float64 {
	err := setpoint - measured

	p.integral += err * dt

	iTerm := p.Ki * p.integral
	if p.limited && p.Ki != 0 {
		if iTerm > p.outMax {
			iTerm = p.outMax
			p.integral = iTerm / p.Ki
		} else if iTerm < p.outMin {
			iTerm = p.outMin
			p.integral = iTerm / p.Ki
		}
	}

	derivative := 0.0
	if dt > derivativeEpsilon {
		derivative = (err - p.prevErr) / dt
	}
	p.prevErr = err

	u := p.Kp*err + iTerm + p.Kd*derivative
	if p.limited {
		if u > p.outMax {
			u = p.outMax
		} else if u < p.outMin {
			u = p.outMin
		}
	}
	return u
}

// Reset clears integral and derivative state.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
}

// Limits reports the configured output range; ok is false when the
// controller is unconstrained.
func (p *PID) Limits() (outMin, outMax float64, ok bool) {
	return p.outMin, p.outMax, p.limited
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"kp": p.Kp,
		"ki": p.Ki,
		"kd": p.Kd,
	}
}

// SetParam adjusts a PID gain
func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
