package plant

import "fmt"

// SecondOrder is the canonical mass-spring-damper form
//
//	y'' = wn^2*(u + d - y) - 2*zeta*wn*y'
//
// stepped with semi-implicit Euler: velocity first, then position from the
// updated velocity. This keeps the undamped (zeta = 0) case oscillating
// instead of spiraling outward at larger dt.
type SecondOrder struct {
	NaturalFreq  float64
	DampingRatio float64

	output   float64
	velocity float64
}

func NewSecondOrder(naturalFreq, dampingRatio float64) (*SecondOrder, error) {
	if naturalFreq <= 0 {
		return nil, fmt.Errorf("natural_frequency must be positive, got %g", naturalFreq)
	}
	if dampingRatio < 0 {
		return nil, fmt.Errorf("damping_ratio must be non-negative, got %g", dampingRatio)
	}
	return &SecondOrder{NaturalFreq: naturalFreq, DampingRatio: dampingRatio}, nil
}

func (s *SecondOrder) Advance(control, disturbance, dt float64) float64 {
	wn := s.NaturalFreq
	accel := wn*wn*(control+disturbance-s.output) - 2*s.DampingRatio*wn*s.velocity
	s.velocity += dt * accel
	s.output += dt * s.velocity
	return s.output
}

func (s *SecondOrder) Output() float64 { return s.output }

// Velocity returns the first derivative of the output.
func (s *SecondOrder) Velocity() float64 { return s.velocity }

func (s *SecondOrder) Reset() {
	s.output = 0
	s.velocity = 0
}

func (s *SecondOrder) GetParams() map[string]float64 {
	return map[string]float64{
		"natural_frequency": s.NaturalFreq,
		"damping_ratio":     s.DampingRatio,
	}
}

func (s *SecondOrder) SetParam(name string, value float64) error {
	switch name {
	case "natural_frequency":
		if value <= 0 {
			return fmt.Errorf("natural_frequency must be positive, got %g", value)
		}
		s.NaturalFreq = value
	case "damping_ratio":
		if value < 0 {
			return fmt.Errorf("damping_ratio must be non-negative, got %g", value)
		}
		s.DampingRatio = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
