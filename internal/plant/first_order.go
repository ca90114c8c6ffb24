package plant

import "fmt"

// FirstOrder is an exponential lag: dPV/dt = (u + d - PV) / tau,
// discretized with explicit Euler.
type FirstOrder struct {
	TimeConstant float64

	output float64
}

func NewFirstOrder(timeConstant float64) (*FirstOrder, error) {
	if timeConstant <= 0 {
		return nil, fmt.Errorf("time_constant must be positive, got %g", timeConstant)
	}
	return &FirstOrder{TimeConstant: timeConstant}, nil
}

func (f *FirstOrder) Advance(control, disturbance, dt float64) float64 {
	f.output += dt * (control + disturbance - f.output) / f.TimeConstant
	return f.output
}

func (f *FirstOrder) Output() float64 { return f.output }

func (f *FirstOrder) Reset() { f.output = 0 }

func (f *FirstOrder) GetParams() map[string]float64 {
	return map[string]float64{
		"time_constant": f.TimeConstant,
	}
}

func (f *FirstOrder) SetParam(name string, value float64) error {
	switch name {
	case "time_constant":
		if value <= 0 {
			return fmt.Errorf("time_constant must be positive, got %g", value)
		}
		f.TimeConstant = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
