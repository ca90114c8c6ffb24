package sim

// Sample is one recorded simulation step. Output is the true plant
// output; sensor noise only affects the value fed to the controller.
type Sample struct {
	T        float64
	Setpoint float64
	Output   float64
	Control  float64
}

// State is the loop lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}
