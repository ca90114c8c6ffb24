package plant

// Model is a discrete-time process driven by a control signal plus an
// additive disturbance. Advance mutates the owned state and returns the
// new output. Implementations own their state exclusively; Reset returns
// it to the zero initial condition.
type Model interface {
	Advance(control, disturbance, dt float64) float64
	Output() float64
	Reset()
}
