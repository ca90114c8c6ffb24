// Package sim drives the closed-loop PID simulation.
//
// [Loop] owns the run lifecycle (Idle, Running, Paused) and the recorded
// [Sample] trace:
//
//	loop := sim.NewLoop()
//	if err := loop.Start(cfg); err != nil { ... }
//	for i := 0; i < n; i++ {
//	    loop.Step()
//	}
//	trace := loop.Trace()
//
// Each Step computes the control signal from the noisy measurement,
// advances the plant by one fixed dt and appends exactly one sample.
// [Run] wraps the whole thing for headless runs.
//
// # Thread Safety
//
// Loop instances are NOT thread-safe. A single external tick driver must
// serialize Step calls.
package sim
