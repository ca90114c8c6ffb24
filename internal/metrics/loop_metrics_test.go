package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/pidlab/internal/config"
	"github.com/san-kum/pidlab/internal/sim"
)

func runLoop(t *testing.T, cfg *config.Config) Report {
	t.Helper()
	l, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return Compute(l.Trace())
}

// Lower proportional gain means a slower loop: rise and settling times
// must not decrease as Kp drops.
func TestKpSweepMonotone(t *testing.T) {
	kps := []float64{90, 75, 60}

	var prevRise, prevSettle float64
	for i, kp := range kps {
		cfg := &config.Config{
			Kp: kp, Ki: 0, Kd: 0,
			Setpoint:     10.0,
			ProcessModel: config.ModelFirstOrder,
			TimeConstant: 1.0,
			Dt:           0.01,
			Duration:     20.0, // 2000 steps
		}
		r := runLoop(t, cfg)

		if !r.RiseTimeDefined() {
			t.Fatalf("kp=%g: rise time undefined", kp)
		}
		if !r.SettlingTimeDefined() {
			t.Fatalf("kp=%g: settling time undefined", kp)
		}

		if i > 0 {
			if r.RiseTime < prevRise {
				t.Errorf("rise time decreased from %f to %f when kp dropped to %g", prevRise, r.RiseTime, kp)
			}
			if r.SettlingTime < prevSettle {
				t.Errorf("settling time decreased from %f to %f when kp dropped to %g", prevSettle, r.SettlingTime, kp)
			}
		}
		prevRise, prevSettle = r.RiseTime, r.SettlingTime
	}
}

func TestWellDampedSecondOrder(t *testing.T) {
	cfg := &config.Config{
		Kp: 0.5, Ki: 0.5, Kd: 0,
		Setpoint:         10.0,
		ProcessModel:     config.ModelSecondOrder,
		NaturalFrequency: 2.0,
		DampingRatio:     1.0,
		Dt:               0.01,
		Duration:         60.0,
	}
	r := runLoop(t, cfg)

	if r.OvershootPct > 0.5 {
		t.Errorf("expected ~zero overshoot for well-damped loop, got %f%%", r.OvershootPct)
	}
	if r.SteadyStateError > 0.05 {
		t.Errorf("expected ~zero steady-state error with integral action, got %f", r.SteadyStateError)
	}
	if !r.SettlingTimeDefined() {
		t.Error("expected the well-damped loop to settle within the trace")
	}
}
