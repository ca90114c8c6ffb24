package plant

import (
	"math"
	"testing"
)

func TestNewFirstOrderInvalid(t *testing.T) {
	tests := []struct {
		name string
		tau  float64
	}{
		{"zero", 0},
		{"negative", -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFirstOrder(tt.tau); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFirstOrderZeroInput(t *testing.T) {
	m, err := NewFirstOrder(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 1000; i++ {
		m.Advance(0, 0, 0.01)
	}

	if m.Output() != 0 {
		t.Errorf("expected output 0 with zero input, got %f", m.Output())
	}
}

func TestFirstOrderConverges(t *testing.T) {
	m, _ := NewFirstOrder(1.0)

	dt := 0.01
	for i := 0; i < 2000; i++ {
		m.Advance(1.0, 0, dt)
	}

	if math.Abs(m.Output()-1.0) > 1e-3 {
		t.Errorf("expected output ~1.0 after 20 time constants, got %f", m.Output())
	}
}

func TestFirstOrderDisturbance(t *testing.T) {
	m, _ := NewFirstOrder(0.5)

	for i := 0; i < 4000; i++ {
		m.Advance(0, 2.0, 0.01)
	}

	if math.Abs(m.Output()-2.0) > 1e-3 {
		t.Errorf("expected output to track disturbance 2.0, got %f", m.Output())
	}
}

func TestNewSecondOrderInvalid(t *testing.T) {
	tests := []struct {
		name string
		wn   float64
		zeta float64
	}{
		{"zero frequency", 0, 0.5},
		{"negative frequency", -2, 0.5},
		{"negative damping", 1, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSecondOrder(tt.wn, tt.zeta); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSecondOrderZeroDampingValid(t *testing.T) {
	if _, err := NewSecondOrder(1.0, 0); err != nil {
		t.Errorf("zeta=0 should be valid, got error: %v", err)
	}
}

func TestSecondOrderCriticallyDamped(t *testing.T) {
	m, _ := NewSecondOrder(2.0, 1.0)

	dt := 0.01
	peak := 0.0
	for i := 0; i < 2000; i++ {
		out := m.Advance(1.0, 0, dt)
		peak = math.Max(peak, out)
	}

	if math.Abs(m.Output()-1.0) > 1e-2 {
		t.Errorf("expected output ~1.0 at steady state, got %f", m.Output())
	}
	if peak > 1.01 {
		t.Errorf("critically damped response should not overshoot, peak %f", peak)
	}
}

func TestSecondOrderUndampedOscillates(t *testing.T) {
	m, _ := NewSecondOrder(1.0, 0)

	dt := 0.001
	steps := 40000 // ~6 full periods at wn=1
	half := steps / 2

	firstPeak, secondPeak := 0.0, 0.0
	for i := 0; i < steps; i++ {
		out := m.Advance(1.0, 0, dt)
		if i < half {
			firstPeak = math.Max(firstPeak, out)
		} else {
			secondPeak = math.Max(secondPeak, out)
		}
	}

	// Undamped step response swings between 0 and 2 indefinitely.
	if firstPeak < 1.9 {
		t.Errorf("expected peak near 2.0 in first half, got %f", firstPeak)
	}
	if secondPeak < firstPeak*0.98 {
		t.Errorf("oscillation decayed: first peak %f, second peak %f", firstPeak, secondPeak)
	}
}

func TestSecondOrderReset(t *testing.T) {
	m, _ := NewSecondOrder(2.0, 0.7)

	for i := 0; i < 100; i++ {
		m.Advance(1.0, 0, 0.01)
	}
	if m.Output() == 0 {
		t.Fatal("expected non-zero output before reset")
	}

	m.Reset()
	if m.Output() != 0 || m.Velocity() != 0 {
		t.Errorf("expected zero state after reset, got output %f velocity %f", m.Output(), m.Velocity())
	}
}

func TestSetParamValidation(t *testing.T) {
	f, _ := NewFirstOrder(1.0)
	if err := f.SetParam("time_constant", -1); err == nil {
		t.Error("expected error for negative time_constant")
	}
	if err := f.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown param")
	}

	s, _ := NewSecondOrder(1.0, 0.5)
	if err := s.SetParam("natural_frequency", 0); err == nil {
		t.Error("expected error for zero natural_frequency")
	}
	if err := s.SetParam("damping_ratio", 0); err != nil {
		t.Errorf("zeta=0 should be settable, got %v", err)
	}
}
