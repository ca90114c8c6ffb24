package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/pidlab/internal/config"
	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/noise"
	"github.com/san-kum/pidlab/internal/plant"
)

// Loop drives the fixed-step closed-loop iteration: controller, plant,
// trace. All state lives on the Loop value, so independent instances can
// run side by side.
//
// Loop is not safe for concurrent use. Exactly one tick driver may call
// Step; serializing those calls is the driver's responsibility.
type Loop struct {
	state State
	cfg   config.Config

	pid      *control.PID
	model    plant.Model
	injector *noise.Injector

	t       float64
	samples []Sample
}

func NewLoop() *Loop {
	return &Loop{state: Idle}
}

// Start takes a snapshot of cfg and begins a run. From Idle it validates
// the config, allocates zeroed controller and plant state, clears the
// trace and transitions to Running. From Paused it resumes without
// touching any state.
func (l *Loop) Start(cfg *config.Config) error {
	switch l.state {
	case Running:
		return ErrAlreadyRunning
	case Paused:
		l.state = Running
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	model, err := buildModel(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	pid := control.NewPID(cfg.Kp, cfg.Ki, cfg.Kd)
	if cfg.Limited() {
		pid, err = control.NewPIDWithLimits(cfg.Kp, cfg.Ki, cfg.Kd, cfg.OutputMin, cfg.OutputMax)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	injector, err := noise.New(cfg.Disturbance, cfg.NoiseStdDev, cfg.Seed)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l.cfg = *cfg
	l.pid = pid
	l.model = model
	l.injector = injector
	l.t = 0
	l.samples = nil
	l.state = Running
	return nil
}

func buildModel(cfg *config.Config) (plant.Model, error) {
	switch cfg.ProcessModel {
	case config.ModelFirstOrder:
		return plant.NewFirstOrder(cfg.TimeConstant)
	case config.ModelSecondOrder:
		return plant.NewSecondOrder(cfg.NaturalFrequency, cfg.DampingRatio)
	default:
		return nil, fmt.Errorf("unknown process_model: %q", cfg.ProcessModel)
	}
}

// Step advances the loop one time step. The controller sees the noisy
// measurement; the trace records the true plant output. NaN/Inf from
// pathological gains propagate into the trace rather than being masked.
func (l *Loop) Step() error {
	if l.state != Running {
		return fmt.Errorf("%w: step in state %s", ErrNotRunning, l.state)
	}

	measured := l.model.Output() + l.injector.Noise()
	u := l.pid.Compute(l.cfg.Setpoint, measured, l.cfg.Dt)
	out := l.model.Advance(u, l.injector.Disturbance(), l.cfg.Dt)

	l.samples = append(l.samples, Sample{
		T:        l.t,
		Setpoint: l.cfg.Setpoint,
		Output:   out,
		Control:  u,
	})
	l.t += l.cfg.Dt
	return nil
}

// Pause suspends stepping without touching controller or plant state.
func (l *Loop) Pause() error {
	if l.state != Running {
		return fmt.Errorf("%w: pause in state %s", ErrNotRunning, l.state)
	}
	l.state = Paused
	return nil
}

// Resume continues a paused run.
func (l *Loop) Resume() error {
	if l.state != Paused {
		return fmt.Errorf("%w: resume in state %s", ErrNotPaused, l.state)
	}
	l.state = Running
	return nil
}

// Reset returns the loop to Idle from any state, clearing the trace and
// zeroing controller and plant state together.
func (l *Loop) Reset() {
	if l.pid != nil {
		l.pid.Reset()
	}
	if l.model != nil {
		l.model.Reset()
	}
	l.t = 0
	l.samples = nil
	l.state = Idle
}

// Status returns the current lifecycle state.
func (l *Loop) Status() State { return l.state }

// Trace returns the recorded samples. The returned slice is a read-only
// view; callers must not mutate it.
func (l *Loop) Trace() []Sample { return l.samples }

// Time returns the running simulation time.
func (l *Loop) Time() float64 { return l.t }

// Config returns the snapshot the current run started from.
func (l *Loop) Config() config.Config { return l.cfg }

// Controller exposes the PID for live gain tuning between steps.
func (l *Loop) Controller() *control.PID { return l.pid }

// Run executes a complete headless run of cfg.Duration simulated seconds
// on a fresh loop. The context is checked once per step.
func Run(ctx context.Context, cfg *config.Config) (*Loop, error) {
	l := NewLoop()
	if err := l.Start(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return l, ctx.Err()
		default:
		}
		if err := l.Step(); err != nil {
			return l, err
		}
	}
	return l, nil
}
