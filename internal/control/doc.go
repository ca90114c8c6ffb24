// Package control provides the feedback controller for the simulation
// loop.
//
// [PID] computes a control signal from setpoint and measured output:
//
//	pid := control.NewPID(0.1, 0.005, 0.02)
//	u := pid.Compute(setpoint, measured, dt)
//
// Controllers built with [NewPIDWithLimits] saturate their output and
// clamp the integral contribution to the same range (anti-windup).
// [PID.GetParams] and [PID.SetParam] support live tuning.
package control
