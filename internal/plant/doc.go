// Package plant provides process models for closed-loop simulation.
//
// Each model implements the [Model] interface, advancing the process
// output one fixed time step at a time:
//
//   - [FirstOrder]: exponential lag with a single time constant
//   - [SecondOrder]: mass-spring-damper with natural frequency and damping
//
// Both models implement GetParams/SetParam for runtime parameter
// adjustment. Parameter validation happens at construction; Advance has
// no error paths.
package plant
