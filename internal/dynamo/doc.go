// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, F, t))
//   - [Drive]: time-dependent external forcing F(t)
//   - [Integrator]: numerical stepping scheme
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	dyn := physics.NewDrivenDoubleWell()
//	integ := integrators.NewRK4()
//	sim := dynamo.New(dyn, integ, dyn.Drive())
//	result, _ := sim.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For repeated runs with varied
// seeds, use the [Ensemble] type which manages one Simulator per goroutine.
package dynamo
