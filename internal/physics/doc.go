// Package physics provides the dynamical models of the lab.
//
// Each model implements the [dynamo.System] interface, defining the
// differential equations governing the system's evolution:
//
//   - [DrivenDoubleWell]: particle in V(x,t) = x^4 - x^2 + x(A + B sin wt)
//   - [Harmonic]: reference oscillator for integrator checks
//
// Models with a conserved energy also implement [dynamo.Hamiltonian],
// which the simulator uses for drift accounting and which the figure
// renderers use for phase-space contour lines.
package physics
