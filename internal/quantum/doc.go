// Package quantum solves stationary and time-dependent problems of a
// single particle on a 1D grid: the hard-walled eigenproblem, Bloch
// bands of a periodic potential, and spectral time evolution of
// Gaussian wave packets.
package quantum
