// Package stochastic holds the Monte Carlo experiments: a hard-wall
// pressure estimator for an ideal gas and a drift-diffusion walker
// ensemble with an absorbing boundary.
package stochastic
